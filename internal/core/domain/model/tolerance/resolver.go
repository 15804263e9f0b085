package tolerance

import (
	"strings"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
)

// Rule reports whether a candidate policy matches an item at a location.
type Rule func(itemID string, location kernel.Location, p Policy) bool

// ResolutionOrder is the prioritized rule list used by Resolve.
func ResolutionOrder() []Rule {
	return []Rule{matchItem, matchZone, matchDefault}
}

// Resolve returns the first active candidate matched by the earliest rule in
// ResolutionOrder, or Fallback when no candidate matches. It never fails.
func Resolve(itemID string, location kernel.Location, candidates []Policy) Policy {
	for _, rule := range ResolutionOrder() {
		for _, p := range candidates {
			if p.Active && rule(itemID, location, p) {
				return p
			}
		}
	}
	return Fallback()
}

func matchItem(itemID string, _ kernel.Location, p Policy) bool {
	return p.Scope == ItemScope && p.ItemID != "" && p.ItemID == itemID
}

func matchZone(_ string, location kernel.Location, p Policy) bool {
	zone := location.Zone()
	return p.Scope == ZoneScope && zone != "" && strings.EqualFold(p.Zone, zone)
}

func matchDefault(_ string, _ kernel.Location, p Policy) bool {
	return p.Name == DefaultPolicyName
}
