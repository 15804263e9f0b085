// Package tolerance holds variance tolerance policies and the resolver that
// picks the policy applicable to an item at a location.
package tolerance

import (
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// DefaultPolicyName is the name of the stored policy used when no item or
// zone policy matches.
const DefaultPolicyName = "Default Tolerance"

// Scope tells which dimension a policy is keyed on.
type Scope int

const (
	UnknownScope Scope = iota
	ItemScope
	ZoneScope
	DefaultScope
)

func (s Scope) String() string {
	switch s {
	case ItemScope:
		return "ITEM"
	case ZoneScope:
		return "ZONE"
	case DefaultScope:
		return "DEFAULT"
	default:
		return "UNKNOWN"
	}
}

// ParseScope maps a stored scope name to a Scope. Unknown names map to UnknownScope.
func ParseScope(s string) Scope {
	for _, scope := range []Scope{ItemScope, ZoneScope, DefaultScope} {
		if scope.String() == s {
			return scope
		}
	}
	return UnknownScope
}

// Policy is reference data. Thresholds are percentages.
type Policy struct {
	ID     kernel.UUID
	Name   string
	Scope  Scope
	ItemID string
	Zone   string

	AllowableVariancePercent decimal.Decimal
	AllowableVarianceAmount  decimal.Decimal
	AutoAdjustThreshold      decimal.Decimal
	ReviewThreshold          decimal.Decimal

	Active bool
}

// Fallback is the policy used when nothing is stored at all.
func Fallback() Policy {
	return Policy{
		Name:                     "Fallback Tolerance",
		Scope:                    DefaultScope,
		AllowableVariancePercent: decimal.NewFromInt(10),
		AllowableVarianceAmount:  decimal.Zero,
		AutoAdjustThreshold:      decimal.NewFromInt(5),
		ReviewThreshold:          decimal.NewFromInt(10),
		Active:                   true,
	}
}

// IsFallback reports whether p is the hardcoded fallback rather than a stored record.
func (p Policy) IsFallback() bool {
	return p.ID.Validate() != nil
}

// AllowsAutoAdjust reports whether |percent| is within the auto-adjust threshold.
func (p Policy) AllowsAutoAdjust(percent decimal.Decimal) bool {
	return percent.Abs().LessThanOrEqual(p.AutoAdjustThreshold)
}

// RequiresAlert reports whether |percent| exceeds twice the auto-adjust threshold.
func (p Policy) RequiresAlert(percent decimal.Decimal) bool {
	return percent.Abs().GreaterThan(p.AutoAdjustThreshold.Mul(decimal.NewFromInt(2)))
}
