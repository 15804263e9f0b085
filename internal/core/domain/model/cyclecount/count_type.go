package cyclecount

import (
	"fmt"
	"strings"

	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/errs"
)

// CountType selects the entry generation strategy used when a plan starts.
type CountType int

const (
	// UnknownCountType catches uninitialized values.
	UnknownCountType CountType = iota

	// Blanket counts every stocked item at the plan location.
	Blanket

	// ABC counts the top velocity tier (category "A").
	ABC

	// SpotCheck counts a random sample of stocked items.
	SpotCheck

	// Receiving counts items received during the last week.
	Receiving

	// Shipping counts items sitting on orders being picked or packed.
	Shipping

	// AdHoc counts an explicit list of SKUs.
	AdHoc
)

func getCountTypeStrings() map[CountType]string {
	return map[CountType]string{
		UnknownCountType: "UNKNOWN",
		Blanket:          "BLANKET",
		ABC:              "ABC",
		SpotCheck:        "SPOT_CHECK",
		Receiving:        "RECEIVING",
		Shipping:         "SHIPPING",
		AdHoc:            "AD_HOC",
	}
}

// CountTypes lists every valid count type in declaration order.
func CountTypes() []CountType {
	return []CountType{Blanket, ABC, SpotCheck, Receiving, Shipping, AdHoc}
}

// ParseCountType converts the persisted/API name back into a CountType.
func ParseCountType(s string) (CountType, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, ct := range CountTypes() {
		if getCountTypeStrings()[ct] == name {
			return ct, nil
		}
	}
	return UnknownCountType, errs.NewValueIsInvalidErrorWithCause(
		"count type is invalid",
		fmt.Errorf("%q is not a known count type", s),
	)
}

// Validate rejects UnknownCountType and out-of-range values.
func (c CountType) Validate() error {
	if c <= UnknownCountType || c > AdHoc {
		return errs.NewValueIsInvalidErrorWithCause(
			"count type is invalid",
			fmt.Errorf("%d is not a valid count type", c),
		)
	}
	return nil
}

func (c CountType) String() string {
	if str, ok := getCountTypeStrings()[c]; ok {
		return str
	}
	return "UNKNOWN"
}
