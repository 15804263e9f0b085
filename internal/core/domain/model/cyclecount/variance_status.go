package cyclecount

import (
	"fmt"
	"strings"

	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/errs"
)

// VarianceStatus is the review state of an Entry.
type VarianceStatus int

const (
	UnknownVarianceStatus VarianceStatus = iota
	Pending
	AutoAdjusted
	Approved
	Rejected
)

func getVarianceStatusStrings() map[VarianceStatus]string {
	return map[VarianceStatus]string{
		UnknownVarianceStatus: "UNKNOWN",
		Pending:               "PENDING",
		AutoAdjusted:          "AUTO_ADJUSTED",
		Approved:              "APPROVED",
		Rejected:              "REJECTED",
	}
}

// ParseVarianceStatus converts a persisted/API name back into a VarianceStatus.
func ParseVarianceStatus(s string) (VarianceStatus, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getVarianceStatusStrings() {
		if status != UnknownVarianceStatus && str == name {
			return status, nil
		}
	}
	return UnknownVarianceStatus, errs.NewValueIsInvalidErrorWithCause(
		"variance status is invalid",
		fmt.Errorf("%q is not a known variance status", s),
	)
}

func (s VarianceStatus) String() string {
	if str, ok := getVarianceStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsReviewDecision reports whether s is a status a reviewer may assign.
func (s VarianceStatus) IsReviewDecision() bool {
	return s == Approved || s == Rejected
}

// ValidateReviewDecision rejects anything other than Approved or Rejected.
func (s VarianceStatus) ValidateReviewDecision() error {
	if !s.IsReviewDecision() {
		return errs.NewValueIsInvalidErrorWithCause(
			"variance status is invalid",
			fmt.Errorf("%s is not a review decision", s),
		)
	}
	return nil
}

// transition moves Pending to target. Every non-pending status is terminal.
func (s VarianceStatus) transition(target VarianceStatus) (VarianceStatus, error) {
	if s != Pending {
		return UnknownVarianceStatus, errs.NewInvalidStateTransitionError("entry", s.String(), target.String())
	}
	return target, nil
}
