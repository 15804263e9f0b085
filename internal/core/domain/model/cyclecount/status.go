package cyclecount

import (
	"fmt"
	"strings"

	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/errs"
)

// Status is the lifecycle state of a Plan.
//
// State transitions:
//
//	Scheduled ──> InProgress ──> Completed ──> Reconciled
//	    │             │
//	    └─────────────┴──> Cancelled
type Status int

const (
	// UnknownStatus catches uninitialized Status values.
	UnknownStatus Status = iota

	// Scheduled is the initial status of a new plan.
	Scheduled

	// InProgress means entries have been generated and counting is under way.
	InProgress

	// Completed means counting is finished; variances may still be pending.
	Completed

	// Reconciled is terminal: every variance of the plan has been resolved.
	Reconciled

	// Cancelled is terminal and reachable only from Scheduled or InProgress.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "UNKNOWN",
		Scheduled:     "SCHEDULED",
		InProgress:    "IN_PROGRESS",
		Completed:     "COMPLETED",
		Reconciled:    "RECONCILED",
		Cancelled:     "CANCELLED",
	}
}

// ParseStatus converts a persisted/API name back into a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != UnknownStatus && str == name {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a known plan status", s),
	)
}

// Validate rejects UnknownStatus and out-of-range values.
func (s Status) Validate() error {
	if s <= UnknownStatus || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsActive reports whether a plan in this status still claims its location.
func (s Status) IsActive() bool {
	return s == Scheduled || s == InProgress
}

// AcceptsCounts reports whether count entries may be submitted.
func (s Status) AcceptsCounts() bool {
	return s == InProgress || s == Completed
}

// Start transitions Scheduled -> InProgress.
func (s Status) Start() (Status, error) {
	if s != Scheduled {
		return UnknownStatus, s.transitionError(InProgress)
	}
	return InProgress, nil
}

// Complete transitions InProgress -> Completed.
func (s Status) Complete() (Status, error) {
	if s != InProgress {
		return UnknownStatus, s.transitionError(Completed)
	}
	return Completed, nil
}

// Reconcile transitions Completed -> Reconciled.
func (s Status) Reconcile() (Status, error) {
	if s != Completed {
		return UnknownStatus, s.transitionError(Reconciled)
	}
	return Reconciled, nil
}

// Cancel transitions to Cancelled from any status except Completed and Reconciled.
// Cancelling an already cancelled plan is allowed.
func (s Status) Cancel() (Status, error) {
	if s == Completed || s == Reconciled || s.Validate() != nil {
		return UnknownStatus, s.transitionError(Cancelled)
	}
	return Cancelled, nil
}

func (s Status) transitionError(to Status) error {
	return errs.NewInvalidStateTransitionError("plan", s.String(), to.String())
}
