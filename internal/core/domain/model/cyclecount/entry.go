package cyclecount

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrEntryIsNotConstructed is returned when an Entry was not created through NewEntry or RestoreEntry.
	ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

	hundred = decimal.NewFromInt(100)
)

// EntryState is the full persisted state of an Entry. Repositories use it to
// restore entries; it is never used to mutate one.
type EntryState struct {
	ID              kernel.UUID
	PlanID          kernel.UUID
	ItemID          string
	Location        kernel.Location
	SystemQuantity  decimal.Decimal
	CountedQuantity decimal.Decimal
	Status          VarianceStatus
	CountedBy       string
	CountedAt       *time.Time
	ReviewedBy      string
	ReviewedAt      *time.Time
	AdjustmentTxID  *kernel.UUID
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Entry is one item/location count inside a plan.
//
// Variance and VariancePercent are always derived from the two quantities.
// The adjustment transaction reference is present if and only if the status is
// AUTO_ADJUSTED, or APPROVED with a nonzero variance.
type Entry struct {
	state EntryState

	isConstructed bool
}

// NewEntry creates a generated, not yet counted entry: counted quantity 0,
// variance equal to the negated system quantity, status PENDING.
func NewEntry(id, planID kernel.UUID, itemID string, location kernel.Location,
	systemQuantity decimal.Decimal, now time.Time,
) (*Entry, error) {
	return RestoreEntry(EntryState{
		ID:              id,
		PlanID:          planID,
		ItemID:          itemID,
		Location:        location,
		SystemQuantity:  systemQuantity,
		CountedQuantity: decimal.Zero,
		Status:          Pending,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
}

// RestoreEntry rebuilds an entry from persisted state and checks its invariants.
func RestoreEntry(state EntryState) (*Entry, error) {
	state.ItemID = strings.TrimSpace(state.ItemID)

	var problems []error
	if err := state.ID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := state.PlanID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if state.ItemID == "" {
		problems = append(problems, errs.NewValueIsRequiredError("item id"))
	}
	if err := state.Location.Validate(); err != nil {
		problems = append(problems, err)
	}
	if state.SystemQuantity.IsNegative() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"system quantity", fmt.Errorf("%s is negative", state.SystemQuantity)))
	}
	if state.CountedQuantity.IsNegative() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"counted quantity", fmt.Errorf("%s is negative", state.CountedQuantity)))
	}
	if _, ok := getVarianceStatusStrings()[state.Status]; !ok || state.Status == UnknownVarianceStatus {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"variance status is invalid", fmt.Errorf("%d is not a valid variance status", state.Status)))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	entry := &Entry{state: state, isConstructed: true}
	if entry.requiresAdjustment() != (state.AdjustmentTxID != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"adjustment transaction",
			fmt.Errorf("entry in status %s with variance %s cannot carry reference %v",
				state.Status, entry.Variance(), state.AdjustmentTxID),
		)
	}

	return entry, nil
}

// Validate ensures the Entry was built through a constructor.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

func (e *Entry) ID() kernel.UUID {
	return e.state.ID
}

func (e *Entry) PlanID() kernel.UUID {
	return e.state.PlanID
}

func (e *Entry) ItemID() string {
	return e.state.ItemID
}

func (e *Entry) Location() kernel.Location {
	return e.state.Location
}

func (e *Entry) SystemQuantity() decimal.Decimal {
	return e.state.SystemQuantity
}

func (e *Entry) CountedQuantity() decimal.Decimal {
	return e.state.CountedQuantity
}

func (e *Entry) Status() VarianceStatus {
	return e.state.Status
}

func (e *Entry) CountedBy() string {
	return e.state.CountedBy
}

func (e *Entry) CountedAt() *time.Time {
	return e.state.CountedAt
}

func (e *Entry) ReviewedBy() string {
	return e.state.ReviewedBy
}

func (e *Entry) ReviewedAt() *time.Time {
	return e.state.ReviewedAt
}

func (e *Entry) AdjustmentTxID() *kernel.UUID {
	return e.state.AdjustmentTxID
}

func (e *Entry) Notes() string {
	return e.state.Notes
}

func (e *Entry) CreatedAt() time.Time {
	return e.state.CreatedAt
}

func (e *Entry) UpdatedAt() time.Time {
	return e.state.UpdatedAt
}

// State returns a copy of the entry state for persistence.
func (e *Entry) State() EntryState {
	return e.state
}

// Variance is counted minus system quantity.
func (e *Entry) Variance() decimal.Decimal {
	return e.state.CountedQuantity.Sub(e.state.SystemQuantity)
}

// VariancePercent is |variance| / system × 100.
// It is zero when the system quantity is zero.
func (e *Entry) VariancePercent() decimal.Decimal {
	if e.state.SystemQuantity.IsZero() {
		return decimal.Zero
	}
	return e.Variance().Abs().Div(e.state.SystemQuantity).Mul(hundred)
}

// IsCounted reports whether a physical count has been recorded.
func (e *Entry) IsCounted() bool {
	return e.state.CountedAt != nil
}

// RecordCount stores a physical count against a pending entry and refreshes
// the system quantity snapshot.
func (e *Entry) RecordCount(systemQuantity, countedQuantity decimal.Decimal, countedBy string, now time.Time) error {
	if e.state.Status != Pending {
		return errs.NewInvalidStateTransitionError("entry", e.state.Status.String(), "COUNTED")
	}
	if countedQuantity.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("counted quantity", fmt.Errorf("%s is negative", countedQuantity))
	}
	if systemQuantity.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("system quantity", fmt.Errorf("%s is negative", systemQuantity))
	}

	e.state.SystemQuantity = systemQuantity
	e.state.CountedQuantity = countedQuantity
	e.state.CountedBy = strings.TrimSpace(countedBy)
	e.state.CountedAt = &now
	e.state.UpdatedAt = now
	return nil
}

// AutoAdjust marks a pending entry as corrected without review.
func (e *Entry) AutoAdjust(txID kernel.UUID, now time.Time) error {
	if err := txID.Validate(); err != nil {
		return err
	}
	newStatus, err := e.state.Status.transition(AutoAdjusted)
	if err != nil {
		return err
	}

	e.state.Status = newStatus
	e.state.AdjustmentTxID = &txID
	e.state.UpdatedAt = now
	return nil
}

// Approve records a reviewer's approval. A nonzero variance requires the
// reference of the adjustment transaction that applied it; a zero variance
// must not carry one.
func (e *Entry) Approve(reviewer, notes string, txID *kernel.UUID, now time.Time) error {
	newStatus, err := e.state.Status.transition(Approved)
	if err != nil {
		return err
	}
	nonzero := !e.Variance().IsZero()
	switch {
	case nonzero && txID == nil:
		return errs.NewValueIsRequiredError("adjustment transaction")
	case !nonzero && txID != nil:
		return errs.NewValueIsInvalidErrorWithCause(
			"adjustment transaction", errors.New("zero variance entries are approved without adjustment"))
	case txID != nil:
		if err = txID.Validate(); err != nil {
			return err
		}
	}

	e.state.Status = newStatus
	e.state.AdjustmentTxID = txID
	e.review(reviewer, notes, now)
	return nil
}

// Reject records a reviewer's rejection. Inventory is left untouched and the
// entry becomes terminal.
func (e *Entry) Reject(reviewer, notes string, now time.Time) error {
	newStatus, err := e.state.Status.transition(Rejected)
	if err != nil {
		return err
	}

	e.state.Status = newStatus
	e.review(reviewer, notes, now)
	return nil
}

func (e *Entry) review(reviewer, notes string, now time.Time) {
	e.state.ReviewedBy = strings.TrimSpace(reviewer)
	e.state.ReviewedAt = &now
	if notes = strings.TrimSpace(notes); notes != "" {
		if e.state.Notes == "" {
			e.state.Notes = notes
		} else {
			e.state.Notes += "\n" + notes
		}
	}
	e.state.UpdatedAt = now
}

func (e *Entry) requiresAdjustment() bool {
	switch e.state.Status {
	case AutoAdjusted:
		return true
	case Approved:
		return !e.Variance().IsZero()
	default:
		return false
	}
}
