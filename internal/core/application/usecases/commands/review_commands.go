package commands

import (
	"errors"
	"strings"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/errs"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/guard"
)

var (
	ErrUpdateVarianceStatusCommandIsNotConstructed = errors.New(
		"UpdateVarianceStatusCommand must be created via NewUpdateVarianceStatusCommand constructor",
	)
	ErrBulkUpdateVarianceStatusCommandIsNotConstructed = errors.New(
		"BulkUpdateVarianceStatusCommand must be created via NewBulkUpdateVarianceStatusCommand constructor",
	)
)

// reviewDecision is the part shared by single and bulk review commands.
type reviewDecision struct {
	status   cyclecount.VarianceStatus
	reviewer string
	notes    string
}

func newReviewDecision(status cyclecount.VarianceStatus, reviewer, notes string) (reviewDecision, error) {
	reviewer = strings.TrimSpace(reviewer)

	var problems []error
	if err := status.ValidateReviewDecision(); err != nil {
		problems = append(problems, err)
	}
	if reviewer == "" {
		problems = append(problems, errs.NewValueIsRequiredError("reviewer"))
	}
	if err := errors.Join(problems...); err != nil {
		return reviewDecision{}, err
	}

	return reviewDecision{status: status, reviewer: reviewer, notes: strings.TrimSpace(notes)}, nil
}

func (d reviewDecision) Status() cyclecount.VarianceStatus {
	return d.status
}

func (d reviewDecision) Reviewer() string {
	return d.reviewer
}

func (d reviewDecision) Notes() string {
	return d.notes
}

// UpdateVarianceStatusCommand approves or rejects a single pending entry.
type UpdateVarianceStatusCommand struct {
	reviewDecision
	entryID kernel.UUID

	guard guard.ConstructorGuard
}

func NewUpdateVarianceStatusCommand(
	entryID kernel.UUID,
	status cyclecount.VarianceStatus,
	reviewer, notes string,
) (UpdateVarianceStatusCommand, error) {
	decision, err := newReviewDecision(status, reviewer, notes)
	if err = errors.Join(err, entryID.Validate()); err != nil {
		return UpdateVarianceStatusCommand{}, err
	}

	return UpdateVarianceStatusCommand{
		reviewDecision: decision,
		entryID:        entryID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateVarianceStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateVarianceStatusCommandIsNotConstructed)
}

func (c UpdateVarianceStatusCommand) EntryID() kernel.UUID {
	return c.entryID
}

// BulkUpdateVarianceStatusCommand applies one decision to every pending entry
// of a plan. Zero-variance entries are skipped unless AutoApproveZeroVariance is set.
type BulkUpdateVarianceStatusCommand struct {
	reviewDecision
	planID          kernel.UUID
	autoApproveZero bool

	guard guard.ConstructorGuard
}

func NewBulkUpdateVarianceStatusCommand(
	planID kernel.UUID,
	status cyclecount.VarianceStatus,
	reviewer, notes string,
	autoApproveZeroVariance bool,
) (BulkUpdateVarianceStatusCommand, error) {
	decision, err := newReviewDecision(status, reviewer, notes)
	if err = errors.Join(err, planID.Validate()); err != nil {
		return BulkUpdateVarianceStatusCommand{}, err
	}

	return BulkUpdateVarianceStatusCommand{
		reviewDecision:  decision,
		planID:          planID,
		autoApproveZero: autoApproveZeroVariance,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c BulkUpdateVarianceStatusCommand) Validate() error {
	return c.guard.Validate(ErrBulkUpdateVarianceStatusCommandIsNotConstructed)
}

func (c BulkUpdateVarianceStatusCommand) PlanID() kernel.UUID {
	return c.planID
}

func (c BulkUpdateVarianceStatusCommand) AutoApproveZeroVariance() bool {
	return c.autoApproveZero
}
