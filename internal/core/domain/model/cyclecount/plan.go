package cyclecount

import (
	"errors"
	"strings"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/errs"
)

const maxPlanNameLength = 200

var (
	// ErrPlanIsNotConstructed is returned when a Plan was not created through NewPlan or RestorePlan.
	ErrPlanIsNotConstructed = errors.New("Plan must be created via NewPlan constructor")
)

// PlanDetails holds the caller-supplied attributes of a plan.
type PlanDetails struct {
	Name          string
	CountType     CountType
	ScheduledDate time.Time

	// Location restricts the plan to a single bin code. Nil means no restriction.
	Location *kernel.Location

	// SKUScope is a single SKU (ABC) or a comma-separated SKU list (AD_HOC).
	SKUScope string

	AssignedTo string
	CreatedBy  string
	Notes      string
}

// Plan is the aggregate root of a cycle count. It owns the lifecycle status;
// its entries are persisted separately and reference the plan by ID.
//
// Plan follows these invariants:
//   - Must have a valid identifier, a non-empty name and a known count type
//   - Status changes only through Start, Complete, Reconcile and Cancel
//   - Notes are append-only once the plan exists
type Plan struct {
	id      kernel.UUID
	details PlanDetails
	status  Status

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewPlan creates a SCHEDULED plan.
//
// Example:
//
//	loc := kernel.MustNewLocation("A-01-01")
//	plan, err := cyclecount.NewPlan(kernel.NewUUID(), cyclecount.PlanDetails{
//	    Name:          "Zone A weekly",
//	    CountType:     cyclecount.Blanket,
//	    ScheduledDate: time.Now(),
//	    Location:      &loc,
//	    AssignedTo:    "user-7",
//	    CreatedBy:     "user-1",
//	}, time.Now())
func NewPlan(id kernel.UUID, details PlanDetails, now time.Time) (*Plan, error) {
	return RestorePlan(id, details, Scheduled, now, now)
}

// RestorePlan rebuilds a plan from persistence with an arbitrary status.
func RestorePlan(id kernel.UUID, details PlanDetails, status Status, createdAt, updatedAt time.Time) (*Plan, error) {
	plan := &Plan{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		plan.setID(id),
		plan.setDetails(details),
		plan.setStatus(status),
	); err != nil {
		return nil, err
	}

	return plan, nil
}

// Validate ensures the Plan was built through a constructor.
func (p *Plan) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPlanIsNotConstructed
	}
	return nil
}

func (p *Plan) ID() kernel.UUID {
	return p.id
}

func (p *Plan) Name() string {
	return p.details.Name
}

func (p *Plan) CountType() CountType {
	return p.details.CountType
}

func (p *Plan) Status() Status {
	return p.status
}

func (p *Plan) ScheduledDate() time.Time {
	return p.details.ScheduledDate
}

// Location returns the plan location and whether one is set.
func (p *Plan) Location() (kernel.Location, bool) {
	if p.details.Location == nil {
		return kernel.Location{}, false
	}
	return *p.details.Location, true
}

func (p *Plan) SKUScope() string {
	return p.details.SKUScope
}

// SKUList splits the SKU scope on commas, trims each value and drops
// empties and duplicates while keeping the original order.
func (p *Plan) SKUList() []string {
	seen := make(map[string]struct{})
	var skus []string
	for _, raw := range strings.Split(p.details.SKUScope, ",") {
		sku := strings.TrimSpace(raw)
		if sku == "" {
			continue
		}
		if _, ok := seen[sku]; ok {
			continue
		}
		seen[sku] = struct{}{}
		skus = append(skus, sku)
	}
	return skus
}

func (p *Plan) AssignedTo() string {
	return p.details.AssignedTo
}

func (p *Plan) CreatedBy() string {
	return p.details.CreatedBy
}

func (p *Plan) Notes() string {
	return p.details.Notes
}

func (p *Plan) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Plan) UpdatedAt() time.Time {
	return p.updatedAt
}

// Details returns a copy of the plan attributes.
func (p *Plan) Details() PlanDetails {
	details := p.details
	if details.Location != nil {
		loc := *details.Location
		details.Location = &loc
	}
	return details
}

// Start moves the plan from SCHEDULED to IN_PROGRESS.
func (p *Plan) Start(now time.Time) error {
	newStatus, err := p.status.Start()
	if err != nil {
		return err
	}
	p.status = newStatus
	p.updatedAt = now
	return nil
}

// Complete moves the plan from IN_PROGRESS to COMPLETED.
func (p *Plan) Complete(now time.Time) error {
	newStatus, err := p.status.Complete()
	if err != nil {
		return err
	}
	p.status = newStatus
	p.updatedAt = now
	return nil
}

// Cancel moves the plan to CANCELLED and appends the reason to its notes.
func (p *Plan) Cancel(reason string, now time.Time) error {
	newStatus, err := p.status.Cancel()
	if err != nil {
		return err
	}
	p.status = newStatus
	if reason = strings.TrimSpace(reason); reason != "" {
		p.appendNote("Cancelled: " + reason)
	}
	p.updatedAt = now
	return nil
}

// Reconcile moves the plan from COMPLETED to RECONCILED and appends the notes.
func (p *Plan) Reconcile(notes string, now time.Time) error {
	newStatus, err := p.status.Reconcile()
	if err != nil {
		return err
	}
	p.status = newStatus
	if notes = strings.TrimSpace(notes); notes != "" {
		p.appendNote("Reconciled: " + notes)
	}
	p.updatedAt = now
	return nil
}

func (p *Plan) appendNote(note string) {
	if p.details.Notes == "" {
		p.details.Notes = note
		return
	}
	p.details.Notes += "\n" + note
}

func (p *Plan) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Plan) setDetails(details PlanDetails) error {
	details.Name = strings.TrimSpace(details.Name)
	details.SKUScope = strings.TrimSpace(details.SKUScope)

	var problems []error
	if details.Name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("name"))
	} else if len(details.Name) > maxPlanNameLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError("name length", len(details.Name), 1, maxPlanNameLength))
	}
	if err := details.CountType.Validate(); err != nil {
		problems = append(problems, err)
	}
	if details.ScheduledDate.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("scheduled date"))
	}
	if details.Location != nil {
		if err := details.Location.Validate(); err != nil {
			problems = append(problems, err)
		}
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	if details.Location != nil {
		loc := *details.Location
		details.Location = &loc
	}
	p.details = details
	return nil
}

func (p *Plan) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}
