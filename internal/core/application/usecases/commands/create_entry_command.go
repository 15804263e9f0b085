package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/errs"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// maxQuantityScale is the number of fractional digits quantities are stored with.
const maxQuantityScale = 4

var ErrCreateEntryCommandIsNotConstructed = errors.New(
	"CreateEntryCommand must be created via NewCreateEntryCommand constructor",
)

// CreateEntryCommand submits a physical count for an item at a location.
type CreateEntryCommand struct { //nolint:recvcheck //using for validation
	planID   kernel.UUID
	itemID   string
	location kernel.Location
	counted  decimal.Decimal
	counter  string

	guard guard.ConstructorGuard
}

func NewCreateEntryCommand(
	planID kernel.UUID,
	itemID string,
	location kernel.Location,
	counted decimal.Decimal,
	counter string,
) (CreateEntryCommand, error) {
	c := CreateEntryCommand{
		planID:   planID,
		itemID:   strings.TrimSpace(itemID),
		location: location,
		counted:  counted,
		counter:  strings.TrimSpace(counter),
	}

	var problems []error
	if err := planID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if c.itemID == "" {
		problems = append(problems, errs.NewValueIsRequiredError("item id"))
	}
	if err := location.Validate(); err != nil {
		problems = append(problems, err)
	}
	switch {
	case counted.IsNegative():
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"counted quantity", fmt.Errorf("%s is negative", counted)))
	case !counted.Equal(counted.Truncate(maxQuantityScale)):
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"counted quantity", fmt.Errorf("%s has more than %d decimal places", counted, maxQuantityScale)))
	}
	if c.counter == "" {
		problems = append(problems, errs.NewValueIsRequiredError("counter"))
	}
	if err := errors.Join(problems...); err != nil {
		return CreateEntryCommand{}, err
	}

	c.guard = guard.NewConstructorGuard()
	return c, nil
}

func (c CreateEntryCommand) Validate() error {
	return c.guard.Validate(ErrCreateEntryCommandIsNotConstructed)
}

func (c CreateEntryCommand) PlanID() kernel.UUID {
	return c.planID
}

func (c CreateEntryCommand) ItemID() string {
	return c.itemID
}

func (c CreateEntryCommand) Location() kernel.Location {
	return c.location
}

func (c CreateEntryCommand) CountedQuantity() decimal.Decimal {
	return c.counted
}

func (c CreateEntryCommand) Counter() string {
	return c.counter
}
