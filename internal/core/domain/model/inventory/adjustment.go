// Package inventory models stock records and the append-only adjustment ledger
// through which cycle counts correct them.
package inventory

import (
	"errors"
	"strings"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	// ReasonCycleCount marks ledger records written by cycle count reconciliation.
	ReasonCycleCount = "CYCLE_COUNT"

	// MovementReceiving is the stock movement type recorded for inbound receipts.
	MovementReceiving = "RECEIVING"
)

// StockLevel is the quantity of one item at one location.
type StockLevel struct {
	ItemID   string
	Location kernel.Location
	Quantity decimal.Decimal
}

// Reference links a ledger record back to the count that produced it.
type Reference struct {
	PlanID  kernel.UUID
	EntryID kernel.UUID
}

// AdjustmentTransaction is an immutable ledger record of a signed stock correction.
// A zero quantity is allowed and documents that a count matched the system.
type AdjustmentTransaction struct {
	id        kernel.UUID
	itemID    string
	location  kernel.Location
	quantity  decimal.Decimal
	reason    string
	actor     string
	reference Reference
	createdAt time.Time
}

// NewAdjustmentTransaction validates and builds a ledger record.
func NewAdjustmentTransaction(
	id kernel.UUID,
	itemID string,
	location kernel.Location,
	quantity decimal.Decimal,
	reason, actor string,
	reference Reference,
	createdAt time.Time,
) (*AdjustmentTransaction, error) {
	itemID = strings.TrimSpace(itemID)
	reason = strings.TrimSpace(reason)

	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, err)
	}
	if itemID == "" {
		problems = append(problems, errs.NewValueIsRequiredError("item id"))
	}
	if err := location.Validate(); err != nil {
		problems = append(problems, err)
	}
	if reason == "" {
		problems = append(problems, errs.NewValueIsRequiredError("reason"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &AdjustmentTransaction{
		id:        id,
		itemID:    itemID,
		location:  location,
		quantity:  quantity,
		reason:    reason,
		actor:     strings.TrimSpace(actor),
		reference: reference,
		createdAt: createdAt,
	}, nil
}

func (a *AdjustmentTransaction) ID() kernel.UUID {
	return a.id
}

func (a *AdjustmentTransaction) ItemID() string {
	return a.itemID
}

func (a *AdjustmentTransaction) Location() kernel.Location {
	return a.location
}

// Quantity is the signed correction: positive adds stock, negative removes it.
func (a *AdjustmentTransaction) Quantity() decimal.Decimal {
	return a.quantity
}

func (a *AdjustmentTransaction) Reason() string {
	return a.reason
}

func (a *AdjustmentTransaction) Actor() string {
	return a.actor
}

func (a *AdjustmentTransaction) Reference() Reference {
	return a.reference
}

func (a *AdjustmentTransaction) CreatedAt() time.Time {
	return a.createdAt
}
