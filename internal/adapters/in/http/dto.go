package http

import (
	"encoding/json"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/application/usecases/commands"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/application/usecases/queries"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/inventory"

	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type CreatePlanRequest struct {
	Name          string    `json:"name" validate:"required,max=200"`
	CountType     string    `json:"countType" validate:"required,oneof=BLANKET ABC SPOT_CHECK RECEIVING SHIPPING AD_HOC"`
	ScheduledDate time.Time `json:"scheduledDate" validate:"required"`
	Location      string    `json:"location" validate:"omitempty,max=64"`
	SKU           string    `json:"sku"`
	AssignedTo    string    `json:"assignedTo" validate:"max=64"`
	Notes         string    `json:"notes"`
}

type CancelPlanRequest struct {
	Reason string `json:"reason"`
}

type ReconcilePlanRequest struct {
	Notes string `json:"notes"`
}

type CreateEntryRequest struct {
	SKU             string          `json:"sku" validate:"required,max=64"`
	BinLocation     string          `json:"binLocation" validate:"required,max=64"`
	CountedQuantity decimal.Decimal `json:"countedQuantity"`
}

type UpdateVarianceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	Notes  string `json:"notes"`
}

type BulkUpdateVarianceStatusRequest struct {
	Status                  string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	Notes                   string `json:"notes"`
	AutoApproveZeroVariance bool   `json:"autoApproveZeroVariance"`
}

type PlanResponse struct {
	ID            string    `json:"planId"`
	Name          string    `json:"name"`
	CountType     string    `json:"countType"`
	Status        string    `json:"status"`
	ScheduledDate time.Time `json:"scheduledDate"`
	Location      string    `json:"location,omitempty"`
	SKU           string    `json:"sku,omitempty"`
	AssignedTo    string    `json:"assignedTo"`
	CreatedBy     string    `json:"createdBy"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type EntryResponse struct {
	ID                      string          `json:"entryId"`
	PlanID                  string          `json:"planId"`
	SKU                     string          `json:"sku"`
	BinLocation             string          `json:"binLocation"`
	SystemQuantity          decimal.Decimal `json:"systemQuantity"`
	CountedQuantity         decimal.Decimal `json:"countedQuantity"`
	Variance                decimal.Decimal `json:"variance"`
	VariancePercent         decimal.Decimal `json:"variancePercent"`
	VarianceStatus          string          `json:"varianceStatus"`
	CountedBy               string          `json:"countedBy,omitempty"`
	CountedAt               *time.Time      `json:"countedAt,omitempty"`
	ReviewedBy              string          `json:"reviewedBy,omitempty"`
	ReviewedAt              *time.Time      `json:"reviewedAt,omitempty"`
	AdjustmentTransactionID string          `json:"adjustmentTransactionId,omitempty"`
	Notes                   string          `json:"notes,omitempty"`
}

type PlanDetailResponse struct {
	PlanResponse
	Entries []EntryResponse `json:"entries"`
}

type StartPlanResponse struct {
	Plan             PlanResponse `json:"plan"`
	GeneratedEntries int          `json:"generatedEntries"`
}

type AdjustmentResponse struct {
	ID          string          `json:"transactionId"`
	SKU         string          `json:"sku"`
	BinLocation string          `json:"binLocation"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason"`
}

type BulkResultResponse struct {
	Updated     int                  `json:"updated"`
	Skipped     int                  `json:"skipped"`
	Adjustments []AdjustmentResponse `json:"adjustments"`
}

type ReconcileResponse struct {
	Plan PlanResponse `json:"plan"`
	BulkResultResponse
}

type ReconcileSummaryResponse struct {
	PlanID                string          `json:"planId"`
	PlanStatus            string          `json:"planStatus"`
	PendingCount          int             `json:"pendingCount"`
	ZeroVariance          []EntryResponse `json:"zeroVariance"`
	NonZeroVariance       []EntryResponse `json:"nonZeroVariance"`
	TotalAbsoluteVariance decimal.Decimal `json:"totalAbsoluteVariance"`
}

type CollisionResponse struct {
	PlanID        string    `json:"planId"`
	Name          string    `json:"name"`
	Status        string    `json:"status"`
	AssignedTo    string    `json:"assignedTo"`
	ScheduledDate time.Time `json:"scheduledDate"`
}

type CollisionsResponse struct {
	HasCollisions bool                `json:"hasCollisions"`
	Collisions    []CollisionResponse `json:"collisions"`
}

type AuditLogLineResponse struct {
	Timestamp time.Time       `json:"timestamp"`
	Action    string          `json:"action"`
	Actor     string          `json:"actor"`
	Before    json.RawMessage `json:"before,omitempty"`
	After     json.RawMessage `json:"after,omitempty"`
}

func planFromDomain(p *cyclecount.Plan) PlanResponse {
	resp := PlanResponse{
		ID:            p.ID().String(),
		Name:          p.Name(),
		CountType:     p.CountType().String(),
		Status:        p.Status().String(),
		ScheduledDate: p.ScheduledDate(),
		SKU:           p.SKUScope(),
		AssignedTo:    p.AssignedTo(),
		CreatedBy:     p.CreatedBy(),
		Notes:         p.Notes(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
	if loc, ok := p.Location(); ok {
		resp.Location = loc.Code()
	}
	return resp
}

func planFromView(v queries.PlanView) PlanResponse {
	return PlanResponse{
		ID:            v.ID.String(),
		Name:          v.Name,
		CountType:     v.CountType,
		Status:        v.Status,
		ScheduledDate: v.ScheduledDate,
		Location:      v.Location,
		SKU:           v.SKUScope,
		AssignedTo:    v.AssignedTo,
		CreatedBy:     v.CreatedBy,
		Notes:         v.Notes,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func entryFromDomain(e *cyclecount.Entry) EntryResponse {
	resp := EntryResponse{
		ID:              e.ID().String(),
		PlanID:          e.PlanID().String(),
		SKU:             e.ItemID(),
		BinLocation:     e.Location().Code(),
		SystemQuantity:  e.SystemQuantity(),
		CountedQuantity: e.CountedQuantity(),
		Variance:        e.Variance(),
		VariancePercent: e.VariancePercent().Round(2),
		VarianceStatus:  e.Status().String(),
		CountedBy:       e.CountedBy(),
		CountedAt:       e.CountedAt(),
		ReviewedBy:      e.ReviewedBy(),
		ReviewedAt:      e.ReviewedAt(),
		Notes:           e.Notes(),
	}
	if tx := e.AdjustmentTxID(); tx != nil {
		resp.AdjustmentTransactionID = tx.String()
	}
	return resp
}

func entryFromView(v queries.EntryView) EntryResponse {
	resp := EntryResponse{
		ID:              v.ID.String(),
		PlanID:          v.PlanID.String(),
		SKU:             v.ItemID,
		BinLocation:     v.Location,
		SystemQuantity:  v.SystemQuantity,
		CountedQuantity: v.CountedQuantity,
		Variance:        v.Variance,
		VariancePercent: v.VariancePercent.Round(2),
		VarianceStatus:  v.VarianceStatus,
		CountedBy:       v.CountedBy,
		CountedAt:       v.CountedAt,
		ReviewedBy:      v.ReviewedBy,
		ReviewedAt:      v.ReviewedAt,
		Notes:           v.Notes,
	}
	if v.AdjustmentTxID != nil {
		resp.AdjustmentTransactionID = v.AdjustmentTxID.String()
	}
	return resp
}

func entriesFromViews(views []queries.EntryView) []EntryResponse {
	resp := make([]EntryResponse, len(views))
	for i, v := range views {
		resp[i] = entryFromView(v)
	}
	return resp
}

func bulkFromResult(r commands.BulkResult) BulkResultResponse {
	resp := BulkResultResponse{
		Updated:     r.Updated,
		Skipped:     r.Skipped,
		Adjustments: make([]AdjustmentResponse, len(r.Adjustments)),
	}
	for i, tx := range r.Adjustments {
		resp.Adjustments[i] = adjustmentFromDomain(tx)
	}
	return resp
}

func adjustmentFromDomain(tx *inventory.AdjustmentTransaction) AdjustmentResponse {
	return AdjustmentResponse{
		ID:          tx.ID().String(),
		SKU:         tx.ItemID(),
		BinLocation: tx.Location().Code(),
		Quantity:    tx.Quantity(),
		Reason:      tx.Reason(),
	}
}
