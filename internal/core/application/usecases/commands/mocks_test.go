package commands_test

import (
	"context"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/application/usecases/commands"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/audit"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/inventory"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/services"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockPlanRepository struct{ mock.Mock }

func (m *MockPlanRepository) Add(ctx context.Context, p *cyclecount.Plan) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPlanRepository) Update(ctx context.Context, p *cyclecount.Plan) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPlanRepository) Get(ctx context.Context, id kernel.UUID) (*cyclecount.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(func(kernel.UUID) *cyclecount.Plan); ok {
		return fn(id), args.Error(1)
	}
	return args.Get(0).(*cyclecount.Plan), args.Error(1)
}

type MockEntryRepository struct{ mock.Mock }

func (m *MockEntryRepository) Add(ctx context.Context, entries ...*cyclecount.Entry) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *MockEntryRepository) Update(ctx context.Context, e *cyclecount.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEntryRepository) Get(ctx context.Context, id kernel.UUID) (*cyclecount.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cyclecount.Entry), args.Error(1)
}

func (m *MockEntryRepository) ListPendingByPlan(ctx context.Context, planID kernel.UUID) ([]*cyclecount.Entry, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cyclecount.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindUncounted(
	ctx context.Context, planID kernel.UUID, itemID string, loc kernel.Location,
) (*cyclecount.Entry, error) {
	args := m.Called(ctx, planID, itemID, loc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cyclecount.Entry), args.Error(1)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) levels(args mock.Arguments) ([]inventory.StockLevel, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockLevel), args.Error(1)
}

func (m *MockInventoryRepository) PositiveStock(
	ctx context.Context, f services.StockFilter,
) ([]inventory.StockLevel, error) {
	return m.levels(m.Called(ctx, f))
}

func (m *MockInventoryRepository) StockInCategory(
	ctx context.Context, category string, f services.StockFilter,
) ([]inventory.StockLevel, error) {
	return m.levels(m.Called(ctx, category, f))
}

func (m *MockInventoryRepository) StockForItems(
	ctx context.Context, items []string, f services.StockFilter,
) ([]inventory.StockLevel, error) {
	return m.levels(m.Called(ctx, items, f))
}

func (m *MockInventoryRepository) CountEligible(ctx context.Context, f services.StockFilter) (int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryRepository) SampleEligible(
	ctx context.Context, f services.StockFilter, n int,
) ([]inventory.StockLevel, error) {
	return m.levels(m.Called(ctx, f, n))
}

func (m *MockInventoryRepository) ReceivedSince(
	ctx context.Context, since time.Time, f services.StockFilter,
) ([]inventory.StockLevel, error) {
	return m.levels(m.Called(ctx, since, f))
}

func (m *MockInventoryRepository) OnOpenOrders(
	ctx context.Context, statuses []string, f services.StockFilter,
) ([]inventory.StockLevel, error) {
	return m.levels(m.Called(ctx, statuses, f))
}

func (m *MockInventoryRepository) GetQuantity(
	ctx context.Context, itemID string, loc kernel.Location,
) (decimal.Decimal, bool, error) {
	args := m.Called(ctx, itemID, loc)
	return args.Get(0).(decimal.Decimal), args.Bool(1), args.Error(2)
}

func (m *MockInventoryRepository) AdjustUp(
	ctx context.Context, itemID string, loc kernel.Location, qty decimal.Decimal,
) error {
	return m.Called(ctx, itemID, loc, qty).Error(0)
}

func (m *MockInventoryRepository) AdjustDown(
	ctx context.Context, itemID string, loc kernel.Location, qty decimal.Decimal,
) error {
	return m.Called(ctx, itemID, loc, qty).Error(0)
}

type MockAuditLog struct{ mock.Mock }

func (m *MockAuditLog) Append(ctx context.Context, r audit.Record) error {
	return m.Called(ctx, r).Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, n ports.Notification) error {
	return m.Called(ctx, n).Error(0)
}

// MockUoW serves both commands.UoW and commands.PlanUoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) PlanRepository() ports.PlanRepository {
	return m.Called().Get(0).(ports.PlanRepository)
}

func (m *MockUoW) EntryRepository() ports.EntryRepository {
	return m.Called().Get(0).(ports.EntryRepository)
}

func (m *MockUoW) InventoryRepository() ports.InventoryRepository {
	return m.Called().Get(0).(ports.InventoryRepository)
}

func (m *MockUoW) AdjustmentLedger() ports.AdjustmentLedger {
	return m.Called().Get(0).(ports.AdjustmentLedger)
}

func (m *MockUoW) TolerancePolicyRepository() ports.TolerancePolicyRepository {
	return m.Called().Get(0).(ports.TolerancePolicyRepository)
}

func (m *MockUoW) AuditLog() ports.AuditLog {
	return m.Called().Get(0).(ports.AuditLog)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockPlanUoWFactory struct{ mock.Mock }

func (m *MockPlanUoWFactory) Create() commands.PlanUoW {
	return m.Called().Get(0).(commands.PlanUoW)
}

var fixedNow = time.Date(2025, time.April, 7, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

func mustPlan(id kernel.UUID, ct cyclecount.CountType, status cyclecount.Status, location string) *cyclecount.Plan {
	details := cyclecount.PlanDetails{
		Name:          "test plan",
		CountType:     ct,
		ScheduledDate: fixedNow,
		AssignedTo:    "counter-1",
		CreatedBy:     "supervisor-1",
	}
	if location != "" {
		loc := kernel.MustNewLocation(location)
		details.Location = &loc
	}
	p, err := cyclecount.RestorePlan(id, details, status, fixedNow, fixedNow)
	if err != nil {
		panic(err)
	}
	return p
}

