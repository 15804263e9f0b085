package commands_test

import (
	"context"
	"errors"
	"slices"
	"sort"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/application/usecases/commands"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/audit"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/inventory"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/tolerance"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/services"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/ports"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type stockKey struct{ item, location string }

type memState struct {
	plans   map[kernel.UUID]*cyclecount.Plan
	entries map[kernel.UUID]*cyclecount.Entry
	stock   map[stockKey]decimal.Decimal
	ledger  []*inventory.AdjustmentTransaction
	audit   []audit.Record
}

func (s memState) clone() memState {
	c := memState{
		plans:   make(map[kernel.UUID]*cyclecount.Plan, len(s.plans)),
		entries: make(map[kernel.UUID]*cyclecount.Entry, len(s.entries)),
		stock:   make(map[stockKey]decimal.Decimal, len(s.stock)),
		ledger:  slices.Clone(s.ledger),
		audit:   slices.Clone(s.audit),
	}
	for id, p := range s.plans {
		c.plans[id] = copyPlan(p)
	}
	for id, e := range s.entries {
		c.entries[id] = copyEntry(e)
	}
	for k, q := range s.stock {
		c.stock[k] = q
	}
	return c
}

func copyPlan(p *cyclecount.Plan) *cyclecount.Plan {
	c, err := cyclecount.RestorePlan(p.ID(), p.Details(), p.Status(), p.CreatedAt(), p.UpdatedAt())
	if err != nil {
		panic(err)
	}
	return c
}

func copyEntry(e *cyclecount.Entry) *cyclecount.Entry {
	c, err := cyclecount.RestoreEntry(e.State())
	if err != nil {
		panic(err)
	}
	return c
}

// memStore is an in-memory unit of work with snapshot rollback. failOn names
// a method that returns errInjected.
type memStore struct {
	state      memState
	snapshot   *memState
	tolerances []tolerance.Policy
	failOn     string
	commits    int
}

var errInjected = errors.New("injected failure")

func newMemStore() *memStore {
	return &memStore{state: memState{
		plans:   map[kernel.UUID]*cyclecount.Plan{},
		entries: map[kernel.UUID]*cyclecount.Entry{},
		stock:   map[stockKey]decimal.Decimal{},
	}}
}

func (s *memStore) Create() commands.UoW {
	return s
}

func (s *memStore) fail(method string) error {
	if s.failOn == method {
		return errInjected
	}
	return nil
}

func (s *memStore) setStock(item, location string, qty string) {
	s.state.stock[stockKey{item, location}] = decimal.RequireFromString(qty)
}

func (s *memStore) stockOf(item, location string) decimal.Decimal {
	return s.state.stock[stockKey{item, location}]
}

func (s *memStore) addPlan(p *cyclecount.Plan) {
	s.state.plans[p.ID()] = copyPlan(p)
}

func (s *memStore) addEntry(e *cyclecount.Entry) {
	s.state.entries[e.ID()] = copyEntry(e)
}

func (s *memStore) entriesOf(planID kernel.UUID) []*cyclecount.Entry {
	var out []*cyclecount.Entry
	for _, e := range s.state.entries {
		if e.PlanID().IsEqual(planID) {
			out = append(out, copyEntry(e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ItemID() != out[j].ItemID() {
			return out[i].ItemID() < out[j].ItemID()
		}
		return out[i].Location().Code() < out[j].Location().Code()
	})
	return out
}

func (s *memStore) Begin(context.Context) error {
	if err := s.fail("Begin"); err != nil {
		return err
	}
	if s.snapshot == nil {
		snap := s.state.clone()
		s.snapshot = &snap
	}
	return nil
}

func (s *memStore) Commit(context.Context) error {
	if s.snapshot == nil {
		return errors.New("no transaction")
	}
	if err := s.fail("Commit"); err != nil {
		return err
	}
	s.snapshot = nil
	s.commits++
	return nil
}

func (s *memStore) Rollback(context.Context) error {
	if s.snapshot == nil {
		return errors.New("no transaction")
	}
	s.state = *s.snapshot
	s.snapshot = nil
	return nil
}

func (s *memStore) PlanRepository() ports.PlanRepository { return memPlans{s} }
func (s *memStore) EntryRepository() ports.EntryRepository { return memEntries{s} }
func (s *memStore) InventoryRepository() ports.InventoryRepository { return memInventory{s} }
func (s *memStore) AdjustmentLedger() ports.AdjustmentLedger { return memLedger{s} }
func (s *memStore) TolerancePolicyRepository() ports.TolerancePolicyRepository { return memTolerances{s} }
func (s *memStore) AuditLog() ports.AuditLog { return memAudit{s} }

type memPlans struct{ s *memStore }

func (r memPlans) Add(_ context.Context, p *cyclecount.Plan) error {
	r.s.state.plans[p.ID()] = copyPlan(p)
	return nil
}

func (r memPlans) Update(_ context.Context, p *cyclecount.Plan) error {
	if err := r.s.fail("PlanRepository.Update"); err != nil {
		return err
	}
	r.s.state.plans[p.ID()] = copyPlan(p)
	return nil
}

func (r memPlans) Get(_ context.Context, id kernel.UUID) (*cyclecount.Plan, error) {
	p, ok := r.s.state.plans[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("plan", id.String())
	}
	return copyPlan(p), nil
}

type memEntries struct{ s *memStore }

func (r memEntries) Add(_ context.Context, entries ...*cyclecount.Entry) error {
	for _, e := range entries {
		r.s.state.entries[e.ID()] = copyEntry(e)
	}
	return nil
}

func (r memEntries) Update(_ context.Context, e *cyclecount.Entry) error {
	if err := r.s.fail("EntryRepository.Update"); err != nil {
		return err
	}
	r.s.state.entries[e.ID()] = copyEntry(e)
	return nil
}

func (r memEntries) Get(_ context.Context, id kernel.UUID) (*cyclecount.Entry, error) {
	e, ok := r.s.state.entries[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("entry", id.String())
	}
	return copyEntry(e), nil
}

func (r memEntries) ListPendingByPlan(_ context.Context, planID kernel.UUID) ([]*cyclecount.Entry, error) {
	var out []*cyclecount.Entry
	for _, e := range r.s.entriesOf(planID) {
		if e.Status() == cyclecount.Pending {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r memEntries) FindUncounted(
	_ context.Context, planID kernel.UUID, itemID string, loc kernel.Location,
) (*cyclecount.Entry, error) {
	for _, e := range r.s.entriesOf(planID) {
		if e.Status() == cyclecount.Pending && !e.IsCounted() &&
			e.ItemID() == itemID && e.Location().IsEqual(loc) {
			return e, nil
		}
	}
	return nil, nil
}

type memInventory struct{ s *memStore }

func (r memInventory) matching(filter services.StockFilter, keep func(stockKey, decimal.Decimal) bool) []inventory.StockLevel {
	var out []inventory.StockLevel
	for k, q := range r.s.state.stock {
		if filter.Location != nil && k.location != filter.Location.Code() {
			continue
		}
		if filter.Zone != "" && kernel.MustNewLocation(k.location).Zone() != filter.Zone {
			continue
		}
		if keep(k, q) {
			out = append(out, inventory.StockLevel{ItemID: k.item, Location: kernel.MustNewLocation(k.location), Quantity: q})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ItemID != out[j].ItemID {
			return out[i].ItemID < out[j].ItemID
		}
		return out[i].Location.Code() < out[j].Location.Code()
	})
	return out
}

func positive(_ stockKey, q decimal.Decimal) bool { return q.IsPositive() }

func (r memInventory) PositiveStock(_ context.Context, f services.StockFilter) ([]inventory.StockLevel, error) {
	return r.matching(f, positive), nil
}

func (r memInventory) StockInCategory(context.Context, string, services.StockFilter) ([]inventory.StockLevel, error) {
	return nil, nil
}

func (r memInventory) StockForItems(
	_ context.Context, items []string, f services.StockFilter,
) ([]inventory.StockLevel, error) {
	return r.matching(f, func(k stockKey, _ decimal.Decimal) bool { return slices.Contains(items, k.item) }), nil
}

func (r memInventory) CountEligible(_ context.Context, f services.StockFilter) (int64, error) {
	return int64(len(r.matching(f, positive))), nil
}

func (r memInventory) SampleEligible(_ context.Context, f services.StockFilter, n int) ([]inventory.StockLevel, error) {
	levels := r.matching(f, positive)
	return levels[:min(n, len(levels))], nil
}

func (r memInventory) ReceivedSince(context.Context, time.Time, services.StockFilter) ([]inventory.StockLevel, error) {
	return nil, nil
}

func (r memInventory) OnOpenOrders(context.Context, []string, services.StockFilter) ([]inventory.StockLevel, error) {
	return nil, nil
}

func (r memInventory) GetQuantity(_ context.Context, item string, loc kernel.Location) (decimal.Decimal, bool, error) {
	q, ok := r.s.state.stock[stockKey{item, loc.Code()}]
	return q, ok, nil
}

func (r memInventory) AdjustUp(_ context.Context, item string, loc kernel.Location, qty decimal.Decimal) error {
	if err := r.s.fail("AdjustUp"); err != nil {
		return err
	}
	k := stockKey{item, loc.Code()}
	r.s.state.stock[k] = r.s.state.stock[k].Add(qty)
	return nil
}

func (r memInventory) AdjustDown(_ context.Context, item string, loc kernel.Location, qty decimal.Decimal) error {
	if err := r.s.fail("AdjustDown"); err != nil {
		return err
	}
	k := stockKey{item, loc.Code()}
	r.s.state.stock[k] = decimal.Max(r.s.state.stock[k].Sub(qty), decimal.Zero)
	return nil
}

type memLedger struct{ s *memStore }

func (r memLedger) Append(_ context.Context, tx *inventory.AdjustmentTransaction) error {
	r.s.state.ledger = append(r.s.state.ledger, tx)
	return nil
}

type memTolerances struct{ s *memStore }

func (r memTolerances) FindCandidates(context.Context, string, string) ([]tolerance.Policy, error) {
	return r.s.tolerances, nil
}

func (r memTolerances) Get(_ context.Context, id kernel.UUID) (tolerance.Policy, error) {
	for _, p := range r.s.tolerances {
		if p.ID.IsEqual(id) {
			return p, nil
		}
	}
	return tolerance.Policy{}, errs.NewObjectNotFoundError("tolerance policy", id.String())
}

type memAudit struct{ s *memStore }

func (r memAudit) Append(_ context.Context, rec audit.Record) error {
	if err := r.s.fail("AuditLog.Append"); err != nil {
		return err
	}
	r.s.state.audit = append(r.s.state.audit, rec)
	return nil
}

// planUoWs exposes a memStore as a commands.PlanUoWFactory.
type planUoWs struct{ s *memStore }

func (f planUoWs) Create() commands.PlanUoW {
	return f.s
}
