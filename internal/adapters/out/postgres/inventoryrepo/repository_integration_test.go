package inventoryrepo_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "github.com/opsui/opsui-wmsv2-sub002/internal/adapters/out/postgres"
	"github.com/opsui/opsui-wmsv2-sub002/internal/adapters/out/postgres/inventoryrepo"
	"github.com/opsui/opsui-wmsv2-sub002/internal/adapters/out/postgres/pgtest"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/inventory"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type InventoryRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg     *pgtest.Database
	repo   *inventoryrepo.GormInventoryRepository
	ledger *inventoryrepo.GormAdjustmentLedger
}

func (suite *InventoryRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pg, err := pgtest.Start(ctx)
	suite.Require().NoError(err)
	suite.pg = pg
	suite.Require().NoError(postgres_adapter.Migrate(ctx, pg.DB))
}

func (suite *InventoryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate(
		"inventory", "items", "stock_movements", "orders", "order_lines", "inventory_adjustments"))
	suite.repo = inventoryrepo.NewGormInventoryRepository(suite.pg.DB)
	suite.ledger = inventoryrepo.NewGormAdjustmentLedger(suite.pg.DB)

	suite.seedStock("SKU-1", "A-01-01", "10")
	suite.seedStock("SKU-1", "B-01-01", "3")
	suite.seedStock("SKU-2", "A-01-01", "0")
	suite.seedStock("SKU-3", "A-02-01", "7")
	suite.seedStock("SKU-4", "B-02-01", "1")
	suite.Require().NoError(suite.pg.DB.Create(&[]inventoryrepo.ItemDTO{
		{ID: "SKU-1", Name: "Widget", ABCCategory: "A"},
		{ID: "SKU-2", Name: "Gadget", ABCCategory: "A"},
		{ID: "SKU-3", Name: "Bolt", ABCCategory: "C"},
		{ID: "SKU-4", Name: "Nut", ABCCategory: "B"},
	}).Error)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *InventoryRepositoryIntegrationTestSuite) seedStock(item, location, qty string) {
	suite.Require().NoError(suite.pg.DB.Create(&inventoryrepo.StockDTO{
		ItemID:   item,
		Location: location,
		Quantity: decimal.RequireFromString(qty),
	}).Error)
}

func keys(levels []inventory.StockLevel) []string {
	out := make([]string, 0, len(levels))
	for _, l := range levels {
		out = append(out, l.ItemID+"@"+l.Location.Code())
	}
	return out
}

func locationFilter(code string) services.StockFilter {
	loc := kernel.MustNewLocation(code)
	return services.StockFilter{Location: &loc}
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestPositiveStock() {
	ctx := suite.T().Context()

	all, err := suite.repo.PositiveStock(ctx, services.StockFilter{})
	suite.Require().NoError(err)
	suite.Equal([]string{"SKU-1@A-01-01", "SKU-1@B-01-01", "SKU-3@A-02-01", "SKU-4@B-02-01"}, keys(all))

	atBin, err := suite.repo.PositiveStock(ctx, locationFilter("A-01-01"))
	suite.Require().NoError(err)
	suite.Equal([]string{"SKU-1@A-01-01"}, keys(atBin))
	suite.True(atBin[0].Quantity.Equal(decimal.NewFromInt(10)))

	inZone, err := suite.repo.PositiveStock(ctx, services.StockFilter{Zone: "B"})
	suite.Require().NoError(err)
	suite.Equal([]string{"SKU-1@B-01-01", "SKU-4@B-02-01"}, keys(inZone))
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestStockInCategory_SkipsEmptyStock() {
	levels, err := suite.repo.StockInCategory(suite.T().Context(), "A", services.StockFilter{Zone: "A"})

	suite.Require().NoError(err)
	suite.Equal([]string{"SKU-1@A-01-01"}, keys(levels))
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestStockInCategory_ZoneWithoutSeparator() {
	suite.seedStock("SKU-1", "Z", "4")
	suite.seedStock("SKU-1", "ZZ-01", "2")

	levels, err := suite.repo.StockInCategory(suite.T().Context(), "A", services.StockFilter{Zone: "Z"})

	suite.Require().NoError(err)
	suite.Equal([]string{"SKU-1@Z"}, keys(levels))
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestPositiveStock_ZoneIsMatchedLiterally() {
	ctx := suite.T().Context()
	suite.seedStock("SKU-3", "A%-01", "5")

	wildcard, err := suite.repo.PositiveStock(ctx, services.StockFilter{Zone: "_"})
	suite.Require().NoError(err)
	suite.Empty(wildcard)

	percent, err := suite.repo.PositiveStock(ctx, services.StockFilter{Zone: "A%"})
	suite.Require().NoError(err)
	suite.Equal([]string{"SKU-3@A%-01"}, keys(percent))
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestStockForItems_IncludesZeroQuantities() {
	ctx := suite.T().Context()

	levels, err := suite.repo.StockForItems(ctx, []string{"SKU-2", "SKU-1", "SKU-9"}, locationFilter("A-01-01"))
	suite.Require().NoError(err)
	suite.Equal([]string{"SKU-1@A-01-01", "SKU-2@A-01-01"}, keys(levels))

	none, err := suite.repo.StockForItems(ctx, nil, services.StockFilter{})
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestCountAndSampleEligible() {
	ctx := suite.T().Context()

	n, err := suite.repo.CountEligible(ctx, services.StockFilter{})
	suite.Require().NoError(err)
	suite.Equal(int64(4), n)

	sample, err := suite.repo.SampleEligible(ctx, services.StockFilter{}, 2)
	suite.Require().NoError(err)
	suite.Len(sample, 2)
	for _, l := range sample {
		suite.True(l.Quantity.IsPositive())
	}
	if sample[0].ItemID == sample[1].ItemID {
		suite.Less(sample[0].Location.Code(), sample[1].Location.Code())
	} else {
		suite.Less(sample[0].ItemID, sample[1].ItemID)
	}

	whole, err := suite.repo.SampleEligible(ctx, services.StockFilter{}, 50)
	suite.Require().NoError(err)
	suite.Len(whole, 4)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestReceivedSince() {
	ctx := suite.T().Context()
	now := time.Now().UTC()
	suite.Require().NoError(suite.pg.DB.Create(&[]inventoryrepo.MovementDTO{
		{ID: uuid.New(), ItemID: "SKU-3", Location: "DOCK-1", MovementType: inventory.MovementReceiving,
			Quantity: decimal.NewFromInt(7), CreatedAt: now.Add(-2 * 24 * time.Hour)},
		{ID: uuid.New(), ItemID: "SKU-4", Location: "DOCK-1", MovementType: inventory.MovementReceiving,
			Quantity: decimal.NewFromInt(1), CreatedAt: now.Add(-30 * 24 * time.Hour)},
		{ID: uuid.New(), ItemID: "SKU-1", Location: "A-01-01", MovementType: "PICK",
			Quantity: decimal.NewFromInt(-1), CreatedAt: now},
	}).Error)

	levels, err := suite.repo.ReceivedSince(ctx, now.Add(-services.ReceivingLookback), services.StockFilter{})

	suite.Require().NoError(err)
	suite.Equal([]string{"SKU-3@A-02-01"}, keys(levels))
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestOnOpenOrders() {
	ctx := suite.T().Context()
	picking, shipped := uuid.New(), uuid.New()
	suite.Require().NoError(suite.pg.DB.Create(&[]inventoryrepo.OrderDTO{
		{ID: picking, Status: "PICKING"},
		{ID: shipped, Status: "SHIPPED"},
	}).Error)
	suite.Require().NoError(suite.pg.DB.Create(&[]inventoryrepo.OrderLineDTO{
		{ID: uuid.New(), OrderID: picking, ItemID: "SKU-1", Location: "A-01-01", Quantity: decimal.NewFromInt(2)},
		{ID: uuid.New(), OrderID: shipped, ItemID: "SKU-4", Location: "B-02-01", Quantity: decimal.NewFromInt(1)},
	}).Error)

	levels, err := suite.repo.OnOpenOrders(ctx, services.ShippingOrderStatuses(), services.StockFilter{Zone: "A"})

	suite.Require().NoError(err)
	suite.Equal([]string{"SKU-1@A-01-01"}, keys(levels))
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestAdjustUp_UpsertsStock() {
	ctx := suite.T().Context()
	existing := kernel.MustNewLocation("A-01-01")
	fresh := kernel.MustNewLocation("C-01-01")

	suite.Require().NoError(suite.repo.AdjustUp(ctx, "SKU-1", existing, decimal.RequireFromString("0.3")))
	suite.Require().NoError(suite.repo.AdjustUp(ctx, "SKU-9", fresh, decimal.NewFromInt(5)))

	qty, found, err := suite.repo.GetQuantity(ctx, "SKU-1", existing)
	suite.Require().NoError(err)
	suite.True(found)
	suite.True(qty.Equal(decimal.RequireFromString("10.3")), qty.String())

	qty, found, err = suite.repo.GetQuantity(ctx, "SKU-9", fresh)
	suite.Require().NoError(err)
	suite.True(found)
	suite.True(qty.Equal(decimal.NewFromInt(5)))
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestAdjustDown_FloorsAtZero() {
	ctx := suite.T().Context()
	loc := kernel.MustNewLocation("B-01-01")

	suite.Require().NoError(suite.repo.AdjustDown(ctx, "SKU-1", loc, decimal.NewFromInt(2)))
	qty, _, err := suite.repo.GetQuantity(ctx, "SKU-1", loc)
	suite.Require().NoError(err)
	suite.True(qty.Equal(decimal.NewFromInt(1)))

	suite.Require().NoError(suite.repo.AdjustDown(ctx, "SKU-1", loc, decimal.NewFromInt(8)))
	qty, _, err = suite.repo.GetQuantity(ctx, "SKU-1", loc)
	suite.Require().NoError(err)
	suite.True(qty.IsZero())
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestGetQuantity_Missing() {
	qty, found, err := suite.repo.GetQuantity(suite.T().Context(), "SKU-X", kernel.MustNewLocation("A-01-01"))

	suite.Require().NoError(err)
	suite.False(found)
	suite.True(qty.IsZero())
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestLedgerAppend() {
	ctx := suite.T().Context()
	planID, entryID := kernel.NewUUID(), kernel.NewUUID()
	tx, err := inventory.NewAdjustmentTransaction(kernel.NewUUID(), "SKU-1", kernel.MustNewLocation("A-01-01"),
		decimal.RequireFromString("-2.5"), inventory.ReasonCycleCount, "supervisor-1",
		inventory.Reference{PlanID: planID, EntryID: entryID}, time.Now().UTC())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.ledger.Append(ctx, tx))

	var rows []inventoryrepo.AdjustmentDTO
	suite.Require().NoError(suite.pg.DB.Where("plan_id = ?", planID.Bytes()).Find(&rows).Error)
	suite.Require().Len(rows, 1)
	suite.True(rows[0].Quantity.Equal(decimal.RequireFromString("-2.5")))
	suite.Equal(inventory.ReasonCycleCount, rows[0].Reason)
	suite.Equal(entryID.Bytes(), rows[0].EntryID)
}

func TestInventoryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryRepositoryIntegrationTestSuite))
}
