package entryrepo_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "github.com/opsui/opsui-wmsv2-sub002/internal/adapters/out/postgres"
	"github.com/opsui/opsui-wmsv2-sub002/internal/adapters/out/postgres/entryrepo"
	"github.com/opsui/opsui-wmsv2-sub002/internal/adapters/out/postgres/pgtest"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type EntryRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg     *pgtest.Database
	repo   *entryrepo.GormEntryRepository
	planID kernel.UUID
	now    time.Time
}

func (suite *EntryRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pg, err := pgtest.Start(ctx)
	suite.Require().NoError(err)
	suite.pg = pg
	suite.Require().NoError(postgres_adapter.Migrate(ctx, pg.DB))
}

func (suite *EntryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate("cycle_count_entries"))
	suite.repo = entryrepo.NewGormEntryRepository(suite.pg.DB)
	suite.planID = kernel.NewUUID()
	suite.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (suite *EntryRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *EntryRepositoryIntegrationTestSuite) newEntry(item, location, system string) *cyclecount.Entry {
	e, err := cyclecount.NewEntry(kernel.NewUUID(), suite.planID, item, kernel.MustNewLocation(location),
		decimal.RequireFromString(system), suite.now)
	suite.Require().NoError(err)
	return e
}

func (suite *EntryRepositoryIntegrationTestSuite) TestAdd_EmptyBatch_IsNoop() {
	suite.Require().NoError(suite.repo.Add(suite.T().Context()))
}

func (suite *EntryRepositoryIntegrationTestSuite) TestUpdate_RoundTripsReviewedState() {
	ctx := suite.T().Context()
	e := suite.newEntry("SKU-1", "A-01", "10.5")
	suite.Require().NoError(suite.repo.Add(ctx, e))

	suite.Require().NoError(e.RecordCount(decimal.RequireFromString("10.5"), decimal.RequireFromString("12.25"),
		"counter-1", suite.now))
	txID := kernel.NewUUID()
	suite.Require().NoError(e.Approve("supervisor-1", "recounted twice", &txID, suite.now))
	suite.Require().NoError(suite.repo.Update(ctx, e))

	got, err := suite.repo.Get(ctx, e.ID())

	suite.Require().NoError(err)
	suite.Equal(cyclecount.Approved, got.Status())
	suite.True(got.SystemQuantity().Equal(decimal.RequireFromString("10.5")))
	suite.True(got.CountedQuantity().Equal(decimal.RequireFromString("12.25")))
	suite.True(got.Variance().Equal(decimal.RequireFromString("1.75")))
	suite.Equal("counter-1", got.CountedBy())
	suite.Require().NotNil(got.CountedAt())
	suite.Equal("supervisor-1", got.ReviewedBy())
	suite.Require().NotNil(got.AdjustmentTxID())
	suite.True(txID.IsEqual(*got.AdjustmentTxID()))
	suite.Contains(got.Notes(), "recounted twice")
}

func (suite *EntryRepositoryIntegrationTestSuite) TestListPendingByPlan_OrdersByItemAndLocation() {
	ctx := suite.T().Context()
	b := suite.newEntry("SKU-B", "A-01", "1")
	a2 := suite.newEntry("SKU-A", "A-02", "1")
	a1 := suite.newEntry("SKU-A", "A-01", "1")
	rejected := suite.newEntry("SKU-C", "A-01", "1")
	suite.Require().NoError(rejected.Reject("supervisor-1", "", suite.now))
	other, err := cyclecount.NewEntry(kernel.NewUUID(), kernel.NewUUID(), "SKU-A", kernel.MustNewLocation("A-01"),
		decimal.NewFromInt(1), suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(ctx, b, a2, a1, rejected, other))

	pending, err := suite.repo.ListPendingByPlan(ctx, suite.planID)

	suite.Require().NoError(err)
	suite.Require().Len(pending, 3)
	suite.True(a1.ID().IsEqual(pending[0].ID()))
	suite.True(a2.ID().IsEqual(pending[1].ID()))
	suite.True(b.ID().IsEqual(pending[2].ID()))
}

func (suite *EntryRepositoryIntegrationTestSuite) TestFindUncounted() {
	ctx := suite.T().Context()
	generated := suite.newEntry("SKU-1", "A-01", "4")
	counted := suite.newEntry("SKU-2", "A-01", "4")
	suite.Require().NoError(counted.RecordCount(decimal.NewFromInt(4), decimal.NewFromInt(9), "counter-1", suite.now))
	suite.Require().NoError(suite.repo.Add(ctx, generated, counted))

	found, err := suite.repo.FindUncounted(ctx, suite.planID, "SKU-1", kernel.MustNewLocation("A-01"))
	suite.Require().NoError(err)
	suite.Require().NotNil(found)
	suite.True(generated.ID().IsEqual(found.ID()))

	found, err = suite.repo.FindUncounted(ctx, suite.planID, "SKU-2", kernel.MustNewLocation("A-01"))
	suite.Require().NoError(err)
	suite.Nil(found, "already counted entries are not reused")

	found, err = suite.repo.FindUncounted(ctx, suite.planID, "SKU-1", kernel.MustNewLocation("B-01"))
	suite.Require().NoError(err)
	suite.Nil(found)
}

func (suite *EntryRepositoryIntegrationTestSuite) TestGet_UnknownEntry_ReturnsNotFound() {
	_, err := suite.repo.Get(suite.T().Context(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *EntryRepositoryIntegrationTestSuite) TestUpdate_UnknownEntry_ReturnsNotFound() {
	err := suite.repo.Update(suite.T().Context(), suite.newEntry("SKU-1", "A-01", "1"))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestEntryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(EntryRepositoryIntegrationTestSuite))
}
