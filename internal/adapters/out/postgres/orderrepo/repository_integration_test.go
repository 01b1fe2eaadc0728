package orderrepo_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"procurement/internal/adapters/out/postgres/orderrepo"
	"procurement/internal/adapters/out/postgres/pgtest"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

var created = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

// OrderRepositoryTestSuite runs the order repository against a real PostgreSQL.
type OrderRepositoryTestSuite struct {
	suite.Suite
	pg   *pgtest.Database
	db   *gorm.DB
	repo *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.db = pg.DB
	suite.repo = orderrepo.NewGormOrderRepository(pg.DB)
}

func (suite *OrderRepositoryTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate(context.Background()))
}

func (suite *OrderRepositoryTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *OrderRepositoryTestSuite) newOrder(sequence int) *order.Order {
	number, err := order.NewNumber(created, sequence)
	suite.Require().NoError(err)

	unit := decimal.RequireFromString("1200.50")
	item, err := order.NewItem(order.ItemDetails{Name: "Laptop", Quantity: 2, UnitPrice: &unit}, created)
	suite.Require().NoError(err)
	cable, err := order.NewItem(order.ItemDetails{Name: "HDMI cable", Quantity: 3}, created)
	suite.Require().NoError(err)

	typeID := pgtest.ActiveOrderTypeID
	amount := decimal.RequireFromString("2401.00")
	o, err := order.NewOrder(number, 7, order.Details{
		OrderTypeID:     &typeID,
		Title:           "Laptop purchase",
		EstimatedAmount: &amount,
		Metadata:        []byte(`{"source":"web"}`),
	}, []*order.Item{item, cable}, created)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryTestSuite) TestAdd_AssignsIdentities() {
	ctx := context.Background()
	o := suite.newOrder(1)

	err := suite.repo.Add(ctx, o)

	suite.Require().NoError(err)
	suite.Positive(o.ID())
	suite.Equal(int64(1), o.Version())
	for _, item := range o.Items() {
		suite.Positive(item.ID())
	}

	stored, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal("ORD-2026100001", stored.Number().String())
	suite.Equal(order.Pending, stored.Status())
	suite.Equal("Laptop purchase", stored.Title())
	suite.Require().Len(stored.Items(), 2)
	suite.Equal("Laptop", stored.Items()[0].Name())
	suite.Equal("2401", stored.Items()[0].TotalPrice().String())
	suite.Nil(stored.Items()[1].UnitPrice())
	suite.True(decimal.RequireFromString("2401").Equal(*stored.Details().EstimatedAmount))
	suite.JSONEq(`{"source":"web"}`, string(stored.Details().Metadata))
}

func (suite *OrderRepositoryTestSuite) TestAdd_DuplicateNumberIsConflict() {
	ctx := context.Background()
	suite.Require().NoError(suite.repo.Add(ctx, suite.newOrder(1)))

	err := suite.repo.Add(ctx, suite.newOrder(1))

	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *OrderRepositoryTestSuite) TestGet_Missing() {
	_, err := suite.repo.Get(context.Background(), 404)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestUpdate_BumpsVersionAndRejectsStaleWrites() {
	ctx := context.Background()
	o := suite.newOrder(1)
	suite.Require().NoError(suite.repo.Add(ctx, o))

	stale, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)

	_, err = o.ChangeStatus(order.Review, created.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Update(ctx, o))
	suite.Equal(int64(2), o.Version())

	title := "Stale edit"
	suite.Require().NoError(stale.Apply(order.Patch{Title: &title}, created.Add(2*time.Hour)))
	err = suite.repo.Update(ctx, stale)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	stored, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Review, stored.Status())
	suite.Equal("Laptop purchase", stored.Title())
}

func (suite *OrderRepositoryTestSuite) TestUpdate_StampsApprovedDate() {
	ctx := context.Background()
	o := suite.newOrder(1)
	suite.Require().NoError(suite.repo.Add(ctx, o))

	approvedAt := created.Add(3 * time.Hour)
	_, err := o.ChangeStatus(order.Review, created.Add(time.Hour))
	suite.Require().NoError(err)
	_, err = o.ChangeStatus(order.Approved, approvedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Update(ctx, o))

	stored, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Approved, stored.Status())
	suite.Require().NotNil(stored.ApprovedDate())
	suite.True(approvedAt.Equal(*stored.ApprovedDate()))
}

func (suite *OrderRepositoryTestSuite) TestUpdate_MissingOrderIsNotFound() {
	ctx := context.Background()
	o := suite.newOrder(1)
	suite.Require().NoError(suite.repo.Add(ctx, o))
	suite.Require().NoError(suite.repo.Delete(ctx, o.ID()))

	err := suite.repo.Update(ctx, o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestDelete_CascadesToItems() {
	ctx := context.Background()
	o := suite.newOrder(1)
	suite.Require().NoError(suite.repo.Add(ctx, o))

	suite.Require().NoError(suite.repo.Delete(ctx, o.ID()))

	var items int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderItemDTO{}).Where("order_id = ?", o.ID()).Count(&items).Error)
	suite.Zero(items)

	err := suite.repo.Delete(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestDelete_MapsConstraintErrors() {
	ctx := context.Background()
	o := suite.newOrder(1)
	suite.Require().NoError(suite.repo.Add(ctx, o))

	suite.Require().NoError(suite.db.Exec(
		"CREATE TABLE order_holds (order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE RESTRICT)").Error)
	defer func() {
		suite.Require().NoError(suite.db.Exec("DROP TABLE order_holds").Error)
	}()
	suite.Require().NoError(suite.db.Exec("INSERT INTO order_holds (order_id) VALUES (?)", o.ID()).Error)

	err := suite.repo.Delete(ctx, o.ID())

	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
	suite.Contains(err.Error(), "order "+strconv.FormatInt(o.ID(), 10))

	stored, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Len(stored.Items(), 2)
}

func (suite *OrderRepositoryTestSuite) TestNextNumberSequence() {
	ctx := context.Background()
	prefix := order.NumberPrefix(created)

	next, err := suite.repo.NextNumberSequence(ctx, prefix)
	suite.Require().NoError(err)
	suite.Equal(1, next)

	suite.Require().NoError(suite.repo.Add(ctx, suite.newOrder(9999)))
	suite.Require().NoError(suite.repo.Add(ctx, suite.newOrder(10000)))

	next, err = suite.repo.NextNumberSequence(ctx, prefix)
	suite.Require().NoError(err)
	suite.Equal(10001, next)

	next, err = suite.repo.NextNumberSequence(ctx, order.NumberPrefix(created.AddDate(0, 1, 0)))
	suite.Require().NoError(err)
	suite.Equal(1, next, "sequence restarts every month")
}

func TestOrderRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryTestSuite))
}
