package queries_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetOrderQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.DetailDTO{}, &orderrepo.PersonalizationDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, noopTracker{})
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, order_details, order_detail_personalizations",
	).Error)
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_ReturnsOrderWithDetails() {
	ctx := context.Background()

	price, err := kernel.NewMoney(8000)
	suite.Require().NoError(err)
	detail, err := order.NewDetail(kernel.NewUUID(), kernel.NewUUID(), price, 2, nil)
	suite.Require().NoError(err)
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), order.TypeDelivery, time.Now().UTC(),
		[]order.Detail{detail},
	)
	suite.Require().NoError(err)

	kitchen, err := actor.NewActor(kernel.NewUUID(), actor.Kitchen)
	suite.Require().NoError(err)
	suite.Require().NoError(o.MarkReady(kitchen))
	agent, err := actor.NewActor(kernel.NewUUID(), actor.DeliveryAgent)
	suite.Require().NoError(err)
	suite.Require().NoError(o.Claim(agent))

	suite.Require().NoError(suite.orderRepo.Add(ctx, o))

	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.True(resp.ID.IsEqual(o.ID()))
	suite.True(resp.SellerID.IsEqual(o.SellerID()))
	suite.Equal("Delivery", resp.OrderType)
	suite.Equal("InTransit", resp.Status)
	suite.Require().NotNil(resp.DeliveryAgentID)
	suite.True(resp.DeliveryAgentID.IsEqual(agent.UserID()))
	suite.Equal(int64(16000), resp.Total)

	suite.Require().Len(resp.Details, 1)
	suite.True(resp.Details[0].ID.IsEqual(detail.ID()))
	suite.Equal(int64(8000), resp.Details[0].UnitPrice)
	suite.Equal(2, resp.Details[0].Quantity)
	suite.Equal(int64(16000), resp.Details[0].Subtotal)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_NonExistentOrder() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestGetOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}
