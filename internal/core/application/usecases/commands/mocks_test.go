package commands_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/product"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Shared mocks for the command handler tests. Every handler works against the
// same unit of work surface, so the mocks live in one place instead of being
// redeclared per test file.

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByItemIDForUpdate(ctx context.Context, itemID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) NextDisplayNumber(ctx context.Context, date time.Time) (string, error) {
	args := m.Called(ctx, date)
	return args.String(0), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockStatusLogRepository struct{ mock.Mock }

func (m *MockStatusLogRepository) Add(ctx context.Context, entry *order.StatusLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStatusLogRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.StatusLog, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.StatusLog), args.Error(1)
}

type MockReturnRepository struct{ mock.Mock }

func (m *MockReturnRepository) Add(ctx context.Context, record *order.Return) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockReturnRepository) SumByItem(ctx context.Context, itemID kernel.UUID) (int, error) {
	args := m.Called(ctx, itemID)
	return args.Int(0), args.Error(1)
}

func (m *MockReturnRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Return, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Return), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) StatusLogRepository() ports.StatusLogRepository {
	args := m.Called()
	return args.Get(0).(ports.StatusLogRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockLifecycleUoW struct{ mock.Mock }

func (m *MockLifecycleUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLifecycleUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLifecycleUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLifecycleUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockLifecycleUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

func (m *MockLifecycleUoW) StatusLogRepository() ports.StatusLogRepository {
	args := m.Called()
	return args.Get(0).(ports.StatusLogRepository)
}

func (m *MockLifecycleUoW) ReturnRepository() ports.ReturnRepository {
	args := m.Called()
	return args.Get(0).(ports.ReturnRepository)
}

type MockLifecycleUoWFactory struct{ mock.Mock }

func (m *MockLifecycleUoWFactory) Create() commands.LifecycleUoW {
	args := m.Called()
	return args.Get(0).(commands.LifecycleUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishOrderStatusChanged(ctx context.Context, event ports.OrderStatusChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockRateProvider struct{ mock.Mock }

func (m *MockRateProvider) Rate(ctx context.Context, date time.Time) (float64, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(float64), args.Error(1)
}

// Fixture helpers shared across the handler tests.

func testValueDate() time.Time {
	return time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
}

func testActorWithRole(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()

	act, err := actor.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return act
}

func testItem(t *testing.T, productID kernel.UUID, qty int, priceCents int64) *order.Item {
	t.Helper()

	price, err := kernel.NewMoneyFromCents(priceCents)
	require.NoError(t, err)

	item, err := order.NewItem(kernel.NewUUID(), productID, qty, price)
	require.NoError(t, err)
	return item
}

func testItemInStatus(
	t *testing.T,
	productID kernel.UUID,
	qty int,
	priceCents int64,
	status order.ItemStatus,
) *order.Item {
	t.Helper()

	price, err := kernel.NewMoneyFromCents(priceCents)
	require.NoError(t, err)

	item, err := order.RestoreItem(kernel.NewUUID(), productID, qty, price, status)
	require.NoError(t, err)
	return item
}

func testOrderInStatus(
	t *testing.T,
	createdBy kernel.UUID,
	status order.Status,
	items ...*order.Item,
) *order.Order {
	t.Helper()

	o, err := order.RestoreOrder(
		kernel.NewUUID(),
		"ORD-20260831-000001",
		kernel.NewUUID(),
		createdBy,
		status,
		"",
		testValueDate(),
		kernel.Money{},
		0,
		false,
		items,
	)
	require.NoError(t, err)
	return o
}

func testProductWithStock(t *testing.T, id kernel.UUID, stockOK, stockDefect int) *product.Product {
	t.Helper()

	p, err := product.RestoreProduct(id, "test product", stockOK, stockDefect)
	require.NoError(t, err)
	return p
}
