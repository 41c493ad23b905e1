package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/customer"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/restaurant"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 4, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

type createOrderFixture struct {
	customer       *customer.Customer
	restaurant     *restaurant.Restaurant
	customerRepo   *MockCustomerRepository
	restaurantRepo *MockRestaurantRepository
	orderRepo      *MockOrderRepository
	uow            *MockUoW
	factory        *MockUoWFactory
	cmd            commands.CreateOrderCommand
}

func newCreateOrderFixture(t *testing.T, ctx context.Context) createOrderFixture {
	t.Helper()

	c, err := customer.NewCustomer(kernel.NewUUID(), "Ann", "ann", kernel.MustNewLocation(1, 1))
	require.NoError(t, err)
	r, err := restaurant.NewRestaurant(kernel.NewUUID(), "Chez Paul", "paul", kernel.MustNewLocation(0, 0),
		menu.DefaultDiscountRates())
	require.NoError(t, err)
	cmd, err := commands.NewCreateOrderCommand(c.ID(), r.ID())
	require.NoError(t, err)

	f := createOrderFixture{
		customer:       c,
		restaurant:     r,
		customerRepo:   new(MockCustomerRepository),
		restaurantRepo: new(MockRestaurantRepository),
		orderRepo:      new(MockOrderRepository),
		uow:            new(MockUoW),
		factory:        new(MockUoWFactory),
		cmd:            cmd,
	}

	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("CustomerRepository").Return(f.customerRepo)
	f.uow.On("RestaurantRepository").Return(f.restaurantRepo)
	f.uow.On("OrderRepository").Return(f.orderRepo)
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.customerRepo.On("Get", ctx, c.ID()).Return(c, nil)
	f.restaurantRepo.On("Get", ctx, r.ID()).Return(r, nil)
	return f
}

func (f createOrderFixture) assertExpectations(t *testing.T) {
	f.factory.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.orderRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, ctx)

	var added *order.Order
	f.orderRepo.On("GetOpenByCustomer", ctx, f.customer.ID()).
		Return(nil, errs.NewObjectNotFoundError("open order", f.customer.ID())).Once()
	f.orderRepo.On("NextID", ctx).Return(order.ID(42), nil).Once()
	f.orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) { added = args.Get(1).(*order.Order) }).
		Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	id, err := commands.NewCreateOrderCommandHandler(f.factory, fixedClock).Handle(ctx, f.cmd)
	require.NoError(t, err)
	assert.Equal(t, order.ID(42), id)

	require.NotNil(t, added)
	assert.Equal(t, order.Open, added.Status())
	assert.Equal(t, f.customer.ID(), added.CustomerID())
	assert.Equal(t, f.restaurant.ID(), added.RestaurantID())
	assert.Equal(t, fixedNow, added.CreatedAt())
	f.assertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CustomerHasOpenOrder(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, ctx)

	open, err := order.NewOrder(7, f.customer.ID(), f.restaurant.ID(), fixedNow)
	require.NoError(t, err)
	f.orderRepo.On("GetOpenByCustomer", ctx, f.customer.ID()).Return(open, nil).Once()

	_, err = commands.NewCreateOrderCommandHandler(f.factory, fixedClock).Handle(ctx, f.cmd)
	require.ErrorIs(t, err, commands.ErrCustomerHasOpenOrder)
	assert.Equal(t, errs.KindState, errs.KindOf(err))
	f.orderRepo.AssertNotCalled(t, "NextID", mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.assertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_UnknownRestaurant(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, ctx)

	unknown := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(f.customer.ID(), unknown)
	require.NoError(t, err)
	f.restaurantRepo.On("Get", ctx, unknown).Return(nil, errs.NewObjectNotFoundError("restaurant", unknown)).Once()

	_, err = commands.NewCreateOrderCommandHandler(f.factory, fixedClock).Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, nil)

	_, err := h.Handle(t.Context(), commands.CreateOrderCommand{})
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(context.DeadlineExceeded).Once(),
	)

	_, err = commands.NewCreateOrderCommandHandler(factory, nil).Handle(ctx, cmd)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	uow.AssertNotCalled(t, "Rollback", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, ctx)

	f.orderRepo.On("GetOpenByCustomer", ctx, f.customer.ID()).
		Return(nil, errs.NewObjectNotFoundError("open order", f.customer.ID())).Once()
	f.orderRepo.On("NextID", ctx).Return(order.ID(1), nil).Once()
	f.orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once()

	_, err := commands.NewCreateOrderCommandHandler(f.factory, fixedClock).Handle(ctx, f.cmd)
	require.EqualError(t, err, "add error")
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.assertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, ctx)

	f.orderRepo.On("GetOpenByCustomer", ctx, f.customer.ID()).
		Return(nil, errs.NewObjectNotFoundError("open order", f.customer.ID())).Once()
	f.orderRepo.On("NextID", ctx).Return(order.ID(1), nil).Once()
	f.orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(errors.New("commit error")).Once()

	_, err := commands.NewCreateOrderCommandHandler(f.factory, fixedClock).Handle(ctx, f.cmd)
	require.EqualError(t, err, "commit error")
	f.assertExpectations(t)
}
