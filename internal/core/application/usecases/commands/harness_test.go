package commands_test

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"marketplace/internal/adapters/out/memory"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/customer"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/platform"
	"marketplace/internal/core/domain/model/profit"
	"marketplace/internal/core/domain/model/restaurant"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type memoryUoWFactory struct {
	factory *memory.UnitOfWorkFactory
}

func (f memoryUoWFactory) Create() commands.UoW {
	return f.factory.Create()
}

// MarketplaceTestSuite drives the command handlers against the in-memory store.
type MarketplaceTestSuite struct {
	suite.Suite

	ctx      context.Context
	store    *memory.Store
	uows     commands.UoWFactory
	registry *account.Registry
	channel  *services.NotificationChannel
	logger   *slog.Logger
	now      time.Time
}

func (s *MarketplaceTestSuite) SetupTest() {
	settings, err := platform.NewSettings(
		platform.FastestDelivery,
		profit.NewData(decimal.RequireFromString("0.1"), kernel.MoneyFromInt(2), kernel.MoneyFromInt(5)),
		kernel.Zero,
	)
	s.Require().NoError(err)

	s.ctx = context.Background()
	s.store = memory.NewStore(settings)
	s.uows = memoryUoWFactory{factory: memory.NewUnitOfWorkFactory(s.store)}
	s.registry = account.NewRegistry()
	s.channel = services.NewNotificationChannel()
	s.logger = slog.New(slog.DiscardHandler)
	s.now = fixedNow
}

func (s *MarketplaceTestSuite) clock() time.Time {
	return s.now
}

func (s *MarketplaceTestSuite) register(role account.Role, name string, x, y float64) kernel.UUID {
	var loc kernel.Location
	if role != account.ManagerRole {
		loc = kernel.MustNewLocation(x, y)
	}
	cmd, err := commands.NewRegisterUserCommand(role, name, account.Contact{Username: strings.ToLower(name)}, loc)
	s.Require().NoError(err)
	s.Require().NoError(commands.NewRegisterUserCommandHandler(s.uows, s.registry, nil, s.logger).Handle(s.ctx, cmd))
	return cmd.UserID()
}

func (s *MarketplaceTestSuite) addDish(restaurantID kernel.UUID, name string, price int64, category menu.Category) {
	cmd, err := commands.NewAddDishCommand(restaurantID, commands.DishSpec{
		Name:     name,
		Price:    kernel.MoneyFromInt(price),
		Category: category,
	})
	s.Require().NoError(err)
	s.Require().NoError(commands.NewAddDishCommandHandler(s.uows).Handle(s.ctx, cmd))
}

func (s *MarketplaceTestSuite) addHalfMeal(restaurantID kernel.UUID, name string, dishes ...string) {
	cmd, err := commands.NewAddMealCommand(restaurantID, name, menu.HalfMeal, dishes...)
	s.Require().NoError(err)
	s.Require().NoError(commands.NewAddMealCommandHandler(s.uows).Handle(s.ctx, cmd))
}

// bistro registers a restaurant at the origin serving Soup (10), Steak (30),
// Cake (5) and a Lunch half meal of Soup and Steak.
func (s *MarketplaceTestSuite) bistro(name string) kernel.UUID {
	id := s.register(account.RestaurantRole, name, 0, 0)
	s.addDish(id, "Soup", 10, menu.Starter)
	s.addDish(id, "Steak", 30, menu.Main)
	s.addDish(id, "Cake", 5, menu.Dessert)
	s.addHalfMeal(id, "Lunch", "Soup", "Steak")
	return id
}

func (s *MarketplaceTestSuite) createOrder(customerID, restaurantID kernel.UUID) (order.ID, error) {
	cmd, err := commands.NewCreateOrderCommand(customerID, restaurantID)
	s.Require().NoError(err)
	return commands.NewCreateOrderCommandHandler(s.uows, s.clock).Handle(s.ctx, cmd)
}

func (s *MarketplaceTestSuite) addItem(orderID order.ID, name string) error {
	cmd, err := commands.NewAddLineItemCommand(orderID, name)
	s.Require().NoError(err)
	return commands.NewAddLineItemCommandHandler(s.uows).Handle(s.ctx, cmd)
}

func (s *MarketplaceTestSuite) removeItem(orderID order.ID, name string) error {
	cmd, err := commands.NewRemoveLineItemCommand(orderID, name)
	s.Require().NoError(err)
	return commands.NewRemoveLineItemCommandHandler(s.uows).Handle(s.ctx, cmd)
}

// placeOrder opens an order with the given items. It does not finalize it.
func (s *MarketplaceTestSuite) placeOrder(customerID, restaurantID kernel.UUID, items ...string) order.ID {
	id, err := s.createOrder(customerID, restaurantID)
	s.Require().NoError(err)
	for _, item := range items {
		s.Require().NoError(s.addItem(id, item))
	}
	return id
}

func (s *MarketplaceTestSuite) finalize(orderID order.ID) (services.Offer, error) {
	cmd, err := commands.NewFinalizeOrderCommand(orderID)
	s.Require().NoError(err)
	return commands.NewFinalizeOrderCommandHandler(s.uows, s.logger).Handle(s.ctx, cmd)
}

func (s *MarketplaceTestSuite) redispatch(orderID order.ID) (services.Offer, error) {
	cmd, err := commands.NewRedispatchOrderCommand(orderID)
	s.Require().NoError(err)
	return commands.NewRedispatchOrderCommandHandler(s.uows, s.logger).Handle(s.ctx, cmd)
}

func (s *MarketplaceTestSuite) accept(courierID kernel.UUID, orderID order.ID) (services.AcceptResult, error) {
	cmd, err := commands.NewAcceptOfferCommand(courierID, orderID)
	s.Require().NoError(err)
	return commands.NewAcceptOfferCommandHandler(s.uows, s.logger).Handle(s.ctx, cmd)
}

func (s *MarketplaceTestSuite) refuse(courierID kernel.UUID, orderID order.ID) (*services.Offer, error) {
	cmd, err := commands.NewRefuseOfferCommand(courierID, orderID)
	s.Require().NoError(err)
	return commands.NewRefuseOfferCommandHandler(s.uows, s.logger).Handle(s.ctx, cmd)
}

func (s *MarketplaceTestSuite) complete(orderID order.ID) error {
	cmd, err := commands.NewCompleteDeliveryCommand(orderID)
	s.Require().NoError(err)
	return commands.NewCompleteDeliveryCommandHandler(s.uows, s.clock, s.logger).Handle(s.ctx, cmd)
}

// deliver runs an order from finalization to completion with whichever courier is offered it.
func (s *MarketplaceTestSuite) deliver(orderID order.ID) kernel.UUID {
	offer, err := s.finalize(orderID)
	s.Require().NoError(err)
	_, err = s.accept(offer.CourierID, orderID)
	s.Require().NoError(err)
	s.Require().NoError(s.complete(orderID))
	return offer.CourierID
}

func (s *MarketplaceTestSuite) setConsent(customerID kernel.UUID, consent bool) {
	cmd, err := commands.NewSetNotificationConsentCommand(customerID, consent)
	s.Require().NoError(err)
	s.Require().NoError(commands.NewSetNotificationConsentCommandHandler(s.uows, s.channel).Handle(s.ctx, cmd))
}

// read runs fn in a unit of work that is rolled back afterwards.
func (s *MarketplaceTestSuite) read(fn func(uow ports.UnitOfWork)) {
	uow := memory.NewUnitOfWorkFactory(s.store).Create()
	s.Require().NoError(uow.Begin(s.ctx))
	defer func() {
		_ = uow.Rollback(s.ctx)
	}()
	fn(uow)
}

func (s *MarketplaceTestSuite) getOrder(id order.ID) *order.Order {
	var o *order.Order
	s.read(func(uow ports.UnitOfWork) {
		var err error
		o, err = uow.OrderRepository().Get(s.ctx, id)
		s.Require().NoError(err)
	})
	return o
}

func (s *MarketplaceTestSuite) getCourier(id kernel.UUID) *courier.Courier {
	var c *courier.Courier
	s.read(func(uow ports.UnitOfWork) {
		var err error
		c, err = uow.CourierRepository().Get(s.ctx, id)
		s.Require().NoError(err)
	})
	return c
}

func (s *MarketplaceTestSuite) getCustomer(id kernel.UUID) *customer.Customer {
	var c *customer.Customer
	s.read(func(uow ports.UnitOfWork) {
		var err error
		c, err = uow.CustomerRepository().Get(s.ctx, id)
		s.Require().NoError(err)
	})
	return c
}

func (s *MarketplaceTestSuite) getRestaurant(id kernel.UUID) *restaurant.Restaurant {
	var r *restaurant.Restaurant
	s.read(func(uow ports.UnitOfWork) {
		var err error
		r, err = uow.RestaurantRepository().Get(s.ctx, id)
		s.Require().NoError(err)
	})
	return r
}

func (s *MarketplaceTestSuite) getSettings() *platform.Settings {
	var settings *platform.Settings
	s.read(func(uow ports.UnitOfWork) {
		var err error
		settings, err = uow.SettingsRepository().Get(s.ctx)
		s.Require().NoError(err)
	})
	return settings
}
