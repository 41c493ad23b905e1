package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"marketplace/internal/adapters/out/memory"
	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/customer"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/platform"
	"marketplace/internal/core/domain/model/profit"
	"marketplace/internal/core/domain/model/restaurant"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type UnitOfWorkTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *memory.Store
	factory *memory.UnitOfWorkFactory
}

func (s *UnitOfWorkTestSuite) SetupTest() {
	settings, err := platform.NewSettings(
		platform.FairOccupationDelivery,
		profit.NewData(decimal.RequireFromString("0.1"), kernel.MoneyFromInt(2), kernel.MoneyFromInt(5)),
		kernel.MoneyFromInt(100),
	)
	s.Require().NoError(err)

	s.ctx = context.Background()
	s.store = memory.NewStore(settings)
	s.factory = memory.NewUnitOfWorkFactory(s.store)
}

func (s *UnitOfWorkTestSuite) begin() ports.UnitOfWork {
	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(s.ctx))
	return uow
}

func (s *UnitOfWorkTestSuite) newCourier(name string) *courier.Courier {
	c, err := courier.NewCourier(kernel.NewUUID(), name, name, kernel.MustNewLocation(1, 1))
	s.Require().NoError(err)
	return c
}

func (s *UnitOfWorkTestSuite) TestCommitMakesAdditionsVisible() {
	c := s.newCourier("ann")

	uow := s.begin()
	s.Require().NoError(uow.CourierRepository().Add(s.ctx, c))
	got, err := uow.CourierRepository().Get(s.ctx, c.ID())
	s.Require().NoError(err, "staged additions are visible inside the unit of work")
	s.Same(c, got)
	s.Require().NoError(uow.Commit(s.ctx))
	s.Require().NoError(uow.Rollback(s.ctx), "rollback after commit is a no-op")

	reader := s.begin()
	defer func() { _ = reader.Rollback(s.ctx) }()
	all, err := reader.CourierRepository().GetAll(s.ctx)
	s.Require().NoError(err)
	s.Equal([]*courier.Courier{c}, all)
}

func (s *UnitOfWorkTestSuite) TestRollbackDiscardsAdditions() {
	c := s.newCourier("ann")

	uow := s.begin()
	s.Require().NoError(uow.CourierRepository().Add(s.ctx, c))
	s.Require().NoError(uow.Rollback(s.ctx))

	reader := s.begin()
	defer func() { _ = reader.Rollback(s.ctx) }()
	_, err := reader.CourierRepository().Get(s.ctx, c.ID())
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *UnitOfWorkTestSuite) TestInactiveUnitOfWork() {
	uow := s.factory.Create()

	_, err := uow.CourierRepository().GetAll(s.ctx)
	s.ErrorIs(err, memory.ErrUnitOfWorkIsNotActive)
	s.ErrorIs(uow.Commit(s.ctx), memory.ErrUnitOfWorkIsNotActive)
	s.NoError(uow.Rollback(s.ctx))
}

func (s *UnitOfWorkTestSuite) TestDuplicatesAndMissingObjects() {
	c := s.newCourier("ann")
	uow := s.begin()
	defer func() { _ = uow.Rollback(s.ctx) }()
	repo := uow.CourierRepository()

	s.ErrorIs(repo.Update(s.ctx, c), errs.ErrObjectNotFound)
	s.Require().NoError(repo.Add(s.ctx, c))
	s.ErrorIs(repo.Add(s.ctx, c), errs.ErrObjectAlreadyExists)
	s.NoError(repo.Update(s.ctx, c))
}

func (s *UnitOfWorkTestSuite) TestBeginWaitsForTheExclusiveSection() {
	holder := s.begin()

	ctx, cancel := context.WithTimeout(s.ctx, 20*time.Millisecond)
	defer cancel()
	err := s.factory.Create().Begin(ctx)
	s.ErrorIs(err, context.DeadlineExceeded)

	s.Require().NoError(holder.Rollback(s.ctx))
	other := s.begin()
	s.NoError(other.Rollback(s.ctx))
}

func (s *UnitOfWorkTestSuite) TestBeginWithCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	s.ErrorIs(s.factory.Create().Begin(ctx), context.Canceled)
}

func (s *UnitOfWorkTestSuite) TestSerializesConcurrentUnitsOfWork() {
	const workers = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uow := s.factory.Create()
			if err := uow.Begin(s.ctx); err != nil {
				return
			}
			mu.Lock()
			inside++
			maxSeen = max(maxSeen, inside)
			mu.Unlock()

			_, _ = uow.OrderRepository().NextID(s.ctx)

			mu.Lock()
			inside--
			mu.Unlock()
			_ = uow.Commit(s.ctx)
		}()
	}
	wg.Wait()

	s.Equal(1, maxSeen)
	uow := s.begin()
	defer func() { _ = uow.Rollback(s.ctx) }()
	next, err := uow.OrderRepository().NextID(s.ctx)
	s.Require().NoError(err)
	s.Equal(order.ID(workers+1), next)
}

func (s *UnitOfWorkTestSuite) TestOrderIDsAreNeverReused() {
	uow := s.begin()
	first, err := uow.OrderRepository().NextID(s.ctx)
	s.Require().NoError(err)
	s.Require().NoError(uow.Rollback(s.ctx))

	uow = s.begin()
	defer func() { _ = uow.Rollback(s.ctx) }()
	second, err := uow.OrderRepository().NextID(s.ctx)
	s.Require().NoError(err)
	s.Greater(second, first)
}

func (s *UnitOfWorkTestSuite) TestOrderQueries() {
	ann, err := customer.NewCustomer(kernel.NewUUID(), "ann", "ann", kernel.MustNewLocation(0, 0))
	s.Require().NoError(err)
	r, err := restaurant.NewRestaurant(kernel.NewUUID(), "R", "r", kernel.MustNewLocation(0, 0), nil)
	s.Require().NoError(err)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	uow := s.begin()
	defer func() { _ = uow.Rollback(s.ctx) }()
	repo := uow.OrderRepository()

	open, err := order.NewOrder(2, ann.ID(), r.ID(), now)
	s.Require().NoError(err)
	other, err := order.NewOrder(1, kernel.NewUUID(), r.ID(), now)
	s.Require().NoError(err)
	s.Require().NoError(repo.Add(s.ctx, open))
	s.Require().NoError(repo.Add(s.ctx, other))

	got, err := repo.GetOpenByCustomer(s.ctx, ann.ID())
	s.Require().NoError(err)
	s.Same(open, got)

	_, err = repo.GetOpenByCustomer(s.ctx, kernel.NewUUID())
	s.ErrorIs(err, errs.ErrObjectNotFound)

	all, err := repo.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Equal([]*order.Order{other, open}, all, "ordered by ID")

	awaiting, err := repo.GetAllAwaitingCourier(s.ctx)
	s.Require().NoError(err)
	s.Empty(awaiting)
}

func (s *UnitOfWorkTestSuite) TestHistoryWindow() {
	r, err := restaurant.NewRestaurant(kernel.NewUUID(), "R", "r", kernel.MustNewLocation(0, 0), nil)
	s.Require().NoError(err)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	uow := s.begin()
	defer func() { _ = uow.Rollback(s.ctx) }()

	pending, err := order.NewOrder(1, kernel.NewUUID(), r.ID(), base)
	s.Require().NoError(err)
	s.ErrorIs(uow.HistoryRepository().Append(s.ctx, pending), errs.ErrInvalidState)

	for i, o := range completedOrders(s.T(), r, base, 3) {
		s.Require().NoError(uow.HistoryRepository().Append(s.ctx, o), "order %d", i)
	}

	window, err := uow.HistoryRepository().GetCompletedBetween(s.ctx, base.Add(time.Hour), base.Add(3*time.Hour))
	s.Require().NoError(err)
	s.Len(window, 2, "from is inclusive, to is exclusive")
}

func (s *UnitOfWorkTestSuite) TestSettings() {
	uow := s.begin()
	current, err := uow.SettingsRepository().Get(s.ctx)
	s.Require().NoError(err)
	s.Require().NoError(current.SetDeliveryPolicy(platform.FastestDelivery))
	s.Require().NoError(uow.SettingsRepository().Update(s.ctx, current))
	s.Require().NoError(uow.Commit(s.ctx))

	uow = s.begin()
	defer func() { _ = uow.Rollback(s.ctx) }()
	got, err := uow.SettingsRepository().Get(s.ctx)
	s.Require().NoError(err)
	s.Equal(platform.FastestDelivery, got.DeliveryPolicy())
	s.ErrorIs(uow.SettingsRepository().Update(s.ctx, nil), errs.ErrValueIsRequired)
}

func TestUnitOfWorkTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkTestSuite))
}
