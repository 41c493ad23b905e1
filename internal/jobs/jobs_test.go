package jobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/adapters/out/memory"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/core/domain/model/platform"
	"marketplace/internal/core/domain/model/profit"
	"marketplace/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type writeFactory struct {
	factory *memory.UnitOfWorkFactory
}

func (f writeFactory) Create() commands.UoW {
	return f.factory.Create()
}

type readFactory struct {
	factory *memory.UnitOfWorkFactory
}

func (f readFactory) Create() queries.ReadUoW {
	return f.factory.Create()
}

func newFactory(t *testing.T) *memory.UnitOfWorkFactory {
	t.Helper()
	settings, err := platform.NewSettings(platform.FastestDelivery,
		profit.NewData(decimal.RequireFromString("0.2"), kernel.MoneyFromInt(1), kernel.MoneyFromInt(1)), kernel.Zero)
	require.NoError(t, err)
	return memory.NewUnitOfWorkFactory(memory.NewStore(settings))
}

func registerRestaurant(t *testing.T, w commands.UoWFactory, name string, meals ...string) kernel.UUID {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	register, err := commands.NewRegisterUserCommand(account.RestaurantRole, name,
		account.Contact{Username: name}, kernel.MustNewLocation(0, 0))
	require.NoError(t, err)
	require.NoError(t, commands.NewRegisterUserCommandHandler(w, account.NewRegistry(), nil, logger).Handle(ctx, register))
	id := register.UserID()

	for _, dish := range []commands.DishSpec{
		{Name: "Soup", Price: kernel.MoneyFromInt(10), Category: menu.Starter},
		{Name: "Steak", Price: kernel.MoneyFromInt(30), Category: menu.Main},
	} {
		cmd, cmdErr := commands.NewAddDishCommand(id, dish)
		require.NoError(t, cmdErr)
		require.NoError(t, commands.NewAddDishCommandHandler(w).Handle(ctx, cmd))
	}
	for _, meal := range meals {
		cmd, cmdErr := commands.NewAddMealCommand(id, meal, menu.HalfMeal, "Soup", "Steak")
		require.NoError(t, cmdErr)
		require.NoError(t, commands.NewAddMealCommandHandler(w).Handle(ctx, cmd))
	}
	return id
}

func TestMealOfTheWeekRotationJob_Run(t *testing.T) {
	factory := newFactory(t)
	w, r := writeFactory{factory: factory}, readFactory{factory: factory}
	logger := slog.New(slog.DiscardHandler)

	registerRestaurant(t, w, "Bistro", "Lunch", "Brunch")
	registerRestaurant(t, w, "Bare")

	restaurants := queries.NewGetAllRestaurantsQueryHandler(r)
	job := NewMealOfTheWeekRotationJob(restaurants,
		commands.NewRotateMealOfTheWeekCommandHandler(w, services.NewNotificationChannel(), logger),
		"@weekly", logger)

	mealsOfTheWeek := func() []string {
		all, err := restaurants.Handle(context.Background(), queries.NewGetAllRestaurantsQuery())
		require.NoError(t, err)
		require.Len(t, all, 2)
		require.Equal(t, "Bistro", all[1].Name)
		return all[1].MealsOfTheWeek
	}

	assert.Equal(t, 1, job.run(context.Background()))
	assert.Equal(t, []string{"Lunch"}, mealsOfTheWeek())

	assert.Equal(t, 1, job.run(context.Background()))
	assert.Equal(t, []string{"Brunch"}, mealsOfTheWeek())

	assert.Equal(t, 1, job.run(context.Background()))
	assert.Equal(t, []string{"Lunch"}, mealsOfTheWeek())
}

func TestStatisticsReportJob_Run(t *testing.T) {
	factory := newFactory(t)
	r := readFactory{factory: factory}
	registerRestaurant(t, writeFactory{factory: factory}, "Bistro")

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	now := time.Date(2024, time.June, 3, 12, 0, 0, 0, time.UTC)

	job := NewStatisticsReportJob(
		queries.NewGetPlatformStatisticsQueryHandler(r),
		queries.NewGetActivityRankingQueryHandler(r),
		24*time.Hour,
		func() time.Time { return now },
		"@hourly",
		logger,
	)
	job.run(context.Background())

	out := buf.String()
	assert.Contains(t, out, "Platform statistics")
	assert.Contains(t, out, "orders=0")
	assert.Contains(t, out, "top_restaurant=Bistro")
	assert.NotContains(t, out, "top_courier")
}

func TestJobs_InvalidSchedule(t *testing.T) {
	factory := newFactory(t)
	r := readFactory{factory: factory}
	logger := slog.New(slog.DiscardHandler)

	report := NewStatisticsReportJob(queries.NewGetPlatformStatisticsQueryHandler(r),
		queries.NewGetActivityRankingQueryHandler(r), time.Hour, time.Now, "not a schedule", logger)
	assert.Error(t, report.Start())
}

type mockJob struct {
	mock.Mock
}

func (m *mockJob) Start() error {
	return m.Called().Error(0)
}

func (m *mockJob) Stop() {
	m.Called()
}

func TestJobManager(t *testing.T) {
	t.Run("starts and stops every job", func(t *testing.T) {
		first, second := new(mockJob), new(mockJob)
		first.On("Start").Return(nil).Once()
		second.On("Start").Return(nil).Once()
		first.On("Stop").Once()
		second.On("Stop").Once()

		jm := &JobManager{jobs: []Job{first, second}}
		require.NoError(t, jm.StartAll())
		jm.StopAll()

		first.AssertExpectations(t)
		second.AssertExpectations(t)
	})

	t.Run("stops started jobs when one fails to start", func(t *testing.T) {
		first, second := new(mockJob), new(mockJob)
		first.On("Start").Return(nil).Once()
		first.On("Stop").Once()
		second.On("Start").Return(errors.New("bad schedule")).Once()

		jm := &JobManager{jobs: []Job{first, second}}
		err := jm.StartAll()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad schedule")

		first.AssertExpectations(t)
		second.AssertExpectations(t)
		second.AssertNotCalled(t, "Stop")
	})
}
