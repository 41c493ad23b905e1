package cmd

import (
	"io"
	"log/slog"
	"time"

	"marketplace/internal/adapters/in/scenario"
	"marketplace/internal/adapters/out/memory"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/fidelity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/core/domain/model/platform"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/jobs"
)

type CompositionRoot struct {
	config     Config
	uowFactory *memory.UnitOfWorkFactory
	registry   *account.Registry
	channel    *services.NotificationChannel
	rates      *menu.DiscountRates
	clock      func() time.Time
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, logger *slog.Logger) (*CompositionRoot, error) {
	settings, err := platform.NewSettings(config.Policy(), config.ProfitData(), kernel.NewMoney(config.Profit.Target))
	if err != nil {
		return nil, err
	}
	rates, err := config.DiscountRates()
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		config:     config,
		uowFactory: memory.NewUnitOfWorkFactory(memory.NewStore(settings)),
		registry:   account.NewRegistry(),
		channel:    services.NewNotificationChannel(),
		rates:      rates,
		clock:      time.Now,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) commandUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) queryUoWFactory() queries.ReadUoWFactory {
	return FuncReadUoWFactory(func() queries.ReadUoW {
		return c.uowFactory.Create()
	})
}

// issueCard hands out lottery cards with the configured win probability.
func (c *CompositionRoot) issueCard(kind fidelity.Kind) fidelity.Card {
	if kind == fidelity.Lottery {
		return fidelity.NewLotteryCard(c.config.WinProbability, nil)
	}
	return fidelity.New(kind)
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.commandUoWFactory(), c.registry, c.rates, c.logger)
}

func (c *CompositionRoot) CreateAddDishCommandHandler() commands.AddDishCommandHandler {
	return commands.NewAddDishCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateAddMealCommandHandler() commands.AddMealCommandHandler {
	return commands.NewAddMealCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateSetDiscountRateCommandHandler() commands.SetDiscountRateCommandHandler {
	return commands.NewSetDiscountRateCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateSetMealPricingCommandHandler() commands.SetMealPricingCommandHandler {
	return commands.NewSetMealPricingCommandHandler(c.commandUoWFactory(), c.channel, c.logger)
}

func (c *CompositionRoot) CreateRotateMealOfTheWeekCommandHandler() commands.RotateMealOfTheWeekCommandHandler {
	return commands.NewRotateMealOfTheWeekCommandHandler(c.commandUoWFactory(), c.channel, c.logger)
}

func (c *CompositionRoot) CreateSetFidelityCardCommandHandler() commands.SetFidelityCardCommandHandler {
	return commands.NewSetFidelityCardCommandHandler(c.commandUoWFactory(), c.issueCard)
}

func (c *CompositionRoot) CreateSetNotificationConsentCommandHandler() commands.SetNotificationConsentCommandHandler {
	return commands.NewSetNotificationConsentCommandHandler(c.commandUoWFactory(), c.channel)
}

func (c *CompositionRoot) CreateClearNotificationsCommandHandler() commands.ClearNotificationsCommandHandler {
	return commands.NewClearNotificationsCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateSetCourierDutyCommandHandler() commands.SetCourierDutyCommandHandler {
	return commands.NewSetCourierDutyCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.commandUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateAddLineItemCommandHandler() commands.AddLineItemCommandHandler {
	return commands.NewAddLineItemCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateRemoveLineItemCommandHandler() commands.RemoveLineItemCommandHandler {
	return commands.NewRemoveLineItemCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateFinalizeOrderCommandHandler() commands.FinalizeOrderCommandHandler {
	return commands.NewFinalizeOrderCommandHandler(c.commandUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateRedispatchOrderCommandHandler() commands.RedispatchOrderCommandHandler {
	return commands.NewRedispatchOrderCommandHandler(c.commandUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateAcceptOfferCommandHandler() commands.AcceptOfferCommandHandler {
	return commands.NewAcceptOfferCommandHandler(c.commandUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateRefuseOfferCommandHandler() commands.RefuseOfferCommandHandler {
	return commands.NewRefuseOfferCommandHandler(c.commandUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.commandUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateSetDeliveryPolicyCommandHandler() commands.SetDeliveryPolicyCommandHandler {
	return commands.NewSetDeliveryPolicyCommandHandler(c.commandUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateRecomputeProfitCommandHandler() commands.RecomputeProfitCommandHandler {
	return commands.NewRecomputeProfitCommandHandler(c.commandUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.queryUoWFactory())
}

func (c *CompositionRoot) CreateGetAllRestaurantsQueryHandler() queries.GetAllRestaurantsQueryHandler {
	return queries.NewGetAllRestaurantsQueryHandler(c.queryUoWFactory())
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.queryUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.queryUoWFactory())
}

func (c *CompositionRoot) CreateRankCouriersQueryHandler() queries.RankCouriersQueryHandler {
	return queries.NewRankCouriersQueryHandler(c.queryUoWFactory())
}

func (c *CompositionRoot) CreateGetPendingOffersQueryHandler() queries.GetPendingOffersQueryHandler {
	return queries.NewGetPendingOffersQueryHandler(c.queryUoWFactory())
}

func (c *CompositionRoot) CreateGetCustomerNotificationsQueryHandler() queries.GetCustomerNotificationsQueryHandler {
	return queries.NewGetCustomerNotificationsQueryHandler(c.queryUoWFactory())
}

func (c *CompositionRoot) CreateGetPlatformStatisticsQueryHandler() queries.GetPlatformStatisticsQueryHandler {
	return queries.NewGetPlatformStatisticsQueryHandler(c.queryUoWFactory())
}

func (c *CompositionRoot) CreateGetActivityRankingQueryHandler() queries.GetActivityRankingQueryHandler {
	return queries.NewGetActivityRankingQueryHandler(c.queryUoWFactory())
}

func (c *CompositionRoot) CreateGetMenuPopularityQueryHandler() queries.GetMenuPopularityQueryHandler {
	return queries.NewGetMenuPopularityQueryHandler(c.queryUoWFactory())
}

// CreateScenarioRunner wires a runner over this root's marketplace. Progress goes to out.
func (c *CompositionRoot) CreateScenarioRunner(out io.Writer) (*scenario.Runner, error) {
	useCases := scenario.UseCases{
		RegisterUser:       c.CreateRegisterUserCommandHandler(),
		AddDish:            c.CreateAddDishCommandHandler(),
		AddMeal:            c.CreateAddMealCommandHandler(),
		SetFidelityCard:    c.CreateSetFidelityCardCommandHandler(),
		SetConsent:         c.CreateSetNotificationConsentCommandHandler(),
		RotateMeal:         c.CreateRotateMealOfTheWeekCommandHandler(),
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		AddLineItem:        c.CreateAddLineItemCommandHandler(),
		FinalizeOrder:      c.CreateFinalizeOrderCommandHandler(),
		RedispatchOrder:    c.CreateRedispatchOrderCommandHandler(),
		AcceptOffer:        c.CreateAcceptOfferCommandHandler(),
		RefuseOffer:        c.CreateRefuseOfferCommandHandler(),
		CompleteDelivery:   c.CreateCompleteDeliveryCommandHandler(),
		PendingOffers:      c.CreateGetPendingOffersQueryHandler(),
		GetOrder:           c.CreateGetOrderQueryHandler(),
		PlatformStatistics: c.CreateGetPlatformStatisticsQueryHandler(),
		ActivityRanking:    c.CreateGetActivityRankingQueryHandler(),
	}
	return scenario.NewRunner(c.config.Scenario, useCases, c.clock, out, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	rotation := jobs.NewMealOfTheWeekRotationJob(
		c.CreateGetAllRestaurantsQueryHandler(),
		c.CreateRotateMealOfTheWeekCommandHandler(),
		c.config.Jobs.RotationSchedule,
		c.logger,
	)
	report := jobs.NewStatisticsReportJob(
		c.CreateGetPlatformStatisticsQueryHandler(),
		c.CreateGetActivityRankingQueryHandler(),
		c.config.Jobs.ReportWindow,
		c.clock,
		c.config.Jobs.ReportSchedule,
		c.logger,
	)
	return jobs.NewJobManager(rotation, report)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncReadUoWFactory func() queries.ReadUoW

func (f FuncReadUoWFactory) Create() queries.ReadUoW {
	return f()
}
