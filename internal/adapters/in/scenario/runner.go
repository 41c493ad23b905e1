// Package scenario drives the marketplace use cases with generated users,
// menus and orders. Couriers answer their offers concurrently, the way real
// couriers would, so a run exercises the whole dispatch protocol.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// ErrScenarioStalled is returned when a batch of orders is still undelivered
// after every courier had the chance to accept it several times.
var ErrScenarioStalled = errors.New("scenario stalled: orders left undelivered")

// Config sizes a run. Every field is required except Seed.
type Config struct {
	Seed        int64   `mapstructure:"seed"`
	Restaurants int     `mapstructure:"restaurants"`
	Customers   int     `mapstructure:"customers"`
	Couriers    int     `mapstructure:"couriers"`
	Orders      int     `mapstructure:"orders"`
	MaxItems    int     `mapstructure:"max_items"`
	Area        float64 `mapstructure:"area"`
	// RefuseProbability is the chance that a courier refuses an offer.
	RefuseProbability float64 `mapstructure:"refuse_probability"`
	// PatientRounds is the number of response rounds per batch after which
	// couriers accept every offer.
	PatientRounds int `mapstructure:"patient_rounds"`
}

// Validate reports every out-of-range field.
func (c Config) Validate() error {
	var errList []error
	positive := map[string]int{
		"restaurants": c.Restaurants,
		"customers":   c.Customers,
		"couriers":    c.Couriers,
		"orders":      c.Orders,
		"max items":   c.MaxItems,
	}
	for name, v := range positive {
		if v <= 0 {
			errList = append(errList, fmt.Errorf("scenario %s must be positive, got %d", name, v))
		}
	}
	if c.Area <= 0 {
		errList = append(errList, fmt.Errorf("scenario area must be positive, got %g", c.Area))
	}
	if c.RefuseProbability < 0 || c.RefuseProbability >= 1 {
		errList = append(errList, fmt.Errorf("refuse probability must be in [0, 1), got %g", c.RefuseProbability))
	}
	if c.PatientRounds < 0 {
		errList = append(errList, fmt.Errorf("patient rounds must not be negative, got %d", c.PatientRounds))
	}
	return errors.Join(errList...)
}

// UseCases are the handlers a run drives.
type UseCases struct {
	RegisterUser       commands.RegisterUserCommandHandler
	AddDish            commands.AddDishCommandHandler
	AddMeal            commands.AddMealCommandHandler
	SetFidelityCard    commands.SetFidelityCardCommandHandler
	SetConsent         commands.SetNotificationConsentCommandHandler
	RotateMeal         commands.RotateMealOfTheWeekCommandHandler
	CreateOrder        commands.CreateOrderCommandHandler
	AddLineItem        commands.AddLineItemCommandHandler
	FinalizeOrder      commands.FinalizeOrderCommandHandler
	RedispatchOrder    commands.RedispatchOrderCommandHandler
	AcceptOffer        commands.AcceptOfferCommandHandler
	RefuseOffer        commands.RefuseOfferCommandHandler
	CompleteDelivery   commands.CompleteDeliveryCommandHandler
	PendingOffers      queries.GetPendingOffersQueryHandler
	GetOrder           queries.GetOrderQueryHandler
	PlatformStatistics queries.GetPlatformStatisticsQueryHandler
	ActivityRanking    queries.GetActivityRankingQueryHandler
}

// Report summarizes a run.
type Report struct {
	Delivered    int
	Accepted     int64
	Refused      int64
	Cascaded     int64
	Redispatched int
	Statistics   queries.PlatformStatistics
	Ranking      queries.ActivityRanking
}

type tally struct {
	accepted atomic.Int64
	refused  atomic.Int64
	cascaded atomic.Int64
}

// Runner seeds a marketplace and pushes orders through it.
type Runner struct {
	config   Config
	useCases UseCases
	clock    func() time.Time
	out      io.Writer
	logger   *slog.Logger
}

// NewRunner creates a runner. Progress is drawn on out.
func NewRunner(config Config, useCases UseCases, clock func() time.Time, out io.Writer, logger *slog.Logger) (*Runner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Runner{
		config:   config,
		useCases: useCases,
		clock:    clock,
		out:      out,
		logger:   logger.With("component", "scenario_runner"),
	}, nil
}

// Run seeds the marketplace, delivers every order and reports the platform statistics.
//
// Orders are placed in batches of at most one order per customer. Each batch is
// answered in rounds: every courier goroutine handles its pending offers until
// it has none left, then exhausted orders are dispatched again.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	started := r.clock()
	rng := rand.New(rand.NewSource(r.config.Seed)) //nolint:gosec // reproducible scenario data

	w, err := r.seed(ctx, rng)
	if err != nil {
		return Report{}, fmt.Errorf("seed marketplace: %w", err)
	}
	r.logger.InfoContext(ctx, "Marketplace seeded",
		"restaurants", len(w.restaurants), "customers", len(w.customers), "couriers", len(w.couriers))

	bar := progressbar.NewOptions(r.config.Orders,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription("delivering orders"),
		progressbar.OptionShowCount(),
	)

	var (
		report Report
		counts tally
	)
	for placed := 0; placed < r.config.Orders; {
		size := min(r.config.Orders-placed, len(w.customers))
		batch, placeErr := r.placeBatch(ctx, w, rng, placed, size)
		if placeErr != nil {
			return report, placeErr
		}

		redispatched, deliverErr := r.deliverBatch(ctx, w, batch, bar, &counts)
		report.Redispatched += redispatched
		if deliverErr != nil {
			return report, deliverErr
		}
		report.Delivered += len(batch)
		placed += size
	}
	_ = bar.Finish()

	report.Accepted = counts.accepted.Load()
	report.Refused = counts.refused.Load()
	report.Cascaded = counts.cascaded.Load()

	statsQuery, err := queries.NewGetPlatformStatisticsQuery(started, r.clock().Add(time.Second))
	if err != nil {
		return report, err
	}
	if report.Statistics, err = r.useCases.PlatformStatistics.Handle(ctx, statsQuery); err != nil {
		return report, err
	}
	if report.Ranking, err = r.useCases.ActivityRanking.Handle(ctx, queries.NewGetActivityRankingQuery()); err != nil {
		return report, err
	}

	r.logger.InfoContext(ctx, "Scenario finished",
		"delivered", report.Delivered, "refused", report.Refused, "redispatched", report.Redispatched)
	return report, nil
}

// placeBatch opens, fills and finalizes one order for each of size customers.
func (r *Runner) placeBatch(ctx context.Context, w *world, rng *rand.Rand, placed int, size int) ([]order.ID, error) {
	batch := make([]order.ID, 0, size)
	for i := range size {
		customerID := w.customers[(placed+i)%len(w.customers)]
		shop := w.restaurants[rng.Intn(len(w.restaurants))]

		create, err := commands.NewCreateOrderCommand(customerID, shop.id)
		if err != nil {
			return nil, err
		}
		id, err := r.useCases.CreateOrder.Handle(ctx, create)
		if err != nil {
			return nil, fmt.Errorf("create order: %w", err)
		}

		for range 1 + rng.Intn(r.config.MaxItems) {
			add, addErr := commands.NewAddLineItemCommand(id, shop.items[rng.Intn(len(shop.items))])
			if addErr != nil {
				return nil, addErr
			}
			if addErr = r.useCases.AddLineItem.Handle(ctx, add); addErr != nil {
				return nil, fmt.Errorf("add line item: %w", addErr)
			}
		}

		finalize, err := commands.NewFinalizeOrderCommand(id)
		if err != nil {
			return nil, err
		}
		if _, err = r.useCases.FinalizeOrder.Handle(ctx, finalize); err != nil &&
			!errors.Is(err, services.ErrAvailableCourierNotFound) {
			return nil, fmt.Errorf("finalize order %d: %w", id, err)
		}
		batch = append(batch, id)
	}
	return batch, nil
}

// deliverBatch runs response rounds until every order of the batch is completed.
// It returns the number of redispatches.
func (r *Runner) deliverBatch(
	ctx context.Context,
	w *world,
	batch []order.ID,
	bar *progressbar.ProgressBar,
	counts *tally,
) (int, error) {
	remaining := make(map[order.ID]struct{}, len(batch))
	for _, id := range batch {
		remaining[id] = struct{}{}
	}

	redispatched := 0
	maxRounds := r.config.PatientRounds + 2*len(batch) + len(w.couriers)
	for round := 0; len(remaining) > 0; round++ {
		if round > maxRounds {
			return redispatched, fmt.Errorf("%w: %d orders", ErrScenarioStalled, len(remaining))
		}
		patient := round >= r.config.PatientRounds

		g, gctx := errgroup.WithContext(ctx)
		for _, c := range w.couriers {
			g.Go(func() error {
				return r.respond(gctx, c, patient, counts)
			})
		}
		if err := g.Wait(); err != nil {
			return redispatched, err
		}

		for id := range remaining {
			query, err := queries.NewGetOrderQuery(id)
			if err != nil {
				return redispatched, err
			}
			o, err := r.useCases.GetOrder.Handle(ctx, query)
			if err != nil {
				return redispatched, err
			}

			switch {
			case o.Status == order.Completed:
				delete(remaining, id)
				_ = bar.Add(1)
			case o.Status == order.AwaitingCourier && o.OfferedTo == nil:
				if err = r.redispatch(ctx, id); err != nil {
					return redispatched, err
				}
				redispatched++
			}
		}
	}
	return redispatched, nil
}

func (r *Runner) redispatch(ctx context.Context, id order.ID) error {
	cmd, err := commands.NewRedispatchOrderCommand(id)
	if err != nil {
		return err
	}
	_, err = r.useCases.RedispatchOrder.Handle(ctx, cmd)
	if err != nil && !errors.Is(err, services.ErrAvailableCourierNotFound) {
		return fmt.Errorf("redispatch order %d: %w", id, err)
	}
	return nil
}
