package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// StatisticsReportJob logs the platform statistics of the trailing window.
type StatisticsReportJob struct {
	statistics queries.GetPlatformStatisticsQueryHandler
	ranking    queries.GetActivityRankingQueryHandler
	window     time.Duration
	clock      func() time.Time
	schedule   string
	cron       *cron.Cron
	logger     *slog.Logger
}

func NewStatisticsReportJob(
	statistics queries.GetPlatformStatisticsQueryHandler,
	ranking queries.GetActivityRankingQueryHandler,
	window time.Duration,
	clock func() time.Time,
	schedule string,
	logger *slog.Logger,
) *StatisticsReportJob {
	return &StatisticsReportJob{
		statistics: statistics,
		ranking:    ranking,
		window:     window,
		clock:      clock,
		schedule:   schedule,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "statistics_report_job"),
	}
}

func (j *StatisticsReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Statistics report job started",
		"schedule", j.schedule, "window", j.window)
	return nil
}

func (j *StatisticsReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Statistics report job stopped")
}

func (j *StatisticsReportJob) run(ctx context.Context) {
	to := j.clock()
	query, err := queries.NewGetPlatformStatisticsQuery(to.Add(-j.window), to)
	if err != nil {
		j.logger.ErrorContext(ctx, "Invalid statistics window", "error", err)
		return
	}

	stats, err := j.statistics.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Statistics report failed", "error", err)
		return
	}

	attrs := []any{
		"from", stats.From,
		"to", stats.To,
		"orders", stats.Orders,
		"customers", stats.Customers,
		"income", stats.TotalIncome.String(),
		"profit", stats.TotalProfit.String(),
		"income_per_customer", stats.AverageIncomePerCustomer.String(),
	}

	ranking, err := j.ranking.Handle(ctx, queries.NewGetActivityRankingQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Activity ranking failed", "error", err)
	} else {
		if len(ranking.Couriers) > 0 {
			attrs = append(attrs, "top_courier", ranking.Couriers[0].Name)
		}
		if len(ranking.Restaurants) > 0 {
			attrs = append(attrs, "top_restaurant", ranking.Restaurants[0].Name)
		}
	}

	j.logger.InfoContext(ctx, "Platform statistics", attrs...)
}
