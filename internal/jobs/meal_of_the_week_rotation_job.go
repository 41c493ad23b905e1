package jobs

import (
	"context"
	"errors"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// MealOfTheWeekRotationJob promotes the next meal of every restaurant to meal of the week.
type MealOfTheWeekRotationJob struct {
	restaurants queries.GetAllRestaurantsQueryHandler
	rotate      commands.RotateMealOfTheWeekCommandHandler
	schedule    string
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewMealOfTheWeekRotationJob creates the job. schedule is a cron expression with a seconds field.
func NewMealOfTheWeekRotationJob(
	restaurants queries.GetAllRestaurantsQueryHandler,
	rotate commands.RotateMealOfTheWeekCommandHandler,
	schedule string,
	logger *slog.Logger,
) *MealOfTheWeekRotationJob {
	return &MealOfTheWeekRotationJob{
		restaurants: restaurants,
		rotate:      rotate,
		schedule:    schedule,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "meal_of_the_week_rotation_job"),
	}
}

// Start schedules the rotation.
func (j *MealOfTheWeekRotationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Meal of the week rotation job started", "schedule", j.schedule)
	return nil
}

// Stop stops the job and waits for a running rotation to finish.
func (j *MealOfTheWeekRotationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Meal of the week rotation job stopped")
}

// run rotates every restaurant once. It returns the number of rotated restaurants.
func (j *MealOfTheWeekRotationJob) run(ctx context.Context) int {
	restaurants, err := j.restaurants.Handle(ctx, queries.NewGetAllRestaurantsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Listing restaurants failed", "error", err)
		return 0
	}

	rotated := 0
	for _, r := range restaurants {
		cmd, err := commands.NewRotateMealOfTheWeekCommand(r.ID)
		if err != nil {
			j.logger.ErrorContext(ctx, "Invalid rotation", "restaurant_id", r.ID, "error", err)
			continue
		}

		change, err := j.rotate.Handle(ctx, cmd)
		if err != nil {
			// a restaurant without meals has nothing to rotate
			if !errors.Is(err, commands.ErrMenuHasNoMeals) {
				j.logger.ErrorContext(ctx, "Meal of the week rotation failed", "restaurant_id", r.ID, "error", err)
			}
			continue
		}

		rotated++
		j.logger.DebugContext(ctx, "Meal of the week rotated", "restaurant_id", r.ID, "meal", change.Meal, "notified", change.Notified)
	}
	return rotated
}
