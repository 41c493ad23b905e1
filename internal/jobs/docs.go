// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules are cron expressions with a leading seconds field.
//
// # Available Jobs
//
// 1. MealOfTheWeekRotationJob - promotes the next meal of every restaurant to meal of the week;
// subscribed customers receive the announcement
// 2. StatisticsReportJob - logs the platform statistics of a trailing window and the most active users
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(rotationJob, reportJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Rotation skips restaurants without meals silently and logs every other failure
// - Report failures are logged; the next tick tries again
// - Failed job starts stop any already running jobs
package jobs
