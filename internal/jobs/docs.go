// Package jobs runs the scheduled background work of the field-service engine on
// github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. AutoAssignmentJob - finds PENDING orders scheduled in the future with no active
// worker and runs ScheduleAssignment for each of them
// 2. NotificationDispatchJob - publishes queued notifications and marks them sent
//
// # Usage
//
//	jobManager := jobs.NewJobManager(autoAssignmentJob, notificationDispatchJob, logger)
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal("failed to start jobs", zap.Error(err))
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field cron format with a leading seconds field, for example
// "*/30 * * * * *". A tick that fires while the previous run is still going is skipped.
//
// # Error Handling
//
// Scheduling and concurrency conflicts, orders that left PENDING and orders deleted in the
// meantime are logged at debug level and skipped. Anything else ends the run and is logged
// as an error; the next tick starts over.
package jobs
