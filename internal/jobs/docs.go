// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around the order lifecycle.
//
// # Available Jobs
//
// 1. QueueMonitorJob - Periodically samples the ready queues of both order
// types and logs their depth and the waiting time of the oldest entry, so
// that stuck queues (no agents claiming, no cashier checkout) are visible
// in the logs before customers notice.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(getReadyOrdersHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The monitor only reads; any error it hits is logged and the next tick
// tries again.
package jobs
