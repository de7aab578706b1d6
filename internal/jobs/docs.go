// Package jobs provides scheduled background tasks for the fulfillment engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the pipeline needs.
//
// # Available Jobs
//
// 1. RedispatchJob - Runs every second to retry orders stuck waiting for a
// rider and to abandon orders stuck past the configured deadline.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(orchestrator, redispatchMaxAge, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The job uses the cron expression "* * * * * *" which means it runs every
// second. That frequency keeps rider reassignment near real-time.
//
// # Error Handling
//
// An empty sweep is the normal case and is not logged; sweep failures are.
package jobs
