// Package jobs provides scheduled background tasks for the procurement service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OutboxRelayJob - publishes OrderCreated events left in the outbox when
// the publication right after commit failed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	relay := jobs.NewOutboxRelayJob(relayHandler, cfg.OutboxRelaySchedule, cfg.OutboxBatchSize, registry, logger)
//	jobManager := jobs.NewJobManager(logger).Register("outbox relay", relay)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are cron expressions with a leading seconds field. The relay
// defaults to "*/10 * * * * *". Overlapping passes are skipped, and rows are
// locked with SKIP LOCKED, so several service instances may run the relay.
//
// # Error Handling
//
// - A failed event publication is counted on the outbox row and retried on the next pass
// - A failed pass is logged and counted in procurement_outbox_relay_errors_total
package jobs
