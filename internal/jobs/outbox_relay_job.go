package jobs

import (
	"context"
	"log/slog"
	"time"

	"procurement/internal/core/application/usecases/commands"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
)

// DefaultOutboxRelaySchedule runs the relay every ten seconds.
const DefaultOutboxRelaySchedule = "*/10 * * * * *"

// OutboxRelayer publishes pending outbox events.
type OutboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (commands.RelayOutboxResult, error)
}

// OutboxRelayJob periodically publishes OrderCreated events whose immediate
// publication after commit failed. A pass that is still running when the
// next tick fires makes that tick a no-op.
type OutboxRelayJob struct {
	relayer   OutboxRelayer
	schedule  string
	batchSize int
	timeout   time.Duration
	cron      *cron.Cron
	logger    *slog.Logger

	published prometheus.Counter
	failed    prometheus.Counter
	errors    prometheus.Counter
}

// NewOutboxRelayJob creates the job. An empty schedule means
// DefaultOutboxRelaySchedule; a non-positive batch size means
// commands.DefaultOutboxBatchSize.
func NewOutboxRelayJob(
	relayer OutboxRelayer,
	schedule string,
	batchSize int,
	reg prometheus.Registerer,
	logger *slog.Logger,
) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}
	if batchSize <= 0 {
		batchSize = commands.DefaultOutboxBatchSize
	}

	factory := promauto.With(reg)
	return &OutboxRelayJob{
		relayer:   relayer,
		schedule:  schedule,
		batchSize: batchSize,
		timeout:   time.Minute,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "outbox_relay_job"),
		published: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "procurement",
			Subsystem: "outbox",
			Name:      "published_total",
			Help:      "Outbox events published by the relay.",
		}),
		failed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "procurement",
			Subsystem: "outbox",
			Name:      "publish_failures_total",
			Help:      "Outbox events the relay failed to publish.",
		}),
		errors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "procurement",
			Subsystem: "outbox",
			Name:      "relay_errors_total",
			Help:      "Relay passes that failed as a whole.",
		}),
	}
}

// Start schedules the relay. It fails on an unparsable schedule.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()
		j.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule, "batch_size", j.batchSize)
	return nil
}

// RunOnce performs a single relay pass.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		j.errors.Inc()
		j.logger.ErrorContext(ctx, "Outbox relay misconfigured", "error", err)
		return
	}

	result, err := j.relayer.Handle(ctx, cmd)
	if err != nil {
		j.errors.Inc()
		j.logger.ErrorContext(ctx, "Outbox relay failed", "error", err)
		return
	}

	j.published.Add(float64(result.Published))
	j.failed.Add(float64(result.Failed))
	if result.Published > 0 || result.Failed > 0 {
		j.logger.InfoContext(ctx, "Outbox relay pass finished", "published", result.Published, "failed", result.Failed)
	}
}

// Stop stops scheduling and waits for a running pass to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
