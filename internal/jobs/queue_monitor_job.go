package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// oldestWaitWarnThreshold is how long the head of a ready queue may wait
// before the monitor escalates from info to warning.
const oldestWaitWarnThreshold = 10 * time.Minute

// QueueMonitorJob samples the ready queues on a fixed schedule and logs
// their depth and the age of their oldest entry.
type QueueMonitorJob struct {
	handler queries.GetReadyOrdersQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewQueueMonitorJob creates a job that monitors both the delivery and the
// on-premise ready queue.
func NewQueueMonitorJob(handler queries.GetReadyOrdersQueryHandler, logger *slog.Logger) *QueueMonitorJob {
	return &QueueMonitorJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "queue_monitor_job"),
	}
}

// Start begins the queue monitor, sampling every 15 seconds.
func (j *QueueMonitorJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * * *", func() {
		ctx := context.Background()
		j.sample(ctx, order.TypeDelivery)
		j.sample(ctx, order.TypeOnPremise)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Queue monitor job started (sampling every 15 seconds)")
	return nil
}

// Stop stops the queue monitor job.
func (j *QueueMonitorJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Queue monitor job stopped")
}

func (j *QueueMonitorJob) sample(ctx context.Context, orderType order.OrderType) {
	query, err := queries.NewGetReadyOrdersQuery(orderType)
	if err != nil {
		j.logger.ErrorContext(ctx, "Queue monitor failed to build query", "error", err)
		return
	}

	orders, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Queue monitor failed to read queue",
			"orderType", orderType.String(), "error", err)
		return
	}

	if len(orders) == 0 {
		return
	}

	oldestWait := time.Since(orders[0].CreatedAt)
	attrs := []any{
		"orderType", orderType.String(),
		"depth", len(orders),
		"oldestWait", oldestWait.Round(time.Second).String(),
	}

	if oldestWait > oldestWaitWarnThreshold {
		j.logger.WarnContext(ctx, "Ready queue head is waiting too long", attrs...)
		return
	}

	j.logger.InfoContext(ctx, "Ready queue sampled", attrs...)
}
