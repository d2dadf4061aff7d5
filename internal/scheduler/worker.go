package scheduler

import (
	"context"
	"fmt"

	"homeloans_backend/platform/config"
	"homeloans_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// LeadAlertDeliverer sends the broker alert for a stored lead.
type LeadAlertDeliverer interface {
	DeliverLeadAlert(ctx context.Context, leadID uuid.UUID) error
}

type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	alerter LeadAlertDeliverer
	log     *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, alerter LeadAlertDeliverer, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			log.WithContext(ctx).Error("scheduler task failed", "task", task.Type(), "error", err)
		}),
	})

	w := &Worker{
		server:  server,
		mux:     asynq.NewServeMux(),
		alerter: alerter,
		log:     log,
	}
	w.mux.HandleFunc(TaskLeadAlert, w.handleLeadAlert)

	return w, nil
}

func (w *Worker) handleLeadAlert(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadAlertPayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	return w.alerter.DeliverLeadAlert(ctx, leadID)
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
