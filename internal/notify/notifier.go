package notify

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	dbgen "github.com/Vexflip/skiset-reservation/internal/db/gen"
	"github.com/Vexflip/skiset-reservation/internal/events"
	"github.com/Vexflip/skiset-reservation/internal/obs"
)

// TaskEnqueuer abstracts the asynq client for tests.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// EmailNotifier turns reservation lifecycle events into queued email tasks.
// It implements events.Notifier.
type EmailNotifier struct {
	Client TaskEnqueuer
}

// Notify enqueues the email task matching the event topic. Topics without
// an email side effect are ignored.
func (n *EmailNotifier) Notify(ctx context.Context, event dbgen.DomainEvent) error {
	if n == nil || n.Client == nil {
		return nil
	}

	var (
		task *asynq.Task
		err  error
	)
	switch event.Topic {
	case events.TopicReservationCreated:
		task, err = NewReservationEmailTask(uuidToString(event.AggregateID))
	case events.TopicReservationStatusChanged:
		task, err = NewStatusEmailTask(uuidToString(event.AggregateID))
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("notify: build task for %s: %w", event.Topic, err)
	}

	if _, err := n.Client.EnqueueContext(ctx, task); err != nil {
		if obs.EmailTasksTotal != nil {
			obs.EmailTasksTotal.WithLabelValues("enqueue", "error").Inc()
		}
		return fmt.Errorf("notify: enqueue %s: %w", task.Type(), err)
	}
	if obs.EmailTasksTotal != nil {
		obs.EmailTasksTotal.WithLabelValues("enqueue", "ok").Inc()
	}
	zerolog.Ctx(ctx).Debug().Str("task", task.Type()).Msg("email task enqueued")
	return nil
}
