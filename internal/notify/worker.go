package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/Vexflip/skiset-reservation/internal/common"
	dbgen "github.com/Vexflip/skiset-reservation/internal/db/gen"
	"github.com/Vexflip/skiset-reservation/internal/obs"
)

// Querier lists the read operations the worker needs.
type Querier interface {
	GetReservationByID(ctx context.Context, id pgtype.UUID) (dbgen.Reservation, error)
	ListReservationItems(ctx context.Context, reservationID pgtype.UUID) ([]dbgen.ReservationItem, error)
	ListCustomerEmails(ctx context.Context) ([]string, error)
}

// Worker processes queued email tasks.
type Worker struct {
	Q       Querier
	Sender  common.EmailSender
	BaseURL string
}

// Mux returns the asynq handler mux with all email task handlers registered.
func (w *Worker) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReservationEmail, w.HandleReservationEmail)
	mux.HandleFunc(TypeStatusEmail, w.HandleStatusEmail)
	mux.HandleFunc(TypeBroadcastEmail, w.HandleBroadcastEmail)
	return mux
}

// HandleReservationEmail sends the confirmation email for a new reservation.
func (w *Worker) HandleReservationEmail(ctx context.Context, task *asynq.Task) error {
	var payload ReservationEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}
	res, items, err := w.loadReservation(ctx, payload.ReservationID)
	if err != nil {
		return err
	}
	subject, body, err := RenderConfirmation(res, items, w.BaseURL)
	if err != nil {
		return fmt.Errorf("render confirmation: %v: %w", err, asynq.SkipRetry)
	}
	return w.deliver(ctx, res.Email, subject, body)
}

// HandleStatusEmail notifies the customer of a status change.
func (w *Worker) HandleStatusEmail(ctx context.Context, task *asynq.Task) error {
	var payload StatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}
	res, _, err := w.loadReservation(ctx, payload.ReservationID)
	if err != nil {
		return err
	}
	subject, body := RenderStatusUpdate(res)
	return w.deliver(ctx, res.Email, subject, body)
}

// HandleBroadcastEmail sends a one-off message to every known customer.
func (w *Worker) HandleBroadcastEmail(ctx context.Context, task *asynq.Task) error {
	var payload BroadcastEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}
	emails, err := w.Q.ListCustomerEmails(ctx)
	if err != nil {
		return fmt.Errorf("list customer emails: %w", err)
	}
	var joined error
	for _, email := range emails {
		if err := w.deliver(ctx, email, payload.Subject, payload.Body); err != nil {
			joined = errors.Join(joined, err)
		}
	}
	return joined
}

func (w *Worker) loadReservation(ctx context.Context, id string) (dbgen.Reservation, []dbgen.ReservationItem, error) {
	var uid pgtype.UUID
	if err := uid.Scan(id); err != nil {
		return dbgen.Reservation{}, nil, fmt.Errorf("invalid reservation id %q: %w", id, asynq.SkipRetry)
	}
	res, err := w.Q.GetReservationByID(ctx, uid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Reservation deleted before the task ran; nothing to send.
			return dbgen.Reservation{}, nil, fmt.Errorf("reservation %s gone: %w", id, asynq.SkipRetry)
		}
		return dbgen.Reservation{}, nil, fmt.Errorf("load reservation: %w", err)
	}
	items, err := w.Q.ListReservationItems(ctx, uid)
	if err != nil {
		return dbgen.Reservation{}, nil, fmt.Errorf("load reservation items: %w", err)
	}
	return res, items, nil
}

func (w *Worker) deliver(ctx context.Context, to, subject, body string) error {
	if err := w.Sender.Send(to, subject, body); err != nil {
		if obs.EmailTasksTotal != nil {
			obs.EmailTasksTotal.WithLabelValues("process", "error").Inc()
		}
		return fmt.Errorf("send to %s: %w", to, err)
	}
	if obs.EmailTasksTotal != nil {
		obs.EmailTasksTotal.WithLabelValues("process", "ok").Inc()
	}
	zerolog.Ctx(ctx).Info().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}
