package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	"github.com/Vexflip/skiset-reservation/internal/common"
	db "github.com/Vexflip/skiset-reservation/internal/db/gen"
	"github.com/Vexflip/skiset-reservation/internal/events"
)

type stubQueries struct {
	reservation db.Reservation
	items       []db.ReservationItem
	emails      []string
	getErr      error
}

func (s *stubQueries) GetReservationByID(_ context.Context, _ pgtype.UUID) (db.Reservation, error) {
	return s.reservation, s.getErr
}

func (s *stubQueries) ListReservationItems(_ context.Context, _ pgtype.UUID) ([]db.ReservationItem, error) {
	return s.items, nil
}

func (s *stubQueries) ListCustomerEmails(_ context.Context) ([]string, error) {
	return s.emails, nil
}

type stubEnqueuer struct {
	tasks      []*asynq.Task
	enqueueErr error
}

func (s *stubEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if s.enqueueErr != nil {
		return nil, s.enqueueErr
	}
	s.tasks = append(s.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func testReservation() db.Reservation {
	return db.Reservation{
		ID:             pgtype.UUID{Bytes: [16]byte{0xab, 1}, Valid: true},
		FirstName:      "Marie",
		LastName:       "Dupont",
		Email:          "marie@example.com",
		StartDate:      pgtype.Date{Time: time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC), Valid: true},
		EndDate:        pgtype.Date{Time: time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC), Valid: true},
		Status:         db.ReservationStatusPENDING,
		TotalPrice:     180,
		DiscountAmount: 18,
		FinalPrice:     162,
	}
}

func TestRenderConfirmation(t *testing.T) {
	res := testReservation()
	items := []db.ReservationItem{
		{
			Category:    "SKI",
			ProductName: pgtype.Text{String: "Pack Sensation", Valid: true},
			Price:       90,
			Quantity:    2,
			Surname:     pgtype.Text{String: "Dupont", Valid: true},
		},
	}

	subject, body, err := RenderConfirmation(res, items, "https://skiset.example.com/")
	require.NoError(t, err)
	require.Equal(t, confirmationSubject, subject)
	require.Contains(t, body, "Bonjour Marie Dupont")
	require.Contains(t, body, "10 février 2025")
	require.Contains(t, body, "15 février 2025")
	require.Contains(t, body, "Pack Sensation")
	require.Contains(t, body, "Pour : Dupont")
	require.Contains(t, body, "180,00 €")
	require.Contains(t, body, "Code promo appliqué : -18,00 €")
	require.Contains(t, body, "Total à payer : 162,00 €")
	require.Contains(t, body, "https://skiset.example.com/reservation/ab01")
	require.Contains(t, body, "L'équipe Skiset Relief")
}

func TestRenderConfirmationWithoutDiscount(t *testing.T) {
	res := testReservation()
	res.DiscountAmount = 0
	res.FinalPrice = res.TotalPrice

	_, body, err := RenderConfirmation(res, nil, "")
	require.NoError(t, err)
	require.NotContains(t, body, "Code promo appliqué")
	require.NotContains(t, body, "/reservation/")
}

func TestHandleReservationEmail(t *testing.T) {
	sender := &common.InMemoryEmail{}
	w := &Worker{
		Q:       &stubQueries{reservation: testReservation()},
		Sender:  sender,
		BaseURL: "https://skiset.example.com",
	}

	task, err := NewReservationEmailTask("ab010000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	require.NoError(t, w.HandleReservationEmail(context.Background(), task))

	require.Len(t, sender.Outbox, 1)
	require.Equal(t, "marie@example.com", sender.Outbox[0].To)
	require.Equal(t, confirmationSubject, sender.Outbox[0].Subject)
}

func TestHandleReservationEmailSkipsDeletedReservation(t *testing.T) {
	w := &Worker{
		Q:      &stubQueries{getErr: pgx.ErrNoRows},
		Sender: &common.InMemoryEmail{},
	}

	task, err := NewReservationEmailTask("ab010000-0000-0000-0000-000000000000")
	require.NoError(t, err)

	err = w.HandleReservationEmail(context.Background(), task)
	require.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleStatusEmail(t *testing.T) {
	res := testReservation()
	res.Status = db.ReservationStatusCONFIRMED
	sender := &common.InMemoryEmail{}
	w := &Worker{Q: &stubQueries{reservation: res}, Sender: sender}

	task, err := NewStatusEmailTask("ab010000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	require.NoError(t, w.HandleStatusEmail(context.Background(), task))

	require.Len(t, sender.Outbox, 1)
	require.Contains(t, sender.Outbox[0].HTML, "confirmée")
}

func TestHandleBroadcastEmail(t *testing.T) {
	sender := &common.InMemoryEmail{}
	w := &Worker{
		Q:      &stubQueries{emails: []string{"a@example.com", "b@example.com"}},
		Sender: sender,
	}

	task, err := NewBroadcastEmailTask("Promo février", "<p>-20% cette semaine</p>")
	require.NoError(t, err)
	require.NoError(t, w.HandleBroadcastEmail(context.Background(), task))

	require.Len(t, sender.Outbox, 2)
	require.Equal(t, "Promo février", sender.Outbox[0].Subject)
}

func TestEmailNotifierEnqueuesByTopic(t *testing.T) {
	client := &stubEnqueuer{}
	n := &EmailNotifier{Client: client}
	id := pgtype.UUID{Bytes: [16]byte{7}, Valid: true}

	require.NoError(t, n.Notify(context.Background(), db.DomainEvent{Topic: events.TopicReservationCreated, AggregateID: id}))
	require.NoError(t, n.Notify(context.Background(), db.DomainEvent{Topic: events.TopicReservationStatusChanged, AggregateID: id}))
	require.NoError(t, n.Notify(context.Background(), db.DomainEvent{Topic: events.TopicReservationDeleted, AggregateID: id}))

	require.Len(t, client.tasks, 2)
	require.Equal(t, TypeReservationEmail, client.tasks[0].Type())
	require.Equal(t, TypeStatusEmail, client.tasks[1].Type())
}

func TestEmailNotifierPropagatesEnqueueError(t *testing.T) {
	n := &EmailNotifier{Client: &stubEnqueuer{enqueueErr: errors.New("redis down")}}
	id := pgtype.UUID{Bytes: [16]byte{7}, Valid: true}

	err := n.Notify(context.Background(), db.DomainEvent{Topic: events.TopicReservationCreated, AggregateID: id})
	require.Error(t, err)
}
