package notify

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type names routed through the asynq queue.
const (
	TypeReservationEmail = "email:reservation_confirmation"
	TypeStatusEmail      = "email:reservation_status"
	TypeBroadcastEmail   = "email:broadcast"
)

// QueueEmails is the dedicated queue for outbound mail.
const QueueEmails = "emails"

type ReservationEmailPayload struct {
	ReservationID string `json:"reservation_id"`
}

type StatusEmailPayload struct {
	ReservationID string `json:"reservation_id"`
}

type BroadcastEmailPayload struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func NewReservationEmailTask(reservationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(ReservationEmailPayload{ReservationID: reservationID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeReservationEmail, payload, asynq.Queue(QueueEmails), asynq.MaxRetry(5)), nil
}

func NewStatusEmailTask(reservationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(StatusEmailPayload{ReservationID: reservationID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeStatusEmail, payload, asynq.Queue(QueueEmails), asynq.MaxRetry(5)), nil
}

func NewBroadcastEmailTask(subject, body string) (*asynq.Task, error) {
	payload, err := json.Marshal(BroadcastEmailPayload{Subject: subject, Body: body})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBroadcastEmail, payload, asynq.Queue(QueueEmails), asynq.MaxRetry(3)), nil
}
