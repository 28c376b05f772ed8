package events

// Topic constants for domain events emitted by the platform.
const (
	TopicReservationCreated       = "reservation.created"
	TopicReservationStatusChanged = "reservation.status_changed"
	TopicReservationDeleted       = "reservation.deleted"
)

// DefaultTopics returns the canonical list of topics that support notifications.
func DefaultTopics() []string {
	return []string{
		TopicReservationCreated,
		TopicReservationStatusChanged,
		TopicReservationDeleted,
	}
}
