package queue

const (
	QueueName = "booking.events"

	EventBookingCreated = "booking.created"
	EventBookingDeleted = "booking.deleted"
)

// BookingEvent is the message published on every booking lifecycle
// change. Consumers get enough context to audit the change without a
// database round trip.
type BookingEvent struct {
	Type          string `json:"type"`
	BookingID     uint64 `json:"bookingId"`
	ClientID      uint64 `json:"clientId"`
	UserID        string `json:"userId"`
	ReferenceCode string `json:"referenceCode"`
	OccurredAt    int64  `json:"occurredAt"`
}
