package events

import (
	"time"

	"github.com/google/uuid"
)

// Routing keys for booking lifecycle events.
const (
	BookingCreated  = "booking.created"
	BookingApproved = "booking.approved"
	BookingRejected = "booking.rejected"
	BookingAmended  = "booking.amended"
	BookingCanceled = "booking.canceled"
)

// BookingEvent is the JSON envelope published for every booking transition.
type BookingEvent struct {
	EventID    string    `json:"event_id"`
	BookingID  int64     `json:"booking_id"`
	ItemID     int64     `json:"item_id"`
	BookerID   int64     `json:"booker_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewBookingEvent builds an envelope with a fresh event id.
func NewBookingEvent(bookingID, itemID, bookerID int64, status string, at time.Time) BookingEvent {
	return BookingEvent{
		EventID:    uuid.NewString(),
		BookingID:  bookingID,
		ItemID:     itemID,
		BookerID:   bookerID,
		Status:     status,
		OccurredAt: at,
	}
}
