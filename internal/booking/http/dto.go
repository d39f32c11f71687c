package http

import (
	"time"

	"github.com/rentshare/rentshare-backend/internal/booking"
	itemHttp "github.com/rentshare/rentshare-backend/internal/item/http"
	userHttp "github.com/rentshare/rentshare-backend/internal/user/http"
)

type BookingResponse struct {
	ID     int64                 `json:"id"`
	Start  time.Time             `json:"start"`
	End    time.Time             `json:"end"`
	Status string                `json:"status"`
	Item   itemHttp.ItemResponse `json:"item"`
	Booker userHttp.UserTag      `json:"booker"`
}

// NewBookingResponse builds the booking view with its item context already
// assembled by the handler.
func NewBookingResponse(b *booking.Booking, item itemHttp.ItemResponse) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Item:   item,
		Booker: userHttp.UserTag{ID: b.BookerID, Name: b.BookerName},
	}
}

type CreateBookingRequest struct {
	ItemID int64     `json:"item_id" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// AmendBookingRequest is the optional PATCH body. Any present field is an
// amendment; a request without a body is a pure approve/reject decision.
type AmendBookingRequest struct {
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
	ItemID *int64     `json:"item_id"`
}
