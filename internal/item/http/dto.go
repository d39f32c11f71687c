package http

import (
	"time"

	"github.com/rentshare/rentshare-backend/internal/booking"
	"github.com/rentshare/rentshare-backend/internal/comment"
	"github.com/rentshare/rentshare-backend/internal/item"
)

// BookingRef is the short booking reference embedded in item responses.
type BookingRef struct {
	ID       int64     `json:"id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	BookerID int64     `json:"booker_id"`
}

func NewBookingRef(b *booking.Booking) *BookingRef {
	if b == nil {
		return nil
	}
	return &BookingRef{
		ID:       b.ID,
		Start:    b.Start,
		End:      b.End,
		BookerID: b.BookerID,
	}
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	Created    time.Time `json:"created"`
}

func NewCommentResponse(c *comment.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		Created:    c.Created,
	}
}

type ItemResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	RequestID   *int64            `json:"request_id,omitempty"`
	LastBooking *BookingRef       `json:"last_booking"`
	NextBooking *BookingRef       `json:"next_booking"`
	Comments    []CommentResponse `json:"comments"`
}

// NewItemResponse builds the item view. A nil summary leaves last/next empty
// (non-owners do not see them).
func NewItemResponse(it *item.Item, summary *booking.ItemSummary, comments []*comment.Comment) ItemResponse {
	resp := ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
		Comments:    make([]CommentResponse, 0, len(comments)),
	}
	for _, c := range comments {
		resp.Comments = append(resp.Comments, NewCommentResponse(c))
	}
	if summary != nil {
		resp.LastBooking = NewBookingRef(summary.Last)
		resp.NextBooking = NewBookingRef(summary.Next)
	}
	return resp
}

type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"request_id"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}
