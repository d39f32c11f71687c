package booking

import (
	"net/http"
	"time"

	"github.com/rentshare/rentshare-backend/internal/pkg/apperror"
)

var (
	ErrNotFound = apperror.New(http.StatusNotFound, "booking not found")
	// Not-found rather than forbidden: outsiders must not learn that the
	// booking exists at all.
	ErrNoPermission  = apperror.New(http.StatusNotFound, "no permission for this booking")
	ErrUnavailable   = apperror.New(http.StatusBadRequest, "item is unavailable")
	ErrNothingToDo   = apperror.New(http.StatusBadRequest, "neither a decision nor an amendment was supplied")
	ErrInvalidTime   = apperror.New(http.StatusBadRequest, "booking start must be before its end")
	ErrIllegalStatus = apperror.New(http.StatusBadRequest, "booking already has this status")
)

// Status is the lifecycle stage of a booking. WAITING is the only status a
// booking is created with; APPROVED and REJECTED are set by the item owner's
// decision; CANCELED is set by the overdue sweeper, never by the lifecycle
// itself.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

// Booking is a request by a user (the booker) to rent an item for a time
// interval. The Item* and BookerName fields are denormalized read-only
// context joined in by the store.
type Booking struct {
	ID       int64
	Start    time.Time
	End      time.Time
	ItemID   int64
	BookerID int64
	Status   Status

	ItemName      string
	ItemOwnerID   int64
	ItemAvailable bool
	BookerName    string
}

// Page is the (from, size) pair supplied by callers of list queries.
type Page struct {
	From int
	Size int
}

// Offset keeps the original paging contract: from is divided down to a page
// index, so a from that is not a multiple of size truncates to the page
// containing it. Callers depend on this arithmetic; do not switch to plain
// offset semantics.
func (p Page) Offset() int {
	return p.From / p.Size * p.Size
}
