package item

import (
	"net/http"

	"github.com/rentshare/rentshare-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "item not found")
	ErrNoPermission = apperror.New(http.StatusNotFound, "user is not the owner of the item")
	ErrNameRequired = apperror.New(http.StatusBadRequest, "item name is required")
)

// Item is something a user offers for rent. Only the availability flag is
// consulted by the booking flow; everything else is descriptive.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64 // set when the item was listed in answer to an item request
}
