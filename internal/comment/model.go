package comment

import (
	"net/http"
	"time"

	"github.com/rentshare/rentshare-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "comment not found")
	ErrOwnItem      = apperror.New(http.StatusBadRequest, "cannot comment on your own item")
	ErrNeverBooked  = apperror.New(http.StatusBadRequest, "cannot comment on an item without a finished booking of it")
	ErrTextRequired = apperror.New(http.StatusBadRequest, "comment text is required")
)

// Comment is feedback left on an item by a user who finished renting it.
type Comment struct {
	ID         int64
	Text       string
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Created    time.Time
}
