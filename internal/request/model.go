package request

import (
	"net/http"
	"time"

	"github.com/rentshare/rentshare-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item request not found")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "request description is required")
)

// ItemRequest is a wish for an item nobody has listed yet. Users answering
// it link their new items back to the request.
type ItemRequest struct {
	ID          int64
	Description string
	RequesterID int64
	Created     time.Time
}
