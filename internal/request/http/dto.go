package http

import (
	"time"

	"github.com/rentshare/rentshare-backend/internal/item"
	"github.com/rentshare/rentshare-backend/internal/request"
)

// RequestItem is an item listed in answer to a request.
type RequestItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"request_id,omitempty"`
}

func newRequestItem(it *item.Item) RequestItem {
	return RequestItem{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
	}
}

type RequestResponse struct {
	ID          int64         `json:"id"`
	Description string        `json:"description"`
	Created     time.Time     `json:"created"`
	Items       []RequestItem `json:"items"`
}

func NewRequestResponse(rw *request.RequestWithItems) RequestResponse {
	items := make([]RequestItem, 0, len(rw.Items))
	for _, it := range rw.Items {
		items = append(items, newRequestItem(it))
	}
	return RequestResponse{
		ID:          rw.Request.ID,
		Description: rw.Request.Description,
		Created:     rw.Request.Created,
		Items:       items,
	}
}

type CreateRequestRequest struct {
	Description string `json:"description" binding:"required"`
}
