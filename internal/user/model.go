package user

import (
	"net/http"

	"github.com/rentshare/rentshare-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed = apperror.New(http.StatusConflict, "email already used")
	ErrNameRequired     = apperror.New(http.StatusBadRequest, "name is required")
	ErrEmailRequired    = apperror.New(http.StatusBadRequest, "email is required")
)

// User represents an account that can own items and book other users' items.
type User struct {
	ID    int64
	Name  string
	Email string
}
