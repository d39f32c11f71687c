package apperror

// AppError is a domain error that carries the HTTP status code it should be
// translated into at the API boundary.
type AppError struct {
	Code    int    // HTTP status code (e.g. 400, 404)
	Message string // User-facing error message
}

func (e *AppError) Error() string {
	return e.Message
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}
