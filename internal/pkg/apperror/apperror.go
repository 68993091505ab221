// Package apperror defines the error type service layers return to the HTTP
// layer. Each module declares its sentinels with New; response.Error turns
// them into JSON.
package apperror

// AppError carries the HTTP status a failure should map to. The wrapped
// error, when present, is for logs only and never reaches the client.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Err }

// New returns an AppError with the given status code and client message.
func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}
