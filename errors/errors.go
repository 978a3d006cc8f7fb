// Package errors provides coded application errors for pledgebook.
// Fatal pipeline failures are reported as *AppError so the CLI and the
// HTTP front end can show one human-readable message without leaking
// the underlying cause.
package errors

// AppError represents a structured application error with an error code,
// human-readable message and optional internal error.
type AppError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Internal error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Internal != nil {
		return e.Message + ": " + e.Internal.Error()
	}
	return e.Message
}

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so a
// wrapped sentinel still matches errors.Is(err, ErrBaseInputs).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:     sentinel.Code,
		Message:  sentinel.Message,
		Internal: internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:     sentinel.Code,
		Message:  message,
		Internal: sentinel.Internal,
	}
}

// Input errors. All of them abort a build.
var (
	ErrBaseInputs       = &AppError{Code: "BASE_INPUTS_MISSING", Message: "Base inputs are missing: a position file and a today file are both required"}
	ErrUnreadableSource = &AppError{Code: "UNREADABLE_SOURCE", Message: "Base input could not be read"}
	ErrMissingColumn    = &AppError{Code: "MISSING_COLUMN", Message: "Base input is missing a required column"}
	ErrUnsupported      = &AppError{Code: "UNSUPPORTED_FORMAT", Message: "Unsupported file format"}
)

// Configuration errors.
var (
	ErrInvalidConfig = &AppError{Code: "INVALID_CONFIG", Message: "Invalid configuration"}
)

// Output errors.
var (
	ErrRender   = &AppError{Code: "RENDER_FAILED", Message: "Workbook could not be written"}
	ErrInternal = &AppError{Code: "INTERNAL_ERROR", Message: "Internal error"}
)
