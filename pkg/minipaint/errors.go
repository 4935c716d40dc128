package minipaint

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors returned by Painter methods.
var (
	// ErrNotRunning is returned by operations that need an active Run.
	ErrNotRunning = errors.New("minipaint: not running")
	// ErrAlreadyRunning is returned when Run is called twice.
	ErrAlreadyRunning = errors.New("minipaint: already running")
	// ErrNoConfigLoader is returned by ReloadConfig when the configuration
	// cannot be read again.
	ErrNoConfigLoader = errors.New("minipaint: no config loader available")
)

// ErrorCategory classifies errors reported to the ErrorHandler.
type ErrorCategory int

const (
	// ErrorCategoryUnknown is the default category for uncategorized errors.
	ErrorCategoryUnknown ErrorCategory = iota
	// ErrorCategoryConfig is for configuration parsing and validation errors.
	ErrorCategoryConfig
	// ErrorCategoryLua is for Lua script errors.
	ErrorCategoryLua
	// ErrorCategoryRender is for window and frame loop errors.
	ErrorCategoryRender
	// ErrorCategoryIO is for save and file watch errors.
	ErrorCategoryIO
)

// String returns a human-readable name for the error category.
func (c ErrorCategory) String() string {
	switch c {
	case ErrorCategoryConfig:
		return "config"
	case ErrorCategoryLua:
		return "lua"
	case ErrorCategoryRender:
		return "render"
	case ErrorCategoryIO:
		return "io"
	default:
		return "unknown"
	}
}

// CategorizedError wraps an error with the subsystem it came from.
type CategorizedError struct {
	// Err is the underlying error.
	Err error
	// Category classifies the error.
	Category ErrorCategory
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

// Error implements the error interface.
func (e *CategorizedError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%s] (no error)", e.Category)
	}
	return fmt.Sprintf("[%s] %s", e.Category, e.Err.Error())
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *CategorizedError) Unwrap() error {
	return e.Err
}

// NewCategorizedError wraps err in category.
func NewCategorizedError(err error, category ErrorCategory) *CategorizedError {
	return &CategorizedError{
		Err:       err,
		Category:  category,
		Timestamp: time.Now(),
	}
}

// CategoryOf returns the category of the first CategorizedError in err's
// chain, or ErrorCategoryUnknown.
func CategoryOf(err error) ErrorCategory {
	var ce *CategorizedError
	if errors.As(err, &ce) {
		return ce.Category
	}
	return ErrorCategoryUnknown
}
