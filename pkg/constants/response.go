package constant

const (
	// DefaultErrorTitle is the fallback error title used in HTTP error responses.
	DefaultErrorTitle = "request_failed"
	// DefaultInternalErrorMessage is the fallback message for unclassified server errors.
	DefaultInternalErrorMessage = "An internal error occurred"
	// InternalErrorTitle is the title used when a handler panics or fails unexpectedly.
	InternalErrorTitle = "internal_error"
)
