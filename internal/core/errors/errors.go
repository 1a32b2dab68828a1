package errors

const (
	HttpInternalError          = "internal_error"
	HttpInvalidArgumentError   = "invalid_argument"
	HttpNotFoundError          = "not_found"
	HttpDuplicateEventError    = "duplicate_event"
	HttpSourceUnavailableError = "data_source_unavailable"
)

// ErrorResponse is the error response body for API errors.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
