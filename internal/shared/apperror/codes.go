package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput    = "INVALID_INPUT"
	CodeInvalidPeriod   = "INVALID_PERIOD"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInvalidState    = "INVALID_STATE"
	CodeFeatureDisabled = "FEATURE_DISABLED"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeRenderingFailure   = "RENDERING_FAILURE"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
