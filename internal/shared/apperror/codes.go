package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"
	CodeRateLimited  = "TOO_MANY_REQUESTS"

	// Leave/travel engine
	CodeInvalidDateFormat  = "INVALID_DATE_FORMAT"
	CodeEmptyDateSet       = "EMPTY_DATE_SET"
	CodeInsufficientCredit = "INSUFFICIENT_CREDIT"
	CodeDateConflict       = "DATE_CONFLICT"
	CodeInvalidCategory    = "INVALID_CATEGORY"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeMissingRemark      = "MISSING_REMARK"
	CodePermissionDenied   = "PERMISSION_DENIED"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
