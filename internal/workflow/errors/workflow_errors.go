package workflowerrors

import (
	"net/http"

	"github.com/danny20232023/hris-sub007/internal/shared/apperror"
)

var (
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidTransition,
		"transition is not allowed from the current status",
		http.StatusUnprocessableEntity,
	)
	ErrUnknownTarget = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of FOR_APPROVAL, APPROVED, RETURNED, CANCELLED",
		http.StatusBadRequest,
	)
	ErrMissingRemark = apperror.New(
		apperror.CodeMissingRemark,
		"remarks are required to return or cancel a request",
		http.StatusBadRequest,
	)
	ErrReturnRequiresPortal = apperror.New(
		apperror.CodeInvalidTransition,
		"only portal-submitted requests can be returned",
		http.StatusUnprocessableEntity,
	)
	ErrNotOriginalSubmitter = apperror.New(
		apperror.CodePermissionDenied,
		"only the original portal submitter can resubmit a returned request",
		http.StatusForbidden,
	)
	ErrConflict = apperror.New(
		apperror.CodeConflict,
		"request status changed concurrently, reload and retry",
		http.StatusConflict,
	)
	ErrPermissionDenied = apperror.New(
		apperror.CodePermissionDenied,
		"permission denied",
		http.StatusForbidden,
	)
)
