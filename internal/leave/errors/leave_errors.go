package leaveerrors

import (
	"net/http"

	"github.com/danny20232023/hris-sub007/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave request id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrPurposeTooLong = apperror.New(
		apperror.CodeInvalidInput,
		"purpose must be at most 100 characters",
		http.StatusBadRequest,
	)
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not belong to this company",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrNotEditable = apperror.New(
		apperror.CodeInvalidTransition,
		"only requests waiting for approval or returned to the submitter can be edited",
		http.StatusUnprocessableEntity,
	)
	ErrApprovedNotDeletable = apperror.New(
		apperror.CodeInvalidState,
		"approved leave requests cannot be deleted",
		http.StatusUnprocessableEntity,
	)
	ErrPortalSelfOnly = apperror.New(
		apperror.CodePermissionDenied,
		"portal leave requests can only be filed for yourself",
		http.StatusForbidden,
	)
)
