package travelerrors

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
	ErrInvalidTravelID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid travel request id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrEmployeesRequired = apperror.New(
		apperror.CodeInvalidInput,
		"at least one employee is required",
		http.StatusBadRequest,
	)
	ErrPurposeTooLong = apperror.New(
		apperror.CodeInvalidInput,
		"purpose must be at most 255 characters",
		http.StatusBadRequest,
	)
	ErrDestinationTooLong = apperror.New(
		apperror.CodeInvalidInput,
		"destination must be at most 255 characters",
		http.StatusBadRequest,
	)
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"one or more employees do not belong to this company",
		http.StatusBadRequest,
	)
	ErrTravelNotFound = apperror.New(
		apperror.CodeNotFound,
		"travel request not found",
		http.StatusNotFound,
	)
	ErrNotEditable = apperror.New(
		apperror.CodeInvalidTransition,
		"only requests waiting for approval or returned to the submitter can be edited",
		http.StatusUnprocessableEntity,
	)
	ErrApprovedNotDeletable = apperror.New(
		apperror.CodeInvalidState,
		"approved travel requests cannot be deleted",
		http.StatusUnprocessableEntity,
	)
	ErrSubmitterNotIncluded = apperror.New(
		apperror.CodePermissionDenied,
		"portal travel requests must include the submitting employee",
		http.StatusForbidden,
	)
	ErrTravelNotAllowed = apperror.New(
		apperror.CodePermissionDenied,
		"employee is not allowed to create travel requests",
		http.StatusForbidden,
	)
	ErrTravelNumberTaken = apperror.New(
		apperror.CodeConflict,
		"travel number already exists in this company",
		http.StatusConflict,
	)
)
