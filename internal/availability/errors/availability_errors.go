package availabilityerrors

import (
	"net/http"

	"github.com/danny20232023/hris-sub007/internal/shared/apperror"
)

var (
	ErrDateConflict = apperror.New(
		apperror.CodeDateConflict,
		"one or more employees already have approved leave or travel on the requested dates",
		http.StatusConflict,
	)
	ErrEmployeesRequired = apperror.New(
		apperror.CodeInvalidInput,
		"at least one employee is required",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
)
