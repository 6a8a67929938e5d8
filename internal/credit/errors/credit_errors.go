package crediterrors

import (
	"net/http"

	"github.com/danny20232023/hris-sub007/internal/shared/apperror"
)

var (
	ErrInsufficientCredit = apperror.New(
		apperror.CodeInsufficientCredit,
		"insufficient leave credit",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidCategory = apperror.New(
		apperror.CodeInvalidCategory,
		"leave category must be VACATION or SICK",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be a non-zero decimal with at most 3 fractional digits",
		http.StatusBadRequest,
	)
	ErrNegativeBalance = apperror.New(
		apperror.CodeInvalidState,
		"adjustment would make the balance negative",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
)

// InsufficientDetails is attached to ErrInsufficientCredit so callers can show the shortfall.
type InsufficientDetails struct {
	EmployeeID string `json:"employee_id"`
	Category   string `json:"category"`
	Balance    string `json:"balance"`
	Requested  string `json:"requested"`
	Shortfall  string `json:"shortfall"`
}
