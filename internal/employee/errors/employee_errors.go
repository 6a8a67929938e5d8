package employeeerrors

import (
	"net/http"

	"github.com/danny20232023/hris-sub007/internal/shared/apperror"
)

// Lookups are company scoped, so an employee of another company is reported as not found.
var ErrEmployeeNotFound = apperror.New(apperror.CodeNotFound, "Employee not found in this company", http.StatusNotFound)

var (
	ErrInvalidEmployeeID = apperror.New(apperror.CodeInvalidInput, "Employee ID must be a UUID", http.StatusBadRequest)
	ErrInvalidCompanyID  = apperror.New(apperror.CodeInvalidInput, "Company ID must be a UUID", http.StatusBadRequest)
)
