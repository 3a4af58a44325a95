package payrollerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrNoSelection = apperror.New(
		apperror.CodeInvalidInput,
		"at least one employee must be selected for payout",
		http.StatusBadRequest,
	)

	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
)
