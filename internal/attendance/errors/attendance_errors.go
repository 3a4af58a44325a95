package attendanceerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrFeatureDisabled = apperror.New(
		apperror.CodeFeatureDisabled,
		"attendance is not enabled for this employee",
		http.StatusForbidden,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidKind = apperror.New(
		apperror.CodeInvalidInput,
		"kind must be CLOCK_IN or CLOCK_OUT",
		http.StatusBadRequest,
	)
	ErrInvalidDateFilter = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date filter, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
