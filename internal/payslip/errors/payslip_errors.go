package paysliperrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)

	ErrRenderingFailed = apperror.New(
		apperror.CodeRenderingFailure,
		"payslip document could not be produced, retry later",
		http.StatusServiceUnavailable,
	)

	ErrDocumentMissing = apperror.New(
		apperror.CodeNotFound,
		"payslip document is no longer available",
		http.StatusNotFound,
	)
)
