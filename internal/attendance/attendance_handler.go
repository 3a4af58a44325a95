package attendance

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) RecordEvent(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.GetString("employee_id")

	var req RecordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.MapValidationError(err)
		httpErr := apperror.ToHTTP(mapped)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.RecordEvent(c.Request.Context(), companyID, employeeID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) NextKind(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.GetString("employee_id")

	kind, err := h.service.NextExpectedKind(c.Request.Context(), companyID, employeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, NextKindResponse{NextKind: kind}, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("employee_id")

	// privileged roles may inspect any employee's ledger
	targetID := actorID
	if requested := c.Query("employee_id"); requested != "" && requested != actorID {
		role := strings.ToUpper(strings.TrimSpace(c.GetString("role")))
		if !isPrivilegedRole(role) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to view another employee's attendance", nil)
			return
		}
		targetID = requested
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeServiceError(c, attendanceerrors.ErrInvalidDateFilter)
			return
		}
		date = &parsed
	}

	resp, err := h.service.GetAll(c.Request.Context(), companyID, targetID, date)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func isPrivilegedRole(role string) bool {
	switch role {
	case "SUPER_ADMIN", "ADMIN", "HR", "MANAGER":
		return true
	default:
		return false
	}
}
