package payroll

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Summary(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	var req SummaryFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Summarize(ctx, companyID, req.Month, req.Year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Payout(c *gin.Context) {
	defer middleware.ReleaseIdempotencyLock(c, h.rdb)

	companyID := c.GetString("company_id")

	var req PayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.MarkPaid(c.Request.Context(), companyID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	middleware.CacheIdempotentResponse(c, h.rdb, resp)
	response.Success(c, http.StatusOK, resp, nil)
}
