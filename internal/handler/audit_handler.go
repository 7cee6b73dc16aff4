package handler

import (
	"net/http"

	"pricing-backend/internal/middleware"
	"pricing-backend/internal/model"
	"pricing-backend/internal/service"
	"pricing-backend/pkg/pagination"
	"pricing-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	logs := router.Group("/api/audit-logs")
	logs.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager))
	{
		logs.GET("", h.ListLogs)
	}
}

// ListLogs returns audit entries, newest first. Filter with ?action=.
func (h *AuditHandler) ListLogs(c *gin.Context) {
	params := pagination.Parse(c)

	logs, total, err := h.auditService.ListLogs(c.Request.Context(), c.Query("action"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, logs, params.Page, params.Limit, total))
}
