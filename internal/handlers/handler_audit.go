package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
	portssvc "github.com/zhwei-dev/jizhang_backend/internal/core/ports/services"
	"github.com/zhwei-dev/jizhang_backend/internal/dto"
	"github.com/zhwei-dev/jizhang_backend/internal/middleware"
)

// auditHandler exposes read access to the append-only audit trail.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

// newAuditHandler creates a new auditHandler.
func newAuditHandler(as portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{
		auditService: as,
	}
}

// registerAuditRoutes registers routes related to the audit trail.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)

	logs := rg.Group("/audit-logs")
	{
		logs.GET("", h.listAuditLogs)
		logs.GET("/entity/:type/:id", h.listAuditLogsByEntity)
	}
}

// parseAuditLogFilters reads the optional query filters for audit listings.
func parseAuditLogFilters(c *gin.Context) (domain.AuditLogFilters, error) {
	var filters domain.AuditLogFilters

	if raw := c.Query("action"); raw != "" {
		action := domain.AuditAction(raw)
		filters.Action = &action
	}
	if raw := c.Query("startDate"); raw != "" {
		start, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, err
		}
		filters.StartDate = &start
	}
	if raw := c.Query("endDate"); raw != "" {
		end, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, err
		}
		filters.EndDate = &end
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return filters, err
		}
		filters.Limit = limit
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return filters, err
		}
		filters.Offset = offset
	}

	return filters, nil
}

// listAuditLogs godoc
// @Summary List the caller's audit entries
// @Description Retrieves the caller's audit trail, newest first
// @Tags audit-logs
// @Produce  json
// @Param   action query string false "Filter by action"
// @Param   startDate query string false "Filter from (RFC3339)"
// @Param   endDate query string false "Filter until (RFC3339)"
// @Param   limit query int false "Page size"
// @Param   offset query int false "Page offset"
// @Success 200 {array} dto.AuditLogResponse
// @Security BearerAuth
// @Router /audit-logs [get]
func (h *auditHandler) listAuditLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	filters, err := parseAuditLogFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter: " + err.Error()})
		return
	}

	entries, err := h.auditService.ListAuditLogs(c.Request.Context(), userID, filters)
	if err != nil {
		logger.Error("Failed to list audit logs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list audit logs"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAuditLogResponse(entries))
}

// listAuditLogsByEntity godoc
// @Summary List audit entries for one entity
// @Tags audit-logs
// @Produce  json
// @Param   type path string true "Entity type"
// @Param   id path string true "Entity ID"
// @Success 200 {array} dto.AuditLogResponse
// @Security BearerAuth
// @Router /audit-logs/entity/{type}/{id} [get]
func (h *auditHandler) listAuditLogsByEntity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if _, ok := middleware.GetUserIDFromContext(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entries, err := h.auditService.ListAuditLogsByEntity(c.Request.Context(), c.Param("type"), c.Param("id"))
	if err != nil {
		logger.Error("Failed to list audit logs by entity", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list audit logs"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAuditLogResponse(entries))
}
