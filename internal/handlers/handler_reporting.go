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

// reportingHandler handles HTTP requests for summaries and breakdowns.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.monthlySummary)
		reports.GET("/summary/overall", h.overallSummary)
		reports.GET("/categories", h.categoryBreakdown)
		reports.GET("/months", h.availableMonths)
		reports.GET("/monthly", h.monthlyReport)
	}
}

// parseYearMonth reads and validates the year/month query params.
func parseYearMonth(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month, expected 1-12"})
		return 0, 0, false
	}
	return year, month, true
}

// monthlySummary godoc
// @Summary Get a calendar month summary
// @Description Totals income, expense and balance in CNY for one month
// @Tags reports
// @Produce  json
// @Param   year query int true "Year"
// @Param   month query int true "Month (1-12)"
// @Success 200 {object} dto.SummaryResponse
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) monthlySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	summary, err := h.reportingService.MonthlySummary(c.Request.Context(), userID, year, month)
	if err != nil {
		logger.Error("Failed to compute monthly summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

// overallSummary godoc
// @Summary Get the all-time summary
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.SummaryResponse
// @Security BearerAuth
// @Router /reports/summary/overall [get]
func (h *reportingHandler) overallSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.reportingService.OverallSummary(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to compute overall summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

// categoryBreakdown godoc
// @Summary Get per-category totals over a date range
// @Description Groups one type's transactions by category with percentage shares
// @Tags reports
// @Produce  json
// @Param   startDate query string true "Range start (RFC3339)"
// @Param   endDate query string true "Range end (RFC3339)"
// @Param   type query string true "Transaction type (INCOME or EXPENSE)"
// @Success 200 {array} dto.CategorySummaryResponse
// @Security BearerAuth
// @Router /reports/categories [get]
func (h *reportingHandler) categoryBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate, expected RFC3339"})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate, expected RFC3339"})
		return
	}
	txnType, ok := domain.ParseTransactionType(c.Query("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type: " + c.Query("type")})
		return
	}

	rows, err := h.reportingService.CategoryBreakdown(c.Request.Context(), userID, start, end, txnType)
	if err != nil {
		logger.Error("Failed to compute category breakdown", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute breakdown"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCategorySummaryResponses(rows))
}

// availableMonths godoc
// @Summary List months with transaction data
// @Description Distinct months, most recent first; the current month is always present
// @Tags reports
// @Produce  json
// @Success 200 {array} domain.YearMonth
// @Security BearerAuth
// @Router /reports/months [get]
func (h *reportingHandler) availableMonths(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	months, err := h.reportingService.AvailableMonths(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list available months", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list months"})
		return
	}

	c.JSON(http.StatusOK, months)
}

// monthlyReport godoc
// @Summary Get the full monthly report
// @Description Month summary plus expense and income category breakdowns
// @Tags reports
// @Produce  json
// @Param   year query int true "Year"
// @Param   month query int true "Month (1-12)"
// @Success 200 {object} dto.MonthlyReportResponse
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *reportingHandler) monthlyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	report, err := h.reportingService.MonthlyReport(c.Request.Context(), userID, year, month)
	if err != nil {
		logger.Error("Failed to build monthly report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlyReportResponse(report))
}
