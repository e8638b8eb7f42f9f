package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fintrack/backend/internal/application/adapter"
	"github.com/fintrack/backend/internal/application/usecase/report"
	domainerror "github.com/fintrack/backend/internal/domain/error"
	"github.com/fintrack/backend/internal/integration/entrypoint/dto"
	"github.com/fintrack/backend/internal/integration/entrypoint/middleware"
)

// ReportController handles the dashboard, budget status and export endpoints.
type ReportController struct {
	dashboardUseCase    *report.GetDashboardUseCase
	budgetStatusUseCase *report.GetBudgetStatusUseCase
	exportUseCase       *report.ExportReportUseCase
	clock               adapter.Clock
}

// NewReportController creates a new report controller instance.
func NewReportController(
	dashboardUseCase *report.GetDashboardUseCase,
	budgetStatusUseCase *report.GetBudgetStatusUseCase,
	exportUseCase *report.ExportReportUseCase,
	clock adapter.Clock,
) *ReportController {
	return &ReportController{
		dashboardUseCase:    dashboardUseCase,
		budgetStatusUseCase: budgetStatusUseCase,
		exportUseCase:       exportUseCase,
		clock:               clock,
	}
}

// Dashboard handles GET /reports/dashboard requests. The period comes from
// either a preset or explicit from_date/to_date bounds; with no parameters
// it defaults to the current month through today.
func (c *ReportController) Dashboard(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	view, err := c.dashboardUseCase.Execute(ctx.Request.Context(), userID, report.PeriodRequest{
		Preset:   ctx.Query("preset"),
		FromDate: ctx.Query("from_date"),
		ToDate:   ctx.Query("to_date"),
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(view))
}

// BudgetStatus handles GET /reports/budget-status requests. Month and year
// default to the current calendar month.
func (c *ReportController) BudgetStatus(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	now := c.clock.Now()
	month := int(now.Month())
	year := now.Year()

	if monthStr := ctx.Query("month"); monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "month must be a number",
				Code:  string(domainerror.ErrCodeInvalidMonth),
			})
			return
		}
		month = m
	}

	if yearStr := ctx.Query("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "year must be a number",
			})
			return
		}
		year = y
	}

	comparisons, err := c.budgetStatusUseCase.Execute(ctx.Request.Context(), userID, month, year)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetStatusResponse(comparisons, report.EvaluateBudgetAlerts(comparisons)))
}

// Export handles GET /reports/export requests and streams a CSV document.
func (c *ReportController) Export(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	doc, err := c.exportUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	filename := fmt.Sprintf("financial_report_%s.csv", c.clock.Now().Format("20060102_150405"))
	ctx.Header("Content-Type", "text/csv; charset=utf-8")
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Status(http.StatusOK)

	if err := doc.WriteCSV(ctx.Writer); err != nil {
		// Headers are already out; all we can do is drop the connection.
		_ = ctx.Error(err)
	}
}

// handleReportError maps report errors to HTTP responses.
func (c *ReportController) handleReportError(ctx *gin.Context, err error) {
	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) {
		ctx.JSON(statusCodeForReportError(reportErr.Code), dto.ErrorResponse{
			Error: reportErr.Message,
			Code:  string(reportErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForReportError maps report error codes to HTTP status codes.
func statusCodeForReportError(code domainerror.ReportErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidDateFormat,
		domainerror.ErrCodeInvalidPeriodPreset,
		domainerror.ErrCodeInvalidMonth:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
