package handlers

import (
	"log"
	"net/http"

	"resellerdesk/internal/common"
	"resellerdesk/internal/jobs"

	"github.com/labstack/echo/v4"
)

// ReportHandlers exposes report generation over HTTP
type ReportHandlers struct {
	report *jobs.ProfitabilityReport
}

func NewReportHandlers(report *jobs.ProfitabilityReport) *ReportHandlers {
	return &ReportHandlers{report: report}
}

// GenerateProfitabilityReport builds the profitability workbook, stores it and
// returns a presigned download URL
func (h *ReportHandlers) GenerateProfitabilityReport(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.report.Generate(ctx)
	if err != nil {
		log.Printf("Profitability report generation failed: %v", err)
		return common.SendServerError(c, "Failed to generate report")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Report generated",
		"result":  result,
	})
}
