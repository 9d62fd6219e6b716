package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/finsight/revenue-analytics/internal/api/metrics"
	"github.com/finsight/revenue-analytics/internal/core/ports"
)

// ReportHandler handles HTTP requests for analysis reports.
type ReportHandler struct {
	reports   ports.ReportService
	portfolio ports.PortfolioService
}

func NewReportHandler(reports ports.ReportService, portfolio ports.PortfolioService) *ReportHandler {
	return &ReportHandler{reports: reports, portfolio: portfolio}
}

// Generate builds a report over every stored dataset of the company.
//
// @Summary      Generate an analysis report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Company ID"
// @Success      201 {object}  ports.Report
// @Failure      403 {object}  map[string]string
// @Failure      404 {object}  map[string]string
// @Router       /v1/companies/{id}/reports [post]
func (h *ReportHandler) Generate(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	orgID, err := pathOrgID(c)
	if err != nil {
		return err
	}
	if err := h.portfolio.Authorize(c.Request().Context(), id.Role, id.UserID, orgID); err != nil {
		return err
	}

	report, err := h.reports.Generate(c.Request().Context(), orgID, id.Username)
	if err != nil {
		return err
	}

	metrics.ReportsGeneratedTotal.WithLabelValues(strconv.FormatBool(report.AISummary)).Inc()

	return c.JSON(http.StatusCreated, report)
}

// List returns the company's report history, newest first.
//
// @Summary      List a company's reports
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      int  true   "Company ID"
// @Param        limit  query     int  false  "Maximum reports to return (default 20, max 100)"
// @Success      200    {array}   ports.Report
// @Failure      403    {object}  map[string]string
// @Router       /v1/companies/{id}/reports [get]
func (h *ReportHandler) List(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	orgID, err := pathOrgID(c)
	if err != nil {
		return err
	}
	if err := h.portfolio.Authorize(c.Request().Context(), id.Role, id.UserID, orgID); err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	reports, err := h.reports.List(c.Request().Context(), orgID, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reports)
}

// Get returns one report by id. Access follows the report's company: the
// caller must be authorized to read that company's data.
//
// @Summary      Get a report by id
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Report ID"
// @Success      200 {object}  ports.Report
// @Failure      403 {object}  map[string]string
// @Failure      404 {object}  map[string]string
// @Router       /v1/reports/{id} [get]
func (h *ReportHandler) Get(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	report, err := h.reports.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	if err := h.portfolio.Authorize(c.Request().Context(), id.Role, id.UserID, report.OrgID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, report)
}
