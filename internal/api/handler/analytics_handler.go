package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/finsight/revenue-analytics/internal/core/domain"
	"github.com/finsight/revenue-analytics/internal/core/ports"
)

// AnalyticsHandler handles HTTP requests for per-category analysis views.
type AnalyticsHandler struct {
	analytics ports.AnalyticsService
	portfolio ports.PortfolioService
}

func NewAnalyticsHandler(analytics ports.AnalyticsService, portfolio ports.PortfolioService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, portfolio: portfolio}
}

// Get returns the computed summary for one category of a company.
//
// @Summary      Get the analysis view for one category
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      int     true  "Company ID"
// @Param        category  path      string  true  "Category label"
// @Success      200       {object}  ports.CategorySummary
// @Failure      400       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /v1/companies/{id}/analytics/{category} [get]
func (h *AnalyticsHandler) Get(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	orgID, err := pathOrgID(c)
	if err != nil {
		return err
	}

	// Ad-hoc categories get the generic summary; empty is the only reject.
	category := domain.Category(c.Param("category"))
	if category == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing category")
	}

	if err := h.portfolio.Authorize(c.Request().Context(), id.Role, id.UserID, orgID); err != nil {
		return err
	}

	summary, err := h.analytics.Summarize(c.Request().Context(), orgID, category)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, summary)
}
