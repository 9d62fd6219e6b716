package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/finsight/revenue-analytics/internal/core/ports"
)

// PortfolioHandler handles HTTP requests for investor↔company links.
type PortfolioHandler struct {
	portfolio ports.PortfolioService
}

func NewPortfolioHandler(portfolio ports.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio}
}

type companyResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// List returns the companies the investor is subscribed to.
//
// @Summary      List subscribed companies
// @Tags         portfolio
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   companyResponse
// @Failure      403  {object}  map[string]string
// @Router       /v1/companies [get]
func (h *PortfolioHandler) List(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	orgs, err := h.portfolio.ListCompanies(c.Request().Context(), id.UserID)
	if err != nil {
		return err
	}

	resp := make([]companyResponse, 0, len(orgs))
	for _, org := range orgs {
		resp = append(resp, companyResponse{
			ID:        org.ID,
			Name:      org.Name,
			CreatedAt: org.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, resp)
}

// Connect subscribes the investor to a company.
//
// @Summary      Subscribe to a company
// @Tags         portfolio
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Company ID"
// @Success      201 {object}  map[string]string
// @Failure      404 {object}  map[string]string
// @Failure      409 {object}  map[string]string
// @Router       /v1/companies/{id}/subscriptions [post]
func (h *PortfolioHandler) Connect(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	orgID, err := pathOrgID(c)
	if err != nil {
		return err
	}

	if err := h.portfolio.Connect(c.Request().Context(), id.UserID, orgID); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]string{"status": "subscribed"})
}

// Disconnect removes the investor's subscription to a company.
//
// @Summary      Unsubscribe from a company
// @Tags         portfolio
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Company ID"
// @Success      200 {object}  map[string]string
// @Failure      404 {object}  map[string]string
// @Router       /v1/companies/{id}/subscriptions [delete]
func (h *PortfolioHandler) Disconnect(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	orgID, err := pathOrgID(c)
	if err != nil {
		return err
	}

	if err := h.portfolio.Disconnect(c.Request().Context(), id.UserID, orgID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "unsubscribed"})
}
