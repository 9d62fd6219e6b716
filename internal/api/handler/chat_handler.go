package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/finsight/revenue-analytics/internal/api/metrics"
	"github.com/finsight/revenue-analytics/internal/core/domain"
	"github.com/finsight/revenue-analytics/internal/core/ports"
)

// ChatHandler handles HTTP requests for dataset questions.
type ChatHandler struct {
	chat      ports.ChatService
	portfolio ports.PortfolioService
}

func NewChatHandler(chat ports.ChatService, portfolio ports.PortfolioService) *ChatHandler {
	return &ChatHandler{chat: chat, portfolio: portfolio}
}

type chatRequest struct {
	Category string `json:"category" validate:"required"`
	Question string `json:"question" validate:"required,min=2,max=2000"`
}

// Ask answers a free-text question about one of the company's datasets.
//
// @Summary      Ask a question about a dataset
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Company ID"
// @Param        body  body      chatRequest  true  "Category and question"
// @Success      200   {object}  ports.Answer
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/companies/{id}/chat [post]
func (h *ChatHandler) Ask(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	orgID, err := pathOrgID(c)
	if err != nil {
		return err
	}

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category := domain.Category(req.Category)

	if err := h.portfolio.Authorize(c.Request().Context(), id.Role, id.UserID, orgID); err != nil {
		return err
	}

	start := time.Now()
	answer, err := h.chat.Ask(c.Request().Context(), ports.AskInput{
		OrgID:    orgID,
		Category: category,
		Question: req.Question,
	})
	if err != nil {
		return err
	}

	metrics.ChatQuestionsTotal.WithLabelValues(answer.Strategy).Inc()
	metrics.ChatAnswerDuration.WithLabelValues(answer.Strategy).Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, answer)
}
