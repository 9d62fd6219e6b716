package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/finsight/revenue-analytics/internal/api/metrics"
	"github.com/finsight/revenue-analytics/internal/core/domain"
	"github.com/finsight/revenue-analytics/internal/core/ports"
)

// maxUploadBytes caps a single uploaded file at 20 MiB.
const maxUploadBytes = 20 << 20

// DatasetHandler handles HTTP requests for dataset upload and retrieval.
type DatasetHandler struct {
	datasets  ports.DatasetService
	portfolio ports.PortfolioService
}

func NewDatasetHandler(datasets ports.DatasetService, portfolio ports.PortfolioService) *DatasetHandler {
	return &DatasetHandler{datasets: datasets, portfolio: portfolio}
}

type uploadResultResponse struct {
	Filename string `json:"filename"`
	Category string `json:"category"`
	RowCount int    `json:"row_count"`
}

type uploadResponse struct {
	Stored []uploadResultResponse `json:"stored"`
}

type datasetSummaryResponse struct {
	Category   string `json:"category"`
	Title      string `json:"title"`
	RowCount   int    `json:"row_count"`
	UploadedAt string `json:"uploaded_at"`
}

type datasetResponse struct {
	Category   string      `json:"category"`
	Title      string      `json:"title"`
	Rows       domain.Rows `json:"rows"`
	UploadedAt string      `json:"uploaded_at"`
}

// Upload ingests one uploaded file into the caller's organization.
//
// @Summary      Upload a dataset file
// @Tags         datasets
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "CSV, JSON or spreadsheet file"
// @Success      201   {object}  uploadResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/datasets [post]
func (h *DatasetHandler) Upload(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file field")
	}
	if fileHeader.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer src.Close()

	payload, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	if len(payload) > maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}

	results, err := h.datasets.Upload(c.Request().Context(), ports.UploadInput{
		OrgID:    id.OrgID,
		Filename: fileHeader.Filename,
		Payload:  payload,
	})
	if err != nil {
		metrics.UploadErrorsTotal.WithLabelValues(uploadErrorReason(err)).Inc()
		return err
	}

	resp := uploadResponse{Stored: make([]uploadResultResponse, 0, len(results))}
	for _, r := range results {
		metrics.DatasetsUploadedTotal.WithLabelValues(string(r.Category)).Inc()
		resp.Stored = append(resp.Stored, uploadResultResponse{
			Filename: r.Filename,
			Category: string(r.Category),
			RowCount: r.RowCount,
		})
	}

	return c.JSON(http.StatusCreated, resp)
}

func uploadErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, domain.ErrEmptyUpload):
		return "empty_upload"
	case errors.Is(err, domain.ErrMalformedUpload):
		return "parse_failed"
	default:
		return "internal"
	}
}

// List returns the stored dataset summaries of a company.
//
// @Summary      List a company's datasets
// @Tags         datasets
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Company ID"
// @Success      200 {array}   datasetSummaryResponse
// @Failure      403 {object}  map[string]string
// @Router       /v1/companies/{id}/datasets [get]
func (h *DatasetHandler) List(c echo.Context) error {
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

	summaries, err := h.datasets.List(c.Request().Context(), orgID)
	if err != nil {
		return err
	}

	resp := make([]datasetSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		resp = append(resp, datasetSummaryResponse{
			Category:   string(s.Category),
			Title:      s.Category.Title(),
			RowCount:   s.RowCount,
			UploadedAt: s.UploadedAt.UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, resp)
}

// Get returns the full rows of one stored dataset.
//
// @Summary      Get a company's dataset for one category
// @Tags         datasets
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      int     true  "Company ID"
// @Param        category  path      string  true  "Category label"
// @Success      200       {object}  datasetResponse
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /v1/companies/{id}/datasets/{category} [get]
func (h *DatasetHandler) Get(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	orgID, err := pathOrgID(c)
	if err != nil {
		return err
	}

	// Ad-hoc categories from unclassified uploads are legal here; a category
	// with nothing stored resolves to 404 in the repository.
	category := domain.Category(c.Param("category"))
	if category == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing category")
	}

	if err := h.portfolio.Authorize(c.Request().Context(), id.Role, id.UserID, orgID); err != nil {
		return err
	}

	dataset, err := h.datasets.Get(c.Request().Context(), orgID, category)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, datasetResponse{
		Category:   string(dataset.Category),
		Title:      dataset.Category.Title(),
		Rows:       dataset.Rows,
		UploadedAt: dataset.UploadedAt.UTC().Format(time.RFC3339),
	})
}
