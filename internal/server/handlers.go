// internal/server/handlers.go
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"solar-insight/internal/common/config"
	apperrors "solar-insight/internal/common/errors"
	"solar-insight/internal/common/metrics"
	"solar-insight/internal/models"
	"solar-insight/internal/store"
)

// analysisResponse is the envelope for a freshly computed recommendation.
type analysisResponse struct {
	ID             string                 `json:"id"`
	Recommendation *models.Recommendation `json:"recommendation"`
}

// sheetsRequest carries pre-parsed sheet descriptors from a client that did
// its own spreadsheet parsing.
type sheetsRequest struct {
	Sheets []models.SheetDescriptor `json:"sheets"`
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx := c.Request.Context()

	status := http.StatusOK
	checks := gin.H{"postgres": "ok", "redis": "ok"}

	if err := s.postgres.PingContext(ctx); err != nil {
		checks["postgres"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if err := s.db.Ping(ctx); err != nil {
		checks["redis"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{"status": httpStatusWord(status), "checks": checks})
}

func httpStatusWord(status int) string {
	if status == http.StatusOK {
		return "healthy"
	}
	return "degraded"
}

// handleAnalyzeUpload accepts a multipart xlsx upload under the "file" field.
func (s *Server) handleAnalyzeUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uploaded file could not be opened"})
		return
	}
	defer file.Close()

	sheets, err := s.parser.ParseWorkbook(file)
	if err != nil {
		s.logger.Warn("workbook parse failed", map[string]interface{}{
			"filename": fileHeader.Filename,
			"error":    err.Error(),
		})
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": apperrors.NewWorkbookParseFailedError(err),
		})
		return
	}

	metrics.UploadSheets.Observe(float64(len(sheets)))
	s.analyze(c, sheets)
}

// handleAnalyzeSheets accepts already-parsed descriptors as JSON.
func (s *Server) handleAnalyzeSheets(c *gin.Context) {
	var req sheetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be {\"sheets\": [...]}"})
		return
	}
	s.analyze(c, req.Sheets)
}

// analyze runs the pipeline and persists the result. The AI timeout bounds
// only the gateway call inside Assemble; persistence uses the request
// context unchanged.
func (s *Server) analyze(c *gin.Context, sheets []models.SheetDescriptor) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), config.GetDuration(s.config.AI.Timeout))
	rec := s.assembler.Assemble(ctx, sheets)
	cancel()

	id := uuid.NewString()
	if err := s.store.Save(c.Request.Context(), id, rec); err != nil {
		s.logger.Error("recommendation save failed", map[string]interface{}{
			"id":    id,
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": apperrors.NewStoreFailedError(err),
		})
		return
	}

	c.JSON(http.StatusOK, analysisResponse{ID: id, Recommendation: rec})
}

func (s *Server) handleGetAnalysis(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a UUID"})
		return
	}

	rec, err := s.store.Get(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": apperrors.NewRecommendationNotFoundError(id),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": apperrors.NewStoreFailedError(err),
		})
		return
	}

	c.JSON(http.StatusOK, analysisResponse{ID: id, Recommendation: rec})
}
