package api

import (
	"context"
	"errors"
	"mime"
	"net/http"

	"site_designer_server/internal/types"
	"site_designer_server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const generateFailedMessage = "Failed to generate site"

// SiteGenerator is the pipeline behind POST /api/generate.
type SiteGenerator interface {
	GenerateSite(ctx context.Context, prompt, style string) (*types.SiteDescription, error)
}

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	generator SiteGenerator
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(generator SiteGenerator) *APIHandler {
	return &APIHandler{generator: generator}
}

// --- Structs for API Requests/Responses ---

// GenerateRequest carries the user's description. Prompt is passed through unvalidated;
// an empty Style means the server default. The body is read as JSON whatever its Content-Type.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
	Style  string `json:"style"`
}

type GenerateResponse struct {
	Success bool                   `json:"success"`
	Site    *types.SiteDescription `json:"site,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

type ExportRequest struct {
	Title string `json:"title"`
	HTML  string `json:"html" binding:"required"`
}

// --- API Handlers ---

// POST /api/generate
func (h *APIHandler) GenerateSite(c *gin.Context) {
	logger := zerolog.Ctx(c.Request.Context())

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn().Err(err).Str("code", types.ErrCodeValidation).Msg("invalid generate request body")
		c.JSON(http.StatusInternalServerError, GenerateResponse{Success: false, Error: generateFailedMessage})
		return
	}

	site, err := h.generator.GenerateSite(c.Request.Context(), req.Prompt, req.Style)
	if err != nil {
		code := types.ErrCodeInternal
		var domainErr *types.DomainError
		if errors.As(err, &domainErr) {
			code = domainErr.Code
		}
		logger.Error().Err(err).Str("code", code).Msg("Generation error")
		c.JSON(http.StatusInternalServerError, GenerateResponse{Success: false, Error: generateFailedMessage})
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{Success: true, Site: site})
}

// POST /api/export
// Returns the markup as an HTML attachment named after the site title.
func (h *APIHandler) ExportSite(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zerolog.Ctx(c.Request.Context()).Warn().Err(err).Str("code", types.ErrCodeValidation).Msg("invalid export request body")
		c.JSON(http.StatusBadRequest, GenerateResponse{Success: false, Error: "Invalid request body"})
		return
	}

	filename := utils.SiteFileName(req.Title)
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(req.HTML))
}
