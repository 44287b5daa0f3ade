package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"cellhub/backend/internal/service"
	"cellhub/backend/pkg/response"
)

// GenerationHandler exposes the meeting generation job over HTTP.
type GenerationHandler struct {
	generationSvc service.GenerationService
}

// NewGenerationHandler creates a GenerationHandler.
func NewGenerationHandler(generationSvc service.GenerationService) *GenerationHandler {
	return &GenerationHandler{generationSvc: generationSvc}
}

// TriggerGeneration runs one meeting generation pass immediately.
// POST /api/v1/meetings/generate
func (h *GenerationHandler) TriggerGeneration(c *gin.Context) {
	months := 0
	if raw := c.Query("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 24 {
			response.BadRequest(c, 10001, "months must be an integer between 1 and 24")
			return
		}
		months = n
	}

	report, err := h.generationSvc.GenerateUpcoming(c.Request.Context(), months)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{
		"created":  report.Created,
		"warnings": report.Warnings,
	})
}
