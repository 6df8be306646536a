package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ca-vahid/hiring-manager/internal/models"
	"github.com/ca-vahid/hiring-manager/internal/services"
)

type CompareHandler struct {
	comparer services.ComparerService
	registry *services.ProviderRegistry
}

func NewCompareHandler(comparer services.ComparerService, registry *services.ProviderRegistry) *CompareHandler {
	return &CompareHandler{
		comparer: comparer,
		registry: registry,
	}
}

// HandleCompare handles POST /candidates/compare. Synchronous; the narrative
// comes back in the response rather than through the worker.
func (h *CompareHandler) HandleCompare(c *fiber.Ctx) error {
	var req models.CompareRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if len(req.CandidateIDs) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "candidate_ids must contain at least two candidates",
		})
	}

	ids := make([]uuid.UUID, 0, len(req.CandidateIDs))
	for _, raw := range req.CandidateIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("invalid candidate ID: %s", raw),
			})
		}
		ids = append(ids, id)
	}

	provider := models.AIProvider(req.Provider)
	if provider == "" {
		provider = models.ProviderGemini
	}
	if !h.registry.Has(provider) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "provider must be a configured one of: openai, gemini",
		})
	}

	narrative, candidates, err := h.comparer.Compare(c.Context(), ids, provider)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": fmt.Sprintf("comparison failed: %v", err),
		})
	}

	names := make([]string, 0, len(candidates))
	for i := range candidates {
		names = append(names, candidates[i].Name)
	}

	return c.JSON(models.CompareResponse{
		Narrative:  narrative,
		Candidates: names,
	})
}
