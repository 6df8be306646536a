package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ca-vahid/hiring-manager/internal/models"
	"github.com/ca-vahid/hiring-manager/internal/repositories"
	"github.com/ca-vahid/hiring-manager/internal/services"
)

type AnalysisHandler struct {
	analysisRepo repositories.AnalysisRepository
	docRepo      repositories.DocumentRepository
	registry     *services.ProviderRegistry
	worker       services.Worker
}

func NewAnalysisHandler(
	analysisRepo repositories.AnalysisRepository,
	docRepo repositories.DocumentRepository,
	registry *services.ProviderRegistry,
	worker services.Worker,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysisRepo: analysisRepo,
		docRepo:      docRepo,
		registry:     registry,
		worker:       worker,
	}
}

// HandleAnalyze handles POST /documents/:id/analyze. Creates (or requeues)
// the document's analysis and hands it to the worker; the result arrives
// asynchronously on the analysis endpoint.
func (h *AnalysisHandler) HandleAnalyze(c *fiber.Ctx) error {
	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document ID format",
		})
	}

	var req models.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
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

	if _, err := h.docRepo.FindByID(docID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found",
		})
	}

	analysis, err := h.analysisRepo.FindByDocumentID(docID)
	if err != nil {
		analysis = &models.Analysis{
			ID:         uuid.New(),
			DocumentID: docID,
			Provider:   provider,
			Status:     models.AnalysisQueued,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		if err := h.analysisRepo.Create(analysis); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create analysis job",
			})
		}
	} else {
		if analysis.Status == models.AnalysisProcessing {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Analysis is already running for this document",
			})
		}
		if err := h.analysisRepo.Requeue(analysis.ID, provider); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to requeue analysis job",
			})
		}
	}

	h.worker.EnqueueJob(analysis.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.AnalyzeResponse{
		ID:     analysis.ID.String(),
		Status: string(models.AnalysisQueued),
	})
}

// HandleGetAnalysis handles GET /documents/:id/analysis
func (h *AnalysisHandler) HandleGetAnalysis(c *fiber.Ctx) error {
	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document ID format",
		})
	}

	analysis, err := h.analysisRepo.FindByDocumentID(docID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis not found",
		})
	}

	response := models.AnalysisResultResponse{
		ID:         analysis.ID.String(),
		DocumentID: analysis.DocumentID.String(),
		Provider:   string(analysis.Provider),
		Status:     string(analysis.Status),
	}

	if analysis.Status == models.AnalysisCompleted {
		data := &models.AnalysisData{
			ExtractedSkills:     analysis.ExtractedSkills,
			ExtractedEducation:  analysis.ExtractedEducation,
			ExtractedExperience: analysis.ExtractedExperience,
			SuggestedScores:     analysis.SuggestedScores,
		}
		if analysis.Summary != nil {
			data.Summary = *analysis.Summary
		}
		response.Result = data
	}

	if analysis.Status == models.AnalysisFailed {
		response.ErrorMessage = analysis.ErrorMessage
	}

	return c.JSON(response)
}
