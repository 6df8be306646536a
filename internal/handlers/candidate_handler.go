package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ca-vahid/hiring-manager/internal/models"
	"github.com/ca-vahid/hiring-manager/internal/repositories"
	"github.com/ca-vahid/hiring-manager/internal/scoring"
	"github.com/ca-vahid/hiring-manager/internal/services"
)

type CandidateHandler struct {
	candidateRepo repositories.CandidateRepository
	exporter      services.ExporterService
	weights       models.CategoryWeights
}

func NewCandidateHandler(
	candidateRepo repositories.CandidateRepository,
	exporter services.ExporterService,
	weights models.CategoryWeights,
) *CandidateHandler {
	return &CandidateHandler{
		candidateRepo: candidateRepo,
		exporter:      exporter,
		weights:       weights,
	}
}

// HandleCreate handles POST /candidates
func (h *CandidateHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}
	if err := validateRating(req.Rating); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	status, err := parseStatus(req.Status, models.StatusActive)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateScores(req.Scores); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	candidate := &models.Candidate{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		Phone:        req.Phone,
		LinkedIn:     req.LinkedIn,
		GitHub:       req.GitHub,
		Rating:       req.Rating,
		Status:       status,
		Scores:       req.Scores,
		OverallScore: scoring.Overall(req.Scores, h.weights),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.candidateRepo.Create(candidate); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create candidate",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(candidate)
}

// HandleList handles GET /candidates with filter and sort query params.
func (h *CandidateHandler) HandleList(c *fiber.Ctx) error {
	candidates, err := h.listFilteredSorted(c)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"candidates": candidates,
		"count":      len(candidates),
	})
}

// HandleExport handles GET /candidates/export. The same filter/sort params
// as the list endpoint apply, so the workbook matches what the user sees.
func (h *CandidateHandler) HandleExport(c *fiber.Ctx) error {
	candidates, err := h.listFilteredSorted(c)
	if err != nil {
		return err
	}

	data, err := h.exporter.ExportCandidates(candidates)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to export candidates",
		})
	}

	filename := fmt.Sprintf("candidates_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

// listFilteredSorted loads the snapshot and applies the query params.
// Errors are fiber.Errors, rendered by the app error handler.
func (h *CandidateHandler) listFilteredSorted(c *fiber.Ctx) ([]models.Candidate, error) {
	opts, err := parseFilterOptions(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	candidates, err := h.candidateRepo.FindAll()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to list candidates")
	}

	candidates = scoring.Filter(candidates, opts)
	candidates = scoring.Sort(candidates, scoring.SortOption{
		Field:      c.Query("sort_by"),
		Descending: strings.EqualFold(c.Query("sort_dir"), "desc"),
	})
	return candidates, nil
}

// HandleGet handles GET /candidates/:id
func (h *CandidateHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate ID format",
		})
	}

	candidate, err := h.candidateRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate not found",
		})
	}

	return c.JSON(candidate)
}

// HandleUpdate handles PUT /candidates/:id with partial field edits.
func (h *CandidateHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate ID format",
		})
	}

	var req models.UpdateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name cannot be empty"})
		}
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.LinkedIn != nil {
		updates["linkedin"] = *req.LinkedIn
	}
	if req.GitHub != nil {
		updates["github"] = *req.GitHub
	}
	if req.Rating != nil {
		if err := validateRating(*req.Rating); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		updates["rating"] = *req.Rating
	}
	if req.Status != nil {
		status, err := parseStatus(*req.Status, "")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		updates["status"] = status
	}
	if req.Scores != nil {
		if err := validateScores(*req.Scores); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		updates["scores"] = *req.Scores
		updates["overall_score"] = scoring.Overall(*req.Scores, h.weights)
	}

	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No fields to update",
		})
	}

	if err := h.candidateRepo.Update(id, updates); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate not found",
		})
	}

	candidate, err := h.candidateRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reload candidate",
		})
	}
	return c.JSON(candidate)
}

// HandleUpdateRating handles PATCH /candidates/:id/rating
func (h *CandidateHandler) HandleUpdateRating(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate ID format",
		})
	}

	var req models.RatingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := validateRating(req.Rating); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.candidateRepo.Update(id, map[string]interface{}{"rating": req.Rating}); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate not found",
		})
	}

	return c.JSON(fiber.Map{"id": id.String(), "rating": req.Rating})
}

// HandleUpdateStatus handles PATCH /candidates/:id/status
func (h *CandidateHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate ID format",
		})
	}

	var req models.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	status, err := parseStatus(req.Status, "")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.candidateRepo.Update(id, map[string]interface{}{"status": status}); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate not found",
		})
	}

	return c.JSON(fiber.Map{"id": id.String(), "status": status})
}

// HandleUpdateScores handles PUT /candidates/:id/scores, replacing the
// category scores and recomputing the overall score.
func (h *CandidateHandler) HandleUpdateScores(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate ID format",
		})
	}

	var req models.ScoresRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := validateScores(req.Scores); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	overall := scoring.Overall(req.Scores, h.weights)
	updates := map[string]interface{}{
		"scores":        req.Scores,
		"overall_score": overall,
	}
	if err := h.candidateRepo.Update(id, updates); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate not found",
		})
	}

	return c.JSON(fiber.Map{
		"id":            id.String(),
		"scores":        req.Scores,
		"overall_score": overall,
	})
}

// HandleDelete handles DELETE /candidates/:id (soft delete).
func (h *CandidateHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate ID format",
		})
	}

	if err := h.candidateRepo.Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate not found",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func parseFilterOptions(c *fiber.Ctx) (scoring.FilterOptions, error) {
	opts := scoring.FilterOptions{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	if raw := c.Query("min_score"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid min_score: %s", raw)
		}
		opts.MinScore = &v
	}
	if raw := c.Query("max_score"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid max_score: %s", raw)
		}
		opts.MaxScore = &v
	}
	return opts, nil
}

func validateRating(rating int) error {
	if rating < 0 || rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5")
	}
	return nil
}

func validateScores(scores models.CategoryScores) error {
	for category, score := range scores {
		if score < 0 || score > 10 {
			return fmt.Errorf("score for %q must be between 0 and 10", category)
		}
	}
	return nil
}

func parseStatus(raw string, fallback models.CandidateStatus) (models.CandidateStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		if fallback != "" {
			return fallback, nil
		}
		return "", fmt.Errorf("status is required")
	case string(models.StatusActive):
		return models.StatusActive, nil
	case string(models.StatusInactive):
		return models.StatusInactive, nil
	}
	return "", fmt.Errorf("status must be %q or %q", models.StatusActive, models.StatusInactive)
}
