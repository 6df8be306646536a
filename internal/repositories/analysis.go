package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ca-vahid/hiring-manager/internal/models"
)

type AnalysisRepository interface {
	Create(analysis *models.Analysis) error
	FindByID(id uuid.UUID) (*models.Analysis, error)
	FindByDocumentID(documentID uuid.UUID) (*models.Analysis, error)
	Requeue(id uuid.UUID, provider models.AIProvider) error
	UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error
	UpdateResult(id uuid.UUID, result *AnalysisUpdateData) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.Analysis, error)
}

type AnalysisUpdateData struct {
	Summary             *string
	ExtractedSkills     []string
	ExtractedEducation  []string
	ExtractedExperience []string
	SuggestedScores     models.CategoryScores
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(analysis *models.Analysis) error {
	if err := r.db.Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

func (r *analysisRepository) FindByID(id uuid.UUID) (*models.Analysis, error) {
	var analysis models.Analysis
	if err := r.db.Where("id = ?", id).First(&analysis).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("analysis not found")
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	return &analysis, nil
}

func (r *analysisRepository) FindByDocumentID(documentID uuid.UUID) (*models.Analysis, error) {
	var analysis models.Analysis
	if err := r.db.Where("document_id = ?", documentID).First(&analysis).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("analysis not found")
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	return &analysis, nil
}

// Requeue resets an existing analysis row for a fresh run, clearing any
// previous result.
func (r *analysisRepository) Requeue(id uuid.UUID, provider models.AIProvider) error {
	result := r.db.Model(&models.Analysis{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"provider":             provider,
			"status":               models.AnalysisQueued,
			"summary":              nil,
			"extracted_skills":     nil,
			"extracted_education":  nil,
			"extracted_experience": nil,
			"suggested_scores":     nil,
			"error_message":        nil,
			"updated_at":           time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to requeue analysis: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("analysis not found")
	}
	return nil
}

func (r *analysisRepository) UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error {
	result := r.db.Model(&models.Analysis{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("analysis not found")
	}
	return nil
}

func (r *analysisRepository) UpdateResult(id uuid.UUID, data *AnalysisUpdateData) error {
	updates := map[string]interface{}{
		"status":     models.AnalysisCompleted,
		"updated_at": time.Now(),
	}

	if data.Summary != nil {
		updates["summary"] = *data.Summary
	}
	if data.ExtractedSkills != nil {
		updates["extracted_skills"] = data.ExtractedSkills
	}
	if data.ExtractedEducation != nil {
		updates["extracted_education"] = data.ExtractedEducation
	}
	if data.ExtractedExperience != nil {
		updates["extracted_experience"] = data.ExtractedExperience
	}
	if data.SuggestedScores != nil {
		updates["suggested_scores"] = data.SuggestedScores
	}

	result := r.db.Model(&models.Analysis{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update result: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("analysis not found")
	}
	return nil
}

func (r *analysisRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.Analysis{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.AnalysisFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("analysis not found")
	}
	return nil
}

func (r *analysisRepository) FindPendingJobs(limit int) ([]models.Analysis, error) {
	var analyses []models.Analysis
	err := r.db.
		Where("status = ?", models.AnalysisQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&analyses).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}
	return analyses, nil
}
