package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ca-vahid/hiring-manager/internal/models"
)

type DocumentRepository interface {
	Create(document *models.Document) error
	FindByID(id uuid.UUID) (*models.Document, error)
	FindByCandidate(candidateID uuid.UUID) ([]models.Document, error)
	FindByCandidateAndKind(candidateID uuid.UUID, kind models.DocumentKind) ([]models.Document, error)
	NextPosition(candidateID uuid.UUID, kind models.DocumentKind) (int, error)
	Delete(id uuid.UUID) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Create implements DocumentRepository.
func (d *documentRepository) Create(document *models.Document) error {
	if err := d.db.Create(document).Error; err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// FindByID implements DocumentRepository.
func (d *documentRepository) FindByID(id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	err := d.db.Preload("Analysis").Where("id = ?", id).First(&doc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("document not found")
		}
		return nil, fmt.Errorf("failed to find document: %w", err)
	}
	return &doc, nil
}

// FindByCandidate implements DocumentRepository.
func (d *documentRepository) FindByCandidate(candidateID uuid.UUID) ([]models.Document, error) {
	var docs []models.Document
	err := d.db.Preload("Analysis").
		Where("candidate_id = ?", candidateID).
		Order("kind ASC, position ASC, created_at ASC").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find documents: %w", err)
	}
	return docs, nil
}

// FindByCandidateAndKind implements DocumentRepository.
func (d *documentRepository) FindByCandidateAndKind(candidateID uuid.UUID, kind models.DocumentKind) ([]models.Document, error) {
	var docs []models.Document
	err := d.db.
		Where("candidate_id = ? AND kind = ?", candidateID, kind).
		Order("position ASC, created_at ASC").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find documents: %w", err)
	}
	return docs, nil
}

// NextPosition returns the next order slot for ordered kinds (notes,
// transcripts).
func (d *documentRepository) NextPosition(candidateID uuid.UUID, kind models.DocumentKind) (int, error) {
	var max *int
	err := d.db.Model(&models.Document{}).
		Where("candidate_id = ? AND kind = ?", candidateID, kind).
		Select("MAX(position)").
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute document position: %w", err)
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

// Delete implements DocumentRepository. The analysis row, if any, goes with
// the document.
func (d *documentRepository) Delete(id uuid.UUID) error {
	if err := d.db.Where("document_id = ?", id).Delete(&models.Analysis{}).Error; err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}

	result := d.db.Where("id = ?", id).Delete(&models.Document{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete document: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("document not found")
	}
	return nil
}
