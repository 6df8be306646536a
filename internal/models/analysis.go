package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisStatus string

const (
	AnalysisQueued     AnalysisStatus = "queued"
	AnalysisProcessing AnalysisStatus = "processing"
	AnalysisCompleted  AnalysisStatus = "completed"
	AnalysisFailed     AnalysisStatus = "failed"
)

type AIProvider string

const (
	ProviderOpenAI AIProvider = "openai"
	ProviderGemini AIProvider = "gemini"
)

// Analysis is the AI-generated breakdown of one uploaded document. One row
// per document; re-running an analysis reuses the row.
type Analysis struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DocumentID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"document_id"`
	Provider            AIProvider     `gorm:"type:text;not null" json:"provider"`
	Status              AnalysisStatus `gorm:"not null;default:'queued'" json:"status"`
	Summary             *string        `gorm:"type:text" json:"summary,omitempty"`
	ExtractedSkills     []string       `gorm:"serializer:json" json:"extracted_skills,omitempty"`
	ExtractedEducation  []string       `gorm:"serializer:json" json:"extracted_education,omitempty"`
	ExtractedExperience []string       `gorm:"serializer:json" json:"extracted_experience,omitempty"`
	SuggestedScores     CategoryScores `gorm:"serializer:json" json:"suggested_scores,omitempty"`
	ErrorMessage        *string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt           time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Analysis) TableName() string {
	return "analyses"
}
