package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CandidateStatus string

const (
	StatusActive   CandidateStatus = "active"
	StatusInactive CandidateStatus = "inactive"
)

// Standard scoring categories. Extension categories are allowed; these four
// are the ones the scoring weights carry defaults for and the AI analyzer
// always fills in.
const (
	CategoryTechnicalSkill     = "technical_skill"
	CategoryCommunicationSkill = "communication_skill"
	CategoryExperience         = "experience"
	CategoryCulturalFit        = "cultural_fit"
)

// CategoryScores maps a category name to an integer rating 0-10.
type CategoryScores map[string]int

// CategoryWeights maps a category name to a non-negative weight. Weights need
// not sum to 1; the overall-score computation normalizes by the total weight
// actually applied.
type CategoryWeights map[string]float64

// DefaultWeights returns the weights used when none are configured.
func DefaultWeights() CategoryWeights {
	return CategoryWeights{
		CategoryTechnicalSkill:     0.4,
		CategoryCommunicationSkill: 0.25,
		CategoryExperience:         0.25,
		CategoryCulturalFit:        0.1,
	}
}

type Candidate struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name         string          `gorm:"type:text;not null" json:"name"`
	Email        string          `gorm:"type:text" json:"email"`
	Phone        string          `gorm:"type:text" json:"phone"`
	LinkedIn     string          `gorm:"column:linkedin;type:text" json:"linkedin"`
	GitHub       string          `gorm:"column:github;type:text" json:"github"`
	Rating       int             `gorm:"not null;default:0" json:"rating"`
	Status       CandidateStatus `gorm:"not null;default:'active'" json:"status"`
	Scores       CategoryScores  `gorm:"serializer:json" json:"scores"`
	OverallScore float64         `gorm:"not null;default:0" json:"overall_score"`
	CreatedAt    time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relations
	Documents []Document `gorm:"foreignKey:CandidateID" json:"documents,omitempty"`
}

func (Candidate) TableName() string {
	return "candidates"
}

// NoteNames returns the display names of the candidate's note documents, in
// upload order. Used by the list search predicate.
func (c *Candidate) NoteNames() []string {
	var names []string
	for _, doc := range c.Documents {
		if doc.Kind == DocumentKindNote && doc.Name != "" {
			names = append(names, doc.Name)
		}
	}
	return names
}
