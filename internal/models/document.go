package models

import (
	"time"

	"github.com/google/uuid"
)

type DocumentKind string

const (
	DocumentKindResume      DocumentKind = "resume"
	DocumentKindCoverLetter DocumentKind = "cover_letter"
	DocumentKindNote        DocumentKind = "note"
	DocumentKindTranscript  DocumentKind = "transcript"
)

// SingularKinds are the document kinds a candidate may hold at most one of.
// Uploading a second one replaces the first.
var SingularKinds = map[DocumentKind]bool{
	DocumentKindResume:      true,
	DocumentKindCoverLetter: true,
}

func ValidDocumentKind(kind DocumentKind) bool {
	switch kind {
	case DocumentKindResume, DocumentKindCoverLetter, DocumentKindNote, DocumentKindTranscript:
		return true
	}
	return false
}

type Document struct {
	ID               uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID      uuid.UUID    `gorm:"type:uuid;not null;index" json:"candidate_id"`
	Kind             DocumentKind `gorm:"type:text;not null" json:"kind"`
	Name             string       `gorm:"type:text" json:"name"`
	Filename         string       `gorm:"type:text" json:"filename"`
	OriginalFileName string       `gorm:"type:text" json:"original_filename"`
	FilePath         string       `gorm:"type:text" json:"file_path"`
	Position         int          `gorm:"not null;default:0" json:"position"`
	CreatedAt        time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Analysis *Analysis `gorm:"foreignKey:DocumentID" json:"analysis,omitempty"`
}

func (Document) TableName() string {
	return "documents"
}
