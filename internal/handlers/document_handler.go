package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ca-vahid/hiring-manager/internal/models"
	"github.com/ca-vahid/hiring-manager/internal/repositories"
	"github.com/ca-vahid/hiring-manager/internal/services"
)

type DocumentHandler struct {
	candidateRepo  repositories.CandidateRepository
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	index          services.DocumentIndex // nil when Qdrant is not configured
	logger         *zap.Logger
	maxFileSize    int64
}

func NewDocumentHandler(
	candidateRepo repositories.CandidateRepository,
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	index services.DocumentIndex,
	logger *zap.Logger,
	maxFileSize int64,
) *DocumentHandler {
	return &DocumentHandler{
		candidateRepo:  candidateRepo,
		docRepo:        docRepo,
		storageService: storageService,
		index:          index,
		logger:         logger,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /candidates/:id/documents. The multipart form
// carries the file under "file", the document kind under "kind", and for
// notes/transcripts an optional display name under "name". A second resume
// or cover letter replaces the existing one.
func (h *DocumentHandler) HandleUpload(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate ID format",
		})
	}

	if _, err := h.candidateRepo.FindByID(candidateID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate not found",
		})
	}

	kind := models.DocumentKind(c.FormValue("kind"))
	if !models.ValidDocumentKind(kind) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "kind must be one of: resume, cover_letter, note, transcript",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded. Provide a PDF under the 'file' field.",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(file, string(kind))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save file: %v", err),
		})
	}

	name := c.FormValue("name")
	if name == "" {
		name = file.Filename
	}

	position := 0
	if !models.SingularKinds[kind] {
		position, err = h.docRepo.NextPosition(candidateID, kind)
		if err != nil {
			h.storageService.DeleteFile(filename)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to save document record",
			})
		}
	}

	doc := models.Document{
		ID:               uuid.New(),
		CandidateID:      candidateID,
		Kind:             kind,
		Name:             name,
		Filename:         filename,
		OriginalFileName: file.Filename,
		FilePath:         filePath,
		Position:         position,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save document record",
		})
	}

	// Replace semantics for resume/cover letter: drop the old one after the
	// new row exists.
	if models.SingularKinds[kind] {
		h.replaceExisting(c.Context(), candidateID, kind, doc.ID)
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		ID:           doc.ID.String(),
		Kind:         string(doc.Kind),
		Name:         doc.Name,
		Filename:     doc.Filename,
		OriginalName: doc.OriginalFileName,
	})
}

func (h *DocumentHandler) replaceExisting(ctx context.Context, candidateID uuid.UUID, kind models.DocumentKind, keepID uuid.UUID) {
	existing, err := h.docRepo.FindByCandidateAndKind(candidateID, kind)
	if err != nil {
		h.logger.Warn("failed to look up existing documents for replacement", zap.Error(err))
		return
	}

	for _, old := range existing {
		if old.ID == keepID {
			continue
		}
		if err := h.docRepo.Delete(old.ID); err != nil {
			h.logger.Warn("failed to delete replaced document",
				zap.String("document_id", old.ID.String()), zap.Error(err))
			continue
		}
		if err := h.storageService.DeleteFile(old.Filename); err != nil {
			h.logger.Warn("failed to delete replaced file",
				zap.String("filename", old.Filename), zap.Error(err))
		}
		if h.index != nil {
			if err := h.index.DeleteDocument(ctx, old.ID.String()); err != nil {
				h.logger.Warn("failed to remove replaced document from index",
					zap.String("document_id", old.ID.String()), zap.Error(err))
			}
		}
	}
}

// HandleList handles GET /candidates/:id/documents
func (h *DocumentHandler) HandleList(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate ID format",
		})
	}

	docs, err := h.docRepo.FindByCandidate(candidateID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list documents",
		})
	}

	return c.JSON(fiber.Map{
		"documents": docs,
		"count":     len(docs),
	})
}

// HandleDelete handles DELETE /documents/:id
func (h *DocumentHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document ID format",
		})
	}

	doc, err := h.docRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found",
		})
	}

	if err := h.docRepo.Delete(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete document",
		})
	}

	if err := h.storageService.DeleteFile(doc.Filename); err != nil {
		h.logger.Warn("failed to delete stored file",
			zap.String("filename", doc.Filename), zap.Error(err))
	}
	if h.index != nil {
		if err := h.index.DeleteDocument(c.Context(), id.String()); err != nil {
			h.logger.Warn("failed to remove document from index",
				zap.String("document_id", id.String()), zap.Error(err))
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}
