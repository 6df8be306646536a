// Reindexes every stored document into the vector index. Useful after
// changing the collection or restoring uploads from a backup.
package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/ca-vahid/hiring-manager/internal/config"
	"github.com/ca-vahid/hiring-manager/internal/logger"
	"github.com/ca-vahid/hiring-manager/internal/models"
	"github.com/ca-vahid/hiring-manager/internal/services"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(false, true)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.Gemini.APIKey == "" {
		zlog.Fatal("GEMINI_API_KEY is required for embeddings")
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize Gemini", zap.Error(err))
	}

	index, err := services.NewDocumentIndex(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize Qdrant", zap.Error(err))
	}
	if err := index.InitCollection(); err != nil {
		zlog.Fatal("failed to initialize collection", zap.Error(err))
	}

	pdfParser := services.NewPDFParserService()
	chunker := services.NewTextChunker()

	var documents []models.Document
	if err := db.Find(&documents).Error; err != nil {
		zlog.Fatal("failed to load documents", zap.Error(err))
	}

	ctx := context.Background()
	indexed := 0
	failed := 0

	for _, doc := range documents {
		content, err := pdfParser.ExtractText(doc.FilePath)
		if err != nil {
			zlog.Warn("skipping document",
				zap.String("document_id", doc.ID.String()), zap.Error(err))
			failed++
			continue
		}

		chunks := chunker.ChunkText(content.Text, 1000, 100)
		embeddings := make([][]float32, 0, len(chunks))
		ok := true
		for _, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
			if err != nil {
				zlog.Warn("failed to embed chunk",
					zap.String("document_id", doc.ID.String()), zap.Error(err))
				ok = false
				break
			}
			embeddings = append(embeddings, embedding)
		}
		if !ok {
			failed++
			continue
		}

		err = index.IndexChunks(ctx, doc.ID.String(), doc.CandidateID.String(), string(doc.Kind), chunks, embeddings)
		if err != nil {
			zlog.Warn("failed to index document",
				zap.String("document_id", doc.ID.String()), zap.Error(err))
			failed++
			continue
		}
		indexed++
	}

	zlog.Info("reindex finished", zap.Int("indexed", indexed), zap.Int("failed", failed))
}
