package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ca-vahid/hiring-manager/internal/models"
	"github.com/ca-vahid/hiring-manager/internal/repositories"
	"github.com/ca-vahid/hiring-manager/internal/scoring"
)

// AnalyzerService runs one queued document analysis end to end: extract
// text, prompt the selected provider, parse and validate the result, write
// it back, and index the document text for later retrieval.
type AnalyzerService interface {
	AnalyzeDocument(ctx context.Context, analysisID uuid.UUID) error
}

type analyzerService struct {
	analysisRepo  repositories.AnalysisRepository
	docRepo       repositories.DocumentRepository
	pdfParser     PDFParserService
	registry      *ProviderRegistry
	embedder      GeminiService // nil when Gemini is not configured
	index         DocumentIndex // nil when Qdrant is not configured
	chunker       TextChunker
	promptBuilder *PromptBuilder
	logger        *zap.Logger
	maxRetries    int
	retryDelay    time.Duration
}

func NewAnalyzerService(
	analysisRepo repositories.AnalysisRepository,
	docRepo repositories.DocumentRepository,
	pdfParser PDFParserService,
	registry *ProviderRegistry,
	embedder GeminiService,
	index DocumentIndex,
	logger *zap.Logger,
	maxRetries int,
	retryDelay time.Duration,
) AnalyzerService {
	return &analyzerService{
		analysisRepo:  analysisRepo,
		docRepo:       docRepo,
		pdfParser:     pdfParser,
		registry:      registry,
		embedder:      embedder,
		index:         index,
		chunker:       NewTextChunker(),
		promptBuilder: NewPromptBuilder(),
		logger:        logger,
		maxRetries:    maxRetries,
		retryDelay:    retryDelay,
	}
}

// analysisResponse is the JSON contract the analysis prompt asks for.
type analysisResponse struct {
	Summary             string             `json:"summary"`
	ExtractedSkills     []string           `json:"extracted_skills"`
	ExtractedEducation  []string           `json:"extracted_education"`
	ExtractedExperience []string           `json:"extracted_experience"`
	SuggestedScores     map[string]float64 `json:"suggested_scores"`
}

func (a *analyzerService) AnalyzeDocument(ctx context.Context, analysisID uuid.UUID) error {
	if err := a.analysisRepo.UpdateStatus(analysisID, models.AnalysisProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	analysis, err := a.analysisRepo.FindByID(analysisID)
	if err != nil {
		a.analysisRepo.UpdateError(analysisID, err.Error())
		return fmt.Errorf("failed to get analysis: %w", err)
	}

	doc, err := a.docRepo.FindByID(analysis.DocumentID)
	if err != nil {
		a.analysisRepo.UpdateError(analysisID, fmt.Sprintf("document not found: %v", err))
		return fmt.Errorf("failed to get document: %w", err)
	}

	provider, err := a.registry.Get(analysis.Provider)
	if err != nil {
		a.analysisRepo.UpdateError(analysisID, err.Error())
		return err
	}

	content, err := a.pdfParser.ExtractText(doc.FilePath)
	if err != nil {
		a.analysisRepo.UpdateError(analysisID, fmt.Sprintf("failed to parse document: %v", err))
		return fmt.Errorf("failed to parse document: %w", err)
	}

	a.logger.Info("analyzing document",
		zap.String("analysis_id", analysisID.String()),
		zap.String("document_id", doc.ID.String()),
		zap.String("provider", string(analysis.Provider)),
		zap.Int("pages", content.PageCount))

	prompt := a.promptBuilder.BuildAnalysisPrompt(doc.Kind, content.Text)

	response, err := a.completeWithRetry(ctx, provider, prompt, 0.3)
	if err != nil {
		a.analysisRepo.UpdateError(analysisID, fmt.Sprintf("generation failed: %v", err))
		return fmt.Errorf("failed to generate analysis: %w", err)
	}

	var parsed analysisResponse
	if err := parseJSONResponse(response, &parsed); err != nil {
		a.analysisRepo.UpdateError(analysisID, fmt.Sprintf("failed to parse response: %v", err))
		return fmt.Errorf("failed to parse analysis response: %w", err)
	}

	suggested := NormalizeSuggestedScores(parsed.SuggestedScores)

	update := &repositories.AnalysisUpdateData{
		Summary:             &parsed.Summary,
		ExtractedSkills:     parsed.ExtractedSkills,
		ExtractedEducation:  parsed.ExtractedEducation,
		ExtractedExperience: parsed.ExtractedExperience,
		SuggestedScores:     suggested,
	}
	if err := a.analysisRepo.UpdateResult(analysisID, update); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	// Best-effort: index the document text for comparison retrieval.
	a.indexDocument(ctx, doc, content.Text)

	a.logger.Info("analysis completed", zap.String("analysis_id", analysisID.String()))
	return nil
}

func (a *analyzerService) indexDocument(ctx context.Context, doc *models.Document, text string) {
	if a.index == nil || a.embedder == nil {
		return
	}

	chunks := a.chunker.ChunkText(text, 1000, 100)
	embeddings := make([][]float32, 0, len(chunks))
	for _, chunk := range chunks {
		embedding, err := a.embedder.GenerateEmbedding(ctx, chunk)
		if err != nil {
			a.logger.Warn("failed to embed chunk, skipping indexing",
				zap.String("document_id", doc.ID.String()), zap.Error(err))
			return
		}
		embeddings = append(embeddings, embedding)
	}

	err := a.index.IndexChunks(ctx, doc.ID.String(), doc.CandidateID.String(), string(doc.Kind), chunks, embeddings)
	if err != nil {
		a.logger.Warn("failed to index document",
			zap.String("document_id", doc.ID.String()), zap.Error(err))
	}
}

// completeWithRetry calls the provider up to maxRetries times with a doubling
// delay between attempts.
func (a *analyzerService) completeWithRetry(ctx context.Context, provider LLMProvider, prompt string, temperature float32) (string, error) {
	return completeWithRetry(ctx, provider, prompt, temperature, a.maxRetries, a.retryDelay)
}

func completeWithRetry(ctx context.Context, provider LLMProvider, prompt string, temperature float32, maxRetries int, delay time.Duration) (string, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := provider.Complete(ctx, prompt, temperature)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}

// NormalizeSuggestedScores validates an AI-suggested score map against the
// category score shape. Standard categories missing from the response get
// the neutral midpoint 5; every value is rounded and clamped to 0-10.
// Extension categories the model volunteered are kept.
func NormalizeSuggestedScores(raw map[string]float64) models.CategoryScores {
	out := models.CategoryScores{}

	standard := []string{
		models.CategoryTechnicalSkill,
		models.CategoryCommunicationSkill,
		models.CategoryExperience,
		models.CategoryCulturalFit,
	}
	for _, category := range standard {
		value, ok := raw[category]
		if !ok {
			out[category] = 5
			continue
		}
		out[category] = scoring.ClampScore(int(math.Round(value)))
	}

	for category, value := range raw {
		if _, done := out[category]; done {
			continue
		}
		out[category] = scoring.ClampScore(int(math.Round(value)))
	}

	return out
}

func parseJSONResponse(response string, target interface{}) error {
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return nil
}

// extractJSON pulls a JSON object or array out of text that may wrap it in
// markdown fences or surrounding prose.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}
	if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}
	return text
}
