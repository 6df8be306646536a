package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ca-vahid/hiring-manager/internal/models"
	"github.com/ca-vahid/hiring-manager/internal/repositories"
)

// ComparerService produces a free-text comparison narrative across two or
// more candidates, grounded with resume summaries and, when the vector
// index is available, similar document excerpts.
type ComparerService interface {
	Compare(ctx context.Context, candidateIDs []uuid.UUID, provider models.AIProvider) (string, []models.Candidate, error)
}

type comparerService struct {
	candidateRepo repositories.CandidateRepository
	registry      *ProviderRegistry
	embedder      GeminiService // nil when Gemini is not configured
	index         DocumentIndex // nil when Qdrant is not configured
	promptBuilder *PromptBuilder
	logger        *zap.Logger
	maxRetries    int
	retryDelay    time.Duration
}

func NewComparerService(
	candidateRepo repositories.CandidateRepository,
	registry *ProviderRegistry,
	embedder GeminiService,
	index DocumentIndex,
	logger *zap.Logger,
	maxRetries int,
	retryDelay time.Duration,
) ComparerService {
	return &comparerService{
		candidateRepo: candidateRepo,
		registry:      registry,
		embedder:      embedder,
		index:         index,
		promptBuilder: NewPromptBuilder(),
		logger:        logger,
		maxRetries:    maxRetries,
		retryDelay:    retryDelay,
	}
}

func (s *comparerService) Compare(ctx context.Context, candidateIDs []uuid.UUID, provider models.AIProvider) (string, []models.Candidate, error) {
	if len(candidateIDs) < 2 {
		return "", nil, fmt.Errorf("comparison requires at least two candidates")
	}

	llm, err := s.registry.Get(provider)
	if err != nil {
		return "", nil, err
	}

	candidates, err := s.candidateRepo.FindByIDs(candidateIDs)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load candidates: %w", err)
	}
	if len(candidates) != len(candidateIDs) {
		return "", nil, fmt.Errorf("one or more candidates not found")
	}

	profiles := make([]CandidateProfile, 0, len(candidates))
	for i := range candidates {
		profiles = append(profiles, buildProfile(&candidates[i]))
	}

	excerpts := s.retrieveExcerpts(ctx, profiles)

	prompt := s.promptBuilder.BuildComparisonPrompt(profiles, excerpts)

	s.logger.Info("generating comparison narrative",
		zap.Int("candidates", len(profiles)),
		zap.String("provider", string(provider)))

	narrative, err := completeWithRetry(ctx, llm, prompt, 0.5, s.maxRetries, s.retryDelay)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate comparison: %w", err)
	}

	return strings.TrimSpace(narrative), candidates, nil
}

func buildProfile(c *models.Candidate) CandidateProfile {
	profile := CandidateProfile{
		Name:         c.Name,
		OverallScore: c.OverallScore,
		Rating:       c.Rating,
		Scores:       c.Scores,
	}
	for _, doc := range c.Documents {
		if doc.Kind != models.DocumentKindResume || doc.Analysis == nil {
			continue
		}
		if doc.Analysis.Status == models.AnalysisCompleted && doc.Analysis.Summary != nil {
			profile.ResumeSummary = *doc.Analysis.Summary
		}
	}
	return profile
}

// retrieveExcerpts is best-effort: a missing index or failed embedding only
// loses the extra context, never the comparison.
func (s *comparerService) retrieveExcerpts(ctx context.Context, profiles []CandidateProfile) string {
	if s.index == nil || s.embedder == nil {
		return ""
	}

	var names []string
	for _, p := range profiles {
		names = append(names, p.Name)
	}
	query := "Strengths, experience and skills of candidates: " + strings.Join(names, ", ")

	embedding, err := s.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		s.logger.Warn("failed to embed comparison query", zap.Error(err))
		return ""
	}

	results, err := s.index.SearchSimilar(ctx, embedding, 5)
	if err != nil {
		s.logger.Warn("failed to retrieve comparison context", zap.Error(err))
		return ""
	}

	return FormatContextExcerpts(results)
}
