package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ca-vahid/hiring-manager/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAnalysisPrompt creates the prompt for analyzing a single uploaded
// document. The response contract matches the Analysis model: a JSON object
// with summary, extracted lists and suggested category scores.
func (pb *PromptBuilder) BuildAnalysisPrompt(kind models.DocumentKind, documentText string) string {
	return fmt.Sprintf(`You are an expert HR recruiter analyzing a candidate's %s for a hiring pipeline.

DOCUMENT CONTENT:
%s

Your task is to summarize the document and extract structured information.

Suggest a score from 0 to 10 for each of the following categories:
- technical_skill: depth and relevance of technical abilities
- communication_skill: clarity of writing, presentation, collaboration signals
- experience: years of experience and complexity of past work
- cultural_fit: teamwork, learning mindset, alignment signals

Return your response in the following JSON format:
{
  "summary": "<3-5 sentence summary of the document>",
  "extracted_skills": ["<skill>", ...],
  "extracted_education": ["<degree or certification>", ...],
  "extracted_experience": ["<role, company, duration>", ...],
  "suggested_scores": {
    "technical_skill": <0-10>,
    "communication_skill": <0-10>,
    "experience": <0-10>,
    "cultural_fit": <0-10>
  }
}

Be objective. Cite only what the document supports; leave lists empty when the document has no relevant content.`,
		strings.ReplaceAll(string(kind), "_", " "), documentText)
}

// BuildComparisonPrompt creates the prompt for a multi-candidate comparison
// narrative. Free text response, no JSON.
func (pb *PromptBuilder) BuildComparisonPrompt(profiles []CandidateProfile, contextExcerpts string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert technical hiring manager comparing candidates for the same role.\n\n")

	for i, p := range profiles {
		sb.WriteString(fmt.Sprintf("CANDIDATE %d: %s\n", i+1, p.Name))
		sb.WriteString(fmt.Sprintf("- Overall score: %.1f / 10\n", p.OverallScore))
		sb.WriteString(fmt.Sprintf("- Star rating: %d / 5\n", p.Rating))
		if len(p.Scores) > 0 {
			categories := make([]string, 0, len(p.Scores))
			for category := range p.Scores {
				categories = append(categories, category)
			}
			sort.Strings(categories)

			parts := make([]string, 0, len(categories))
			for _, category := range categories {
				parts = append(parts, fmt.Sprintf("%s=%d", category, p.Scores[category]))
			}
			sb.WriteString("- Category scores: " + strings.Join(parts, ", ") + "\n")
		}
		if p.ResumeSummary != "" {
			sb.WriteString("- Resume summary: " + p.ResumeSummary + "\n")
		}
		sb.WriteString("\n")
	}

	if contextExcerpts != "" {
		sb.WriteString("RELEVANT DOCUMENT EXCERPTS:\n")
		sb.WriteString(contextExcerpts)
		sb.WriteString("\n\n")
	}

	sb.WriteString("Write a concise comparison narrative (4-8 sentences) that covers:\n")
	sb.WriteString("1. Each candidate's standout strengths\n")
	sb.WriteString("2. Meaningful gaps or risks for each\n")
	sb.WriteString("3. A ranked recommendation with a one-line rationale per candidate\n\n")
	sb.WriteString("Return ONLY the narrative text, no JSON and no headings.")

	return sb.String()
}

// CandidateProfile is the slice of candidate state the comparison prompt
// needs.
type CandidateProfile struct {
	Name          string
	OverallScore  float64
	Rating        int
	Scores        models.CategoryScores
	ResumeSummary string
}

// FormatContextExcerpts renders vector-index hits for prompt inclusion.
func FormatContextExcerpts(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Excerpt %d (score %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}
	return strings.Join(parts, "\n\n")
}
