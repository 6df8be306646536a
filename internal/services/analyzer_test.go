package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ca-vahid/hiring-manager/internal/models"
)

// stubProvider is a canned LLMProvider for tests.
type stubProvider struct {
	responses  []string
	errs       []error
	calls      int
	lastPrompt string
}

func (s *stubProvider) Complete(_ context.Context, prompt string, _ float32) (string, error) {
	s.lastPrompt = prompt
	i := s.calls
	s.calls++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	var resp string
	if i < len(s.responses) {
		resp = s.responses[i]
	}
	return resp, err
}

func TestNormalizeSuggestedScores(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]float64
		want models.CategoryScores
	}{
		{
			name: "missing categories default to midpoint",
			raw:  map[string]float64{"technical_skill": 8},
			want: models.CategoryScores{
				"technical_skill":     8,
				"communication_skill": 5,
				"experience":          5,
				"cultural_fit":        5,
			},
		},
		{
			name: "nil input yields all midpoints",
			raw:  nil,
			want: models.CategoryScores{
				"technical_skill":     5,
				"communication_skill": 5,
				"experience":          5,
				"cultural_fit":        5,
			},
		},
		{
			name: "out of range values are clamped",
			raw: map[string]float64{
				"technical_skill":     14,
				"communication_skill": -2,
				"experience":          6,
				"cultural_fit":        0,
			},
			want: models.CategoryScores{
				"technical_skill":     10,
				"communication_skill": 0,
				"experience":          6,
				"cultural_fit":        0,
			},
		},
		{
			name: "fractional values round half away from zero",
			raw: map[string]float64{
				"technical_skill":     7.5,
				"communication_skill": 6.4,
				"experience":          5,
				"cultural_fit":        5,
			},
			want: models.CategoryScores{
				"technical_skill":     8,
				"communication_skill": 6,
				"experience":          5,
				"cultural_fit":        5,
			},
		},
		{
			name: "extension categories are kept",
			raw: map[string]float64{
				"technical_skill":     7,
				"communication_skill": 7,
				"experience":          7,
				"cultural_fit":        7,
				"leadership":          9,
			},
			want: models.CategoryScores{
				"technical_skill":     7,
				"communication_skill": 7,
				"experience":          7,
				"cultural_fit":        7,
				"leadership":          9,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSuggestedScores(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for category, want := range tt.want {
				if got[category] != want {
					t.Fatalf("category %q = %d, want %d (full: %v)", category, got[category], want, got)
				}
			}
		})
	}
}

func TestParseJSONResponseWithMarkdownFences(t *testing.T) {
	response := "Here is the analysis:\n```json\n" +
		`{"summary": "Solid backend engineer.", "extracted_skills": ["Go", "Postgres"], "suggested_scores": {"technical_skill": 8}}` +
		"\n```\nLet me know if you need more."

	var parsed analysisResponse
	if err := parseJSONResponse(response, &parsed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if parsed.Summary != "Solid backend engineer." {
		t.Fatalf("unexpected summary: %q", parsed.Summary)
	}
	if len(parsed.ExtractedSkills) != 2 || parsed.ExtractedSkills[0] != "Go" {
		t.Fatalf("unexpected skills: %v", parsed.ExtractedSkills)
	}
	if parsed.SuggestedScores["technical_skill"] != 8 {
		t.Fatalf("unexpected scores: %v", parsed.SuggestedScores)
	}
}

func TestParseJSONResponseRejectsGarbage(t *testing.T) {
	var parsed analysisResponse
	if err := parseJSONResponse("no json here at all", &parsed); err == nil {
		t.Fatal("expected an error for non-JSON input")
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain object", `{"a":1}`, `{"a":1}`},
		{"fenced object", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced object with prose", "Here you go:\n```json\n{\"a\":1}\n```\ndone", `{"a":1}`},
		{"object in prose", `the result is {"a":1} as requested`, `{"a":1}`},
		{"array", `scores: [1,2,3]`, `[1,2,3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.input); got != tt.want {
				t.Fatalf("extractJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCompleteWithRetryEventuallySucceeds(t *testing.T) {
	stub := &stubProvider{
		responses: []string{"", "", "ok"},
		errs:      []error{errors.New("boom"), errors.New("boom"), nil},
	}

	got, err := completeWithRetry(context.Background(), stub, "prompt", 0.3, 3, time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Fatalf("got %q, want %q", got, "ok")
	}
	if stub.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", stub.calls)
	}
}

func TestCompleteWithRetryExhaustsAttempts(t *testing.T) {
	stub := &stubProvider{
		errs: []error{errors.New("a"), errors.New("b")},
	}

	_, err := completeWithRetry(context.Background(), stub, "prompt", 0.3, 2, time.Millisecond)
	if err == nil {
		t.Fatal("expected an error after exhausting attempts")
	}
	if stub.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", stub.calls)
	}
}

func TestCompleteWithRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stub := &stubProvider{
		errs: []error{errors.New("boom"), errors.New("boom"), errors.New("boom")},
	}

	_, err := completeWithRetry(ctx, stub, "prompt", 0.3, 3, time.Minute)
	if err == nil {
		t.Fatal("expected an error")
	}
	if stub.calls != 1 {
		t.Fatalf("expected retries to stop after cancellation, got %d calls", stub.calls)
	}
}
