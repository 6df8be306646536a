package scoring

import (
	"testing"
	"time"

	"github.com/ca-vahid/hiring-manager/internal/models"
)

func TestSortByName(t *testing.T) {
	input := []models.Candidate{
		candidate("charlie", models.StatusActive, 0),
		candidate("alice", models.StatusActive, 0),
		candidate("Bob", models.StatusActive, 0),
	}

	asc := Sort(input, SortOption{Field: "name"})
	assertNames(t, asc, "alice", "Bob", "charlie")

	desc := Sort(input, SortOption{Field: "name", Descending: true})
	assertNames(t, desc, "charlie", "Bob", "alice")
}

func TestSortLeavesInputUntouched(t *testing.T) {
	input := []models.Candidate{
		candidate("b", models.StatusActive, 0),
		candidate("a", models.StatusActive, 0),
	}

	_ = Sort(input, SortOption{Field: "name"})
	assertNames(t, input, "b", "a")
}

func TestSortByTimestamps(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	input := []models.Candidate{
		{Name: "newest", CreatedAt: base.Add(2 * time.Hour)},
		{Name: "oldest", CreatedAt: base},
		{Name: "middle", CreatedAt: base.Add(time.Hour)},
	}

	got := Sort(input, SortOption{Field: "createdAt"})
	assertNames(t, got, "oldest", "middle", "newest")

	got = Sort(input, SortOption{Field: "created_at", Descending: true})
	assertNames(t, got, "newest", "middle", "oldest")
}

func TestSortByDotPathCategoryScore(t *testing.T) {
	input := []models.Candidate{
		{Name: "mid", Scores: models.CategoryScores{"technical_skill": 5}},
		{Name: "high", Scores: models.CategoryScores{"technical_skill": 9}},
		{Name: "low", Scores: models.CategoryScores{"technical_skill": 2}},
	}

	got := Sort(input, SortOption{Field: "scores.technical_skill"})
	assertNames(t, got, "low", "mid", "high")

	got = Sort(input, SortOption{Field: "scores.technical_skill", Descending: true})
	assertNames(t, got, "high", "mid", "low")
}

func TestSortMissingValuesGoLastBothDirections(t *testing.T) {
	input := []models.Candidate{
		{Name: "no-score-1"},
		{Name: "nine", Scores: models.CategoryScores{"technical_skill": 9}},
		{Name: "no-score-2"},
		{Name: "three", Scores: models.CategoryScores{"technical_skill": 3}},
	}

	asc := Sort(input, SortOption{Field: "scores.technical_skill"})
	assertNames(t, asc, "three", "nine", "no-score-1", "no-score-2")

	desc := Sort(input, SortOption{Field: "scores.technical_skill", Descending: true})
	assertNames(t, desc, "nine", "three", "no-score-1", "no-score-2")
}

func TestSortBySimpleFieldViaPath(t *testing.T) {
	input := []models.Candidate{
		{Name: "two", Rating: 2},
		{Name: "five", Rating: 5},
		{Name: "zero", Rating: 0},
	}

	got := Sort(input, SortOption{Field: "rating", Descending: true})
	assertNames(t, got, "five", "two", "zero")

	got = Sort(input, SortOption{Field: "overall_score"})
	// All zero: stable, input order preserved.
	assertNames(t, got, "two", "five", "zero")
}

func TestSortUnknownFieldIsStable(t *testing.T) {
	input := []models.Candidate{
		candidate("first", models.StatusActive, 0),
		candidate("second", models.StatusActive, 0),
	}

	got := Sort(input, SortOption{Field: "no.such.path"})
	assertNames(t, got, "first", "second")
}

func TestSortEmptyFieldKeepsOrder(t *testing.T) {
	input := []models.Candidate{
		candidate("z", models.StatusActive, 0),
		candidate("a", models.StatusActive, 0),
	}

	got := Sort(input, SortOption{})
	assertNames(t, got, "z", "a")
}

func TestSortStableTieBreak(t *testing.T) {
	input := []models.Candidate{
		{Name: "dup", Email: "first@example.com", OverallScore: 5},
		{Name: "dup", Email: "second@example.com", OverallScore: 5},
		{Name: "aaa", Email: "third@example.com", OverallScore: 5},
	}

	got := Sort(input, SortOption{Field: "overallScore"})
	if got[0].Email != "first@example.com" || got[1].Email != "second@example.com" {
		t.Fatalf("equal keys must keep input order, got %v then %v", got[0].Email, got[1].Email)
	}
}

func TestLookupPath(t *testing.T) {
	c := models.Candidate{
		Name:   "x",
		Scores: models.CategoryScores{"experience": 7},
	}

	tests := []struct {
		path   string
		want   any
		wantOK bool
	}{
		{"name", "x", true},
		{"Name", "x", true},
		{"scores.experience", 7, true},
		{"scores.missing", nil, false},
		{"nope", nil, false},
		{"scores.experience.deeper", nil, false},
	}

	for _, tt := range tests {
		got, ok := lookupPath(&c, tt.path)
		if ok != tt.wantOK {
			t.Fatalf("lookupPath(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
		}
		if ok && got != tt.want {
			t.Fatalf("lookupPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
