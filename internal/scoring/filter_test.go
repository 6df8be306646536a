package scoring

import (
	"testing"

	"github.com/ca-vahid/hiring-manager/internal/models"
)

func candidate(name string, status models.CandidateStatus, overall float64) models.Candidate {
	return models.Candidate{
		Name:         name,
		Status:       status,
		OverallScore: overall,
	}
}

func names(candidates []models.Candidate) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.Name)
	}
	return out
}

func assertNames(t *testing.T, got []models.Candidate, want ...string) {
	t.Helper()
	gotNames := names(got)
	if len(gotNames) != len(want) {
		t.Fatalf("got %v, want %v", gotNames, want)
	}
	for i := range want {
		if gotNames[i] != want[i] {
			t.Fatalf("got %v, want %v", gotNames, want)
		}
	}
}

func TestFilterStatus(t *testing.T) {
	input := []models.Candidate{
		candidate("alice", models.StatusActive, 5),
		candidate("bob", models.StatusInactive, 5),
		candidate("carol", models.StatusActive, 5),
	}

	got := Filter(input, FilterOptions{Status: "active"})
	assertNames(t, got, "alice", "carol")

	// "All" and empty keep everything.
	if len(Filter(input, FilterOptions{Status: "All"})) != 3 {
		t.Fatal(`status "All" should not filter`)
	}
	if len(Filter(input, FilterOptions{})) != 3 {
		t.Fatal("empty status should not filter")
	}
}

func TestFilterScoreBoundsInclusive(t *testing.T) {
	input := []models.Candidate{
		candidate("a", models.StatusActive, 6.5),
		candidate("b", models.StatusActive, 7.0),
		candidate("c", models.StatusActive, 8.9),
		candidate("d", models.StatusActive, 9.0),
	}

	min, max := 7.0, 8.9
	got := Filter(input, FilterOptions{MinScore: &min, MaxScore: &max})
	assertNames(t, got, "b", "c")
}

func TestFilterHalfOpenBounds(t *testing.T) {
	input := []models.Candidate{
		candidate("low", models.StatusActive, 2),
		candidate("high", models.StatusActive, 9),
	}

	min := 5.0
	assertNames(t, Filter(input, FilterOptions{MinScore: &min}), "high")

	max := 5.0
	assertNames(t, Filter(input, FilterOptions{MaxScore: &max}), "low")
}

func TestFilterSearchTopLevelFields(t *testing.T) {
	input := []models.Candidate{
		{Name: "Alice Johnson", Status: models.StatusActive, Email: "alice@example.com"},
		{Name: "Bob Smith", Status: models.StatusActive, Phone: "555-0192"},
		{Name: "Carol King", Status: models.StatusActive, LinkedIn: "https://linkedin.com/in/carolk"},
		{Name: "Dan Wu", Status: models.StatusActive, GitHub: "https://github.com/danwu"},
	}

	assertNames(t, Filter(input, FilterOptions{Search: "ALICE@"}), "Alice Johnson")
	assertNames(t, Filter(input, FilterOptions{Search: "0192"}), "Bob Smith")
	assertNames(t, Filter(input, FilterOptions{Search: "in/carolk"}), "Carol King")
	assertNames(t, Filter(input, FilterOptions{Search: "danwu"}), "Dan Wu")
}

func TestFilterSearchMatchesNoteName(t *testing.T) {
	withNote := models.Candidate{
		Name:   "Eve Adams",
		Status: models.StatusActive,
		Documents: []models.Document{
			{Kind: models.DocumentKindNote, Name: "Phone screen follow-up"},
			{Kind: models.DocumentKindResume, Name: "resume.pdf"},
		},
	}
	other := candidate("Frank Lee", models.StatusActive, 3)

	got := Filter([]models.Candidate{withNote, other}, FilterOptions{Search: "phone screen"})
	assertNames(t, got, "Eve Adams")
}

func TestFilterSearchIgnoresResumeName(t *testing.T) {
	c := models.Candidate{
		Name:   "Grace Ho",
		Status: models.StatusActive,
		Documents: []models.Document{
			{Kind: models.DocumentKindResume, Name: "special-keyword.pdf"},
		},
	}

	if got := Filter([]models.Candidate{c}, FilterOptions{Search: "special-keyword"}); len(got) != 0 {
		t.Fatal("only note names participate in search, not other document kinds")
	}
}

func TestFilterMissingFieldsDoNotMatch(t *testing.T) {
	// Candidate with only a name; empty fields never match, never panic.
	c := models.Candidate{Name: "Henry", Status: models.StatusActive}

	if got := Filter([]models.Candidate{c}, FilterOptions{Search: "example.com"}); len(got) != 0 {
		t.Fatal("empty fields must be excluded from the match set")
	}
	assertNames(t, Filter([]models.Candidate{c}, FilterOptions{Search: "hen"}), "Henry")
}

func TestFilterCombined(t *testing.T) {
	input := []models.Candidate{
		{Name: "Go Dev One", Status: models.StatusActive, OverallScore: 8},
		{Name: "Go Dev Two", Status: models.StatusInactive, OverallScore: 8},
		{Name: "Go Dev Three", Status: models.StatusActive, OverallScore: 2},
		{Name: "Designer", Status: models.StatusActive, OverallScore: 8},
	}

	min := 5.0
	got := Filter(input, FilterOptions{Status: "active", Search: "go dev", MinScore: &min})
	assertNames(t, got, "Go Dev One")
}

func TestFilterPreservesInputOrder(t *testing.T) {
	input := []models.Candidate{
		candidate("z", models.StatusActive, 1),
		candidate("a", models.StatusActive, 2),
		candidate("m", models.StatusActive, 3),
	}

	got := Filter(input, FilterOptions{Status: "active"})
	assertNames(t, got, "z", "a", "m")
}
