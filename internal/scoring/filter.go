package scoring

import (
	"strings"

	"github.com/ca-vahid/hiring-manager/internal/models"
)

// FilterOptions narrows a candidate list. Zero values mean "no constraint":
// an empty (or "all") status keeps both statuses, an empty search term keeps
// everything, and nil score bounds are unbounded. Bounds are inclusive.
type FilterOptions struct {
	Status   string
	Search   string
	MinScore *float64
	MaxScore *float64
}

// Filter applies the status, search and score-bound predicates in that
// order, preserving the relative order of the input. The predicates are
// independent; each simply drops non-matching candidates.
func Filter(candidates []models.Candidate, opts FilterOptions) []models.Candidate {
	out := candidates
	if status := strings.ToLower(strings.TrimSpace(opts.Status)); status != "" && status != "all" {
		out = keep(out, func(c *models.Candidate) bool {
			return string(c.Status) == status
		})
	}
	if term := strings.ToLower(strings.TrimSpace(opts.Search)); term != "" {
		out = keep(out, func(c *models.Candidate) bool {
			return matchesSearch(c, term)
		})
	}
	if opts.MinScore != nil {
		min := *opts.MinScore
		out = keep(out, func(c *models.Candidate) bool {
			return c.OverallScore >= min
		})
	}
	if opts.MaxScore != nil {
		max := *opts.MaxScore
		out = keep(out, func(c *models.Candidate) bool {
			return c.OverallScore <= max
		})
	}
	return out
}

func keep(candidates []models.Candidate, pred func(*models.Candidate) bool) []models.Candidate {
	result := make([]models.Candidate, 0, len(candidates))
	for i := range candidates {
		if pred(&candidates[i]) {
			result = append(result, candidates[i])
		}
	}
	return result
}

// matchesSearch reports whether the lowercased term is a substring of any of
// the candidate's searchable fields: name, email, phone, social links, or a
// note's display name. Empty fields contribute nothing to the match set.
func matchesSearch(c *models.Candidate, term string) bool {
	fields := []string{c.Name, c.Email, c.Phone, c.LinkedIn, c.GitHub}
	fields = append(fields, c.NoteNames()...)
	for _, field := range fields {
		if field == "" {
			continue
		}
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
