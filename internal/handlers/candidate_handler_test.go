package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ca-vahid/hiring-manager/internal/models"
	"github.com/ca-vahid/hiring-manager/internal/services"
)

// stubCandidateRepo is an in-memory CandidateRepository.
type stubCandidateRepo struct {
	candidates []models.Candidate
	updates    map[string]interface{}
	created    *models.Candidate
}

func (s *stubCandidateRepo) Create(c *models.Candidate) error {
	s.created = c
	s.candidates = append(s.candidates, *c)
	return nil
}

func (s *stubCandidateRepo) FindByID(id uuid.UUID) (*models.Candidate, error) {
	for i := range s.candidates {
		if s.candidates[i].ID == id {
			return &s.candidates[i], nil
		}
	}
	return nil, fmt.Errorf("candidate not found")
}

func (s *stubCandidateRepo) FindByIDs(ids []uuid.UUID) ([]models.Candidate, error) {
	var out []models.Candidate
	for _, id := range ids {
		if c, err := s.FindByID(id); err == nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *stubCandidateRepo) FindAll() ([]models.Candidate, error) {
	return s.candidates, nil
}

func (s *stubCandidateRepo) Update(id uuid.UUID, updates map[string]interface{}) error {
	if _, err := s.FindByID(id); err != nil {
		return err
	}
	s.updates = updates
	return nil
}

func (s *stubCandidateRepo) Delete(id uuid.UUID) error {
	for i := range s.candidates {
		if s.candidates[i].ID == id {
			s.candidates = append(s.candidates[:i], s.candidates[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("candidate not found")
}

func newTestApp(repo *stubCandidateRepo) *fiber.App {
	app := fiber.New()
	h := NewCandidateHandler(repo, services.NewExporterService(), models.DefaultWeights())

	app.Post("/candidates", h.HandleCreate)
	app.Get("/candidates", h.HandleList)
	app.Get("/candidates/export", h.HandleExport)
	app.Put("/candidates/:id/scores", h.HandleUpdateScores)
	app.Patch("/candidates/:id/rating", h.HandleUpdateRating)
	return app
}

func seedRepo() *stubCandidateRepo {
	return &stubCandidateRepo{candidates: []models.Candidate{
		{ID: uuid.New(), Name: "Alice", Status: models.StatusActive, OverallScore: 9.0},
		{ID: uuid.New(), Name: "Bob", Status: models.StatusInactive, OverallScore: 4.0},
		{ID: uuid.New(), Name: "Carol", Status: models.StatusActive, OverallScore: 6.5},
	}}
}

type listResponse struct {
	Candidates []models.Candidate `json:"candidates"`
	Count      int                `json:"count"`
}

func doList(t *testing.T, app *fiber.App, query string) listResponse {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/candidates"+query, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out listResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return out
}

func TestHandleListStatusFilter(t *testing.T) {
	app := newTestApp(seedRepo())

	got := doList(t, app, "?status=active")
	if got.Count != 2 {
		t.Fatalf("count = %d, want 2", got.Count)
	}
	if got.Candidates[0].Name != "Alice" || got.Candidates[1].Name != "Carol" {
		t.Fatalf("unexpected order: %v, %v", got.Candidates[0].Name, got.Candidates[1].Name)
	}
}

func TestHandleListScoreBoundsAndSort(t *testing.T) {
	app := newTestApp(seedRepo())

	got := doList(t, app, "?min_score=5&sort_by=overall_score&sort_dir=desc")
	if got.Count != 2 {
		t.Fatalf("count = %d, want 2", got.Count)
	}
	if got.Candidates[0].Name != "Alice" || got.Candidates[1].Name != "Carol" {
		t.Fatalf("unexpected order: %v, %v", got.Candidates[0].Name, got.Candidates[1].Name)
	}
}

func TestHandleListInvalidBound(t *testing.T) {
	app := newTestApp(seedRepo())

	req := httptest.NewRequest(http.MethodGet, "/candidates?min_score=soon", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleCreateComputesOverall(t *testing.T) {
	repo := &stubCandidateRepo{}
	app := newTestApp(repo)

	body, _ := json.Marshal(models.CreateCandidateRequest{
		Name:   "Dora",
		Rating: 3,
		Scores: models.CategoryScores{
			"technical_skill":     8,
			"communication_skill": 6,
			"experience":          7,
			"cultural_fit":        9,
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/candidates", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	if repo.created == nil {
		t.Fatal("expected candidate to be created")
	}
	// Default weights 0.4/0.25/0.25/0.1 over (8,6,7,9) = 7.35 -> 7.4.
	if repo.created.OverallScore != 7.4 {
		t.Fatalf("overall = %v, want 7.4", repo.created.OverallScore)
	}
	if repo.created.Status != models.StatusActive {
		t.Fatalf("status = %q, want default active", repo.created.Status)
	}
}

func TestHandleCreateRejectsBadRating(t *testing.T) {
	app := newTestApp(&stubCandidateRepo{})

	body, _ := json.Marshal(models.CreateCandidateRequest{Name: "Eve", Rating: 6})
	req := httptest.NewRequest(http.MethodPost, "/candidates", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleUpdateScoresRecomputesOverall(t *testing.T) {
	repo := seedRepo()
	app := newTestApp(repo)

	id := repo.candidates[0].ID
	body, _ := json.Marshal(models.ScoresRequest{Scores: models.CategoryScores{
		"technical_skill":     10,
		"communication_skill": 10,
		"experience":          10,
		"cultural_fit":        10,
	}})

	req := httptest.NewRequest(http.MethodPut, "/candidates/"+id.String()+"/scores", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if repo.updates["overall_score"] != 10.0 {
		t.Fatalf("overall_score update = %v, want 10.0", repo.updates["overall_score"])
	}
}

func TestHandleUpdateRatingValidates(t *testing.T) {
	repo := seedRepo()
	app := newTestApp(repo)
	id := repo.candidates[0].ID

	body, _ := json.Marshal(models.RatingRequest{Rating: -1})
	req := httptest.NewRequest(http.MethodPatch, "/candidates/"+id.String()+"/rating", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleExportContentType(t *testing.T) {
	app := newTestApp(seedRepo())

	req := httptest.NewRequest(http.MethodGet, "/candidates/export", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	ct := resp.Header.Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("unexpected content type: %q", ct)
	}
}
