package models

type CreateCandidateRequest struct {
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Phone    string         `json:"phone"`
	LinkedIn string         `json:"linkedin"`
	GitHub   string         `json:"github"`
	Rating   int            `json:"rating"`
	Status   string         `json:"status"`
	Scores   CategoryScores `json:"scores"`
}

// UpdateCandidateRequest carries partial edits; nil fields are left unchanged.
type UpdateCandidateRequest struct {
	Name     *string         `json:"name,omitempty"`
	Email    *string         `json:"email,omitempty"`
	Phone    *string         `json:"phone,omitempty"`
	LinkedIn *string         `json:"linkedin,omitempty"`
	GitHub   *string         `json:"github,omitempty"`
	Rating   *int            `json:"rating,omitempty"`
	Status   *string         `json:"status,omitempty"`
	Scores   *CategoryScores `json:"scores,omitempty"`
}

type RatingRequest struct {
	Rating int `json:"rating"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type ScoresRequest struct {
	Scores CategoryScores `json:"scores"`
}

type UploadResponse struct {
	ID           string `json:"id"`
	Kind         string `json:"kind"`
	Name         string `json:"name"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
}

type AnalyzeRequest struct {
	Provider string `json:"provider"`
}

type AnalyzeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type AnalysisResultResponse struct {
	ID           string        `json:"id"`
	DocumentID   string        `json:"document_id"`
	Provider     string        `json:"provider"`
	Status       string        `json:"status"`
	Result       *AnalysisData `json:"result,omitempty"`
	ErrorMessage *string       `json:"error_message,omitempty"`
}

type AnalysisData struct {
	Summary             string         `json:"summary"`
	ExtractedSkills     []string       `json:"extracted_skills"`
	ExtractedEducation  []string       `json:"extracted_education"`
	ExtractedExperience []string       `json:"extracted_experience"`
	SuggestedScores     CategoryScores `json:"suggested_scores"`
}

type CompareRequest struct {
	CandidateIDs []string `json:"candidate_ids"`
	Provider     string   `json:"provider"`
}

type CompareResponse struct {
	Narrative  string   `json:"narrative"`
	Candidates []string `json:"candidates"`
}
