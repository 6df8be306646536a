package scoring

import (
	"testing"

	"github.com/ca-vahid/hiring-manager/internal/models"
)

func TestOverall(t *testing.T) {
	tests := []struct {
		name    string
		scores  models.CategoryScores
		weights models.CategoryWeights
		want    float64
	}{
		{
			name:    "empty scores and weights",
			scores:  models.CategoryScores{},
			weights: models.CategoryWeights{},
			want:    0,
		},
		{
			name:   "all weights zero",
			scores: models.CategoryScores{"technical_skill": 8, "experience": 6},
			weights: models.CategoryWeights{
				"technical_skill": 0,
				"experience":      0,
			},
			want: 0,
		},
		{
			name:   "equal weights perfect scores",
			scores: models.CategoryScores{"technical_skill": 10, "communication_skill": 10, "experience": 10, "cultural_fit": 10},
			weights: models.CategoryWeights{
				"technical_skill":     1,
				"communication_skill": 1,
				"experience":          1,
				"cultural_fit":        1,
			},
			want: 10.0,
		},
		{
			// 0.4*8 + 0.25*6 + 0.25*7 + 0.1*9 = 7.35, rounds half away
			// from zero to 7.4.
			name:   "rounding boundary",
			scores: models.CategoryScores{"technical_skill": 8, "communication_skill": 6, "experience": 7, "cultural_fit": 9},
			weights: models.CategoryWeights{
				"technical_skill":     0.4,
				"communication_skill": 0.25,
				"experience":          0.25,
				"cultural_fit":        0.1,
			},
			want: 7.4,
		},
		{
			name:   "weights not summing to one are normalized",
			scores: models.CategoryScores{"technical_skill": 8, "experience": 4},
			weights: models.CategoryWeights{
				"technical_skill": 2,
				"experience":      2,
			},
			want: 6.0,
		},
		{
			name:   "category without weight is ignored",
			scores: models.CategoryScores{"technical_skill": 10, "juggling": 0},
			weights: models.CategoryWeights{
				"technical_skill": 0.5,
			},
			want: 10.0,
		},
		{
			name:    "weight without score contributes nothing",
			scores:  models.CategoryScores{"technical_skill": 6},
			weights: models.CategoryWeights{"technical_skill": 1, "experience": 1},
			want:    6.0,
		},
		{
			name:    "nil maps",
			scores:  nil,
			weights: nil,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overall(tt.scores, tt.weights)
			if got != tt.want {
				t.Fatalf("Overall() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClampScore(t *testing.T) {
	if got := ClampScore(-3); got != 0 {
		t.Fatalf("ClampScore(-3) = %d, want 0", got)
	}
	if got := ClampScore(15); got != 10 {
		t.Fatalf("ClampScore(15) = %d, want 10", got)
	}
	if got := ClampScore(7); got != 7 {
		t.Fatalf("ClampScore(7) = %d, want 7", got)
	}
}
