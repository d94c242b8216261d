package match

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillMatch(t *testing.T) {
	tests := []struct {
		name        string
		candidate   []string
		job         []string
		wantScore   int
		wantMatched []string
		wantTotal   int
		wantMissing []string
	}{
		{
			name:        "no job skills is trivially satisfied",
			candidate:   []string{"Go"},
			job:         nil,
			wantScore:   100,
			wantMatched: []string{},
			wantTotal:   0,
		},
		{
			name:        "no job skills and no candidate skills",
			wantScore:   100,
			wantMatched: []string{},
		},
		{
			name:        "no candidate skills",
			candidate:   []string{},
			job:         []string{"Go", "SQL"},
			wantScore:   0,
			wantMatched: []string{},
			wantTotal:   2,
			wantMissing: []string{"go", "sql"},
		},
		{
			name:        "case insensitive substring in either direction",
			candidate:   []string{"React", "Node.js"},
			job:         []string{"react", "express", "mongodb"},
			wantScore:   33,
			wantMatched: []string{"react"},
			wantTotal:   3,
			wantMissing: []string{"express", "mongodb"},
		},
		{
			name:        "job skill contained in candidate skill",
			candidate:   []string{"react.js"},
			job:         []string{" React "},
			wantScore:   100,
			wantMatched: []string{"react"},
			wantTotal:   1,
		},
		{
			name:        "short tokens over-match",
			candidate:   []string{"C"},
			job:         []string{"C++", "Rust"},
			wantScore:   50,
			wantMatched: []string{"c++"},
			wantTotal:   2,
			wantMissing: []string{"rust"},
		},
		{
			name:        "duplicates in job list are kept",
			candidate:   []string{"go"},
			job:         []string{"Go", "go", "Java"},
			wantScore:   67,
			wantMatched: []string{"go", "go"},
			wantTotal:   3,
			wantMissing: []string{"java"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SkillMatch(tt.candidate, tt.job)

			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantMatched, got.MatchedSkills)
			assert.Equal(t, tt.wantTotal, got.TotalSkills)
			assert.Equal(t, tt.wantMissing, got.MissingSkills)
		})
	}
}

func TestSkillMatch_ScoreMatchesMatchedRatio(t *testing.T) {
	candidate := []string{"go", "sql", "docker"}
	jobs := [][]string{
		{"go"},
		{"go", "rust"},
		{"go", "rust", "java", "kotlin", "swift", "docker", "k8s"},
		{"haskell", "ocaml"},
	}

	for _, job := range jobs {
		got := SkillMatch(candidate, job)
		assert.GreaterOrEqual(t, got.Score, 0)
		assert.LessOrEqual(t, got.Score, 100)

		want := int(math.Round(100 * float64(len(got.MatchedSkills)) / float64(got.TotalSkills)))
		assert.Equal(t, want, got.Score)

		for _, m := range got.MatchedSkills {
			assert.Contains(t, normalizeAll(job), m, "matched skill must come from the job")
		}
	}
}
