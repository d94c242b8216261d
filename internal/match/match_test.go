package match

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreMatch_NoRequirementsScoresFull(t *testing.T) {
	profiles := []CandidateProfile{
		{},
		{Skills: []string{"Go"}, GraduationYear: 2023, Location: "Dhaka"},
		{Skills: []string{"c"}, Location: "nowhere"},
	}

	for _, p := range profiles {
		result := ScoreMatch(p, JobPosting{}, 2024)
		assert.Equal(t, 100, result.MatchScore)
		assert.Equal(t, 100, result.MatchDetails.SkillMatch.Score)
		assert.Empty(t, result.MatchDetails.SkillMatch.MatchedSkills)
		assert.Equal(t, 100, result.MatchDetails.ExperienceMatch.Score)
		assert.True(t, result.MatchDetails.LocationMatch.Matched)
	}
}

func TestScoreMatch_WeightedComposite(t *testing.T) {
	tests := []struct {
		name    string
		profile CandidateProfile
		job     JobPosting
		want    int
	}{
		{
			name:    "one of three skills, experience met, remote",
			profile: CandidateProfile{Skills: []string{"React", "Node.js"}, GraduationYear: 2020, Location: "Remote"},
			job:     JobPosting{Skills: []string{"react", "express", "mongodb"}, ExperienceRequirement: "2+ years", Location: "Bangalore, Remote OK"},
			// 33*0.5 + 100*0.3 + 100*0.2 = 66.5
			want: 67,
		},
		{
			name:    "empty profile against full requirements",
			profile: CandidateProfile{},
			job:     JobPosting{Skills: []string{"go"}, ExperienceRequirement: "5 years", Location: "Berlin"},
			// 0*0.5 + 40*0.3 + 50*0.2
			want: 22,
		},
		{
			name:    "all skills, partial experience, wrong city",
			profile: CandidateProfile{Skills: []string{"Go", "Postgres"}, GraduationYear: 2021, Location: "Dhaka"},
			job:     JobPosting{Skills: []string{"go", "postgres"}, ExperienceRequirement: "4 years", Location: "Chittagong"},
			// 100*0.5 + 80*0.3 + 50*0.2
			want: 84,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := ScoreMatch(tt.profile, tt.job, 2024)
			assert.Equal(t, tt.want, result.MatchScore)

			d := result.MatchDetails
			expected := int(math.Round(float64(d.SkillMatch.Score)*0.5 +
				float64(d.ExperienceMatch.Score)*0.3 +
				float64(d.LocationMatch.Score)*0.2))
			assert.Equal(t, expected, result.MatchScore)
		})
	}
}

func TestScoreMatch_Deterministic(t *testing.T) {
	profile := CandidateProfile{Skills: []string{"Go", "Kubernetes"}, GraduationYear: 2019, Location: "Dhaka"}
	job := JobPosting{Skills: []string{"go", "docker"}, ExperienceRequirement: "3+ years", Location: "Dhaka, Bangladesh"}

	first := ScoreMatch(profile, job, 2024)
	second := ScoreMatch(profile, job, 2024)
	assert.Equal(t, first, second)
}

func TestScoreMatch_DoesNotMutateInputs(t *testing.T) {
	profile := CandidateProfile{Skills: []string{"  React  "}}
	job := JobPosting{Skills: []string{" REACT "}}

	ScoreMatch(profile, job, 2024)

	assert.Equal(t, []string{"  React  "}, profile.Skills)
	assert.Equal(t, []string{" REACT "}, job.Skills)
}

func TestScoreMatch_ConcurrentCallers(t *testing.T) {
	profile := CandidateProfile{Skills: []string{"Go"}, GraduationYear: 2020, Location: "Remote"}
	job := JobPosting{Skills: []string{"go", "sql"}, ExperienceRequirement: "2 years", Location: "Remote"}
	want := ScoreMatch(profile, job, 2024)

	var wg sync.WaitGroup
	results := make([]MatchResult, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = ScoreMatch(profile, job, 2024)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestScorer_UsesClockYear(t *testing.T) {
	clock := func() time.Time { return time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC) }
	scorer := NewScorer().WithClock(clock)
	require.Equal(t, 2024, scorer.Year())

	profile := CandidateProfile{GraduationYear: 2020}
	result := scorer.Score(profile, JobPosting{ExperienceRequirement: "2+ years"})
	assert.Equal(t, 4, result.MatchDetails.ExperienceMatch.CandidateYears)
	assert.Equal(t, "4 years", result.MatchDetails.ExperienceMatch.CandidateExperience)
}

func TestScorer_FixedYearOverridesClock(t *testing.T) {
	scorer := NewScorer().WithYear(2030)
	assert.Equal(t, 2030, scorer.Year())

	restored := scorer.WithYear(0).WithClock(func() time.Time {
		return time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC)
	})
	assert.Equal(t, 2022, restored.Year())
	assert.Equal(t, 2030, scorer.Year(), "copies must not affect the original")
}

func TestMatchResult_Reasons(t *testing.T) {
	result := ScoreMatch(
		CandidateProfile{Skills: []string{"go"}, GraduationYear: 2018, Location: "Dhaka"},
		JobPosting{Skills: []string{"go", "rust"}, ExperienceRequirement: "3+ years", Location: "Dhaka"},
		2024,
	)

	assert.Equal(t, []string{
		"1 of 2 required skills match",
		"meets the 3+ years experience requirement",
		"location matches",
	}, result.Reasons())

	empty := ScoreMatch(CandidateProfile{}, JobPosting{Location: "Dhaka"}, 2024)
	assert.Equal(t, []string{"no specific skills required", "no experience requirement"}, empty.Reasons())
}
