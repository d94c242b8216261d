package match

import (
	"math"
	"regexp"
	"strconv"
)

var digitsRe = regexp.MustCompile(`[0-9]+`)

type ExperienceMatchResult struct {
	Score               int    `json:"score"`
	CandidateExperience string `json:"candidateExperience"`
	RequiredExperience  string `json:"requiredExperience,omitempty"`
	CandidateYears      int    `json:"candidateYears"`
	RequiredYears       int    `json:"requiredYears"`
}

// ExperienceMatch compares the years since graduation against the job's
// requirement. A profile without a graduation year counts as zero years.
func ExperienceMatch(profile CandidateProfile, requirement string, currentYear int) ExperienceMatchResult {
	years := 0
	if profile.GraduationYear != 0 {
		years = currentYear - profile.GraduationYear
	}

	required := RequiredYears(requirement)

	return ExperienceMatchResult{
		Score:               experienceScore(years, required),
		CandidateExperience: strconv.Itoa(years) + " years",
		RequiredExperience:  requirement,
		CandidateYears:      years,
		RequiredYears:       required,
	}
}

// RequiredYears extracts the first run of digits from a free text
// requirement such as "3+ years". Text without digits yields 0.
func RequiredYears(requirement string) int {
	run := digitsRe.FindString(requirement)
	if run == "" {
		return 0
	}

	n, err := strconv.Atoi(run)
	if err != nil {
		// only overflow is possible here
		return math.MaxInt
	}
	return n
}

func experienceScore(years, required int) int {
	have, need := float64(years), float64(required)

	switch {
	case required == 0:
		return 100
	case years >= required:
		return 100
	case have >= need*0.75:
		return 80
	case have >= need*0.5:
		return 60
	default:
		return 40
	}
}
