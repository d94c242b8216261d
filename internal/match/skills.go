package match

import (
	"math"
	"strings"
)

type SkillMatchResult struct {
	Score         int      `json:"score"`
	MatchedSkills []string `json:"matchedSkills"`
	TotalSkills   int      `json:"totalSkills"`
	MissingSkills []string `json:"missingSkills,omitempty"`
}

// SkillMatch measures how many of the job's skills the candidate covers.
//
// A job skill is matched when it and some candidate skill contain one another,
// compared lower-cased and trimmed. This deliberately lets "react" match
// "react.js"; it also lets "c" match "c++".
func SkillMatch(candidateSkills, jobSkills []string) SkillMatchResult {
	if len(jobSkills) == 0 {
		return SkillMatchResult{Score: 100, MatchedSkills: []string{}}
	}

	if len(candidateSkills) == 0 {
		return SkillMatchResult{
			Score:         0,
			MatchedSkills: []string{},
			TotalSkills:   len(jobSkills),
			MissingSkills: normalizeAll(jobSkills),
		}
	}

	candidate := normalizeAll(candidateSkills)

	matched := make([]string, 0, len(jobSkills))
	var missing []string
	for _, skill := range normalizeAll(jobSkills) {
		if containsEither(candidate, skill) {
			matched = append(matched, skill)
			continue
		}
		missing = append(missing, skill)
	}

	return SkillMatchResult{
		Score:         int(math.Round(float64(len(matched)) * 100 / float64(len(jobSkills)))),
		MatchedSkills: matched,
		TotalSkills:   len(jobSkills),
		MissingSkills: missing,
	}
}

func containsEither(candidate []string, skill string) bool {
	for _, c := range candidate {
		if strings.Contains(c, skill) || strings.Contains(skill, c) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = normalize(s)
	}
	return out
}
