package match

import "strings"

type LocationMatchResult struct {
	Score   int  `json:"score"`
	Matched bool `json:"matched"`
}

// LocationMatch checks whether the candidate's location is compatible with the
// job's. Remote jobs match anyone; an unknown candidate location gets half credit.
func LocationMatch(candidateLocation, jobLocation string) LocationMatchResult {
	if jobLocation == "" {
		return LocationMatchResult{Score: 100, Matched: true}
	}

	if candidateLocation == "" {
		return LocationMatchResult{Score: 50, Matched: false}
	}

	candidate := normalize(candidateLocation)
	job := normalize(jobLocation)

	matched := strings.Contains(job, candidate) ||
		strings.Contains(candidate, job) ||
		strings.Contains(job, "remote") ||
		strings.Contains(job, "anywhere")

	if matched {
		return LocationMatchResult{Score: 100, Matched: true}
	}
	return LocationMatchResult{Score: 50, Matched: false}
}
