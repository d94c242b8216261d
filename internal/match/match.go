// Package match scores a candidate profile against a job posting.
//
// Every function in this package is pure: it reads its arguments, allocates
// fresh results and never touches shared state, so callers may score from
// as many goroutines as they like.
package match

import (
	"fmt"
	"math"
	"time"
)

// Composite weights. Changing any of them reorders recommendations.
const (
	SkillWeight      = 0.5
	ExperienceWeight = 0.3
	LocationWeight   = 0.2
)

// CandidateProfile is the part of a user profile the scorer reads.
// A zero GraduationYear and an empty Location mean the value is absent.
type CandidateProfile struct {
	Skills         []string `json:"skills,omitempty"`
	GraduationYear int      `json:"graduationYear,omitempty"`
	Location       string   `json:"location,omitempty"`
}

// JobPosting is the part of a job record the scorer reads.
// Empty strings mean the value is absent.
type JobPosting struct {
	Skills                []string `json:"skills,omitempty"`
	ExperienceRequirement string   `json:"experience,omitempty"`
	Location              string   `json:"location,omitempty"`
}

type MatchDetails struct {
	SkillMatch      SkillMatchResult      `json:"skillMatch"`
	ExperienceMatch ExperienceMatchResult `json:"experienceMatch"`
	LocationMatch   LocationMatchResult   `json:"locationMatch"`
}

// MatchResult is the composite score together with the breakdown that produced it.
type MatchResult struct {
	MatchScore   int          `json:"matchScore"`
	MatchDetails MatchDetails `json:"matchDetails"`
}

// MatchScoreValue implements Scored.
func (r MatchResult) MatchScoreValue() int { return r.MatchScore }

// Reasons returns short explanations of the breakdown, suitable for display.
func (r MatchResult) Reasons() []string {
	var reasons []string

	skills := r.MatchDetails.SkillMatch
	switch {
	case skills.TotalSkills == 0:
		reasons = append(reasons, "no specific skills required")
	case len(skills.MatchedSkills) > 0:
		reasons = append(reasons, fmt.Sprintf("%d of %d required skills match", len(skills.MatchedSkills), skills.TotalSkills))
	}

	exp := r.MatchDetails.ExperienceMatch
	switch {
	case exp.RequiredYears == 0:
		reasons = append(reasons, "no experience requirement")
	case exp.Score == 100:
		reasons = append(reasons, fmt.Sprintf("meets the %s experience requirement", exp.RequiredExperience))
	case exp.Score >= 60:
		reasons = append(reasons, fmt.Sprintf("close to the %s experience requirement", exp.RequiredExperience))
	}

	if r.MatchDetails.LocationMatch.Matched {
		reasons = append(reasons, "location matches")
	}

	return reasons
}

// ScoreMatch computes the weighted composite score of a profile against a job.
// currentYear is used to derive the candidate's years of experience.
func ScoreMatch(profile CandidateProfile, job JobPosting, currentYear int) MatchResult {
	skills := SkillMatch(profile.Skills, job.Skills)
	experience := ExperienceMatch(profile, job.ExperienceRequirement, currentYear)
	location := LocationMatch(profile.Location, job.Location)

	composite := float64(skills.Score)*SkillWeight +
		float64(experience.Score)*ExperienceWeight +
		float64(location.Score)*LocationWeight

	return MatchResult{
		MatchScore: int(math.Round(composite)),
		MatchDetails: MatchDetails{
			SkillMatch:      skills,
			ExperienceMatch: experience,
			LocationMatch:   location,
		},
	}
}

// Scorer binds ScoreMatch to a clock so callers don't have to pass the year around.
type Scorer struct {
	now  func() time.Time
	year int
}

// NewScorer returns a Scorer that reads the current year from time.Now.
func NewScorer() *Scorer {
	return &Scorer{now: time.Now}
}

// WithClock returns a copy of the scorer using the given clock.
func (s *Scorer) WithClock(now func() time.Time) *Scorer {
	c := *s
	c.now = now
	return &c
}

// WithYear returns a copy of the scorer pinned to a fixed year.
// A non-positive year restores the clock.
func (s *Scorer) WithYear(year int) *Scorer {
	c := *s
	c.year = year
	return &c
}

// Year reports the year used for experience derivation.
func (s *Scorer) Year() int {
	if s.year > 0 {
		return s.year
	}
	if s.now == nil {
		return time.Now().Year()
	}
	return s.now().Year()
}

// Score scores a single profile/job pair.
func (s *Scorer) Score(profile CandidateProfile, job JobPosting) MatchResult {
	return ScoreMatch(profile, job, s.Year())
}
