package portal

import (
	"slices"

	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/match"
)

// Profile is a portal user as far as recommendations are concerned.
type Profile struct {
	ID             string   `json:"id,omitempty"`
	Name           string   `json:"name,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	GraduationYear int      `json:"graduationYear,omitempty"`
	Location       string   `json:"location,omitempty"`
	AppliedJobs    []string `json:"appliedJobs,omitempty"`
}

// Candidate returns the scorer input for this profile.
func (p *Profile) Candidate() match.CandidateProfile {
	if p == nil {
		return match.CandidateProfile{}
	}

	return match.CandidateProfile{
		Skills:         slices.Clone(p.Skills),
		GraduationYear: p.GraduationYear,
		Location:       p.Location,
	}
}

// HasApplied reports whether the user already applied to the job.
func (p *Profile) HasApplied(jobID string) bool {
	if p == nil {
		return false
	}
	return slices.Contains(p.AppliedJobs, jobID)
}
