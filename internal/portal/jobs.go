package portal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/match"
)

const (
	JobIDField      = "ID"
	JobCompanyField = "Company"

	ExcludeActorUser   = "user"
	ExcludeActorScorer = "scorer"
)

type Jobs struct {
	Items []*Job
}

type Job struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title,omitempty"`
	Company     string   `json:"company,omitempty"`
	Description string   `json:"description,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Experience  string   `json:"experience,omitempty"`
	Location    string   `json:"location,omitempty"`

	Match *match.MatchResult `json:"match,omitempty"`
}

// Posting returns the scorer input for this job.
func (j *Job) Posting() match.JobPosting {
	return match.JobPosting{
		Skills:                slices.Clone(j.Skills),
		ExperienceRequirement: j.Experience,
		Location:              j.Location,
	}
}

// MatchScoreValue implements match.Scored. Unscored jobs count as 0.
func (j *Job) MatchScoreValue() int {
	if j.Match == nil {
		return 0
	}
	return j.Match.MatchScore
}

// Scored returns a shallow copy of the job carrying the given result.
func (j *Job) Scored(result match.MatchResult) *Job {
	c := *j
	c.Match = &result
	return &c
}

func (j *Job) GetStringField(name string) string {
	switch name {
	case JobIDField:
		return j.ID
	case JobCompanyField:
		return j.Company
	default:
		return ""
	}
}

type ExcludedJobs struct {
	Items []*ExcludedJob
}

type ExcludedJob struct {
	ID         string
	Title      string
	Company    string
	ExcludedAt time.Time
	Actor      string `json:",omitempty"`
	Reason     string `json:",omitempty"`
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) IDs() []string {
	ids := make([]string, 0, len(j.Items))
	for _, job := range j.Items {
		ids = append(ids, job.ID)
	}
	return ids
}

func (j *Jobs) FindByID(id string) *Job {
	for _, job := range j.Items {
		if job.ID == id {
			return job
		}
	}
	return nil
}

// Exclude drops jobs whose field equals one of targets (case-insensitive)
// and returns the ids of dropped jobs. Order of remaining jobs is preserved.
func (j *Jobs) Exclude(name string, targets []string) []string {
	if len(targets) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			set[t] = struct{}{}
		}
	}

	var excluded []string
	kept := j.Items[:0:0]
	for _, job := range j.Items {
		if _, ok := set[strings.ToLower(strings.TrimSpace(job.GetStringField(name)))]; ok {
			excluded = append(excluded, job.ID)
			continue
		}
		kept = append(kept, job)
	}
	j.Items = kept

	return excluded
}

// ReportByCompany groups jobs by company for a quick overview.
func (j *Jobs) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, job := range j.Items {
		key := job.Company
		if key == "" {
			key = "unknown company"
		}

		entry := map[string]string{
			"id":         job.ID,
			"title":      job.Title,
			"location":   job.Location,
			"experience": job.Experience,
			"skills":     strings.Join(job.Skills, ", "),
		}

		if job.Match != nil {
			entry["match_score"] = strconv.Itoa(job.Match.MatchScore)
			entry["matched_skills"] = strings.Join(job.Match.MatchDetails.SkillMatch.MatchedSkills, ", ")
			if reasons := job.Match.Reasons(); len(reasons) > 0 {
				entry["reasons"] = strings.Join(reasons, "; ")
			}
		}

		report[key] = append(report[key], entry)
	}
	return report
}

func (j *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "recommendations_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func (j *Jobs) ToExcluded(actor, reason string) *ExcludedJobs {
	excluded := &ExcludedJobs{}
	for _, job := range j.Items {
		excluded.Items = append(excluded.Items, &ExcludedJob{
			ID:         job.ID,
			Title:      job.Title,
			Company:    job.Company,
			ExcludedAt: time.Now().UTC(),
			Actor:      actor,
			Reason:     reason,
		})
	}
	return excluded
}

// GetExcludedJobsFromFile reads the exclude file. A missing or empty file is an empty list.
func GetExcludedJobsFromFile(path string) (*ExcludedJobs, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &ExcludedJobs{}, nil
	}
	if err != nil {
		return nil, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return &ExcludedJobs{}, nil
	}

	var excluded ExcludedJobs
	if err := json.Unmarshal(data, &excluded); err != nil {
		return nil, fmt.Errorf("parse exclude file %q: %w", path, err)
	}
	return &excluded, nil
}

func (e *ExcludedJobs) Append(s *ExcludedJobs) {
	e.Items = append(e.Items, s.Items...)
}

func (e *ExcludedJobs) JobIDs() []string {
	ids := make([]string, 0, len(e.Items))
	for _, job := range e.Items {
		ids = append(ids, job.ID)
	}
	return ids
}

func (e *ExcludedJobs) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
