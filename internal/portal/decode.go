package portal

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

type profileDocument struct {
	ID             string   `mapstructure:"_id"`
	AltID          string   `mapstructure:"id"`
	Name           string   `mapstructure:"name"`
	Skills         []string `mapstructure:"skills"`
	GraduationYear int      `mapstructure:"graduationYear"`
	Location       string   `mapstructure:"location"`
	AppliedJobs    []any    `mapstructure:"appliedJobs"`
}

type jobDocument struct {
	ID          string   `mapstructure:"_id"`
	AltID       string   `mapstructure:"id"`
	Title       string   `mapstructure:"title"`
	Company     any      `mapstructure:"company"`
	Description string   `mapstructure:"description"`
	Skills      []string `mapstructure:"skills"`
	Experience  string   `mapstructure:"experience"`
	Location    string   `mapstructure:"location"`
}

// DecodeProfile converts a loosely typed user document into a Profile.
// A graduationYear that is not a number is rejected.
func DecodeProfile(raw map[string]any) (*Profile, error) {
	var doc profileDocument
	if err := decode(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	applied := make([]string, 0, len(doc.AppliedJobs))
	for _, ref := range doc.AppliedJobs {
		if id := stringOf(ref, "$oid", "_id", "id", "job"); id != "" {
			applied = append(applied, id)
		}
	}

	return &Profile{
		ID:             firstNonEmpty(doc.ID, doc.AltID),
		Name:           strings.TrimSpace(doc.Name),
		Skills:         cleanList(doc.Skills),
		GraduationYear: doc.GraduationYear,
		Location:       strings.TrimSpace(doc.Location),
		AppliedJobs:    applied,
	}, nil
}

// DecodeJobs converts loosely typed job documents into Jobs.
func DecodeJobs(items []any) (*Jobs, error) {
	jobs := &Jobs{Items: make([]*Job, 0, len(items))}

	for idx, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("decode job %d: expected an object, got %T", idx, item)
		}

		job, err := DecodeJob(raw)
		if err != nil {
			return nil, fmt.Errorf("decode job %d: %w", idx, err)
		}

		jobs.Items = append(jobs.Items, job)
	}

	return jobs, nil
}

// DecodeJob converts a single loosely typed job document.
func DecodeJob(raw map[string]any) (*Job, error) {
	var doc jobDocument
	if err := decode(raw, &doc); err != nil {
		return nil, err
	}

	return &Job{
		ID:          firstNonEmpty(doc.ID, doc.AltID),
		Title:       strings.TrimSpace(doc.Title),
		Company:     stringOf(doc.Company, "name", "companyName"),
		Description: doc.Description,
		Skills:      cleanList(doc.Skills),
		Experience:  strings.TrimSpace(doc.Experience),
		Location:    strings.TrimSpace(doc.Location),
	}, nil
}

// LoadProfileFile reads a profile exported as a JSON object.
func LoadProfileFile(path string) (*Profile, error) {
	var raw map[string]any
	if err := readJSON(path, &raw); err != nil {
		return nil, err
	}

	return DecodeProfile(raw)
}

// LoadJobsFile reads jobs exported either as a JSON array or as an object
// holding the array under "items" or "jobs".
func LoadJobsFile(path string) (*Jobs, error) {
	var raw any
	if err := readJSON(path, &raw); err != nil {
		return nil, err
	}

	switch typed := raw.(type) {
	case []any:
		return DecodeJobs(typed)
	case map[string]any:
		for _, key := range []string{"items", "jobs"} {
			if list, ok := typed[key].([]any); ok {
				return DecodeJobs(list)
			}
		}
		return nil, fmt.Errorf("jobs file %q: no items or jobs list found", path)
	default:
		return nil, fmt.Errorf("jobs file %q: unexpected top level %T", path, raw)
	}
}

func readJSON(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parse %q: %w", path, err)
	}

	return nil
}

func decode(input any, result any) error {
	cfg := &mapstructure.DecoderConfig{
		Result:           result,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			objectIDHook,
			mapstructure.StringToSliceHookFunc(","),
		),
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}

// objectIDHook unwraps extended JSON ids like {"$oid": "..."} into plain strings.
func objectIDHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String || from.Kind() != reflect.Map {
		return data, nil
	}

	if m, ok := data.(map[string]any); ok {
		if id, ok := m["$oid"].(string); ok {
			return id, nil
		}
	}

	return data, nil
}

// stringOf returns v itself when it is a string, otherwise the first string
// found under one of keys when v is an object.
func stringOf(v any, keys ...string) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case map[string]any:
		for _, key := range keys {
			if s := stringOf(typed[key], keys...); s != "" {
				return s
			}
		}
		return ""
	case fmt.Stringer:
		return strings.TrimSpace(typed.String())
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
