package filtering

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/match"
	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/portal"
)

func scoredJobs() *portal.Jobs {
	mk := func(id, company string, score int) *portal.Job {
		return (&portal.Job{ID: id, Company: company}).Scored(match.MatchResult{MatchScore: score})
	}

	return &portal.Jobs{Items: []*portal.Job{
		mk("1", "Acme", 90),
		mk("2", "Globex", 35),
		mk("3", "Initech", 60),
		mk("4", "Acme", 40),
		mk("5", "Umbrella", 75),
	}}
}

func TestMinimumScoreFilter(t *testing.T) {
	jobs := scoredJobs()

	next, step, err := NewMinimumScore(match.DefaultMinimumScore, nil).Apply(context.Background(), jobs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if step != (Step{Initial: 5, Dropped: 1, Left: 4}) {
		t.Fatalf("unexpected step: %+v", step)
	}

	ids := next.IDs()
	want := []string{"1", "3", "4", "5"}
	if len(ids) != len(want) {
		t.Fatalf("unexpected ids: %v", ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order not preserved: %v", ids)
		}
	}

	if jobs.Len() != 5 {
		t.Fatalf("input must not be modified, got %d items", jobs.Len())
	}
}

func TestMinimumScoreFilterValidate(t *testing.T) {
	for _, score := range []int{-1, 101} {
		if err := NewMinimumScore(score, nil).Validate(); err == nil {
			t.Fatalf("expected validation error for %d", score)
		}
	}
	if err := NewMinimumScore(0, nil).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExcludedCompaniesFilter(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	next, step, err := NewExcludedCompanies([]string{"acme"}, zap.New(core)).Apply(context.Background(), scoredJobs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if step.Dropped != 2 || next.Len() != 3 {
		t.Fatalf("unexpected result: %+v, left %v", step, next.IDs())
	}
	if next.FindByID("1") != nil || next.FindByID("4") != nil {
		t.Fatalf("acme jobs should be removed")
	}

	if observed.FilterMessage("excluding jobs by companies").Len() != 1 {
		t.Fatalf("expected exclusion to be logged")
	}
}

func TestExcludeFileFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excluded.json")

	excluded := (&portal.Jobs{Items: []*portal.Job{{ID: "3"}, {ID: "5"}}}).ToExcluded(portal.ExcludeActorUser, "")
	if err := excluded.ToFile(path); err != nil {
		t.Fatal(err)
	}

	next, step, err := NewExcludeFile(path, nil).Apply(context.Background(), scoredJobs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if step.Dropped != 2 || next.FindByID("3") != nil || next.FindByID("5") != nil {
		t.Fatalf("unexpected result: %+v, left %v", step, next.IDs())
	}

	// no path configured is a no-op
	next, step, err = NewExcludeFile(" ", nil).Apply(context.Background(), scoredJobs())
	if err != nil || step.Dropped != 0 || next.Len() != 5 {
		t.Fatalf("expected no-op, got %+v, %v", step, err)
	}
}

func TestAppliedFilter(t *testing.T) {
	profile := &portal.Profile{ID: "u1", AppliedJobs: []string{"2", "5"}}

	next, step, err := NewApplied(nil, profile, nil).Apply(context.Background(), scoredJobs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if step.Dropped != 2 || next.FindByID("2") != nil {
		t.Fatalf("unexpected result: %+v", step)
	}

	next, step, err = NewApplied(&AppliedConfig{Ignore: true}, profile, nil).Apply(context.Background(), scoredJobs())
	if err != nil || step.Dropped != 0 || next.Len() != 5 {
		t.Fatalf("expected applied jobs to be kept, got %+v, %v", step, err)
	}

	if err := NewApplied(nil, nil, nil).Validate(); err == nil {
		t.Fatalf("expected validation error without profile")
	}
}

type failingFilter struct {
	toggle
	validateErr error
	applyErr    error
	applied     bool
}

func (f *failingFilter) Name() string    { return "failing" }
func (f *failingFilter) Validate() error { return f.validateErr }
func (f *failingFilter) Apply(_ context.Context, jobs *portal.Jobs) (*portal.Jobs, Step, error) {
	f.applied = true
	return jobs, Step{}, f.applyErr
}

func TestRun(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	disabled := NewExcludedCompanies([]string{"Umbrella"}, log)
	steps := []Filter{
		NewMinimumScore(50, log),
		NewExcludedCompanies([]string{"Initech"}, log),
		disabled,
	}
	DisableByName(steps, "companies", "testing")

	// both companies filters share a name, so both are disabled
	result, err := Run(context.Background(), log, steps, scoredJobs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := result.IDs()
	if len(ids) != 3 || ids[0] != "1" || ids[1] != "3" || ids[2] != "5" {
		t.Fatalf("unexpected ids: %v", ids)
	}

	if observed.FilterMessage("filter disabled").Len() != 2 {
		t.Fatalf("expected two disabled filters to be logged")
	}
	if observed.FilterMessage("filter step").Len() != 1 {
		t.Fatalf("expected one applied step to be logged")
	}

	statuses := Describe(steps)
	if len(statuses) != 3 || statuses[0].Details["minimum_score"] != "50" || statuses[2].Enabled || statuses[2].Reason != "testing" {
		t.Fatalf("unexpected statuses: %+v", statuses)
	}
}

func TestRunValidatesBeforeApplying(t *testing.T) {
	first := &failingFilter{}
	second := &failingFilter{validateErr: errors.New("bad config")}

	if _, err := Run(context.Background(), nil, []Filter{first, second}, scoredJobs()); err == nil {
		t.Fatalf("expected validation error")
	}
	if first.applied {
		t.Fatalf("no filter should run when validation fails")
	}
}

func TestRunStopsOnApplyErrorAndCancellation(t *testing.T) {
	boom := errors.New("boom")
	if _, err := Run(context.Background(), nil, []Filter{&failingFilter{applyErr: boom}}, scoredJobs()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped apply error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &failingFilter{}
	if _, err := Run(ctx, nil, []Filter{f}, scoredJobs()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if f.applied {
		t.Fatalf("filter must not run after cancellation")
	}
}
