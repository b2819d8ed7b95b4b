package pipeline

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, job *Job) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, job *Job) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, job)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()
		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
		if p.logger == nil {
			t.Error("expected default logger")
		}
	})

	t.Run("applies WithContinueOnError option", func(t *testing.T) {
		t.Parallel()

		if p := New(WithContinueOnError(true)); !p.continueOnError {
			t.Error("expected continueOnError to be true")
		}
	})
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddStep(&mockStep{name: "first"})
	p.AddSteps(&mockStep{name: "second"}, &mockStep{name: "third"})

	if p.StepCount() != 3 {
		t.Errorf("expected 3 steps, got %d", p.StepCount())
	}
	if got := p.StepNames(); !slices.Equal(got, []string{"first", "second", "third"}) {
		t.Errorf("unexpected step order %v", got)
	}
}

// TestPipelineExecute tests pipeline execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes all steps in order", func(t *testing.T) {
		t.Parallel()

		var order []string
		record := func(name string) *mockStep {
			return &mockStep{name: name, doFunc: func(context.Context, *Job) error {
				order = append(order, name)
				return nil
			}}
		}

		p := New()
		p.AddSteps(record("cache"), record("crawl"), record("record"))

		job := NewJob("work", time.Hour)
		if err := p.Execute(context.Background(), job); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !slices.Equal(order, []string{"cache", "crawl", "record"}) {
			t.Errorf("unexpected execution order %v", order)
		}
		if !slices.Equal(job.PerformedSteps, order) {
			t.Errorf("expected performed steps %v, got %v", order, job.PerformedSteps)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		failing := &mockStep{name: "fail", doFunc: func(context.Context, *Job) error { return boom }}
		after := &mockStep{name: "after"}

		p := New()
		p.AddSteps(failing, after)

		job := NewJob("work", time.Hour)
		if err := p.Execute(context.Background(), job); !errors.Is(err, boom) {
			t.Errorf("expected boom, got %v", err)
		}
		if after.callCount != 0 {
			t.Error("expected later step not to run")
		}
		if !errors.Is(job.Err, boom) || job.ErrorMessage != "boom" {
			t.Errorf("expected error recorded on job, got %v %q", job.Err, job.ErrorMessage)
		}
	})

	t.Run("continues on error when configured and keeps the first error", func(t *testing.T) {
		t.Parallel()

		first := errors.New("first")
		second := errors.New("second")
		p := New(WithContinueOnError(true))
		p.AddSteps(
			&mockStep{name: "a", doFunc: func(context.Context, *Job) error { return first }},
			&mockStep{name: "b", doFunc: func(context.Context, *Job) error { return second }},
		)

		job := NewJob("work", time.Hour)
		if err := p.Execute(context.Background(), job); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !errors.Is(job.Err, first) {
			t.Errorf("expected first error on job, got %v", job.Err)
		}
		if len(job.PerformedSteps) != 2 {
			t.Errorf("expected both steps to run, got %v", job.PerformedSteps)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &mockStep{name: "never"}
		p := New()
		p.AddStep(step)

		job := NewJob("work", time.Hour)
		if err := p.Execute(ctx, job); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 || !job.Canceled {
			t.Errorf("expected canceled job without step calls, got %d calls canceled=%v", step.callCount, job.Canceled)
		}
	})
}
