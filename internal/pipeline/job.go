package pipeline

import (
	"time"

	"github.com/Melvillian/navi/internal/model"
)

// Job is the state of one workspace crawl as it moves through a pipeline.
type Job struct {
	// Workspace is the configured workspace name.
	Workspace string

	// Window is how far back the crawl looks.
	Window time.Duration

	// StartedAt is when the job was created.
	StartedAt time.Time

	// Pages holds the crawl result, or the cached result when Cached is set.
	Pages []model.ParsedPage

	// Cached is true when Pages came from run history instead of Notion.
	Cached bool

	// RunID is the history ID the result was stored under, zero if it was not.
	RunID int64

	// Unchanged is true when an identical digest was already stored for the
	// workspace.
	Unchanged bool

	// Canceled is true when the context ended before all steps ran.
	Canceled bool

	// Err is the first step error.
	Err error

	// ErrorMessage is Err as text, kept for reports that outlive the error.
	ErrorMessage string

	// PerformedSteps lists the steps that ran, in order.
	PerformedSteps []string
}

// NewJob creates a job for workspace covering window.
func NewJob(workspace string, window time.Duration) *Job {
	return &Job{
		Workspace: workspace,
		Window:    window,
		StartedAt: time.Now(),
	}
}
