package refresh

import (
	"context"
	"time"

	"github.com/rs/xid"
)

// Job is a single recurring background task of the dashboard engine
type Job interface {
	// Name returns the human-readable name of the job
	Name() string

	// Interval returns the interval at which the job should run
	Interval() time.Duration

	// Run executes one iteration of the job
	Run(ctx context.Context) error
}

// scheduledRun is a single scheduled Job execution
type scheduledRun struct {
	at    time.Time
	job   Job
	jobID xid.ID
}

// Less is utilized to sort scheduled runs by their due-time (earliest == first)
func (a scheduledRun) Less(b scheduledRun) bool {
	return a.at.Before(b.at)
}

// workerInfo is the work context for the job routine
type workerInfo struct {
	job   Job
	resCh chan<- *workerResponse
	jobID xid.ID
}

// workerResponse is the job routine response
type workerResponse struct {
	error error  // encountered error, if any
	jobID xid.ID // the job ID
}

// handleRun executes the job once
func handleRun(
	ctx context.Context,
	info *workerInfo,
) {
	err := info.job.Run(ctx)

	response := &workerResponse{
		error: err,
		jobID: info.jobID,
	}

	select {
	case <-ctx.Done():
	case info.resCh <- response:
	}
}
