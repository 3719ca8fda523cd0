package refresh

import (
	"context"
	"time"
)

// FuncJob adapts a plain function into a recurring Job
type FuncJob struct {
	fn       func(context.Context) error
	name     string
	interval time.Duration
}

// NewFuncJob creates a new function-backed job
func NewFuncJob(
	name string,
	interval time.Duration,
	fn func(context.Context) error,
) *FuncJob {
	return &FuncJob{
		fn:       fn,
		name:     name,
		interval: interval,
	}
}

func (j *FuncJob) Name() string {
	return j.name
}

func (j *FuncJob) Interval() time.Duration {
	return j.interval
}

func (j *FuncJob) Run(ctx context.Context) error {
	return j.fn(ctx)
}
