// Package jobs runs Mercury's periodic background work on a gocron
// scheduler.
package jobs

import (
	"context"
	"time"
)

// Job is a named unit of periodic work.
type Job struct {
	name    string
	every   time.Duration
	timeout time.Duration
	run     func(ctx context.Context) error
}

func NewJob(name string, every time.Duration, run func(ctx context.Context) error) Job {
	return Job{name: name, every: every, run: run}
}

// WithTimeout bounds a single run.
func (j Job) WithTimeout(d time.Duration) Job {
	j.timeout = d
	return j
}

func (j Job) Name() string {
	return j.name
}

// Flusher is the part of the mail manager the flush job needs.
type Flusher interface {
	FlushStored(ctx context.Context) error
}

// StoredEmailFlush redelivers queued emails every interval.
func StoredEmailFlush(f Flusher, every time.Duration) Job {
	return NewJob("stored-email-flush", every, f.FlushStored).WithTimeout(every)
}
