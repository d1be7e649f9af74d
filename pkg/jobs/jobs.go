// Package jobs holds the registry of background jobs the server schedules,
// such as the expired-invitation sweep.
package jobs

import (
	"context"
	"sync"
)

// Job is a registered background job. ID is assigned by the scheduler once
// the job is added to it.
type Job struct {
	ID     int
	Runner Runner
}

// Runner supplies a job's cron spec and its work function, both derived from
// the context the server was started with.
type Runner interface {
	Spec(context.Context) string
	Func(context.Context) func()
}

var (
	mtx  sync.Mutex
	jobs = make(map[string]*Job)
)

// Register adds a job under a name, replacing any previous registration.
// Jobs register themselves from init functions.
func Register(name string, runner Runner) {
	mtx.Lock()
	defer mtx.Unlock()
	jobs[name] = &Job{Runner: runner}
}

// List returns the registered jobs by name.
func List() map[string]*Job {
	mtx.Lock()
	defer mtx.Unlock()
	return jobs
}
