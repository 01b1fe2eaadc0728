package jobs

import (
	"fmt"
	"log/slog"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

type namedJob struct {
	name string
	job  Job
}

// JobManager starts and stops the process's scheduled jobs together.
type JobManager struct {
	jobs   []namedJob
	logger *slog.Logger
}

func NewJobManager(logger *slog.Logger) *JobManager {
	return &JobManager{logger: logger.With("component", "JobManager")}
}

// Register adds a job; jobs start in registration order and stop in reverse.
func (jm *JobManager) Register(name string, job Job) *JobManager {
	jm.jobs = append(jm.jobs, namedJob{name: name, job: job})
	return jm
}

// StartAll starts every registered job. When one fails, the jobs already
// started are stopped again.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			for k := i - 1; k >= 0; k-- {
				jm.jobs[k].job.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
		jm.logger.Info("Job started", "job", j.name)
	}
	return nil
}

// StopAll stops every job and waits for running passes to finish.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].job.Stop()
		jm.logger.Info("Job stopped", "job", jm.jobs[i].name)
	}
}
