package v1

import (
	"github.com/dtex/neuron/internal/models"
)

func NewJobFromModel(m models.JobSummary) Job {
	return Job{
		Name:        m.Name,
		Concurrency: m.Concurrency,
		Running:     m.Running,
		Waiting:     m.Waiting,
	}
}

func NewJobListFromModel(jobs []models.JobSummary) JobList {
	list := JobList{Jobs: make([]Job, 0, len(jobs))}
	for _, j := range jobs {
		list.Jobs = append(list.Jobs, NewJobFromModel(j))
	}
	return list
}

// NewWorkerFromModel converts a models.WorkerInfo to an API Worker.
func NewWorkerFromModel(m models.WorkerInfo) Worker {
	var state WorkerState
	switch m.State {
	case models.WorkerStateRunning:
		state = WorkerStateRunning
	case models.WorkerStateFinished:
		state = WorkerStateFinished
	default:
		state = WorkerStateWaiting
	}

	w := Worker{
		Id:     m.ID,
		Job:    m.Job,
		State:  state,
		Args:   m.Args,
		Result: m.Result,
	}
	if w.Args == nil {
		w.Args = []any{}
	}

	if m.Position >= 0 {
		pos := m.Position
		w.Position = &pos
	}

	if m.Error != nil {
		e := m.Error.Error()
		w.Error = &e
	}

	return w
}
