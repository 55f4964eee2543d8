package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/dtex/neuron/internal/models"
	"github.com/dtex/neuron/pkg/scheduler"
)

// ErrWorkerRunning is returned when removing a worker that already started.
var ErrWorkerRunning = errors.New("worker is running")

// JobService exposes the scheduler to the HTTP layer.
type JobService struct {
	manager *scheduler.Manager
}

func NewJobService(manager *scheduler.Manager) *JobService {
	return &JobService{manager: manager}
}

func (s *JobService) List(_ context.Context) []models.JobSummary {
	jobs := s.manager.Jobs()
	out := make([]models.JobSummary, 0, len(jobs))
	for _, j := range jobs {
		stats := j.Stats()
		out = append(out, models.JobSummary{
			Name:        j.Name(),
			Concurrency: j.Concurrency(),
			Running:     stats.Running,
			Waiting:     stats.Waiting,
		})
	}
	return out
}

func (s *JobService) Enqueue(_ context.Context, name string, args []any) (string, error) {
	if _, err := s.manager.Job(name); err != nil {
		return "", err
	}
	id, err := s.manager.Enqueue(name, args...)
	if err != nil {
		return "", err
	}
	zap.S().Named("job_service").Debugw("worker enqueued", "job", name, "worker", id)
	return id, nil
}

func (s *JobService) GetWorker(_ context.Context, name, id string) (models.WorkerInfo, error) {
	w, err := s.manager.GetWorker(name, id)
	if err != nil {
		return models.WorkerInfo{}, err
	}
	pos, err := s.manager.GetPosition(name, id)
	if err != nil {
		return models.WorkerInfo{}, err
	}

	info := models.WorkerInfo{
		ID:       w.ID(),
		Job:      name,
		State:    models.WorkerState(w.State().String()),
		Position: pos,
		Args:     w.Args(),
	}
	info.Result, info.Error = w.Result()
	return info, nil
}

// RemoveWorker drops a waiting worker. Running workers yield ErrWorkerRunning.
func (s *JobService) RemoveWorker(_ context.Context, name, id string) error {
	removed, err := s.manager.RemoveWorker(name, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrWorkerRunning
	}
	zap.S().Named("job_service").Debugw("worker removed", "job", name, "worker", id)
	return nil
}
