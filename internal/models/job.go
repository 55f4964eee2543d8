package models

type JobSummary struct {
	Name        string
	Concurrency int
	Running     int
	Waiting     int
}

type WorkerState string

const (
	WorkerStateWaiting  WorkerState = "waiting"
	WorkerStateRunning  WorkerState = "running"
	WorkerStateFinished WorkerState = "finished"
)

type WorkerInfo struct {
	ID       string
	Job      string
	State    WorkerState
	Position int
	Args     []any
	Result   any
	Error    error
}

// CacheEntry is one job as found in the durable cache.
type CacheEntry struct {
	Name       string
	Properties map[string]any
	Workers    []CachedWorker
}

type CachedWorker struct {
	ID   string
	Args []any
}
