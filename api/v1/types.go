package v1

// WorkerState is the lifecycle state of a worker.
type WorkerState string

const (
	WorkerStateWaiting  WorkerState = "waiting"
	WorkerStateRunning  WorkerState = "running"
	WorkerStateFinished WorkerState = "finished"
)

type Job struct {
	Name        string `json:"name"`
	Concurrency int    `json:"concurrency"`
	Running     int    `json:"running"`
	Waiting     int    `json:"waiting"`
}

type JobList struct {
	Jobs []Job `json:"jobs"`
}

type EnqueueRequest struct {
	Args []any `json:"args"`
}

type EnqueueResponse struct {
	Id string `json:"id"`
}

type Worker struct {
	Id    string      `json:"id"`
	Job   string      `json:"job"`
	State WorkerState `json:"state"`
	// Position is the index in the queue, set only while waiting.
	Position *int    `json:"position,omitempty"`
	Args     []any   `json:"args"`
	Result   any     `json:"result,omitempty"`
	Error    *string `json:"error,omitempty"`
}

type Error struct {
	Error string `json:"error"`
}
