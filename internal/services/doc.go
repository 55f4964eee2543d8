// Package services sits between the HTTP handlers and the scheduler.
//
//	Handlers (HTTP endpoints)          cmd/neuron (inspect, purge)
//	    │                                   │
//	    ▼                                   ▼
//	JobService ──► scheduler.Manager    CacheService ──► cache.Cache
//
// # JobService
//
// Translates scheduler objects into models: job summaries with running and
// waiting counters, and worker snapshots with state, queue position, result
// and error. Removing a worker that already started yields ErrWorkerRunning
// so the caller can tell it apart from an unknown id.
//
// # CacheService
//
// Works on the durable cache without a live manager. Snapshot lists every
// cached job with its outstanding workers sorted by job name; Purge drops a
// job and its workers.
package services
