// Package handlers implements the HTTP API over the job manager.
//
// Handlers delegate to the services layer and only deal with request
// parsing, error mapping and model-to-API conversion.
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│  v1.ServerInterfaceWrapper (path parameter binding)             │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│  services.JobService  →  scheduler.Manager                      │
//	└─────────────────────────────────────────────────────────────────┘
//
// # API Endpoints
//
//	┌────────┬─────────────────────────────┬──────────────────────────────┐
//	│ Method │ Endpoint                    │ Description                  │
//	├────────┼─────────────────────────────┼──────────────────────────────┤
//	│ GET    │ /jobs                       │ List jobs with counters      │
//	│ POST   │ /jobs/{name}/workers        │ Enqueue a worker             │
//	│ GET    │ /jobs/{name}/workers/{id}   │ Worker state and result      │
//	│ DELETE │ /jobs/{name}/workers/{id}   │ Remove a waiting worker      │
//	└────────┴─────────────────────────────┴──────────────────────────────┘
//
// POST takes an optional body { "args": [...] } and answers 201 with
// { "id": "..." }. GET on a worker reports "position" while it waits and
// "result" or "error" once it finished.
//
// # Error Mapping
//
//	┌─────────────────────────────┬───────────────────────────┐
//	│ Error                       │ Status                    │
//	├─────────────────────────────┼───────────────────────────┤
//	│ unknown job or worker       │ 404 Not Found             │
//	│ removing a running worker   │ 409 Conflict              │
//	│ malformed body              │ 400 Bad Request           │
//	│ anything else               │ 500 Internal Server Error │
//	└─────────────────────────────┴───────────────────────────┘
package handlers
