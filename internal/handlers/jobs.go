package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/dtex/neuron/api/v1"
	"github.com/dtex/neuron/internal/services"
	srvErrors "github.com/dtex/neuron/pkg/errors"
)

// ListJobs returns every registered job with its counters
// (GET /jobs)
func (h *Handler) ListJobs(c *gin.Context) {
	jobs := h.jobSrv.List(c.Request.Context())
	c.JSON(http.StatusOK, v1.NewJobListFromModel(jobs))
}

// EnqueueWorker adds a worker to the named job
// (POST /jobs/{name}/workers)
func (h *Handler) EnqueueWorker(c *gin.Context, name string) {
	var req v1.EnqueueRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, v1.Error{Error: "invalid request body: " + err.Error()})
			return
		}
	}

	id, err := h.jobSrv.Enqueue(c.Request.Context(), name, req.Args)
	if err != nil {
		h.fail(c, err, "failed to enqueue worker")
		return
	}

	c.JSON(http.StatusCreated, v1.EnqueueResponse{Id: id})
}

// GetWorker returns the state of one worker
// (GET /jobs/{name}/workers/{id})
func (h *Handler) GetWorker(c *gin.Context, name string, id string) {
	info, err := h.jobSrv.GetWorker(c.Request.Context(), name, id)
	if err != nil {
		h.fail(c, err, "failed to get worker")
		return
	}

	c.JSON(http.StatusOK, v1.NewWorkerFromModel(info))
}

// RemoveWorker drops a waiting worker
// (DELETE /jobs/{name}/workers/{id})
func (h *Handler) RemoveWorker(c *gin.Context, name string, id string) {
	if err := h.jobSrv.RemoveWorker(c.Request.Context(), name, id); err != nil {
		h.fail(c, err, "failed to remove worker")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	switch {
	case srvErrors.IsNotFoundError(err), srvErrors.IsConfigurationError(err):
		c.JSON(http.StatusNotFound, v1.Error{Error: err.Error()})
	case errors.Is(err, services.ErrWorkerRunning):
		c.JSON(http.StatusConflict, v1.Error{Error: err.Error()})
	default:
		zap.S().Named("job_handler").Errorw(msg, "error", err)
		c.JSON(http.StatusInternalServerError, v1.Error{Error: msg})
	}
}
