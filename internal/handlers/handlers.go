package handlers

import (
	"github.com/dtex/neuron/internal/services"
)

type Handler struct {
	jobSrv *services.JobService
}

func New(jobSrv *services.JobService) *Handler {
	return &Handler{
		jobSrv: jobSrv,
	}
}
