package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List jobs
	// (GET /jobs)
	ListJobs(c *gin.Context)
	// Enqueue a worker
	// (POST /jobs/{name}/workers)
	EnqueueWorker(c *gin.Context, name string)
	// Get a worker
	// (GET /jobs/{name}/workers/{id})
	GetWorker(c *gin.Context, name string, id string)
	// Remove a waiting worker
	// (DELETE /jobs/{name}/workers/{id})
	RemoveWorker(c *gin.Context, name string, id string)
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandler       func(*gin.Context, error, int)
}

type MiddlewareFunc func(c *gin.Context)

// ListJobs operation middleware
func (siw *ServerInterfaceWrapper) ListJobs(c *gin.Context) {
	for _, middleware := range siw.HandlerMiddlewares {
		middleware(c)
		if c.IsAborted() {
			return
		}
	}

	siw.Handler.ListJobs(c)
}

// EnqueueWorker operation middleware
func (siw *ServerInterfaceWrapper) EnqueueWorker(c *gin.Context) {
	var name string
	if !siw.bindPath(c, "name", &name) {
		return
	}

	for _, middleware := range siw.HandlerMiddlewares {
		middleware(c)
		if c.IsAborted() {
			return
		}
	}

	siw.Handler.EnqueueWorker(c, name)
}

// GetWorker operation middleware
func (siw *ServerInterfaceWrapper) GetWorker(c *gin.Context) {
	var name, id string
	if !siw.bindPath(c, "name", &name) || !siw.bindPath(c, "id", &id) {
		return
	}

	for _, middleware := range siw.HandlerMiddlewares {
		middleware(c)
		if c.IsAborted() {
			return
		}
	}

	siw.Handler.GetWorker(c, name, id)
}

// RemoveWorker operation middleware
func (siw *ServerInterfaceWrapper) RemoveWorker(c *gin.Context) {
	var name, id string
	if !siw.bindPath(c, "name", &name) || !siw.bindPath(c, "id", &id) {
		return
	}

	for _, middleware := range siw.HandlerMiddlewares {
		middleware(c)
		if c.IsAborted() {
			return
		}
	}

	siw.Handler.RemoveWorker(c, name, id)
}

func (siw *ServerInterfaceWrapper) bindPath(c *gin.Context, param string, dest *string) bool {
	err := runtime.BindStyledParameterWithOptions("simple", param, c.Param(param), dest, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		siw.ErrorHandler(c, fmt.Errorf("Invalid format for parameter %s: %w", param, err), http.StatusBadRequest)
		return false
	}
	return true
}

// GinServerOptions provides options for the Gin server.
type GinServerOptions struct {
	BaseURL      string
	Middlewares  []MiddlewareFunc
	ErrorHandler func(*gin.Context, error, int)
}

// RegisterHandlers mounts every operation of ServerInterface on router.
func RegisterHandlers(router gin.IRouter, si ServerInterface) {
	RegisterHandlersWithOptions(router, si, GinServerOptions{})
}

// RegisterHandlersWithOptions creates http.Handler with additional options
func RegisterHandlersWithOptions(router gin.IRouter, si ServerInterface, options GinServerOptions) {
	errorHandler := options.ErrorHandler
	if errorHandler == nil {
		errorHandler = func(c *gin.Context, err error, statusCode int) {
			c.JSON(statusCode, gin.H{"error": err.Error()})
		}
	}

	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandler:       errorHandler,
	}

	router.GET(options.BaseURL+"/jobs", wrapper.ListJobs)
	router.POST(options.BaseURL+"/jobs/:name/workers", wrapper.EnqueueWorker)
	router.GET(options.BaseURL+"/jobs/:name/workers/:id", wrapper.GetWorker)
	router.DELETE(options.BaseURL+"/jobs/:name/workers/:id", wrapper.RemoveWorker)
}
