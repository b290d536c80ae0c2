// Package http contains the REST handlers exposed to the frontend.
package http

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ananis25/jute/internal/jupyter"
	"github.com/ananis25/jute/internal/logging"
	"github.com/ananis25/jute/internal/monitoring"
	"github.com/ananis25/jute/internal/notebook"
	"github.com/ananis25/jute/internal/registry"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	client  *jupyter.Client
	kernels *registry.Manager
	metrics *monitoring.Metrics
	logger  *logging.Logger
}

// NewHandlers creates a new handler set.
func NewHandlers(client *jupyter.Client, kernels *registry.Manager, metrics *monitoring.Metrics, logger *logging.Logger) *Handlers {
	return &Handlers{
		client:  client,
		kernels: kernels,
		metrics: metrics,
		logger:  logger,
	}
}

// Root handles the basic liveness check.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "jute-backend",
	})
}

// Health reports backend health and the remote server's API version when
// reachable.
func (h *Handlers) Health(c *gin.Context) {
	resp := gin.H{
		"status":         "healthy",
		"active_kernels": h.kernels.Count(),
	}
	version, err := h.client.APIVersion(c.Request.Context())
	if err != nil {
		resp["jupyter"] = "unreachable"
	} else {
		resp["jupyter"] = version
	}
	c.JSON(http.StatusOK, resp)
}

// GetNotebook loads a notebook file from disk.
func (h *Handlers) GetNotebook(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path query parameter required"})
		return
	}

	h.logger.Info("loading notebook", zap.String("path", path))
	nb, err := notebook.Read(path)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.metrics.NotebooksLoaded.Inc()
	c.JSON(http.StatusOK, nb)
}

// SaveNotebookRequest is the body of PUT /notebook.
type SaveNotebookRequest struct {
	Path     string          `json:"path" binding:"required"`
	Notebook json.RawMessage `json:"notebook" binding:"required"`
}

// SaveNotebook validates and writes a notebook file to disk, normalizing
// cell sources into the array form Jupyter conventionally stores.
func (h *Handlers) SaveNotebook(c *gin.Context) {
	var req SaveNotebookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	nb, err := notebook.Parse(req.Notebook)
	if err != nil {
		h.fail(c, err)
		return
	}
	nb.NormalizeSources()

	h.logger.Info("saving notebook", zap.String("path", req.Path))
	if err := notebook.Write(req.Path, nb); err != nil {
		h.fail(c, err)
		return
	}
	h.metrics.NotebooksSaved.Inc()
	c.JSON(http.StatusOK, gin.H{"path": req.Path})
}

// StartKernelRequest is the body of POST /kernels.
type StartKernelRequest struct {
	Name string `json:"name" binding:"required"`
}

// StartKernel starts a kernel on the remote server, opens its channel
// connection, and registers the session.
func (h *Handlers) StartKernel(c *gin.Context) {
	var req StartKernelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kernel, err := jupyter.StartKernel(c.Request.Context(), h.client, req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.kernels.Insert(kernel)
	h.metrics.KernelsStarted.Inc()
	h.metrics.KernelsActive.Set(float64(h.kernels.Count()))
	h.logger.Info("started kernel",
		zap.String("kernel_id", kernel.ID()),
		zap.String("spec", req.Name),
	)

	c.JSON(http.StatusCreated, gin.H{"id": kernel.ID()})
}

// StopKernel kills a registered kernel session and forgets it.
func (h *Handlers) StopKernel(c *gin.Context) {
	id := c.Param("id")

	kernel, ok := h.kernels.Remove(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such kernel session"})
		return
	}

	h.logger.Info("stopping kernel", zap.String("kernel_id", id))
	if err := kernel.Kill(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	h.metrics.KernelsKilled.Inc()
	h.metrics.KernelsActive.Set(float64(h.kernels.Count()))
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// ListKernels proxies the remote server's view of active kernels.
func (h *Handlers) ListKernels(c *gin.Context) {
	kernels, err := h.client.ListKernels(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if kernels == nil {
		kernels = []jupyter.KernelInfo{}
	}
	c.JSON(http.StatusOK, kernels)
}

// GetKernel looks up one kernel on the remote server.
func (h *Handlers) GetKernel(c *gin.Context) {
	info, found, err := h.client.KernelByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such kernel"})
		return
	}
	c.JSON(http.StatusOK, info)
}

// fail maps domain errors onto HTTP statuses.
func (h *Handlers) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var formatErr *notebook.FormatError
	var remoteErr *jupyter.RemoteError
	var connectErr *jupyter.ConnectError
	switch {
	case errors.As(err, &formatErr):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &remoteErr), errors.As(err, &connectErr):
		status = http.StatusBadGateway
	case errors.Is(err, fs.ErrNotExist):
		status = http.StatusNotFound
	}

	h.logger.Warn("request failed",
		zap.Int("status", status),
		zap.Error(err),
	)
	c.JSON(status, gin.H{"error": err.Error()})
}
