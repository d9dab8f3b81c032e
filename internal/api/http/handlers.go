package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/FileExplorer/internal/domain/explorer"
	"github.com/GriffinCanCode/FileExplorer/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/FileExplorer/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/FileExplorer/internal/providers/filesystem"
)

// Version is reported by the root endpoint
const Version = "1.0.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	manager *explorer.Manager
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

// NewHandlers creates a new handler set. metrics may be nil.
func NewHandlers(manager *explorer.Manager, metrics *monitoring.Metrics, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		manager: manager,
		metrics: metrics,
		logger:  logger,
	}
}

// Register mounts every explorer route on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	r.GET("/view_file", h.ViewFile)
	r.GET("/search", h.Search)

	r.POST("/rename", h.Rename)
	r.POST("/move-item", h.MoveItem)
	r.POST("/create-folder", h.CreateFolder)
	r.POST("/delete-items", h.DeleteItems)

	r.POST("/open-in-code", h.OpenInCode)
	r.POST("/open-folder", h.OpenFolder)
	r.POST("/open-jupyter", h.OpenJupyter)

	r.DELETE("/cache", h.ClearCache)
	r.GET("/metrics/json", h.MetricsJSON)
}

// Root handles liveness
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Local File Explorer",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":   "healthy",
		"explorer": h.manager.Stats(),
	}
	if h.metrics != nil {
		body["metrics"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}

// ViewFile lists a directory or returns a file's text content
func (h *Handlers) ViewFile(c *gin.Context) {
	var q ViewQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err.Error())
		return
	}
	depth := 1
	if q.Depth != nil {
		depth = *q.Depth
	}

	view, err := h.manager.View(c.Request.Context(), q.FilePath, depth, q.Extensions)
	if err != nil {
		h.log(c).Debug("view failed", zap.String("path", q.FilePath), zap.Error(err))
		abortWithError(c, err)
		return
	}

	if view.IsDir() {
		if view.Cached {
			c.Header("X-Cache", "HIT")
		} else {
			c.Header("X-Cache", "MISS")
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", view.Listing)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": view.Content.Content})
}

// Search finds items by name under a root directory
func (h *Handlers) Search(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.manager.Search(c.Request.Context(), filesystem.SearchRequest{
		Root:       q.Root,
		Query:      q.Query,
		Extensions: q.Extensions,
		Limit:      q.Limit,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Rename renames an item
func (h *Handlers) Rename(c *gin.Context) {
	var req RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.manager.Rename(req.OldPath, req.NewPath); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "renamed successfully"})
}

// MoveItem moves an item into a directory or to a new path
func (h *Handlers) MoveItem(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	final, err := h.manager.Move(req.SourcePath, req.DestinationPath)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "moved successfully", "path": final})
}

// CreateFolder creates a directory, including missing parents
func (h *Handlers) CreateFolder(c *gin.Context) {
	var req CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.manager.CreateFolder(req.Path); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "folder created"})
}

// DeleteItems removes files and directories
func (h *Handlers) DeleteItems(c *gin.Context) {
	var req DeleteItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.manager.Delete(req.Paths); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "items deleted"})
}

// OpenInCode opens a file or folder in the editor
func (h *Handlers) OpenInCode(c *gin.Context) {
	h.launch(c, "file_path", h.manager.OpenInEditor, "opened in editor")
}

// OpenFolder opens a folder in the platform file manager
func (h *Handlers) OpenFolder(c *gin.Context) {
	h.launch(c, "folder_path", h.manager.OpenFolder, "folder opened")
}

// OpenJupyter opens a notebook in jupyter
func (h *Handlers) OpenJupyter(c *gin.Context) {
	h.launch(c, "file_path", h.manager.OpenNotebook, "opened in jupyter notebook")
}

func (h *Handlers) launch(c *gin.Context, param string, open func(string) error, msg string) {
	p := c.Query(param)
	if p == "" {
		badRequest(c, param+" is required")
		return
	}
	if err := open(p); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// ClearCache drops all cached listings and metadata
func (h *Handlers) ClearCache(c *gin.Context) {
	h.manager.ClearCaches()
	c.Status(http.StatusNoContent)
}

// MetricsJSON returns a JSON snapshot of counters and cache state
func (h *Handlers) MetricsJSON(c *gin.Context) {
	body := gin.H{"explorer": h.manager.Stats()}
	if h.metrics != nil {
		body["metrics"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handlers) log(c *gin.Context) *zap.Logger {
	return tracing.Logger(c.Request.Context(), h.logger)
}
