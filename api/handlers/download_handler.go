package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/download-it/internal/app"
	"github.com/yourusername/download-it/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DownloadHandler handles download-related HTTP requests
type DownloadHandler struct {
	downloadMgr *app.DownloadManager
	reporter    domain.Reporter
	logger      *zap.Logger
}

// NewDownloadHandler creates a new download handler
func NewDownloadHandler(downloadMgr *app.DownloadManager, reporter domain.Reporter, logger *zap.Logger) *DownloadHandler {
	return &DownloadHandler{
		downloadMgr: downloadMgr,
		reporter:    reporter,
		logger:      logger,
	}
}

// StartDownloadRequest represents a request to run one download
type StartDownloadRequest struct {
	URL         string `json:"url" binding:"required"`
	Destination string `json:"destination,omitempty"`
	BaseDir     string `json:"base_dir,omitempty"`
	Overwrite   bool   `json:"overwrite,omitempty"`
	CreateDirs  bool   `json:"create_dirs,omitempty"`
}

// DownloadResponse is the outcome of one download
type DownloadResponse struct {
	State           domain.State `json:"state"`
	URL             string       `json:"url,omitempty"`
	DestinationPath string       `json:"destination_path,omitempty"`
	BytesWritten    int64        `json:"bytes_written"`
	ElapsedMillis   int64        `json:"elapsed_millis"`
	Error           string       `json:"error,omitempty"`
}

func newDownloadResponse(outcome *domain.DownloadOutcome) DownloadResponse {
	resp := DownloadResponse{
		State:         outcome.State,
		BytesWritten:  outcome.BytesWritten,
		ElapsedMillis: outcome.ElapsedMillis(),
		Error:         outcome.ErrorMessage(),
	}
	if outcome.Request != nil {
		resp.URL = outcome.Request.URL
		resp.DestinationPath = outcome.Request.DestinationPath
	}
	return resp
}

// StartDownload handles POST /api/v1/downloads. The download runs to
// completion before the response is written.
func (h *DownloadHandler) StartDownload(c *gin.Context) {
	var req StartDownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := domain.ValidateURL(req.URL); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome := h.downloadMgr.Run(c.Request.Context(), req.BaseDir, app.RunOptions{
		Prompter:   &app.PresetPrompter{URL: req.URL, DestinationPath: req.Destination},
		Reporter:   h.reporter,
		CreateDirs: req.CreateDirs,
		Overwrite:  req.Overwrite,
	})

	status := http.StatusOK
	if outcome.State == domain.StateFailed {
		status = http.StatusBadGateway
	}
	c.JSON(status, newDownloadResponse(outcome))
}

// GetDownload handles GET /api/v1/downloads/:id
func (h *DownloadHandler) GetDownload(c *gin.Context) {
	id := c.Param("id")

	download, err := h.downloadMgr.GetDownload(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "download not found"})
		return
	}

	c.JSON(http.StatusOK, download)
}

// ListDownloads handles GET /api/v1/downloads
func (h *DownloadHandler) ListDownloads(c *gin.Context) {
	filters := make(map[string]interface{})

	if status := c.Query("status"); status != "" {
		if !domain.ValidateStatus(domain.DownloadStatus(status)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		filters["status"] = status
	}
	if url := c.Query("url"); url != "" {
		filters["url"] = url
	}

	downloads, err := h.downloadMgr.ListDownloads(filters)
	if err != nil {
		h.logger.Error("Failed to list downloads", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, downloads)
}

// GetStats handles GET /api/v1/downloads/stats
func (h *DownloadHandler) GetStats(c *gin.Context) {
	stats, err := h.downloadMgr.Stats()
	if err != nil {
		h.logger.Error("Failed to get stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// DeleteDownload handles DELETE /api/v1/downloads/:id
func (h *DownloadHandler) DeleteDownload(c *gin.Context) {
	id := c.Param("id")

	if err := h.downloadMgr.DeleteDownload(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "download not found"})
			return
		}
		h.logger.Error("Failed to delete download", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "download deleted"})
}

// GetLastURL handles GET /api/v1/preferences/last-url
func (h *DownloadHandler) GetLastURL(c *gin.Context) {
	url, err := h.downloadMgr.LastURL()
	if err != nil {
		h.logger.Error("Failed to read remembered url", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"last_url": url})
}

// ForgetLastURL handles DELETE /api/v1/preferences/last-url
func (h *DownloadHandler) ForgetLastURL(c *gin.Context) {
	if err := h.downloadMgr.ForgetLastURL(); err != nil {
		h.logger.Error("Failed to clear remembered url", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "remembered url cleared"})
}
