package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tiernote/tiernote/internal/upload"
	"github.com/tiernote/tiernote/pkg/logger"
)

// minContentBytes rejects trivially small payloads before the validator runs.
const minContentBytes = 10

var knownSources = map[string]bool{
	"file_upload": true,
	"text_input":  true,
	"url":         true,
}

// UploadHandler exposes the note-to-document pipeline over HTTP.
type UploadHandler struct {
	svc        *upload.Service
	maxContent int
}

func NewUploadHandler(svc *upload.Service, maxContentBytes int) *UploadHandler {
	if maxContentBytes <= 0 {
		maxContentBytes = 1 << 20
	}
	return &UploadHandler{svc: svc, maxContent: maxContentBytes}
}

func (h *UploadHandler) Register(r *gin.Engine) {
	r.POST("/api/v1/uploads", h.Upload)
}

type uploadMetadata struct {
	Source string `json:"source"`
}

type uploadRequest struct {
	Filename string         `json:"filename"`
	Content  string         `json:"content"`
	Metadata uploadMetadata `json:"metadata"`
}

// Upload accepts {filename, content, metadata:{source}} and runs the full
// pipeline. Boundary checks here are about request shape; markdown
// structure is the validator's concern.
func (h *UploadHandler) Upload(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid request body", "errors": []string{err.Error()}})
		return
	}

	if errs := h.checkRequest(&req); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid upload request", "errors": errs})
		return
	}

	res, err := h.svc.Process(c.Request.Context(), upload.Request{
		Filename: req.Filename,
		Content:  req.Content,
		Source:   req.Metadata.Source,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data": gin.H{
			"documentId":       res.DocumentID,
			"title":            res.Title,
			"processingTimeMs": res.ProcessingTime.Milliseconds(),
			"tierKeys":         res.TierKeys,
		},
	})
}

func (h *UploadHandler) checkRequest(req *uploadRequest) []string {
	var errs []string
	if req.Filename == "" || len(req.Filename) > 255 {
		errs = append(errs, "filename must be 1-255 characters")
	}
	if !strings.HasSuffix(req.Filename, ".md") {
		errs = append(errs, "only .md files are allowed")
	}
	if len(req.Content) < minContentBytes {
		errs = append(errs, "content too short")
	}
	if len(req.Content) > h.maxContent {
		errs = append(errs, "content exceeds size limit")
	}
	if !knownSources[req.Metadata.Source] {
		errs = append(errs, "metadata.source must be one of file_upload, text_input, url")
	}
	return errs
}

// writeError maps pipeline failures onto the boundary contract: validation
// defects verbatim, everything else behind a generic non-leaking message.
func (h *UploadHandler) writeError(c *gin.Context, err error) {
	var ve *upload.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid markdown", "errors": ve.Defects})
		return
	}
	var ge *upload.GenerationError
	if errors.As(err, &ge) {
		logger.Errorf("upload generation failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "generation temporarily unavailable"})
		return
	}
	logger.Errorf("upload failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "internal server error"})
}
