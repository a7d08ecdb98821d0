package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tiernote/tiernote/internal/document"
	"github.com/tiernote/tiernote/internal/document/repository"
	"github.com/tiernote/tiernote/internal/render"
	"github.com/tiernote/tiernote/pkg/logger"
)

// DocumentHandler serves stored documents and the tier-selection renderer.
type DocumentHandler struct {
	repo     repository.Repository
	renderer *render.Renderer
}

func NewDocumentHandler(repo repository.Repository, renderer *render.Renderer) *DocumentHandler {
	return &DocumentHandler{repo: repo, renderer: renderer}
}

func (h *DocumentHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/documents", h.List)
	r.GET("/api/v1/documents/:id", h.Get)
	r.GET("/api/v1/documents/:id/render", h.Render)
}

// List returns a metadata projection of all documents, optionally filtered
// by ?docType= and ?tags= (comma separated, any-match).
func (h *DocumentHandler) List(c *gin.Context) {
	var f repository.Filter

	if dt := strings.TrimSpace(c.Query("docType")); dt != "" {
		cls, err := document.ParseClassification(dt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
			return
		}
		f.Classification = cls
	}
	if raw := c.Query("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				f.Tags = append(f.Tags, t)
			}
		}
	}

	docs, err := h.repo.List(c.Request.Context(), f)
	if err != nil {
		logger.Errorf("document list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "internal server error"})
		return
	}

	out := make([]gin.H, 0, len(docs))
	for _, d := range docs {
		out = append(out, gin.H{
			"id":              d.ID,
			"title":           d.Title,
			"excerpt":         d.Excerpt,
			"tags":            d.Tags,
			"docType":         d.Classification,
			"readTimeMinutes": d.ReadTimeMin,
			"createdAt":       d.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": out, "total": len(out)})
}

// Get returns the full document including all tier bodies.
func (h *DocumentHandler) Get(c *gin.Context) {
	d, ok := h.fetch(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": d})
}

// Render maps the ?level= selector position onto a tier, resolves the body
// (with fallback) and returns the display tree.
func (h *DocumentHandler) Render(c *gin.Context) {
	pos := render.DefaultPosition
	if raw := c.Query("level"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 || v > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "level must be an integer in [0,100]"})
			return
		}
		pos = v
	}

	d, ok := h.fetch(c)
	if !ok {
		return
	}

	requested := render.SelectTier(pos)
	body, resolved, fellBack, err := render.Resolve(d, requested)
	if err != nil {
		logger.Errorf("render failed for %s: %v", d.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"id":            d.ID,
			"title":         d.Title,
			"requestedTier": requested,
			"resolvedTier":  resolved,
			"fellBack":      fellBack,
			"blocks":        h.renderer.Render(c.Request.Context(), body),
		},
	})
}

func (h *DocumentHandler) fetch(c *gin.Context) (*document.Document, bool) {
	d, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "document not found"})
			return nil, false
		}
		logger.Errorf("document fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "internal server error"})
		return nil, false
	}
	return d, true
}
