// Package handler exposes the PRD service over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/sjson"

	"github.com/prdforge/prdforge/backend/go-services/internal/ideas"
	"github.com/prdforge/prdforge/backend/go-services/internal/pending"
	"github.com/prdforge/prdforge/backend/go-services/internal/prd"
	"github.com/prdforge/prdforge/backend/go-services/internal/prd/service"
	"github.com/prdforge/prdforge/backend/go-services/pkg/logger"
	"github.com/prdforge/prdforge/backend/go-services/pkg/middleware"
)

// Handler holds dependencies
type Handler struct {
	svc     service.Service
	pending *pending.Service
}

func New(svc service.Service, pend *pending.Service) *Handler {
	return &Handler{svc: svc, pending: pend}
}

// Register mounts the public and authenticated routes under /api. limit,
// when non-nil, guards the routes that call the generation endpoint.
func (h *Handler) Register(r gin.IRouter, auth gin.HandlerFunc, limit gin.HandlerFunc) {
	guarded := func(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
		if limit == nil {
			return handlers
		}
		return append([]gin.HandlerFunc{limit}, handlers...)
	}

	api := r.Group("/api")
	api.POST("/generate-prd", guarded(h.GeneratePRD)...)
	api.GET("/ideas/random", h.RandomIdea)
	api.POST("/pending", h.SubmitPending)

	authed := api.Group("", auth)
	authed.POST("/pending/:token/claim", guarded(h.ClaimPending)...)

	prds := authed.Group("/prds")
	prds.GET("", h.List)
	prds.POST("", guarded(h.Create)...)
	prds.GET("/:id", h.Get)
	prds.PUT("/:id", h.Overwrite)
	prds.DELETE("/:id", h.Delete)
	prds.POST("/:id/sections/:section/regenerate", guarded(h.RegenerateSection)...)
	prds.GET("/:id/export/:format", h.Export)
	prds.POST("/:id/archive", h.Archive)
}

type ideaRequest struct {
	Idea string `json:"idea"`
}

// GeneratePRD runs the stateless pipeline and returns the content fields
// flattened next to the rendered markdown.
func (h *Handler) GeneratePRD(c *gin.Context) {
	var req ideaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %s", prd.ErrInvalidInput, err.Error()))
		return
	}
	res, err := h.svc.Generate(c.Request.Context(), req.Idea)
	if err != nil {
		writeError(c, err)
		return
	}
	body, err := json.Marshal(res.Content)
	if err == nil {
		body, err = sjson.SetBytes(body, "markdown", res.Markdown)
	}
	if err == nil {
		body, err = sjson.SetBytes(body, "source", res.Source)
	}
	if err == nil {
		body, err = sjson.SetBytes(body, "requestSucceeded", true)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (h *Handler) RandomIdea(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"idea": ideas.Random()})
}

// SubmitPending parks an idea typed before sign-in and returns the token
// the client redeems after authenticating.
func (h *Handler) SubmitPending(c *gin.Context) {
	var req ideaRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Idea == "" {
		writeError(c, fmt.Errorf("%w: idea is required", prd.ErrInvalidInput))
		return
	}
	p, err := h.pending.Submit(c.Request.Context(), req.Idea)
	if err != nil {
		logger.Errorf("pending submit failed: %v", err)
		writeError(c, fmt.Errorf("%w: %w", prd.ErrPersistence, err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"token":     p.Token,
		"expiresIn": int(time.Until(p.ExpiresAt).Seconds()),
	})
}

// ClaimPending redeems a pending token and creates the document for the
// caller. The token stays valid when creation fails.
func (h *Handler) ClaimPending(c *gin.Context) {
	var d *prd.Document
	err := h.pending.Redeem(c.Request.Context(), c.Param("token"), func(idea string) error {
		var err error
		d, err = h.svc.Create(c.Request.Context(), middleware.Owner(c), idea)
		return err
	})
	if errors.Is(err, pending.ErrNotFound) {
		writeError(c, fmt.Errorf("%w: pending idea expired or already used", prd.ErrNotFound))
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), middleware.Owner(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if list == nil {
		list = []*prd.Document{}
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) Create(c *gin.Context) {
	var req ideaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %s", prd.ErrInvalidInput, err.Error()))
		return
	}
	d, err := h.svc.Create(c.Request.Context(), middleware.Owner(c), req.Idea)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *Handler) Get(c *gin.Context) {
	d, err := h.svc.Get(c.Request.Context(), middleware.Owner(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// Overwrite accepts { title?, content } and replaces the stored content.
func (h *Handler) Overwrite(c *gin.Context) {
	var req struct {
		Title   *string         `json:"title,omitempty"`
		Content json.RawMessage `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %s", prd.ErrInvalidInput, err.Error()))
		return
	}
	if len(req.Content) == 0 {
		writeError(c, fmt.Errorf("%w: content is required", prd.ErrInvalidInput))
		return
	}
	d, err := h.svc.Overwrite(c.Request.Context(), middleware.Owner(c), c.Param("id"), req.Title, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) RegenerateSection(c *gin.Context) {
	var req struct {
		Feedback string `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %s", prd.ErrInvalidInput, err.Error()))
		return
	}
	d, err := h.svc.RegenerateSection(c.Request.Context(), middleware.Owner(c), c.Param("id"), c.Param("section"), req.Feedback)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.Owner(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Export sends the document as a file attachment.
func (h *Handler) Export(c *gin.Context) {
	exp, err := h.svc.Export(c.Request.Context(), middleware.Owner(c), c.Param("id"), c.Param("format"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exp.Filename))
	c.Data(http.StatusOK, exp.ContentType, exp.Body)
}

func (h *Handler) Archive(c *gin.Context) {
	links, err := h.svc.Archive(c.Request.Context(), middleware.Owner(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

const unavailableMessage = "AI service is not properly configured. Please try again later."

// writeError maps the prd error taxonomy onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{"error": err.Error(), "requestSucceeded": false}
	switch status {
	case http.StatusUnprocessableEntity:
		body["retryable"] = true
	case http.StatusServiceUnavailable:
		logger.Warnf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		if errors.Is(err, prd.ErrConfiguration) {
			body["error"] = unavailableMessage
		}
	case http.StatusInternalServerError:
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		body["error"] = "internal error"
	}
	c.AbortWithStatusJSON(status, body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, prd.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, prd.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, prd.ErrSectionExtraction):
		return http.StatusUnprocessableEntity
	case errors.Is(err, prd.ErrConfiguration), errors.Is(err, prd.ErrArchiveUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, prd.ErrTransport), errors.Is(err, prd.ErrEmptyResponse), errors.Is(err, prd.ErrParse):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
