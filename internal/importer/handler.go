// Package importer exposes the reconciliation engine over HTTP. These are
// operator endpoints: they compare, they never write to the catalog.
package importer

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mangacat/internal/normalize"
	"mangacat/pkg/models"
)

// Reconciler is the orchestrator surface the handlers need.
type Reconciler interface {
	CompareListing(ctx context.Context, titles []string) ([]models.MergedCandidate, error)
	CompareSeason(ctx context.Context, seasonURL string) ([]models.MergedCandidate, error)
	CompareSeasonOf(ctx context.Context, season string, year int) ([]models.MergedCandidate, error)
	ResolveISBN(ctx context.Context, isbn string) (models.MergedCandidate, error)
}

type Handler struct {
	Engine Reconciler
}

func NewHandler(engine Reconciler) *Handler {
	return &Handler{Engine: engine}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/compare", h.compare)  // POST /import/compare
	rg.POST("/season", h.season)    // POST /import/season
	rg.GET("/isbn/:isbn", h.byISBN) // GET  /import/isbn/:isbn
}

type compareRequest struct {
	Titles []string `json:"titles"`
}

func (h *Handler) compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if len(req.Titles) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "titles required"})
		return
	}
	for _, t := range req.Titles {
		if strings.TrimSpace(t) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "blank title"})
			return
		}
	}

	out, err := h.Engine.CompareListing(c.Request.Context(), req.Titles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "compare failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": out})
}

type seasonRequest struct {
	URL    string `json:"url"`
	Season string `json:"season"`
	Year   int    `json:"year"`
}

func (h *Handler) season(c *gin.Context) {
	var req seasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	var (
		out []models.MergedCandidate
		err error
	)
	switch {
	case req.URL != "":
		out, err = h.Engine.CompareSeason(c.Request.Context(), req.URL)
	case req.Season != "" && req.Year > 0:
		out, err = h.Engine.CompareSeasonOf(c.Request.Context(), req.Season, req.Year)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "url or season+year required"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "season compare failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": out})
}

func (h *Handler) byISBN(c *gin.Context) {
	isbn := c.Param("isbn")
	if !normalize.ValidISBN(isbn) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid isbn"})
		return
	}

	cand, err := h.Engine.ResolveISBN(c.Request.Context(), isbn)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "resolve failed"})
		return
	}
	c.JSON(http.StatusOK, cand)
}
