package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"afrisoutien/internal/models"
	"afrisoutien/internal/services"
)

type ContentHandler struct {
	content *services.ContentService
}

func NewContentHandler(content *services.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// @Summary      Page de contenu
// @Tags         Content
// @Produce      json
// @Param        slug  path      string  true  "Slug de la page"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]string
// @Router       /api/content/{slug} [get]
func (h *ContentHandler) GetBySlug(c *gin.Context) {
	page, err := h.content.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrPageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load page"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

// ---- admin back-office ----

func (h *ContentHandler) List(c *gin.Context) {
	pages, err := h.content.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

func (h *ContentHandler) Upsert(c *gin.Context) {
	var req struct {
		Slug  string `json:"slug" binding:"required"`
		Title string `json:"title" binding:"required"`
		Body  string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page := &models.ContentPage{Slug: req.Slug, Title: req.Title, Body: req.Body}
	if err := h.content.Upsert(page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}
