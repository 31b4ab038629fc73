package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"afrisoutien/internal/middleware"
	"afrisoutien/internal/models"
	"afrisoutien/internal/services"
)

type BoutiqueHandler struct {
	boutique *services.BoutiqueService
}

func NewBoutiqueHandler(boutique *services.BoutiqueService) *BoutiqueHandler {
	return &BoutiqueHandler{boutique: boutique}
}

// @Summary      Catalogue de la boutique solidaire
// @Tags         Boutique
// @Produce      json
// @Param        category  query     string  false  "Filtre par catégorie"
// @Success      200       {object}  map[string]interface{}
// @Router       /api/boutique [get]
func (h *BoutiqueHandler) ListPublished(c *gin.Context) {
	limit, offset := pagination(c)
	items, err := h.boutique.ListPublished(c.Query("category"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// @Summary      Détail d'un objet
// @Tags         Boutique
// @Produce      json
// @Param        id   path      int  true  "ID de l'objet"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/boutique/{id} [get]
func (h *BoutiqueHandler) GetItem(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}
	item, err := h.boutique.GetItem(id)
	if err != nil || item == nil || item.Status != models.ItemPublished {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// @Summary      Proposer un objet
// @Description  L'objet part en modération avant publication
// @Tags         Boutique
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/boutique/items [post]
func (h *BoutiqueHandler) ProposeItem(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := &models.BoutiqueItem{
		DonorID:     &user.ID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}
	if err := h.boutique.ProposeItem(item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// @Summary      Demander un objet
// @Tags         Boutique
// @Accept       json
// @Produce      json
// @Param        id   path      int  true  "ID de l'objet"
// @Success      201  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]string
// @Router       /api/boutique/{id}/orders [post]
func (h *BoutiqueHandler) RequestItem(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	itemID, ok := paramInt(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req struct {
		Motivation string `json:"motivation" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.boutique.RequestItem(itemID, user.ID, req.Motivation)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case errors.Is(err, services.ErrItemNotAvailable),
			errors.Is(err, services.ErrDuplicateOrder),
			errors.Is(err, services.ErrOwnItemOrder):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// ---- admin back-office ----

func (h *BoutiqueHandler) ListItems(c *gin.Context) {
	limit, offset := pagination(c)
	items, err := h.boutique.ListItems(c.Query("status"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *BoutiqueHandler) ModerateItem(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.boutique.ModerateItem(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to moderate item"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

func (h *BoutiqueHandler) ListOrders(c *gin.Context) {
	limit, offset := pagination(c)
	orders, err := h.boutique.ListOrders(c.Query("status"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *BoutiqueHandler) ApproveOrder(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}
	order, err := h.boutique.ApproveOrder(id)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *BoutiqueHandler) RejectOrder(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}
	order, err := h.boutique.RejectOrder(id)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func writeOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, services.ErrOrderNotPending),
		errors.Is(err, services.ErrItemNotAvailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process order"})
	}
}
