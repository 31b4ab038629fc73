package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"afrisoutien/internal/authz"
	"afrisoutien/internal/middleware"
	"afrisoutien/internal/models"
	"afrisoutien/internal/services"
)

type CampaignHandler struct {
	campaigns *services.CampaignService
}

func NewCampaignHandler(campaigns *services.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns}
}

// @Summary      Cagnottes actives
// @Tags         Campaigns
// @Produce      json
// @Param        category  query     string  false  "Filtre par catégorie"
// @Success      200       {object}  map[string]interface{}
// @Router       /api/campaigns [get]
func (h *CampaignHandler) ListPublic(c *gin.Context) {
	limit, offset := pagination(c)
	campaigns, err := h.campaigns.ListPublic(c.Query("category"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list campaigns"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": campaigns})
}

// @Summary      Détail d'une cagnotte
// @Tags         Campaigns
// @Produce      json
// @Param        id   path      int  true  "ID de la cagnotte"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/campaigns/{id} [get]
func (h *CampaignHandler) GetByID(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign ID"})
		return
	}
	campaign, err := h.campaigns.GetByID(id)
	if err != nil || campaign == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}
	// non-active campaigns are only visible to their owner and to admins
	if campaign.Status != models.CampaignActive {
		user, ok := middleware.CurrentUser(c)
		if !ok || (user.ID != campaign.OwnerID && user.Role != authz.RoleAdmin) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"campaign": campaign})
}

// @Summary      Créer une cagnotte
// @Description  La cagnotte démarre en attente de modération
// @Tags         Campaigns
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/campaigns [post]
func (h *CampaignHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description" binding:"required"`
		Category    string `json:"category"`
		GoalAmount  int64  `json:"goal_amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	campaign := &models.Campaign{
		OwnerID:     user.ID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		GoalAmount:  req.GoalAmount,
	}
	if err := h.campaigns.Create(campaign); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"campaign": campaign})
}

// @Summary      Mes cagnottes
// @Tags         Campaigns
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/users/me/campaigns [get]
func (h *CampaignHandler) ListMine(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	limit, offset := pagination(c)
	campaigns, err := h.campaigns.ListByOwner(user.ID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list campaigns"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": campaigns})
}

// ---- admin back-office ----

func (h *CampaignHandler) ListAll(c *gin.Context) {
	limit, offset := pagination(c)
	campaigns, err := h.campaigns.ListAll(c.Query("status"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list campaigns"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": campaigns})
}

func (h *CampaignHandler) ChangeStatus(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	campaign, err := h.campaigns.ChangeStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCampaignNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaign": campaign})
}
