package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"afrisoutien/internal/middleware"
	"afrisoutien/internal/models"
	"afrisoutien/internal/services"
)

type DonationHandler struct {
	donations *services.DonationService
}

func NewDonationHandler(donations *services.DonationService) *DonationHandler {
	return &DonationHandler{donations: donations}
}

// @Summary      Déclarer un don
// @Description  Enregistre un don (anonyme autorisé) en attente de validation
// @Tags         Donations
// @Accept       json
// @Produce      json
// @Param        id   path      int  true  "ID de la cagnotte"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/campaigns/{id}/donations [post]
func (h *DonationHandler) Create(c *gin.Context) {
	campaignID, ok := paramInt(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign ID"})
		return
	}

	var req struct {
		Amount     int64  `json:"amount" binding:"required"`
		DonorName  string `json:"donor_name"`
		DonorEmail string `json:"donor_email" binding:"omitempty,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	donation := &models.Donation{
		CampaignID: campaignID,
		Amount:     req.Amount,
		DonorName:  req.DonorName,
		DonorEmail: req.DonorEmail,
	}
	// attach the donor when the caller is logged in; anonymous otherwise
	if user, ok := middleware.CurrentUser(c); ok {
		donation.DonorID = &user.ID
		if donation.DonorName == "" {
			donation.DonorName = user.Name
		}
		if donation.DonorEmail == "" {
			donation.DonorEmail = user.Email
		}
	}

	if err := h.donations.Record(donation); err != nil {
		switch {
		case errors.Is(err, services.ErrCampaignNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		case errors.Is(err, services.ErrCampaignNotActive):
			c.JSON(http.StatusConflict, gin.H{"error": "Campaign is not accepting donations"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"donation": donation})
}

// @Summary      Mes dons
// @Tags         Donations
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/users/me/donations [get]
func (h *DonationHandler) ListMine(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	limit, offset := pagination(c)
	donations, err := h.donations.ListByDonor(user.ID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list donations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"donations": donations})
}

// ---- admin back-office ----

func (h *DonationHandler) ListAll(c *gin.Context) {
	limit, offset := pagination(c)
	campaignID := 0
	if v, ok := paramIntQuery(c, "campaign_id"); ok {
		campaignID = v
	}
	donations, err := h.donations.List(c.Query("status"), campaignID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list donations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"donations": donations})
}

func (h *DonationHandler) Approve(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donation ID"})
		return
	}
	donation, err := h.donations.Approve(id)
	if err != nil {
		writeDonationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"donation": donation})
}

func (h *DonationHandler) Reject(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donation ID"})
		return
	}
	donation, err := h.donations.Reject(id)
	if err != nil {
		writeDonationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"donation": donation})
}

func writeDonationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDonationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
	case errors.Is(err, services.ErrDonationNotPending):
		c.JSON(http.StatusConflict, gin.H{"error": "Donation already processed"})
	case errors.Is(err, services.ErrCampaignNotActive):
		c.JSON(http.StatusConflict, gin.H{"error": "Campaign is not accepting donations"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process donation"})
	}
}
