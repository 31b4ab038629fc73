package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"afrisoutien/internal/services"
)

type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// @Summary      Initier un paiement mobile money
// @Description  Enregistre une intention de paiement (intégration opérateur en attente)
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Success      202  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/payments/initiate [post]
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req struct {
		CampaignID int    `json:"campaign_id" binding:"required"`
		Amount     int64  `json:"amount" binding:"required"`
		Operator   string `json:"operator" binding:"required"`
		Phone      string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	intent, err := h.payments.Initiate(req.CampaignID, req.Amount, req.Operator, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOperatorUnknown):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown mobile money operator"})
		case errors.Is(err, services.ErrCampaignNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		case errors.Is(err, services.ErrCampaignNotActive):
			c.JSON(http.StatusConflict, gin.H{"error": "Campaign is not accepting donations"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment could not be initiated"})
		}
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"intent": intent})
}

// ---- admin back-office ----

func (h *PaymentHandler) ListAll(c *gin.Context) {
	limit, offset := pagination(c)
	intents, err := h.payments.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payment intents"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"intents": intents})
}
