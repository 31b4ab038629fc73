package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"afrisoutien/internal/services"
)

type DashboardHandler struct {
	reports *services.ReportService
}

func NewDashboardHandler(reports *services.ReportService) *DashboardHandler {
	return &DashboardHandler{reports: reports}
}

// @Summary      Tableau de bord admin
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  services.DashboardSummary
// @Router       /api/admin/dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.reports.Summary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
