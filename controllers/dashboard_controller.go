package controllers

import (
	"net/http"

	"restaurant/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Stats *services.DashboardService
}

func NewDashboardController(stats *services.DashboardService) *DashboardController {
	return &DashboardController{Stats: stats}
}

// GET /dashboard
func (d *DashboardController) Show(c *gin.Context) {
	stats, err := d.Stats.Stats()
	if err != nil {
		fail(c, err, "/")
		return
	}
	render(c, http.StatusOK, "dashboard", gin.H{"Title": "Dashboard", "Stats": stats})
}
