package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dealstack/crm-backend/services"
	"github.com/dealstack/crm-backend/utils"
)

type DashboardController struct {
	Stats *services.StatsService
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{Stats: services.NewStatsService(db)}
}

// GetDashboardStats -> the summary numbers for the dashboard cards. The
// underlying collection reads run concurrently; a client that went away
// cancels them through the request context.
func (dc *DashboardController) GetDashboardStats(c *gin.Context) {
	stats, err := dc.Stats.CollectDashboard(c.Request.Context())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

// GetRecentActivity -> the recent activity feed with humanized ages
func (dc *DashboardController) GetRecentActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	activities, err := dc.Stats.RecentActivity(c.Request.Context(), limit)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondList(c, http.StatusOK, "Recent activity", activities, nil)
}
