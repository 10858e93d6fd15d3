package controllers

import (
	"net/http"
	"time"

	"dipout-backend/services"
	"dipout-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Records *services.RecordStore
}

type RecentNoShowView struct {
	PhoneNumber string   `json:"phoneNumber"`
	When        string   `json:"when"` // e.g. "Today", "Yesterday", "3 days ago"
	OrderType   string   `json:"orderType"`
	Value       *float64 `json:"value,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

func (d *DashboardController) GetDashboardOverview(c *gin.Context) {
	restaurantUUID, ok := restaurantIDFromContext(c)
	if !ok {
		return
	}

	totalNoShows, err := d.Records.TotalNoShows(restaurantUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute totals")
		return
	}

	totalValueLost, err := d.Records.TotalValueLost(restaurantUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute totals")
		return
	}

	topFlakers, err := d.Records.TopFlakers(restaurantUUID, 5)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load top flakers")
		return
	}

	recent, err := d.Records.RecentNoShows(restaurantUUID, 5)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load recent no-shows")
		return
	}

	now := time.Now()
	recentViews := make([]RecentNoShowView, 0, len(recent))
	for _, r := range recent {
		recentViews = append(recentViews, RecentNoShowView{
			PhoneNumber: r.PhoneNumber,
			When:        utils.RelativeDayLabel(r.Date, now),
			OrderType:   r.OrderType,
			Value:       r.Value,
			Notes:       r.Notes,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"totalNoShows":   totalNoShows,
		"totalValueLost": totalValueLost,
		"topFlakers":     topFlakers,
		"recentNoShows":  recentViews,
	})
}
