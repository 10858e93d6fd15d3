package controllers

import (
	"errors"
	"net/http"

	"dipout-backend/services"
	"dipout-backend/utils"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	Settings *services.SettingsStore
}

func (s *SettingsController) GetSettings(c *gin.Context) {
	restaurantUUID, ok := restaurantIDFromContext(c)
	if !ok {
		return
	}

	settings, err := s.Settings.Get(restaurantUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings merges a partial change set. Threshold edits breaking
// yellow < red come back as a 400 with a field-level message.
func (s *SettingsController) UpdateSettings(c *gin.Context) {
	restaurantUUID, ok := restaurantIDFromContext(c)
	if !ok {
		return
	}

	var input services.SettingsUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	settings, err := s.Settings.Update(restaurantUUID, input)
	if err != nil {
		if errors.Is(err, services.ErrThresholdOrder) || errors.Is(err, services.ErrThresholdRange) {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}
