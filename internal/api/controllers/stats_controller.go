package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"kusanyiko/internal/services"
	"kusanyiko/pkg/utils"
)

type StatsController struct {
	statsService services.StatsServiceInterface
}

func NewStatsController(statsService services.StatsServiceInterface) *StatsController {
	return &StatsController{
		statsService: statsService,
	}
}

// AdminStats godoc
// @Summary Registry-wide analytics
// @Description Totals, demographic and geographic breakdowns, 8-week growth
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /analytics/admin [get]
func (s *StatsController) AdminStats(c *gin.Context) {
	stats, err := s.statsService.AdminStats(context.Background())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, stats, "Analytics retrieved")
}

// RegistrantStats godoc
// @Summary Analytics scoped to the requester's own registrations
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /analytics/registrant [get]
func (s *StatsController) RegistrantStats(c *gin.Context) {
	requester, ok := currentRequester(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	stats, err := s.statsService.RegistrantStats(context.Background(), requester)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, stats, "Analytics retrieved")
}
