package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"kusanyiko/internal/models/request_models"
	"kusanyiko/internal/services"
	"kusanyiko/pkg/utils"
)

type ExportController struct {
	exportService services.ExportServiceInterface
}

func NewExportController(exportService services.ExportServiceInterface) *ExportController {
	return &ExportController{
		exportService: exportService,
	}
}

func (e *ExportController) stream(c *gin.Context, result *services.ExportResult) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

// Members godoc
// @Summary Export members in csv, excel or pdf format
// @Tags Exports
// @Accept json
// @Produce octet-stream
// @Security BearerAuth
// @Param request body request_models.ExportMembersRequest true "Export options"
// @Success 200 {file} file
// @Failure 400 {object} utils.APIResponse
// @Router /export/members [post]
func (e *ExportController) Members(c *gin.Context) {
	requester, ok := currentRequester(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	var req request_models.ExportMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := e.exportService.ExportMembers(context.Background(), requester, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	e.stream(c, result)
}

// Analytics godoc
// @Summary Export an analytics report in excel or pdf format
// @Tags Exports
// @Accept json
// @Produce octet-stream
// @Security BearerAuth
// @Param request body request_models.ExportAnalyticsRequest true "Export options"
// @Success 200 {file} file
// @Router /export/analytics [post]
func (e *ExportController) Analytics(c *gin.Context) {
	requester, ok := currentRequester(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	var req request_models.ExportAnalyticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := e.exportService.ExportAnalytics(context.Background(), requester, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	e.stream(c, result)
}

// UserActivity godoc
// @Summary Export the audit trail in csv or excel format
// @Tags Exports
// @Accept json
// @Produce octet-stream
// @Security BearerAuth
// @Param request body request_models.ExportUserActivityRequest true "Export options"
// @Success 200 {file} file
// @Router /export/user-activity [post]
func (e *ExportController) UserActivity(c *gin.Context) {
	requester, ok := currentRequester(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	var req request_models.ExportUserActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := e.exportService.ExportUserActivity(context.Background(), requester, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	e.stream(c, result)
}

// Financial is a placeholder report kept for frontend parity.
func (e *ExportController) Financial(c *gin.Context) {
	requester, ok := currentRequester(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	var req request_models.ExportFinancialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := e.exportService.ExportFinancial(context.Background(), requester, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	e.stream(c, result)
}

// History godoc
// @Summary Recent exports made by the authenticated account
// @Tags Exports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /export/history [get]
func (e *ExportController) History(c *gin.Context) {
	requester, ok := currentRequester(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	history, err := e.exportService.History(context.Background(), requester)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, history, "Export history retrieved")
}
