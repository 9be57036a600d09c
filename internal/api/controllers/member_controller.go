package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kusanyiko/internal/models/request_models"
	"kusanyiko/internal/services"
	"kusanyiko/pkg/utils"
)

type MemberController struct {
	memberService services.MemberServiceInterface
	exportService services.ExportServiceInterface
}

func NewMemberController(memberService services.MemberServiceInterface, exportService services.ExportServiceInterface) *MemberController {
	return &MemberController{
		memberService: memberService,
		exportService: exportService,
	}
}

// List godoc
// @Summary List members
// @Description Paginated member list; registrants only see their own records
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search term"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Router /members [get]
func (m *MemberController) List(c *gin.Context) {
	requester, ok := currentRequester(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	var query request_models.MemberListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := m.memberService.List(context.Background(), requester, query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Members retrieved")
}

// Create godoc
// @Summary Register a member
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.MemberRequest true "Member payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /members [post]
func (m *MemberController) Create(c *gin.Context) {
	requester, ok := currentRequester(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	var req request_models.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	member, err := m.memberService.Create(context.Background(), requester, req, requestMeta(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, member, "Member registered successfully")
}

// Get godoc
// @Summary Get a member by id
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /members/{id} [get]
func (m *MemberController) Get(c *gin.Context) {
	requester, ok := currentRequester(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid member id")
		return
	}

	member, err := m.memberService.Get(context.Background(), requester, id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, member, "Member retrieved")
}

// Update godoc
// @Summary Update a member
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Param request body request_models.MemberRequest true "Member payload"
// @Success 200 {object} utils.APIResponse
// @Router /members/{id} [put]
func (m *MemberController) Update(c *gin.Context) {
	requester, ok := currentRequester(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid member id")
		return
	}

	var req request_models.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	member, err := m.memberService.Update(context.Background(), requester, id, req, requestMeta(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, member, "Member updated")
}

// Delete godoc
// @Summary Soft-delete a member
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} utils.APIResponse
// @Router /members/{id} [delete]
func (m *MemberController) Delete(c *gin.Context) {
	requester, ok := currentRequester(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid member id")
		return
	}

	if err := m.memberService.SoftDelete(context.Background(), requester, id, requestMeta(c)); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Member deleted")
}

// PublicSearch godoc
// @Summary Search members without authentication
// @Description Returns a capped list of safe member fields; empty terms return nothing
// @Tags Members
// @Produce json
// @Param q query string false "Search term"
// @Success 200 {object} utils.APIResponse
// @Router /members/search [get]
func (m *MemberController) PublicSearch(c *gin.Context) {
	results, err := m.memberService.PublicSearch(context.Background(), c.Query("q"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"results": results, "count": len(results)}, "Search completed")
}

// Export streams the full member registry as CSV.
// @Summary Export members as CSV
// @Tags Members
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file
// @Router /members/export [get]
func (m *MemberController) Export(c *gin.Context) {
	requester, ok := currentRequester(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	result, err := m.exportService.QuickExportMembers(context.Background(), requester)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
