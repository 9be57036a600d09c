package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kusanyiko/internal/models/request_models"
	"kusanyiko/internal/services"
	"kusanyiko/pkg/utils"
)

// UserController exposes the admin account-management surface.
type UserController struct {
	userService services.UserServiceInterface
}

func NewUserController(userService services.UserServiceInterface) *UserController {
	return &UserController{
		userService: userService,
	}
}

// List godoc
// @Summary List user accounts
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search term"
// @Param role query string false "Role filter"
// @Param status query string false "Status filter"
// @Success 200 {object} utils.APIResponse
// @Router /users [get]
func (u *UserController) List(c *gin.Context) {
	var query request_models.UserListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := u.userService.List(context.Background(), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Users retrieved")
}

// Create godoc
// @Summary Create a user account
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateUserRequest true "User payload"
// @Success 201 {object} utils.APIResponse
// @Router /users [post]
func (u *UserController) Create(c *gin.Context) {
	requester, ok := currentRequester(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	var req request_models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	account, err := u.userService.Create(context.Background(), requester, req, requestMeta(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, account, "User created successfully")
}

func (u *UserController) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	account, err := u.userService.Get(context.Background(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, account, "User retrieved")
}

func (u *UserController) Update(c *gin.Context) {
	requester, ok := currentRequester(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req request_models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	account, err := u.userService.Update(context.Background(), requester, id, req, requestMeta(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, account, "User updated")
}

// Delete godoc
// @Summary Delete a user account
// @Description Soft-deletes the account's members first, then removes the account
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /users/{id} [delete]
func (u *UserController) Delete(c *gin.Context) {
	requester, ok := currentRequester(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := u.userService.Delete(context.Background(), requester, id, requestMeta(c)); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "User deleted")
}

func (u *UserController) SetStatus(c *gin.Context) {
	requester, ok := currentRequester(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req request_models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := u.userService.SetStatus(context.Background(), requester, id, req.Status, requestMeta(c)); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Status updated")
}

func (u *UserController) SetRole(c *gin.Context) {
	requester, ok := currentRequester(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req request_models.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := u.userService.SetRole(context.Background(), requester, id, req.Role, requestMeta(c)); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Role updated")
}

// Activity godoc
// @Summary Recent activity for one account
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} utils.APIResponse
// @Router /users/{id}/activity [get]
func (u *UserController) Activity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	activity, err := u.userService.Activity(context.Background(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, activity, "Activity retrieved")
}

// ResetPassword issues a temporary password for the account and unlocks it.
func (u *UserController) ResetPassword(c *gin.Context) {
	requester, ok := currentRequester(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	tempPassword, err := u.userService.ResetPassword(context.Background(), requester, id, requestMeta(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"temporary_password": tempPassword}, "Password reset successfully")
}

func (u *UserController) Unlock(c *gin.Context) {
	requester, ok := currentRequester(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := u.userService.UnlockAccount(context.Background(), requester, id, requestMeta(c)); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Account unlocked")
}

// Stats godoc
// @Summary Aggregate account statistics
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /users/stats [get]
func (u *UserController) Stats(c *gin.Context) {
	stats, err := u.userService.Stats(context.Background())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, stats, "Statistics retrieved")
}
