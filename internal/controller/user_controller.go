package controller

import (
	"errors"

	"skillforge_backend/internal/model"
	"skillforge_backend/internal/service"
	"skillforge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetProfile godoc
// @Summary Current user's profile
// @Tags profile
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.GetByID(ctx.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}

// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// UpdateProfile godoc
// @Summary Edit the current user's profile
// @Tags profile
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body UpdateProfileRequest true "fields to change"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	update := model.UserUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	user, err := c.UserService.UpdateProfile(ctx.Request.Context(), claims.UserID, update)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmailRegistered):
			util.Error(ctx, 409, "email already registered")
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}
