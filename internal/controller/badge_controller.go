package controller

import (
	"skillforge_backend/internal/service"
	"skillforge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BadgeController struct {
	BadgeService *service.BadgeService
}

func NewBadgeController(badgeService *service.BadgeService) *BadgeController {
	return &BadgeController{BadgeService: badgeService}
}

// List godoc
// @Summary All catalog badges
// @Tags badges
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Badge}
// @Router /api/badges [get]
func (c *BadgeController) List(ctx *gin.Context) {
	badges, err := c.BadgeService.List(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, badges)
}

// Mine godoc
// @Summary Badges the user has unlocked
// @Tags badges
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.OwnedBadge}
// @Router /api/badges/mine [get]
func (c *BadgeController) Mine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	badges, err := c.BadgeService.UserBadges(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, badges)
}
