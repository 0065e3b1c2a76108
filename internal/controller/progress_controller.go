package controller

import (
	"skillforge_backend/internal/service"
	"skillforge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// List godoc
// @Summary The user's progress records, most recently touched first
// @Tags progress
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Progress}
// @Router /api/progress [get]
func (c *ProgressController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	records, err := c.ProgressService.UserProgress(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// History godoc
// @Summary The user's completed records, most recent first
// @Tags progress
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Progress}
// @Router /api/progress/history [get]
func (c *ProgressController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	records, err := c.ProgressService.History(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, records)
}
