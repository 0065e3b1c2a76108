package controller

import (
	"errors"
	"time"

	"skillforge_backend/internal/model"
	"skillforge_backend/internal/service"
	"skillforge_backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

type GoalController struct {
	GoalService *service.GoalService
}

func NewGoalController(goalService *service.GoalService) *GoalController {
	return &GoalController{GoalService: goalService}
}

// swagger:model CreateGoalRequest
type CreateGoalRequest struct {
	Target      string     `json:"target" binding:"required"`
	Description *string    `json:"description"`
	TargetDate  *time.Time `json:"targetDate"`
	SkillID     *string    `json:"skillId"`
}

// Create godoc
// @Summary Create a personal learning goal
// @Tags goals
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CreateGoalRequest true "goal payload"
// @Success 201 {object} util.Response{data=model.Goal}
// @Router /api/goals [post]
func (c *GoalController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal := &model.Goal{
		UserID:      claims.UserID,
		Target:      req.Target,
		Description: req.Description,
		TargetDate:  req.TargetDate,
		SkillID:     req.SkillID,
	}
	if err := c.GoalService.Create(ctx.Request.Context(), goal); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, goal)
}

// List godoc
// @Summary The user's goals, newest first
// @Tags goals
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Goal}
// @Router /api/goals [get]
func (c *GoalController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	goals, err := c.GoalService.List(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, goals)
}

// swagger:model UpdateGoalRequest
type UpdateGoalRequest struct {
	Target      *string    `json:"target"`
	Description *string    `json:"description"`
	TargetDate  *time.Time `json:"targetDate"`
	Completed   *bool      `json:"completed"`
}

// Update godoc
// @Summary Edit a goal
// @Tags goals
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "goal id"
// @Param   body body UpdateGoalRequest true "fields to change"
// @Success 200 {object} util.Response{data=model.Goal}
// @Failure 404 {object} util.Response
// @Router /api/goals/{id} [put]
func (c *GoalController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	update := model.GoalUpdate{
		Target:      req.Target,
		Description: req.Description,
		TargetDate:  req.TargetDate,
		Completed:   req.Completed,
	}
	goal, err := c.GoalService.Update(ctx.Request.Context(), ctx.Param("id"), claims.UserID, update)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, goal)
}

// Delete godoc
// @Summary Delete a goal
// @Tags goals
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "goal id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/goals/{id} [delete]
func (c *GoalController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.GoalService.Delete(ctx.Request.Context(), ctx.Param("id"), claims.UserID); err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
