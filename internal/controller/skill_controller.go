package controller

import (
	"errors"

	"skillforge_backend/internal/service"
	"skillforge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SkillController struct {
	SkillService      *service.SkillService
	ValidationService *service.ValidationService
}

func NewSkillController(skillService *service.SkillService, validationService *service.ValidationService) *SkillController {
	return &SkillController{SkillService: skillService, ValidationService: validationService}
}

// Available godoc
// @Summary Catalog skills the user can still enroll in
// @Tags skills
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Skill}
// @Router /api/skills [get]
func (c *SkillController) Available(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	skills, err := c.SkillService.AvailableSkills(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, skills)
}

// Enrolled godoc
// @Summary The user's enrolled skills with progress
// @Tags skills
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.EnrolledSkill}
// @Router /api/skills/enrolled [get]
func (c *SkillController) Enrolled(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	skills, err := c.SkillService.EnrolledSkills(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, skills)
}

// Details godoc
// @Summary Skill details with courses and user progress
// @Tags skills
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "skill id"
// @Success 200 {object} util.Response{data=service.SkillDetails}
// @Failure 404 {object} util.Response
// @Router /api/skills/{id} [get]
func (c *SkillController) Details(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	details, err := c.SkillService.GetDetails(ctx.Request.Context(), ctx.Param("id"), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrSkillNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, details)
}

// Enroll godoc
// @Summary Enroll in a skill
// @Tags skills
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "skill id"
// @Success 201 {object} util.Response{data=model.UserSkillProgress}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/skills/{id}/enroll [post]
func (c *SkillController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	usp, err := c.SkillService.Enroll(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSkillNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.Error(ctx, 409, "already enrolled in this skill")
		case errors.Is(err, util.ErrSkillWithoutCourse):
			util.Error(ctx, 409, "skill has no courses yet")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, usp)
}

// Unenroll godoc
// @Summary Leave a skill and discard its course progress
// @Tags skills
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "skill id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/skills/{id}/enroll [delete]
func (c *SkillController) Unenroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.SkillService.Unenroll(ctx.Request.Context(), claims.UserID, ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrNotEnrolled) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Validated godoc
// @Summary The user's validated skills
// @Tags skills
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ValidatedSkill}
// @Router /api/skills/validated [get]
func (c *SkillController) Validated(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	records, err := c.ValidationService.ValidatedSkills(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, records)
}
