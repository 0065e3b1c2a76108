package controller

import (
	"errors"

	"skillforge_backend/internal/service"
	"skillforge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService   *service.CourseService
	ProgressService *service.ProgressService
}

func NewCourseController(courseService *service.CourseService, progressService *service.ProgressService) *CourseController {
	return &CourseController{CourseService: courseService, ProgressService: progressService}
}

// Details godoc
// @Summary Course with ordered lessons and resources
// @Tags courses
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "course id"
// @Success 200 {object} util.Response{data=service.CourseDetails}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) Details(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	details, err := c.CourseService.GetDetails(ctx.Request.Context(), ctx.Param("id"), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, details)
}

// Start godoc
// @Summary Record that the user opened a course
// @Tags courses
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "course id"
// @Success 200 {object} util.Response{data=model.Progress}
// @Router /api/courses/{id}/start [post]
func (c *CourseController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressService.StartCourse(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, progress)
}

// Complete godoc
// @Summary Explicitly confirm course completion
// @Tags courses
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "course id"
// @Success 200 {object} util.Response{data=model.Progress}
// @Router /api/courses/{id}/complete [post]
func (c *CourseController) Complete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressService.CompleteCourse(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, progress)
}

// Lesson godoc
// @Summary A single lesson
// @Tags lessons
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "lesson id"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id} [get]
func (c *CourseController) Lesson(ctx *gin.Context) {
	lesson, err := c.CourseService.GetLesson(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lesson)
}

// StartLesson godoc
// @Summary Record that the user opened a lesson
// @Tags lessons
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "lesson id"
// @Success 200 {object} util.Response{data=model.Progress}
// @Router /api/lessons/{id}/start [post]
func (c *CourseController) StartLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressService.StartLesson(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, progress)
}

// CompleteLesson godoc
// @Summary Mark a lesson as completed
// @Tags lessons
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "lesson id"
// @Success 200 {object} util.Response{data=model.Progress}
// @Router /api/lessons/{id}/complete [post]
func (c *CourseController) CompleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressService.CompleteLesson(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, progress)
}
