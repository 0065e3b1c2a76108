package controller

import (
	"errors"

	"skillforge_backend/internal/service"
	"skillforge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// Get godoc
// @Summary Quiz with its ordered questions (answers withheld)
// @Tags quizzes
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "quiz id"
// @Success 200 {object} util.Response{data=service.QuizWithQuestions}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	quiz, err := c.QuizService.GetWithQuestions(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quiz)
}

// swagger:model SubmitQuizRequest
type SubmitQuizRequest struct {
	// Answers maps question id to the submitted answer text.
	Answers map[string]string `json:"answers" binding:"required"`
}

// Submit godoc
// @Summary Submit quiz answers for grading
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "quiz id"
// @Param   body body SubmitQuizRequest true "answers by question id"
// @Success 200 {object} util.Response{data=service.QuizResult}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.Submit(ctx.Request.Context(), claims.UserID, ctx.Param("id"), req.Answers)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}
