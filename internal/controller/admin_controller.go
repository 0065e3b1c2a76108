package controller

import (
	"errors"

	"skillforge_backend/internal/model"
	"skillforge_backend/internal/service"
	"skillforge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminController hosts the catalog management surface. Every route behind
// it requires the admin role.
type AdminController struct {
	SkillService      *service.SkillService
	CourseService     *service.CourseService
	QuizService       *service.QuizService
	BadgeService      *service.BadgeService
	UserService       *service.UserService
	ValidationService *service.ValidationService
	StorageService    *service.StorageService
}

func NewAdminController(
	skillService *service.SkillService,
	courseService *service.CourseService,
	quizService *service.QuizService,
	badgeService *service.BadgeService,
	userService *service.UserService,
	validationService *service.ValidationService,
	storageService *service.StorageService,
) *AdminController {
	return &AdminController{
		SkillService:      skillService,
		CourseService:     courseService,
		QuizService:       quizService,
		BadgeService:      badgeService,
		UserService:       userService,
		ValidationService: validationService,
		StorageService:    storageService,
	}
}

// ---- skills ----

// swagger:model CreateSkillRequest
type CreateSkillRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateSkill godoc
// @Summary Create a catalog skill
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CreateSkillRequest true "skill payload"
// @Success 201 {object} util.Response{data=model.Skill}
// @Router /api/admin/skills [post]
func (c *AdminController) CreateSkill(ctx *gin.Context) {
	var req CreateSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	skill := &model.Skill{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     "admin",
	}
	if err := c.SkillService.Create(ctx.Request.Context(), skill); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, skill)
}

// swagger:model UpdateSkillRequest
type UpdateSkillRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (c *AdminController) UpdateSkill(ctx *gin.Context) {
	var req UpdateSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	skill, err := c.SkillService.Update(ctx.Request.Context(), ctx.Param("id"), model.SkillUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		c.respondCatalogError(ctx, err)
		return
	}
	util.Success(ctx, skill)
}

func (c *AdminController) DeleteSkill(ctx *gin.Context) {
	if err := c.SkillService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		c.respondCatalogError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *AdminController) ListSkills(ctx *gin.Context) {
	skills, err := c.SkillService.List(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, skills)
}

// ---- courses ----

// swagger:model CreateCourseRequest
type CreateCourseRequest struct {
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description"`
	SkillID     string           `json:"skillId" binding:"required"`
	Type        model.CourseType `json:"type" binding:"required,oneof=internal external"`
	ExternalURL *string          `json:"externalUrl"`
}

func (c *AdminController) CreateCourse(ctx *gin.Context) {
	var req CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Type == model.CourseExternal && req.ExternalURL == nil {
		util.BadRequest(ctx, "external courses require externalUrl")
		return
	}

	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		SkillID:     req.SkillID,
		Type:        req.Type,
		ExternalURL: req.ExternalURL,
	}
	if err := c.CourseService.Create(ctx.Request.Context(), course); err != nil {
		c.respondCatalogError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// swagger:model UpdateCourseRequest
type UpdateCourseRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Type        *model.CourseType `json:"type" binding:"omitempty,oneof=internal external"`
	ExternalURL *string           `json:"externalUrl"`
}

func (c *AdminController) UpdateCourse(ctx *gin.Context) {
	var req UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Update(ctx.Request.Context(), ctx.Param("id"), model.CourseUpdate{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		ExternalURL: req.ExternalURL,
	})
	if err != nil {
		c.respondCatalogError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

func (c *AdminController) DeleteCourse(ctx *gin.Context) {
	if err := c.CourseService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		c.respondCatalogError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *AdminController) ListCourses(ctx *gin.Context) {
	courses, err := c.CourseService.List(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// ---- lessons ----

// swagger:model CreateLessonRequest
type CreateLessonRequest struct {
	Title       string                  `json:"title" binding:"required"`
	Content     string                  `json:"content"`
	CourseID    string                  `json:"courseId" binding:"required"`
	Order       *int                    `json:"order"`
	ContentType model.LessonContentType `json:"contentType" binding:"required,oneof=text video pdf"`
	ContentURL  *string                 `json:"contentUrl"`
	Duration    *int                    `json:"duration"`
}

func (c *AdminController) CreateLesson(ctx *gin.Context) {
	var req CreateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson := &model.Lesson{
		Title:       req.Title,
		Content:     req.Content,
		CourseID:    req.CourseID,
		Order:       req.Order,
		ContentType: req.ContentType,
		ContentURL:  req.ContentURL,
		Duration:    req.Duration,
	}
	if err := c.CourseService.CreateLesson(ctx.Request.Context(), lesson); err != nil {
		c.respondCatalogError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// swagger:model UpdateLessonRequest
type UpdateLessonRequest struct {
	Title       *string                  `json:"title"`
	Content     *string                  `json:"content"`
	Order       *int                     `json:"order"`
	ContentType *model.LessonContentType `json:"contentType" binding:"omitempty,oneof=text video pdf"`
	ContentURL  *string                  `json:"contentUrl"`
	Duration    *int                     `json:"duration"`
}

func (c *AdminController) UpdateLesson(ctx *gin.Context) {
	var req UpdateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.CourseService.UpdateLesson(ctx.Request.Context(), ctx.Param("id"), model.LessonUpdate{
		Title:       req.Title,
		Content:     req.Content,
		Order:       req.Order,
		ContentType: req.ContentType,
		ContentURL:  req.ContentURL,
		Duration:    req.Duration,
	})
	if err != nil {
		c.respondCatalogError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

func (c *AdminController) DeleteLesson(ctx *gin.Context) {
	if err := c.CourseService.DeleteLesson(ctx.Request.Context(), ctx.Param("id")); err != nil {
		c.respondCatalogError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ---- resources ----

// swagger:model CreateResourceRequest
type CreateResourceRequest struct {
	CourseID    string             `json:"courseId" binding:"required"`
	Type        model.ResourceType `json:"type" binding:"required,oneof=video article document link"`
	URL         string             `json:"url" binding:"required,url"`
	Title       string             `json:"title" binding:"required"`
	Description *string            `json:"description"`
}

func (c *AdminController) CreateResource(ctx *gin.Context) {
	var req CreateResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res := &model.Resource{
		CourseID:    req.CourseID,
		Type:        req.Type,
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := c.CourseService.AddResource(ctx.Request.Context(), res); err != nil {
		c.respondCatalogError(ctx, err)
		return
	}
	util.Created(ctx, res)
}

func (c *AdminController) DeleteResource(ctx *gin.Context) {
	if err := c.CourseService.DeleteResource(ctx.Request.Context(), ctx.Param("id")); err != nil {
		c.respondCatalogError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ---- quizzes ----

// swagger:model CreateQuizRequest
type CreateQuizRequest struct {
	Title        string  `json:"title" binding:"required"`
	SkillID      string  `json:"skillId" binding:"required"`
	CourseID     *string `json:"courseId"`
	PassingScore *int    `json:"passingScore" binding:"omitempty,min=0,max=100"`
	TimeLimit    *int    `json:"timeLimit" binding:"omitempty,min=1"`
}

func (c *AdminController) CreateQuiz(ctx *gin.Context) {
	var req CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz := &model.Quiz{
		Title:        req.Title,
		SkillID:      req.SkillID,
		CourseID:     req.CourseID,
		PassingScore: req.PassingScore,
		TimeLimit:    req.TimeLimit,
	}
	if err := c.QuizService.Create(ctx.Request.Context(), quiz); err != nil {
		c.respondCatalogError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// swagger:model UpdateQuizRequest
type UpdateQuizRequest struct {
	Title        *string `json:"title"`
	PassingScore *int    `json:"passingScore" binding:"omitempty,min=0,max=100"`
	TimeLimit    *int    `json:"timeLimit" binding:"omitempty,min=1"`
}

func (c *AdminController) UpdateQuiz(ctx *gin.Context) {
	var req UpdateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Update(ctx.Request.Context(), ctx.Param("id"), model.QuizUpdate{
		Title:        req.Title,
		PassingScore: req.PassingScore,
		TimeLimit:    req.TimeLimit,
	})
	if err != nil {
		c.respondCatalogError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

func (c *AdminController) DeleteQuiz(ctx *gin.Context) {
	if err := c.QuizService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		c.respondCatalogError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *AdminController) ListQuizzes(ctx *gin.Context) {
	quizzes, err := c.QuizService.List(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// ---- questions ----

// ListQuestions returns a quiz's questions with their stored correct
// answers, for the edit screens.
func (c *AdminController) ListQuestions(ctx *gin.Context) {
	questions, err := c.QuizService.QuestionsForReview(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondCatalogError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// swagger:model CreateQuestionRequest
type CreateQuestionRequest struct {
	Content       string             `json:"content" binding:"required"`
	QuizID        string             `json:"quizId" binding:"required"`
	Type          model.QuestionType `json:"type" binding:"required,oneof=multiple_choice true_false text"`
	Options       []string           `json:"options"`
	CorrectAnswer string             `json:"correctAnswer" binding:"required"`
	Points        int                `json:"points" binding:"required,min=1"`
	Order         *int               `json:"order"`
}

func (c *AdminController) CreateQuestion(ctx *gin.Context) {
	var req CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Type == model.QuestionMultipleChoice && len(req.Options) < 2 {
		util.BadRequest(ctx, "multiple choice questions need at least two options")
		return
	}

	question := &model.Question{
		Content:       req.Content,
		QuizID:        req.QuizID,
		Type:          req.Type,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Points:        req.Points,
		Order:         req.Order,
	}
	if err := c.QuizService.CreateQuestion(ctx.Request.Context(), question); err != nil {
		c.respondCatalogError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// swagger:model UpdateQuestionRequest
type UpdateQuestionRequest struct {
	Content       *string             `json:"content"`
	Type          *model.QuestionType `json:"type" binding:"omitempty,oneof=multiple_choice true_false text"`
	Options       []string            `json:"options"`
	CorrectAnswer *string             `json:"correctAnswer"`
	Points        *int                `json:"points" binding:"omitempty,min=1"`
	Order         *int                `json:"order"`
}

func (c *AdminController) UpdateQuestion(ctx *gin.Context) {
	var req UpdateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuizService.UpdateQuestion(ctx.Request.Context(), ctx.Param("id"), model.QuestionUpdate{
		Content:       req.Content,
		Type:          req.Type,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Points:        req.Points,
		Order:         req.Order,
	})
	if err != nil {
		c.respondCatalogError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

func (c *AdminController) DeleteQuestion(ctx *gin.Context) {
	if err := c.QuizService.DeleteQuestion(ctx.Request.Context(), ctx.Param("id")); err != nil {
		c.respondCatalogError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ---- badges ----

// swagger:model CreateBadgeRequest
type CreateBadgeRequest struct {
	Title       string                   `json:"title" binding:"required"`
	Description string                   `json:"description"`
	Icon        *string                  `json:"icon"`
	Color       *string                  `json:"color"`
	Image       *string                  `json:"image"`
	SkillID     *string                  `json:"skillId"`
	Condition   *model.RawBadgeCondition `json:"condition"`
}

func (c *AdminController) CreateBadge(ctx *gin.Context) {
	var req CreateBadgeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	badge := &model.Badge{
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		Image:       req.Image,
		SkillID:     req.SkillID,
		Condition:   req.Condition,
	}
	if err := c.BadgeService.Create(ctx.Request.Context(), badge); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, badge)
}

// swagger:model UpdateBadgeRequest
type UpdateBadgeRequest struct {
	Title       *string                  `json:"title"`
	Description *string                  `json:"description"`
	Icon        *string                  `json:"icon"`
	Color       *string                  `json:"color"`
	Image       *string                  `json:"image"`
	SkillID     *string                  `json:"skillId"`
	Condition   *model.RawBadgeCondition `json:"condition"`
}

func (c *AdminController) UpdateBadge(ctx *gin.Context) {
	var req UpdateBadgeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	badge, err := c.BadgeService.Update(ctx.Request.Context(), ctx.Param("id"), model.BadgeUpdate{
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		Image:       req.Image,
		SkillID:     req.SkillID,
		Condition:   req.Condition,
	})
	if err != nil {
		c.respondCatalogError(ctx, err)
		return
	}
	util.Success(ctx, badge)
}

func (c *AdminController) DeleteBadge(ctx *gin.Context) {
	if err := c.BadgeService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		c.respondCatalogError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ---- users & overviews ----

// ListUsers godoc
// @Summary All user accounts
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.UserService.List(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

func (c *AdminController) DeleteUser(ctx *gin.Context) {
	if err := c.UserService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// ValidatedSkills godoc
// @Summary Every validation record across users
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ValidatedSkill}
// @Router /api/admin/validated-skills [get]
func (c *AdminController) ValidatedSkills(ctx *gin.Context) {
	records, err := c.ValidationService.AllValidatedSkills(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// ProgressOverview godoc
// @Summary Per-user enrollment aggregates
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.UserSkillProgress}
// @Router /api/admin/progress [get]
func (c *AdminController) ProgressOverview(ctx *gin.Context) {
	records, err := c.SkillService.USPRepo.FindAll(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// ---- uploads ----

// Upload godoc
// @Summary Store a media file (badge image, lesson content)
// @Tags admin
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   file formData file true "file to store"
// @Param   prefix formData string false "object name prefix"
// @Success 201 {object} util.Response{data=service.UploadedMedia}
// @Router /api/admin/uploads [post]
func (c *AdminController) Upload(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	prefix := ctx.DefaultPostForm("prefix", "media")

	media, err := c.StorageService.UploadMedia(ctx.Request.Context(), header, prefix)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, media)
}

// respondCatalogError maps the catalog sentinels onto status codes.
func (c *AdminController) respondCatalogError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSkillNotFound),
		errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrLessonNotFound),
		errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrBadgeNotFound),
		errors.Is(err, util.ErrResourceNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
