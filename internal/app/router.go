package app

import (
	"skillforge_backend/docs"
	"skillforge_backend/internal/config"
	"skillforge_backend/internal/middleware"
	"skillforge_backend/internal/model"
	"skillforge_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerUserRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.user.GetProfile)
	rg.PUT("/profile", c.user.UpdateProfile)

	// Skill catalog and enrollment. Static paths before the :id wildcard.
	rg.GET("/skills", c.skill.Available)
	rg.GET("/skills/enrolled", c.skill.Enrolled)
	rg.GET("/skills/validated", c.skill.Validated)
	rg.GET("/skills/:id", c.skill.Details)
	rg.POST("/skills/:id/enroll", c.skill.Enroll)
	rg.DELETE("/skills/:id/enroll", c.skill.Unenroll)

	rg.GET("/courses/:id", c.course.Details)
	rg.POST("/courses/:id/start", c.course.Start)
	rg.POST("/courses/:id/complete", c.course.Complete)

	rg.GET("/lessons/:id", c.course.Lesson)
	rg.POST("/lessons/:id/start", c.course.StartLesson)
	rg.POST("/lessons/:id/complete", c.course.CompleteLesson)

	rg.GET("/quizzes/:id", c.quiz.Get)
	rg.POST("/quizzes/:id/submit", c.quiz.Submit)

	rg.GET("/progress", c.progress.List)
	rg.GET("/progress/history", c.progress.History)

	rg.GET("/badges", c.badge.List)
	rg.GET("/badges/mine", c.badge.Mine)

	rg.GET("/goals", c.goal.List)
	rg.POST("/goals", c.goal.Create)
	rg.PUT("/goals/:id", c.goal.Update)
	rg.DELETE("/goals/:id", c.goal.Delete)

	rg.GET("/notifications", c.notification.List)
	rg.PUT("/notifications/read-all", c.notification.MarkAllRead)
	rg.PUT("/notifications/:id/read", c.notification.MarkRead)
	rg.DELETE("/notifications/:id", c.notification.Delete)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/skills", c.admin.ListSkills)
		admin.POST("/skills", c.admin.CreateSkill)
		admin.PUT("/skills/:id", c.admin.UpdateSkill)
		admin.DELETE("/skills/:id", c.admin.DeleteSkill)

		admin.GET("/courses", c.admin.ListCourses)
		admin.POST("/courses", c.admin.CreateCourse)
		admin.PUT("/courses/:id", c.admin.UpdateCourse)
		admin.DELETE("/courses/:id", c.admin.DeleteCourse)

		admin.POST("/lessons", c.admin.CreateLesson)
		admin.PUT("/lessons/:id", c.admin.UpdateLesson)
		admin.DELETE("/lessons/:id", c.admin.DeleteLesson)

		admin.POST("/resources", c.admin.CreateResource)
		admin.DELETE("/resources/:id", c.admin.DeleteResource)

		admin.GET("/quizzes", c.admin.ListQuizzes)
		admin.GET("/quizzes/:id/questions", c.admin.ListQuestions)
		admin.POST("/quizzes", c.admin.CreateQuiz)
		admin.PUT("/quizzes/:id", c.admin.UpdateQuiz)
		admin.DELETE("/quizzes/:id", c.admin.DeleteQuiz)

		admin.POST("/questions", c.admin.CreateQuestion)
		admin.PUT("/questions/:id", c.admin.UpdateQuestion)
		admin.DELETE("/questions/:id", c.admin.DeleteQuestion)

		admin.POST("/badges", c.admin.CreateBadge)
		admin.PUT("/badges/:id", c.admin.UpdateBadge)
		admin.DELETE("/badges/:id", c.admin.DeleteBadge)

		admin.GET("/users", c.admin.ListUsers)
		admin.DELETE("/users/:id", c.admin.DeleteUser)

		admin.GET("/progress", c.admin.ProgressOverview)
		admin.GET("/validated-skills", c.admin.ValidatedSkills)

		admin.POST("/uploads", c.admin.Upload)
	}
}
