package app

import (
	"anre_quiz_backend/internal/config"
	"anre_quiz_backend/internal/middleware"
	"anre_quiz_backend/internal/model"
	"anre_quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerEditorRoutes(authGroup, c)
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

	// Indexable learn pages, auth optional.
	learn := router.Group("/learn")
	learn.Use(middleware.TryAuthMiddleware(a.Config))
	{
		learn.GET("", c.learn.SubjectList)
		learn.GET("/:subjectSlug", c.learn.SubjectDetail)
		learn.GET("/:subjectSlug/:blockSlug", c.learn.BlockDetail)
		learn.GET("/:subjectSlug/:blockSlug/:qid", c.learn.QuestionDetail)
	}

	router.GET("/sitemap.xml", c.seo.Sitemap)
	router.GET("/robots.txt", c.seo.Robots)
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.GET("/dashboard", c.quiz.Dashboard)

	rg.GET("/subjects/:subject/blocks/:block", c.quiz.GetBlock)
	rg.POST("/subjects/:subject/blocks/:block/submit", c.quiz.SubmitBlock)
	rg.GET("/subjects/:subject/blocks/:block/attempts", c.quiz.BlockHistory)

	rg.GET("/subjects/:subject/blocks/:block/note", c.note.GetNote)
	rg.PUT("/subjects/:subject/blocks/:block/note", c.note.SaveNote)
	rg.GET("/notes", c.note.ListNotes)
}

func (a *App) registerEditorRoutes(rg *gin.RouterGroup, c *controllers) {
	// Any authenticated user may open a question for collaborative editing;
	// the edit rules themselves depend on the user's role.
	rg.GET("/subjects/:subject/blocks/:block/questions", c.editor.ListBlockQuestions)
	rg.GET("/subjects/:subject/questions/:qid", c.editor.GetQuestion)
	rg.PUT("/subjects/:subject/questions/:qid", c.editor.EditQuestion)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/attempts", c.quiz.RecentAttempts)
		admin.POST("/import", c.editor.ImportAll)
		admin.POST("/subjects/:subject/import", c.editor.ImportSubject)
		admin.POST("/subjects/:subject/export", c.editor.ExportSubject)
	}
}
