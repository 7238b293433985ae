package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/core"
	"github.com/example/portfolio-admin/internal/live"
	"github.com/example/portfolio-admin/internal/middleware"
	"github.com/example/portfolio-admin/internal/models"
	"github.com/example/portfolio-admin/internal/prefs"
)

// PublicActor is recorded as the actor of writes made through the public
// endpoints.
const PublicActor = "visitor"

// Services groups everything the handlers depend on.
type Services struct {
	About     core.AboutService
	Education core.EducationService
	Skills    core.SkillService
	Projects  core.ProjectService
	Contact   core.ContactService
	Overview  core.OverviewService
	Audit     core.AuditService
	Theme     *prefs.Service
	Hub       *live.Hub
}

func publicActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(core.WithActor(c.Request.Context(), PublicActor))
		c.Next()
	}
}

// SetupRoutes configures all application routes. Global middleware (logging,
// recovery, CORS) is expected to be applied to router by the caller.
func SetupRoutes(router *gin.Engine, logger *zap.Logger, authMW *middleware.AuthMiddleware, svc Services) {
	aboutHandler := NewAboutHandler(svc.About, logger)
	educationHandler := newResourceHandler[models.Education, models.EducationPatch](svc.Education, logger)
	skillHandler := newResourceHandler[models.Skill, models.SkillPatch](svc.Skills, logger)
	projectHandler := NewProjectHandler(svc.Projects, logger)
	contactHandler := NewContactHandler(svc.Contact, logger)
	dashboardHandler := NewDashboardHandler(svc.Overview, svc.Audit, logger)
	themeHandler := NewThemeHandler(svc.Theme, logger)
	streamHandler := NewStreamHandler(svc.Hub, logger)
	publicHandler := NewPublicHandler(svc.About, svc.Projects, svc.Contact, logger)

	apiV1 := router.Group("/api/v1")
	{
		public := apiV1.Group("/public", publicActor())
		{
			public.GET("/about", publicHandler.GetAbout)
			public.GET("/projects", publicHandler.ListProjects)
			public.POST("/projects/:id/view", publicHandler.RecordView)
			public.POST("/contact", publicHandler.SubmitContact)
		}

		admin := apiV1.Group("", authMW.VerifyToken())
		{
			about := admin.Group("/about")
			about.GET("/active", aboutHandler.GetActive)
			about.POST("/normalize", aboutHandler.Normalize)
			aboutHandler.register(about)

			educationHandler.register(admin.Group("/education"))
			skillHandler.register(admin.Group("/skills"))

			projects := admin.Group("/projects")
			projects.POST("/:id/toggle-status", projectHandler.ToggleStatus)
			projectHandler.register(projects)

			contact := admin.Group("/contact")
			{
				contact.GET("", contactHandler.ListMessages)
				contact.GET("/:id", contactHandler.GetMessage)
				contact.PATCH("/:id/status", contactHandler.SetStatus)
				contact.POST("/:id/read", contactHandler.MarkRead)
				contact.DELETE("/:id", contactHandler.DeleteMessage)
			}

			admin.GET("/overview", dashboardHandler.GetOverview)
			admin.GET("/audit", dashboardHandler.ListAuditLogs)

			theme := admin.Group("/theme")
			{
				theme.GET("", themeHandler.GetTheme)
				theme.PUT("", themeHandler.UpdateTheme)
				theme.PUT("/mode", themeHandler.SetMode)
				theme.PUT("/colors/:slot", themeHandler.SetColor)
				theme.POST("/reset", themeHandler.ResetTheme)
				theme.GET("/appearance", themeHandler.Appearance)
				theme.GET("/stream", themeHandler.Stream)
			}

			admin.GET("/stream/:collection", streamHandler.StreamCollection)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Portfolio admin backend is healthy."})
	})

	logger.Info("API routes configured successfully under /api/v1 and /health.")
}
