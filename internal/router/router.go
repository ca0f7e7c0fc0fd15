package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "preventivi/docs"
	"preventivi/internal/handler"
	"preventivi/internal/middleware"
	"preventivi/internal/service"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Company  *handler.CompanyHandler
	Quote    *handler.QuoteHandler
	Export   *handler.ExportHandler
	Template *handler.TemplateHandler
	Folder   *handler.FolderHandler
	Health   *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, allowedOrigins []string, log logrus.FieldLogger) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/company", h.Company.Get)
	protected.PUT("/company", h.Company.Upsert)

	quotes := protected.Group("/quotes")
	quotes.POST("/calculate", h.Quote.Calculate)
	quotes.GET("/new", h.Quote.NewDraft)
	quotes.POST("/preview", h.Export.Preview)
	quotes.POST("/pdf", h.Export.PDF)
	quotes.GET("/export", h.Export.ExportList)
	quotes.POST("/move", h.Quote.Move)
	quotes.DELETE("/trash", h.Quote.EmptyTrash)
	quotes.POST("", h.Quote.Create)
	quotes.GET("", h.Quote.List)
	quotes.GET("/:id", h.Quote.GetByID)
	quotes.PUT("/:id", h.Quote.Update)
	quotes.DELETE("/:id", h.Quote.Delete)
	quotes.POST("/:id/trash", h.Quote.Trash)
	quotes.POST("/:id/restore", h.Quote.Restore)
	quotes.GET("/:id/preview", h.Export.PreviewStored)
	quotes.GET("/:id/pdf", h.Export.PDFStored)
	quotes.POST("/:id/archive", h.Export.Archive)
	quotes.POST("/:id/send", h.Export.Send)

	templates := protected.Group("/templates")
	templates.POST("/validate", h.Template.Validate)
	templates.POST("/compose", h.Export.Compose)
	templates.GET("/default/:type", h.Template.GetDefault)
	templates.POST("", h.Template.Create)
	templates.GET("", h.Template.List)
	templates.GET("/:id", h.Template.GetByID)
	templates.PUT("/:id", h.Template.Update)
	templates.DELETE("/:id", h.Template.Delete)

	folders := protected.Group("/folders")
	folders.GET("/none/quotes", h.Folder.ListUnfiledQuotes)
	folders.POST("", h.Folder.Create)
	folders.GET("", h.Folder.List)
	folders.GET("/:id", h.Folder.GetByID)
	folders.PUT("/:id", h.Folder.Update)
	folders.DELETE("/:id", h.Folder.Delete)
	folders.GET("/:id/quotes", h.Folder.ListQuotes)

	return r
}
