package routes

import (
	"time"

	"cibnlibrary/handlers"
	"cibnlibrary/middleware"
	"cibnlibrary/models"
	"cibnlibrary/templates"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterLibraryRoutes registers the library passthrough. The handlers do
// their own session check.
func RegisterLibraryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/library")
	{
		api.GET("", hb.Library.ListHandler)
		api.POST("", hb.Library.CreateHandler)
	}
}

// RegisterAuthRoutes registers login, logout and the current-member endpoint.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.Auth.LoginHandler)
		api.POST("/cibn-login", hb.Auth.CIBNLoginHandler)
		api.POST("/logout", hb.Auth.LogoutHandler)
		api.GET("/me", hb.Auth.MeHandler)
	}
}

// RegisterPageRoutes registers the CMS pages and the auth debug page.
func RegisterPageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	pages := r.Group("")
	pages.Use(middleware.SessionMiddleware(hb.Sessions))
	{
		for _, key := range models.PageKeys {
			pages.GET("/"+string(key), hb.Pages.Render(key))
		}
		pages.GET("/debug/auth", hb.Debug.PageHandler)
		pages.GET("/api/debug/auth", hb.Debug.JSONHandler)
	}
}

// RegisterContentRoutes registers CMS reads and the admin editor.
func RegisterContentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/cms/pages", hb.CMS.GetPagesHandler)
	r.GET("/api/config/departments", hb.Config.DepartmentsHandler)

	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AdminTokenMiddleware(hb.AdminToken))
		adminGroup.PUT("/cms/:page", hb.CMS.SavePageHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints, views and CORS.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.SetHTMLTemplate(templates.Must())

	RegisterLibraryRoutes(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterPageRoutes(r, hb)
	RegisterContentRoutes(r, hb)
	RegisterHealthRoute(r)
	r.NoRoute(handlers.NotFoundHandler)
}
