package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"jobboard-backend/controllers"
	"jobboard-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	lc *controllers.ListingController,
	cc *controllers.ContactController,
	rc *controllers.ReportController,
	ac *controllers.AuthController,
	jwtSecret string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.ResolveIdentity(jwtSecret))
	{
		listings := api.Group("/listings")
		{
			listings.GET("", lc.GetListings)
			listings.POST("", lc.CreateListing)

			// anonymous submit path; the only response that carries a manage token
			listings.POST("/public", lc.CreatePublicListing)

			// capability-token path, entirely separate from the admin role path
			listings.GET("/manage/:token", lc.GetManagedListing)
			listings.PUT("/manage/:token", lc.UpdateManagedListing)
			listings.DELETE("/manage/:token", lc.DeleteManagedListing)

			listings.GET("/:id", lc.GetListing)
			listings.PUT("/:id", lc.UpdateListing)
			listings.PUT("/:id/status", middleware.RequireAdmin(), lc.UpdateListingStatus)
			listings.DELETE("/:id", middleware.RequireAdmin(), lc.DeleteListing)

			listings.GET("/:id/contacts", middleware.RequireAdmin(), cc.GetContacts)
			listings.POST("/:id/contacts", cc.CreateContact)

			listings.GET("/:id/reports", middleware.RequireAdmin(), rc.GetReports)
			listings.POST("/:id/reports", rc.CreateReport)
			listings.PUT("/:id/reports/:reportId/resolve", middleware.RequireAdmin(), rc.ResolveReport)
		}

		api.GET("/reports", middleware.RequireAdmin(), rc.GetAllReports)

		auth := api.Group("/auth")
		{
			auth.POST("/register", ac.Register)
			auth.POST("/login", ac.Login)
		}
	}

	return r
}
