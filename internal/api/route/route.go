package route

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bassista/go_restate/internal/api/controller"
	"github.com/bassista/go_restate/internal/api/middleware"
	"github.com/bassista/go_restate/internal/app"
	"github.com/bassista/go_restate/internal/logger"
)

// SetupRoutes builds the gin engine for the posts API.
func SetupRoutes(appCtx *app.App) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.HoneybadgerMiddleware(logger.Logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(appCtx.Config.Server.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "UP"})
	})

	pc := controller.NewPostController(appCtx.Cache)

	posts := r.Group("/posts")
	posts.Use(middleware.RequestTimeout(appCtx.Config.Server.RequestTimeout))
	posts.Use(middleware.TokenAuth(appCtx.Config.Server.AuthParam, appCtx.Config.Server.AuthToken))

	posts.GET("", pc.List)
	posts.GET("/:id", pc.GetByID)
	posts.POST("", pc.Create)
	posts.PUT("/:id", pc.Update)

	return r
}
