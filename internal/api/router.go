package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/microblog/config"
	"github.com/d60-Lab/microblog/internal/api/handler"
	"github.com/d60-Lab/microblog/internal/middleware"
)

// NewRouter 组装路由与中间件
func NewRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(),
		otelgin.Middleware(cfg.AppName),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.RateLimit(cfg.RateLimit),
	)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
	}

	authed := middleware.Auth(cfg.JWTSecret)

	posts := v1.Group("/posts")
	{
		posts.POST("", authed, h.CreatePost)
		posts.GET("", authed, h.GetTimeline)
		posts.GET("/:id", authed, h.GetPostDetail)
		posts.PATCH("/:id", authed, h.UpdatePost)
		posts.DELETE("/:id", authed, h.DeletePost)
		posts.POST("/:id/like", authed, h.ToggleLike)
		posts.POST("/:id/repost", authed, h.ToggleRepost)
		posts.POST("/:id/quote", authed, h.QuotePost)
		posts.GET("/:id/comments", h.ListComments)
		posts.POST("/:id/comments", authed, h.AddComment)
	}

	users := v1.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.GET("/search", h.SearchUsers)
		users.GET("/:id", h.GetProfile)
		users.GET("/:id/followers", h.ListFollowers)
		users.GET("/:id/following", h.ListFollowing)
		users.POST("/:id/follow", authed, h.Follow)
		users.POST("/:id/unfollow", authed, h.Unfollow)
		users.PATCH("/update", authed, h.UpdateProfile)
		users.DELETE("/delete", authed, h.DeleteAccount)
	}

	return r
}
