package routers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	appconfig "github.com/huddlehq/huddle/config"
	"github.com/huddlehq/huddle/internal/handlers"
	"github.com/huddlehq/huddle/pkg/jwt"
	"github.com/huddlehq/huddle/pkg/logger"
	"github.com/huddlehq/huddle/pkg/middlewares"
	"github.com/huddlehq/huddle/pkg/ratelimit"
)

// Handlers groups every route handler the router mounts.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Workspace *handlers.WorkspaceHandler
	Channel   *handlers.ChannelHandler
	Message   *handlers.MessageHandler
	DM        *handlers.DMHandler
}

// SetupRoutes 设置所有路由
func SetupRoutes(r *gin.Engine, cfg *appconfig.Config, log *logger.Logger,
	tokens *jwt.TokenManager,
	limiter ratelimit.Limiter,
	h Handlers,
) {
	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.Use(middlewares.RequestLogMiddleware(log))

	if cfg.RateLimit.Enabled && limiter != nil {
		r.Use(middlewares.RateLimitMiddleware(limiter, cfg.RateLimit.RequestsPerMin))
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"Status": "OK",
		})
	})

	api := r.Group("/api/v0")
	{
		api.POST("/login", h.Auth.Login)
		api.POST("/register", h.Auth.Register)
	}

	auth := api.Group("")
	auth.Use(middlewares.AuthMiddleware(tokens))
	{
		auth.POST("/logout", h.Auth.Logout)

		auth.POST("/workspaces", h.Workspace.Create)
		auth.GET("/workspaces", h.Workspace.List)
		auth.PUT("/workspaces/current", h.Workspace.SetCurrent)
		auth.GET("/workspaces/current", h.Workspace.GetCurrent)
		auth.GET("/workspaces/:id/users", h.Workspace.ListUsers)

		auth.POST("/workspaces/:id/channels", h.Channel.Create)
		auth.GET("/workspaces/:id/channels", h.Channel.List)

		auth.GET("/channels/:channelId/messages", h.Message.List)
		auth.POST("/channels/:channelId/messages", h.Message.Post)

		auth.GET("/dm/:userId/messages", h.DM.List)
		auth.POST("/dm/:userId/messages", h.DM.Post)
	}
}
