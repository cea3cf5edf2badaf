package main

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/huddlehq/huddle/config"
	"github.com/huddlehq/huddle/internal/handlers"
	"github.com/huddlehq/huddle/internal/presence"
	"github.com/huddlehq/huddle/internal/repositories"
	"github.com/huddlehq/huddle/internal/routers"
	"github.com/huddlehq/huddle/internal/services"
	"github.com/huddlehq/huddle/internal/storage"
	"github.com/huddlehq/huddle/pkg/jwt"
	"github.com/huddlehq/huddle/pkg/logger"
	"github.com/huddlehq/huddle/pkg/ratelimit"
)

func main() {
	cfg, err := config.LoadConfig("./config.toml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer appLogger.Close()

	dsn := storage.BuildDSN(cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.DBName)
	db, err := storage.InitPostgres(dsn, cfg.Postgres.MaxIdleConns, cfg.Postgres.MaxOpenConns)
	if err != nil {
		appLogger.Fatal("failed to init postgres", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Fatal("failed to get sql.DB", zap.Error(err))
	}
	defer sqlDB.Close()

	redisClient, err := storage.InitRedis(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize, cfg.Redis.MinIdleConns)
	if err != nil {
		appLogger.Fatal("failed to init redis", zap.Error(err))
	}
	defer redisClient.Close()

	// 初始化仓储层
	userRepo := repositories.NewUserRepository(db)
	workspaceRepo := repositories.NewWorkspaceRepository(db)
	channelRepo := repositories.NewChannelRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	dmRepo := repositories.NewDMRepository(db)

	tokens := jwt.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpireDays)
	tracker := presence.NewTracker(redisClient, presence.DefaultTTL)
	limiter := ratelimit.NewRedisLimiter(redisClient, appLogger.Logger, cfg.RateLimit.FailOpen)

	// 初始化服务层
	authService := services.NewAuthService(userRepo, tokens, tracker)
	workspaceService := services.NewWorkspaceService(workspaceRepo, userRepo, tracker)
	channelService := services.NewChannelService(channelRepo, workspaceRepo)
	messageService := services.NewMessageService(messageRepo, channelRepo, workspaceRepo, userRepo)
	dmService := services.NewDMService(dmRepo, userRepo)

	// 初始化处理器
	h := routers.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Workspace: handlers.NewWorkspaceHandler(workspaceService),
		Channel:   handlers.NewChannelHandler(channelService),
		Message:   handlers.NewMessageHandler(messageService),
		DM:        handlers.NewDMHandler(dmService),
	}

	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())

	routers.SetupRoutes(r, cfg, appLogger, tokens, limiter, h)

	appLogger.Info("starting server", zap.Int("port", cfg.Server.Port))
	if err := r.Run(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
		appLogger.Fatal("failed to start server", zap.Error(err))
	}
}
