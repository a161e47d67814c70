package api

import (
	"orbitex/config"
	"orbitex/internal/api/apis"
	"orbitex/internal/api/handler"
	"orbitex/internal/middleware"
	"orbitex/internal/repository"
	"orbitex/internal/rpc"
	"orbitex/internal/service"
	"orbitex/pkg/bus"
	"orbitex/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// SetupRouter 设置API路由并启动内部总线服务端
func SetupRouter(cfg *config.Config, logger *logger.Logger, db *sqlx.DB, redisClient *redis.Client) (*gin.Engine, *bus.Server) {
	// 创建Gin引擎
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// 使用中间件
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// 初始化总线客户端
	busClient := bus.NewClient(redisClient, logger)

	// 初始化存储库
	announcementRepo := repository.NewAnnouncementRepository(db)

	// 初始化服务
	announcementService := service.NewAnnouncementService(announcementRepo, redisClient, logger, cfg.Announcements.DefaultLimit, cfg.Announcements.MaxLimit)
	supportService := service.NewSupportService(busClient, logger, cfg.Support.AdminEmail)

	// 启动总线服务端，向内部后台服务暴露公告管理方法
	busServer := bus.NewServer(redisClient, cfg.Bus.ServiceName, logger)
	rpc.RegisterAnnouncements(busServer, announcementService)
	busServer.Start(cfg.Bus.Workers)

	// 初始化处理器
	announcementHandler := handler.NewAnnouncementHandler(announcementService, logger)
	supportHandler := handler.NewSupportHandler(supportService, logger)

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API版本v1
	v1 := router.Group("/api/v1")

	// 注册不需要认证的路由
	apis.RegisterPublicRoutes(v1, announcementHandler)

	// 登录问题工单对未登录用户开放，但需要识别已登录用户并拒绝
	optionalAuthRouter := v1.Group("")
	optionalAuthRouter.Use(middleware.OptionalUserAuth(busClient))
	optionalAuthRouter.POST("/support/login", supportHandler.Login)

	// 其余工单主题需要认证
	authRouter := v1.Group("")
	authRouter.Use(middleware.UserAuth(busClient))
	apis.RegisterSupportRoutes(authRouter, supportHandler)

	return router, busServer
}
