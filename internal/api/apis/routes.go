package apis

import (
	"orbitex/internal/api/handler"

	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes 注册不需要认证的路由
func RegisterPublicRoutes(router *gin.RouterGroup, announcementHandler *handler.AnnouncementHandler) {
	// 公告相关路由
	router.GET("/announcements", announcementHandler.GetAnnouncements)
	router.GET("/announcements/:annoid", announcementHandler.GetAnnouncementByID)
}

// RegisterSupportRoutes 注册需要认证的工单路由。
// login由可选认证路由组单独注册，用于拦截已登录用户。
func RegisterSupportRoutes(router *gin.RouterGroup, supportHandler *handler.SupportHandler) {
	router.POST("/support/other", supportHandler.Other)
	router.POST("/support/deposit", supportHandler.Deposit)
	router.POST("/support/withdrawal", supportHandler.Withdrawal)
}
