package handler

import (
	"net/http"

	"orbitex/internal/model"
	"orbitex/internal/service"
	"orbitex/pkg/apperror"
	"orbitex/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SupportHandler 工单处理器
type SupportHandler struct {
	supportService *service.SupportService
	logger         *logger.Logger
}

// NewSupportHandler 创建工单处理器实例
func NewSupportHandler(supportService *service.SupportService, logger *logger.Logger) *SupportHandler {
	return &SupportHandler{
		supportService: supportService,
		logger:         logger,
	}
}

// Login 提交登录或注册问题工单
// @Summary 提交登录或注册问题工单
// @Description 面向无法登录的用户，已登录用户不允许提交
// @Tags 工单
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/support/login [post]
func (h *SupportHandler) Login(c *gin.Context) {
	// 已登录用户应走对应主题的工单
	if _, ok := c.Get("uid"); ok {
		respondError(c, h.logger, apperror.AlreadyLoggedIn())
		return
	}

	var form model.LoginSupportForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, h.logger, apperror.Validation("body"))
		return
	}

	if err := h.supportService.TopicLogin(c.Request.Context(), &form); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "success"})
}

// Other 提交其他问题工单
// @Summary 提交其他问题工单
// @Tags 工单
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/support/other [post]
func (h *SupportHandler) Other(c *gin.Context) {
	var form model.OtherSupportForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, h.logger, apperror.Validation("body"))
		return
	}

	if err := h.supportService.TopicOther(c.Request.Context(), c.GetInt64("uid"), &form); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "success"})
}

// Deposit 提交充值问题工单
// @Summary 提交充值问题工单
// @Tags 工单
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/support/deposit [post]
func (h *SupportHandler) Deposit(c *gin.Context) {
	var form model.DepositSupportForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, h.logger, apperror.Validation("body"))
		return
	}

	if err := h.supportService.TopicDeposit(c.Request.Context(), c.GetInt64("uid"), &form); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "success"})
}

// Withdrawal 提交提现问题工单
// @Summary 提交提现问题工单
// @Description 校验交易归属、类型、状态及冷却期后提交
// @Tags 工单
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/support/withdrawal [post]
func (h *SupportHandler) Withdrawal(c *gin.Context) {
	var form model.WithdrawalSupportForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, h.logger, apperror.Validation("body"))
		return
	}

	if err := h.supportService.TopicWithdrawal(c.Request.Context(), c.GetInt64("uid"), &form); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "success"})
}
