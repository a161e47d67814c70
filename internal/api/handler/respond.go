package handler

import (
	"net/http"

	"orbitex/internal/constants"
	"orbitex/pkg/apperror"
	"orbitex/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondError 统一错误响应。业务错误按其自带的状态码和类型返回，
// 其余错误记录日志后返回内部错误，不向客户端暴露细节。
func respondError(c *gin.Context, log *logger.Logger, err error) {
	appErr := apperror.From(err)
	if appErr.Kind == apperror.KindInternal {
		log.Error("请求处理失败", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":  http.StatusInternalServerError,
			"error": apperror.KindInternal,
			"msg":   constants.ErrInternalServer,
		})
		return
	}

	c.JSON(appErr.Status, gin.H{
		"code":  appErr.Status,
		"error": appErr.Kind,
		"msg":   appErr.Details,
	})
}
