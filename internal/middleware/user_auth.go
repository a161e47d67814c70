package middleware

import (
	"encoding/json"
	"net/http"

	"orbitex/internal/constants"
	"orbitex/internal/model"
	"orbitex/pkg/bus"

	"github.com/gin-gonic/gin"
)

// UserAuth 用户认证中间件。通过账户服务验证Token对应的会话，
// 验证通过后将用户ID存入上下文供后续处理使用。
func UserAuth(caller bus.Caller) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "error": "UNAUTHORIZED", "msg": constants.ErrUnauthorized})
			c.Abort()
			return
		}

		session, err := getSession(c, caller, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "error": "UNAUTHORIZED", "msg": constants.ErrInvalidToken})
			c.Abort()
			return
		}

		c.Set("uid", session.UID)
		c.Next()
	}
}

// OptionalUserAuth 可选认证中间件。携带有效Token时将用户ID存入
// 上下文，未携带或验证失败时放行，由处理器决定如何响应。
func OptionalUserAuth(caller bus.Caller) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.Next()
			return
		}

		session, err := getSession(c, caller, token)
		if err == nil {
			c.Set("uid", session.UID)
		}
		c.Next()
	}
}

// getSession 向账户服务验证Token并取回会话信息
func getSession(c *gin.Context, caller bus.Caller, token string) (*model.Session, error) {
	raw, err := caller.Call(c.Request.Context(), constants.ServiceAccount, "getSession", map[string]any{"apiKey": token})
	if err != nil {
		return nil, err
	}
	var session model.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
