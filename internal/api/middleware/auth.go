package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/gin-shop/pkg/response"
)

// CtxUserID 经过鉴权后写入 gin.Context 的用户ID键
const CtxUserID = "user_id"

// JWTAuth 解析 Bearer token，取 user_id 声明写入上下文
// 登录/签发不在本服务，token 由上游颁发
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			response.Error(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "invalid claims")
			c.Abort()
			return
		}
		userID, _ := claims[CtxUserID].(string)
		if userID == "" {
			response.Error(c, http.StatusUnauthorized, "missing user_id claim")
			c.Abort()
			return
		}

		c.Set(CtxUserID, userID)
		c.Next()
	}
}
