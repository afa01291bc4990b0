package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/microblog/pkg/response"
)

const userIDKey = "userID"

// Auth 校验 Bearer JWT，把可信的数字 user id 放入上下文
func Auth(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "authorization header required")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		sub, ok := claims["sub"].(float64)
		if !ok || sub <= 0 {
			response.Unauthorized(c, "invalid token claims")
			c.Abort()
			return
		}

		c.Set(userIDKey, uint(sub))
		c.Next()
	}
}

// CurrentUserID 取 Auth 中间件注入的用户 id；未认证返回 0
func CurrentUserID(c *gin.Context) uint {
	return c.GetUint(userIDKey)
}
