package jwt

import "github.com/gin-gonic/gin"

// GetUserPayload 取出 Auth 中间件写入的用户载荷
func GetUserPayload(c *gin.Context) (*Claims, bool) {
	payload, _ := c.Get("payload")
	claims, ok := payload.(*Claims)
	return claims, ok
}
