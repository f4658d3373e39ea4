package utils

import "github.com/gin-gonic/gin"

const (
	CtxUserID    = "userId"
	CtxUsername  = "username"
	CtxRole      = "role"
	CtxRequestID = "requestId"
)

func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get(CtxUserID)
	switch id := v.(type) {
	case uint:
		return id
	case int:
		return uint(id)
	case float64:
		return uint(id)
	default:
		return 0
	}
}

func CurrentUsername(c *gin.Context) string {
	return c.GetString(CtxUsername)
}

func CurrentRole(c *gin.Context) string {
	return c.GetString(CtxRole)
}

// HasRole reports whether the signed-in user holds one of roles.
func HasRole(c *gin.Context, roles ...string) bool {
	current := CurrentRole(c)
	for _, r := range roles {
		if r == current {
			return true
		}
	}
	return false
}
