package middlewares

import (
	"net/http"
	"net/url"
	"strings"

	"restaurant/pkg/resp"
	"restaurant/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a valid session and, when roles are given, one of
// those roles. Pages redirect to the login form; JSON callers get 401/403.
func AuthMiddleware(secret string, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := utils.ParseToken(tokenFrom(c), secret)
		if err != nil {
			if wantsJSON(c) {
				resp.Unauthorized(c, "authentication required")
				return
			}
			utils.SetFlash(c, "info", "Please log in to access this page.")
			c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		setClaims(c, claims)

		if len(requiredRoles) > 0 && !utils.HasRole(c, requiredRoles...) {
			if wantsJSON(c) {
				resp.Forbidden(c, "forbidden")
				return
			}
			utils.SetFlash(c, "danger", "You do not have permission to do that.")
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuth loads the session when present and never aborts.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tok := tokenFrom(c); tok != "" {
			if claims, err := utils.ParseToken(tok, secret); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// RequireRoles checks the role of a session already loaded by AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if utils.HasRole(c, roles...) {
			c.Next()
			return
		}
		if wantsJSON(c) {
			resp.Forbidden(c, "forbidden")
			return
		}
		utils.SetFlash(c, "danger", "You do not have permission to do that.")
		c.Redirect(http.StatusFound, "/dashboard")
		c.Abort()
	}
}

func tokenFrom(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if v, err := c.Cookie(utils.SessionCookie); err == nil {
		return v
	}
	return ""
}

func setClaims(c *gin.Context, claims *utils.Claims) {
	c.Set(utils.CtxUserID, claims.UserID)
	c.Set(utils.CtxUsername, claims.Username)
	c.Set(utils.CtxRole, claims.Role)
}

func wantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return true
	}
	if c.GetHeader("Authorization") != "" {
		return true
	}
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}
