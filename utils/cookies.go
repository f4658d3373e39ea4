package utils

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "session"
	flashCookie   = "flash"
)

// SetSession stores the signed token in an HttpOnly cookie. A zero ttl makes
// it a browser-session cookie.
func SetSession(c *gin.Context, token string, ttl time.Duration, secure bool) {
	maxAge := 0
	if ttl > 0 {
		maxAge = int(ttl.Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", secure, true)
}

func ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string // success, info, warning, danger
	Message  string
}

func SetFlash(c *gin.Context, category, message string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, url.QueryEscape(category+"|"+message), 60, "/", "", false, true)
}

// PopFlash reads and clears the pending flash, if any.
func PopFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	v, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	category, message, ok := strings.Cut(v, "|")
	if !ok {
		return &Flash{Category: "info", Message: v}
	}
	return &Flash{Category: category, Message: message}
}
