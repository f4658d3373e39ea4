// Package resp writes the JSON bodies of the POS API.
package resp

import (
	"net/http"

	"restaurant/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}
func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
func Unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}
func Forbidden(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": msg})
}
func NotFound(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": msg})
}
func Conflict(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": msg})
}
func TooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
}

// ServerError logs err and hides it from the client.
func ServerError(c *gin.Context, err error) {
	logrus.WithError(err).
		WithField("request_id", c.GetString(utils.CtxRequestID)).
		WithField("path", c.Request.URL.Path).
		Error("request failed")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
