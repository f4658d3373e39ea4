package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"restaurant/services"
	"restaurant/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CurrentUser is what templates know about the signed-in user.
type CurrentUser struct {
	ID       uint
	Username string
	Role     string
}

func currentUser(c *gin.Context) *CurrentUser {
	id := utils.CurrentUserID(c)
	if id == 0 {
		return nil
	}
	return &CurrentUser{ID: id, Username: utils.CurrentUsername(c), Role: utils.CurrentRole(c)}
}

// render fills the values every page expects and executes the template.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CurrentUser"] = currentUser(c)
	data["Flash"] = utils.PopFlash(c)
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = map[string]string{}
	}
	c.HTML(status, name, data)
}

// renderForm re-renders a form with 422 after a failed submission.
func renderForm(c *gin.Context, name string, data gin.H, errs map[string]string) {
	data["Errors"] = errs
	status := http.StatusOK
	if c.Request.Method == http.MethodPost {
		status = http.StatusUnprocessableEntity
	}
	render(c, status, name, data)
}

func renderError(c *gin.Context, status int, msg string) {
	render(c, status, "error", gin.H{"Title": http.StatusText(status), "Status": status, "Message": msg})
	c.Abort()
}

func notFound(c *gin.Context) {
	renderError(c, http.StatusNotFound, "The page or record you asked for does not exist.")
}

// fail maps a service error onto a page response. Conflicts become a flash
// message on the back page; unexpected errors are logged and shown as 500.
func fail(c *gin.Context, err error, back string) {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		notFound(c)
	case errors.Is(err, services.ErrInvalidTransition):
		redirectWith(c, back, "warning", "That change is not allowed in the order's current state.")
	case errors.Is(err, services.ErrOrderClosed):
		redirectWith(c, back, "warning", "This order is closed and can no longer be changed.")
	case errors.Is(err, services.ErrTableOccupied):
		redirectWith(c, back, "warning", "That table already has an active order.")
	case errors.Is(err, services.ErrInUse):
		redirectWith(c, back, "warning", "This record is used by existing orders and cannot be deleted.")
	default:
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			redirectWith(c, back, "danger", verr.Error())
			return
		}
		logrus.WithError(err).
			WithField("request_id", c.GetString(utils.CtxRequestID)).
			WithField("path", c.Request.URL.Path).
			Error("request failed")
		renderError(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}

func redirectWith(c *gin.Context, to, category, msg string) {
	utils.SetFlash(c, category, msg)
	c.Redirect(http.StatusFound, to)
}

// formErrors splits a service error into inline field messages. ok is false
// when err is not a validation error and must go through fail.
func formErrors(err error) (map[string]string, bool) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields, true
	}
	return nil, false
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		notFound(c)
		return 0, false
	}
	return uint(id), true
}
