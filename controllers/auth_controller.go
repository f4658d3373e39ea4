package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"restaurant/services"
	"restaurant/utils"

	"github.com/gin-gonic/gin"
)

type RegisterForm struct {
	Username        string `form:"username" binding:"required,min=2,max=20"`
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=Password"`
}

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
	Remember bool   `form:"remember"`
	Next     string `form:"next"`
}

type AuthController struct {
	Auth         *services.AuthService
	CookieSecure bool
}

func NewAuthController(auth *services.AuthService, cookieSecure bool) *AuthController {
	return &AuthController{Auth: auth, CookieSecure: cookieSecure}
}

// GET /
func (a *AuthController) Index(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	render(c, http.StatusOK, "index", gin.H{"Title": "Welcome"})
}

// GET /login
func (a *AuthController) LoginPage(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	render(c, http.StatusOK, "auth/login", gin.H{
		"Title": "Log in",
		"Form":  LoginForm{Next: c.Query("next")},
	})
}

// POST /login
func (a *AuthController) Login(c *gin.Context) {
	var form LoginForm
	data := gin.H{"Title": "Log in"}
	if err := c.ShouldBind(&form); err != nil {
		data["Form"] = form
		renderForm(c, "auth/login", data, utils.FieldErrors(err, &form))
		return
	}
	data["Form"] = form

	token, user, err := a.Auth.Login(form.Username, form.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		renderForm(c, "auth/login", data, map[string]string{
			utils.FormErrorKey: "Login unsuccessful. Please check username and password.",
		})
		return
	}
	if err != nil {
		fail(c, err, "/login")
		return
	}

	// without "remember me" the cookie dies with the browser session
	ttl := a.Auth.TTL()
	if !form.Remember {
		ttl = 0
	}
	utils.SetSession(c, token, ttl, a.CookieSecure)
	redirectWith(c, safeNext(form.Next), "success", "Welcome back, "+user.Username+"!")
}

// GET /logout
func (a *AuthController) Logout(c *gin.Context) {
	utils.ClearSession(c)
	redirectWith(c, "/login", "info", "You have been logged out.")
}

// GET /register
func (a *AuthController) RegisterPage(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	render(c, http.StatusOK, "auth/register", gin.H{"Title": "Register", "Form": RegisterForm{}})
}

// POST /register
func (a *AuthController) Register(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	var form RegisterForm
	data := gin.H{"Title": "Register"}
	if err := c.ShouldBind(&form); err != nil {
		data["Form"] = form
		renderForm(c, "auth/register", data, utils.FieldErrors(err, &form))
		return
	}
	data["Form"] = form

	if _, err := a.Auth.Register(form.Username, form.Email, form.Password); err != nil {
		if errs, ok := formErrors(err); ok {
			renderForm(c, "auth/register", data, errs)
			return
		}
		fail(c, err, "/register")
		return
	}
	redirectWith(c, "/login", "success", "Your account has been created. You can now log in.")
}

// safeNext only follows local paths. Browsers read a backslash as a slash,
// so "/\host" is as foreign as "//host".
func safeNext(next string) string {
	if next == "" || strings.ContainsRune(next, '\\') {
		return "/dashboard"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" ||
		!strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/dashboard"
	}
	return next
}
