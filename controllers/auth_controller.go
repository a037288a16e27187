package controllers

import (
	"github.com/dhbw-mensa/backend/middlewares"
	"github.com/dhbw-mensa/backend/pkg/resp"
	"github.com/dhbw-mensa/backend/services"
	"github.com/dhbw-mensa/backend/utils"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type AuthController struct {
	Auth     *services.AuthService
	Sessions *services.SessionService
}

func NewAuthController(auth *services.AuthService, sessions *services.SessionService) *AuthController {
	return &AuthController{Auth: auth, Sessions: sessions}
}

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := bindJSON(c, &req); err != nil {
		resp.Error(c, err)
		return
	}
	user, role, err := a.Auth.Register(c.Request.Context(), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"user": user, "role": role})
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		resp.Error(c, err)
		return
	}
	res, err := a.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, res)
}

// POST /auth/logout
func (a *AuthController) Logout(c *gin.Context) {
	if err := a.Auth.Logout(c.Request.Context(), utils.BearerToken(c)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"area": services.AreaLogin})
}

// GET /auth/session
func (a *AuthController) Session(c *gin.Context) {
	sess := middlewares.CurrentSession(c)
	user, role, err := a.Auth.CurrentUser(c.Request.Context(), sess.UserID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{
		"user":                user,
		"role":                role.Role,
		"preferredLocationId": role.PreferredLocationID,
		"expiresAt":           sess.ExpiresAt,
	})
}

// POST /auth/forgot-password
func (a *AuthController) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := bindJSON(c, &req); err != nil {
		resp.Error(c, err)
		return
	}
	if err := a.Auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "if the address is registered, a reset code has been sent"})
}

// POST /auth/reset-password
func (a *AuthController) ResetPassword(c *gin.Context) {
	var req services.ResetPasswordInput
	if err := bindJSON(c, &req); err != nil {
		resp.Error(c, err)
		return
	}
	if err := a.Auth.ResetPassword(c.Request.Context(), req); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "password updated"})
}

// GET /session/resolve
func (a *AuthController) Resolve(c *gin.Context) {
	resp.OK(c, gin.H{"area": a.Sessions.Resolve(c.Request.Context(), utils.BearerToken(c))})
}
