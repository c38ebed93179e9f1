package controller

import (
	"anre_quiz_backend/internal/middleware"
	"anre_quiz_backend/internal/model"
	"anre_quiz_backend/internal/service"
	"anre_quiz_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *service.AuthService
	Limiter *middleware.FailedAuthLimiter
}

func NewAuthController(svc *service.AuthService, limiter *middleware.FailedAuthLimiter) *AuthController {
	return &AuthController{Service: svc, Limiter: limiter}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "account details"
// @Success 201 {object} util.Response
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	clientIP := ctx.ClientIP()
	if retryAfter, limited := c.Limiter.Check(ctx, clientIP); limited {
		util.TooManyRequests(ctx, middleware.RetryMessage(retryAfter))
		return
	}

	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.Limiter.RecordFailure(ctx, clientIP)
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.Student,
	}
	if err := c.Service.Register(user); err != nil {
		c.Limiter.RecordFailure(ctx, clientIP)
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Conflict(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	c.Limiter.Reset(ctx, clientIP)
	util.Created(ctx, user)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "credentials"
// @Success 200 {object} util.Response
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	clientIP := ctx.ClientIP()
	if retryAfter, limited := c.Limiter.Check(ctx, clientIP); limited {
		util.TooManyRequests(ctx, middleware.RetryMessage(retryAfter))
		return
	}

	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.Limiter.RecordFailure(ctx, clientIP)
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.Service.Login(req.Email, req.Password)
	if err != nil {
		c.Limiter.RecordFailure(ctx, clientIP)
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Unauthorized(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	c.Limiter.Reset(ctx, clientIP)
	util.Success(ctx, gin.H{"token": token})
}

// @Summary Current user profile
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	user := c.Service.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user)
}
