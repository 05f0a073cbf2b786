package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coeptech/unimis/internal/app/models/dto"
	"github.com/coeptech/unimis/internal/app/services"
	"github.com/coeptech/unimis/internal/middleware"
)

// AuthController handles admissions-portal authentication endpoints
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Register handles applicant registration
// @Summary Register an applicant account
// @Description Creates an admissions-portal account for a new applicant
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration information"
// @Success 201 {object} dto.APIResponse{data=dto.MessageResponse} "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or password mismatch"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if _, err := c.authService.Register(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.MessageResponse{Message: "Account created successfully"},
		Timestamp: time.Now(),
	})
}

// Login handles applicant login
// @Summary Log in to the admissions portal
// @Description Verifies credentials and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// Profile echoes the identity decoded from the bearer token
// @Summary Get the authenticated user's profile
// @Description Returns the identity claims carried by the bearer token
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Profile retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /users/profile [get]
func (c *AuthController) Profile(ctx *gin.Context) {
	userID := ctx.GetInt64(middleware.ContextUserID)
	email := ctx.GetString(middleware.ContextEmail)
	role := ctx.GetString(middleware.ContextRole)
	misID := ctx.GetString(middleware.ContextMISID)

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.ProfileResponse{
			ID:    userID,
			Email: email,
			Role:  role,
			MISID: misID,
		},
		Timestamp: time.Now(),
	})
}
