package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coeptech/unimis/internal/app/models/dto"
	"github.com/coeptech/unimis/internal/app/services"
	"github.com/coeptech/unimis/internal/middleware"
)

// MISAuthController handles MIS-portal authentication endpoints
type MISAuthController struct {
	misAuthService services.MISAuthService
}

// NewMISAuthController creates a new MISAuthController
func NewMISAuthController(misAuthService services.MISAuthService) *MISAuthController {
	return &MISAuthController{
		misAuthService: misAuthService,
	}
}

// Register handles MIS staff registration
// @Summary Register an MIS account
// @Description Creates an MIS-portal account for an admin, teacher or student
// @Tags mis-auth
// @Accept json
// @Produce json
// @Param request body dto.MISRegisterRequest true "Registration information"
// @Success 201 {object} dto.APIResponse{data=dto.MessageResponse} "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown role"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /mis/auth/register [post]
func (c *MISAuthController) Register(ctx *gin.Context) {
	var req dto.MISRegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	misID, err := c.misAuthService.Register(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.MessageResponse{Message: "Account created with MIS id " + misID},
		Timestamp: time.Now(),
	})
}

// Login handles MIS login
// @Summary Log in to the MIS portal
// @Description Verifies credentials and returns a bearer token carrying the MIS role and id
// @Tags mis-auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.MISLoginResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /mis/auth/login [post]
func (c *MISAuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.misAuthService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}
