package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coeptech/unimis/internal/app/models/dto"
	"github.com/coeptech/unimis/internal/app/services"
	"github.com/coeptech/unimis/internal/middleware"
)

// ApplicationController handles admission application endpoints
type ApplicationController struct {
	applicationService services.ApplicationService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService services.ApplicationService) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
	}
}

// Apply handles application submission
// @Summary Submit an admission application
// @Description Stores the application form with the uploaded receipt and merit document PDFs
// @Tags application
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param firstname formData string true "First name"
// @Param lastname formData string true "Last name"
// @Param course formData string true "Course name"
// @Param receipt formData file false "Fee receipt PDF"
// @Param merit_document formData file false "Merit document PDF"
// @Success 201 {object} dto.APIResponse{data=dto.ApplySubmittedResponse} "Application stored"
// @Failure 400 {object} dto.ErrorResponse "Invalid form data or non-PDF upload"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 409 {object} dto.ErrorResponse "Application already submitted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /application/apply [post]
func (c *ApplicationController) Apply(ctx *gin.Context) {
	var req dto.ApplyRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid application data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	// Both documents are optional; the multipart form may omit either.
	receipt, _ := ctx.FormFile("receipt")
	meritDoc, _ := ctx.FormFile("merit_document")

	email := ctx.GetString(middleware.ContextEmail)

	resp, err := c.applicationService.Apply(ctx, &req, email, receipt, meritDoc)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// Check reports whether a user has applied
// @Summary Check for an existing application
// @Description Returns the user's application when one exists
// @Tags application
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationCheckResponse} "Check result"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /application/check/{user_id} [get]
func (c *ApplicationController) Check(ctx *gin.Context) {
	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	resp, err := c.applicationService.Check(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// Status reports the fee status of a user's application
// @Summary Get application fee status
// @Description Returns whether the user applied and the fee status of the application
// @Tags application
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationStatusResponse} "Status result"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /application/status/{user_id} [get]
func (c *ApplicationController) Status(ctx *gin.Context) {
	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	resp, err := c.applicationService.Status(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

func parseUserID(ctx *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(ctx.Param("user_id"), 10, 64)
	if err != nil || userID < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		errorDetail = errorDetail.WithDetails("User ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return userID, true
}
