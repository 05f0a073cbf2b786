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

// AdminController handles admissions review and the migration job
type AdminController struct {
	adminService     services.AdminService
	migrationService services.MigrationService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService, migrationService services.MigrationService) *AdminController {
	return &AdminController{
		adminService:     adminService,
		migrationService: migrationService,
	}
}

// ListApplications returns every admission application
// @Summary List all applications
// @Description Returns all admission applications, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Application} "Applications retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/applications [get]
func (c *AdminController) ListApplications(ctx *gin.Context) {
	applications, err := c.adminService.ListApplications(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      applications,
		Timestamp: time.Now(),
	})
}

// UpdateApplicationStatus moves an application through the admission lifecycle
// @Summary Update application status
// @Description Sets an application's admission status to pending, confirmed or rejected
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse} "Status updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID or status value"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/applications/{id} [put]
func (c *AdminController) UpdateApplicationStatus(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid application ID")
		errorDetail = errorDetail.WithDetails("Application ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.adminService.UpdateApplicationStatus(ctx, id, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.MessageResponse{Message: "Application status updated"},
		Timestamp: time.Now(),
	})
}

// Migrate runs the confirmed-applications migration job
// @Summary Migrate confirmed applications
// @Description Copies confirmed applications into the MIS database as student accounts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MigrationResponse} "Migration finished"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 404 {object} dto.ErrorResponse "No confirmed applications"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/migrate [post]
func (c *AdminController) Migrate(ctx *gin.Context) {
	resp, err := c.migrationService.MigrateConfirmed(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}
