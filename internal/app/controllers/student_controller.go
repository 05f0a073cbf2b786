package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coeptech/unimis/internal/app/models/dto"
	"github.com/coeptech/unimis/internal/app/services"
	"github.com/coeptech/unimis/internal/middleware"
)

// StudentController handles the student-facing MIS endpoints
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// Profile returns the student dashboard payload
// @Summary Get student profile
// @Description Returns the student row with course name and course subject names
// @Tags mis-student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /mis/student/profile [get]
func (c *StudentController) Profile(ctx *gin.Context) {
	resp, err := c.studentService.Profile(ctx, ctx.GetString(middleware.ContextMISID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp, Timestamp: time.Now()})
}

// AvailableSubjects lists the course subjects and current selection
// @Summary List available subjects
// @Description Returns the student's course subjects with the already selected ids
// @Tags mis-student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AvailableSubjectsResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /mis/student/subjects [get]
func (c *StudentController) AvailableSubjects(ctx *gin.Context) {
	resp, err := c.studentService.AvailableSubjects(ctx, ctx.GetString(middleware.ContextMISID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp, Timestamp: time.Now()})
}

// SelectSubjects stores the semester subject selection
// @Summary Select semester subjects
// @Description Replaces the student's selection; exactly the configured number of subjects is required
// @Tags mis-student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubjectSelectionRequest true "Selected subject ids"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 400 {object} dto.ErrorResponse "Wrong selection size or foreign subject"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /mis/student/subjects [post]
func (c *StudentController) SelectSubjects(ctx *gin.Context) {
	var req dto.SubjectSelectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid selection data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.studentService.SelectSubjects(ctx, ctx.GetString(middleware.ContextMISID), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.MessageResponse{Message: "Subjects selected successfully"},
		Timestamp: time.Now(),
	})
}

// Enrollments returns the student's current enrollments
// @Summary List enrollments
// @Description Returns the enrolled subjects with instructor names, attendance counters and marks
// @Tags mis-student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentsResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /mis/student/enrollments [get]
func (c *StudentController) Enrollments(ctx *gin.Context) {
	resp, err := c.studentService.Enrollments(ctx, ctx.GetString(middleware.ContextMISID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp, Timestamp: time.Now()})
}

// Certificate renders a certificate PDF for the student
// @Summary Download a certificate
// @Description Renders a bonafide, librarycard or idcard PDF for the student
// @Tags mis-student
// @Produce application/pdf
// @Security BearerAuth
// @Param type path string true "Certificate type"
// @Success 200 {file} binary "Certificate PDF"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /mis/student/certificate/{type} [get]
func (c *StudentController) Certificate(ctx *gin.Context) {
	certType := ctx.Param("type")

	pdf, err := c.studentService.Certificate(ctx, ctx.GetString(middleware.ContextMISID), certType)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+certType+`.pdf"`)
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}
