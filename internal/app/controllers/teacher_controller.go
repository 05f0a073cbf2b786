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

// TeacherController handles the teacher-facing MIS endpoints
type TeacherController struct {
	teacherService services.TeacherService
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(teacherService services.TeacherService) *TeacherController {
	return &TeacherController{
		teacherService: teacherService,
	}
}

// Profile returns the teacher dashboard payload
// @Summary Get teacher profile
// @Description Returns the teacher row with their assigned subjects
// @Tags mis-teacher
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.TeacherProfileResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /mis/teacher/profile [get]
func (c *TeacherController) Profile(ctx *gin.Context) {
	resp, err := c.teacherService.Profile(ctx, ctx.GetString(middleware.ContextEmail))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp, Timestamp: time.Now()})
}

// Subjects lists the teacher's assigned subjects
// @Summary List assigned subjects
// @Tags mis-teacher
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Subject}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /mis/teacher/subjects [get]
func (c *TeacherController) Subjects(ctx *gin.Context) {
	subjects, err := c.teacherService.Subjects(ctx, ctx.GetString(middleware.ContextEmail))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: subjects, Timestamp: time.Now()})
}

// SubjectStudents lists the students enrolled in one of the teacher's subjects
// @Summary List subject students
// @Description Returns the enrolled students with attendance counters and marks
// @Tags mis-teacher
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.APIResponse{data=dto.SubjectStudentsResponse}
// @Failure 403 {object} dto.ErrorResponse "Teacher not assigned to this subject"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /mis/teacher/subject/{id}/students [get]
func (c *TeacherController) SubjectStudents(ctx *gin.Context) {
	subjectID, ok := parseSubjectID(ctx)
	if !ok {
		return
	}

	resp, err := c.teacherService.SubjectStudents(ctx, ctx.GetString(middleware.ContextEmail), subjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp, Timestamp: time.Now()})
}

// RecordAttendance marks one lecture outcome for a student
// @Summary Record attendance
// @Description Marks a student present or absent for one lecture of the subject
// @Tags mis-teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Param request body dto.AttendanceRequest true "Attendance record"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown attendance status"
// @Failure 403 {object} dto.ErrorResponse "Teacher not assigned to this subject"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /mis/teacher/subject/{id}/attendance [post]
func (c *TeacherController) RecordAttendance(ctx *gin.Context) {
	subjectID, ok := parseSubjectID(ctx)
	if !ok {
		return
	}

	var req dto.AttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid attendance data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.teacherService.RecordAttendance(ctx, ctx.GetString(middleware.ContextEmail), subjectID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.MessageResponse{Message: "Attendance recorded"},
		Timestamp: time.Now(),
	})
}

// UpdateMarks sets one mark field for a student
// @Summary Update marks
// @Description Overwrites a midsem, endsem or internal mark within its bounds
// @Tags mis-teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Param request body dto.MarksRequest true "Marks record"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 400 {object} dto.ErrorResponse "Marks outside bounds or unknown type"
// @Failure 403 {object} dto.ErrorResponse "Teacher not assigned to this subject"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /mis/teacher/subject/{id}/marks [post]
func (c *TeacherController) UpdateMarks(ctx *gin.Context) {
	subjectID, ok := parseSubjectID(ctx)
	if !ok {
		return
	}

	var req dto.MarksRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid marks data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.teacherService.UpdateMarks(ctx, ctx.GetString(middleware.ContextEmail), subjectID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.MessageResponse{Message: "Marks updated"},
		Timestamp: time.Now(),
	})
}

func parseSubjectID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid subject ID")
		errorDetail = errorDetail.WithDetails("Subject ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
