package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coeptech/unimis/internal/app/models/dto"
	"github.com/coeptech/unimis/internal/app/services"
	"github.com/coeptech/unimis/internal/middleware"
)

// MISAdminController handles the MIS catalog endpoints
type MISAdminController struct {
	misAdminService services.MISAdminService
}

// NewMISAdminController creates a new MISAdminController
func NewMISAdminController(misAdminService services.MISAdminService) *MISAdminController {
	return &MISAdminController{
		misAdminService: misAdminService,
	}
}

// ListStudents returns all migrated students
// @Summary List students
// @Tags mis-admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Student}
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Router /mis/admin/students [get]
func (c *MISAdminController) ListStudents(ctx *gin.Context) {
	students, err := c.misAdminService.ListStudents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: students, Timestamp: time.Now()})
}

// ListTeachers returns all teachers
// @Summary List teachers
// @Tags mis-admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Teacher}
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Router /mis/admin/teachers [get]
func (c *MISAdminController) ListTeachers(ctx *gin.Context) {
	teachers, err := c.misAdminService.ListTeachers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: teachers, Timestamp: time.Now()})
}

// ListCourses returns the course catalog
// @Summary List courses
// @Tags mis-admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Router /mis/admin/courses [get]
func (c *MISAdminController) ListCourses(ctx *gin.Context) {
	courses, err := c.misAdminService.ListCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: courses, Timestamp: time.Now()})
}

// ListSubjects returns all subjects with course and teacher names
// @Summary List subjects
// @Tags mis-admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Subject}
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Router /mis/admin/subjects [get]
func (c *MISAdminController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.misAdminService.ListSubjects(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: subjects, Timestamp: time.Now()})
}

// CreateCourse adds a course to the catalog
// @Summary Create a course
// @Tags mis-admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Course already exists"
// @Router /mis/admin/course [post]
func (c *MISAdminController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.misAdminService.CreateCourse(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: course, Timestamp: time.Now()})
}

// CreateTeacher registers a teaching staff member
// @Summary Create a teacher
// @Tags mis-admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTeacherRequest true "Teacher information"
// @Success 201 {object} dto.APIResponse{data=models.Teacher}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Teacher email already registered"
// @Router /mis/admin/teacher [post]
func (c *MISAdminController) CreateTeacher(ctx *gin.Context) {
	var req dto.CreateTeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid teacher data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	teacher, err := c.misAdminService.CreateTeacher(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: teacher, Timestamp: time.Now()})
}

// CreateSubject adds a subject to a course
// @Summary Create a subject
// @Tags mis-admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSubjectRequest true "Subject information"
// @Success 201 {object} dto.APIResponse{data=models.Subject}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /mis/admin/subject [post]
func (c *MISAdminController) CreateSubject(ctx *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid subject data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	subject, err := c.misAdminService.CreateSubject(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: subject, Timestamp: time.Now()})
}

// DeleteCourse removes a course without dependants
// @Summary Delete a course
// @Tags mis-admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course has subjects or students"
// @Router /mis/admin/course/{id} [delete]
func (c *MISAdminController) DeleteCourse(ctx *gin.Context) {
	c.deleteByID(ctx, "course", c.misAdminService.DeleteCourse)
}

// DeleteTeacher removes a teacher without assigned subjects
// @Summary Delete a teacher
// @Tags mis-admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Failure 409 {object} dto.ErrorResponse "Teacher has assigned subjects"
// @Router /mis/admin/teacher/{id} [delete]
func (c *MISAdminController) DeleteTeacher(ctx *gin.Context) {
	c.deleteByID(ctx, "teacher", c.misAdminService.DeleteTeacher)
}

// DeleteSubject removes a subject and its enrollments
// @Summary Delete a subject
// @Tags mis-admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /mis/admin/subject/{id} [delete]
func (c *MISAdminController) DeleteSubject(ctx *gin.Context) {
	c.deleteByID(ctx, "subject", c.misAdminService.DeleteSubject)
}

func (c *MISAdminController) deleteByID(ctx *gin.Context, entity string, del func(ctx context.Context, id int64) error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+entity+" ID")
		errorDetail = errorDetail.WithDetails("ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := del(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.MessageResponse{Message: "Deleted successfully"},
		Timestamp: time.Now(),
	})
}
