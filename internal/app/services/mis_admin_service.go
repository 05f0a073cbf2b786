package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/coeptech/unimis/internal/app/models"
	"github.com/coeptech/unimis/internal/app/models/dto"
	"github.com/coeptech/unimis/internal/app/repositories"
)

// MISAdminService handles the MIS catalog: students, teachers, courses and
// subjects.
type MISAdminService interface {
	ListStudents(ctx context.Context) ([]*models.Student, error)
	ListTeachers(ctx context.Context) ([]*models.Teacher, error)
	ListCourses(ctx context.Context) ([]*models.Course, error)
	ListSubjects(ctx context.Context) ([]*models.Subject, error)
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error)
	CreateTeacher(ctx context.Context, req *dto.CreateTeacherRequest) (*models.Teacher, error)
	CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*models.Subject, error)
	DeleteCourse(ctx context.Context, id int64) error
	DeleteTeacher(ctx context.Context, id int64) error
	DeleteSubject(ctx context.Context, id int64) error
}

type misAdminService struct {
	students *repositories.StudentRepository
	teachers *repositories.TeacherRepository
	courses  *repositories.CourseRepository
	subjects *repositories.SubjectRepository
	logger   zerolog.Logger
}

// NewMISAdminService creates a new MISAdminService
func NewMISAdminService(repos *repositories.MISRepositories, logger zerolog.Logger) MISAdminService {
	return &misAdminService{
		students: repos.Students,
		teachers: repos.Teachers,
		courses:  repos.Courses,
		subjects: repos.Subjects,
		logger:   logger,
	}
}

func (s *misAdminService) ListStudents(ctx context.Context) ([]*models.Student, error) {
	return s.students.GetAll(ctx)
}

func (s *misAdminService) ListTeachers(ctx context.Context) ([]*models.Teacher, error) {
	return s.teachers.GetAll(ctx)
}

func (s *misAdminService) ListCourses(ctx context.Context) ([]*models.Course, error) {
	return s.courses.GetAll(ctx)
}

func (s *misAdminService) ListSubjects(ctx context.Context) ([]*models.Subject, error) {
	return s.subjects.GetAll(ctx)
}

// CreateCourse adds a programme to the catalog.
func (s *misAdminService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Name:          req.Name,
		Code:          req.Code,
		DurationYears: req.DurationYears,
	}

	id, err := s.courses.Create(ctx, course)
	if err != nil {
		return nil, err
	}
	course.ID = id

	s.logger.Info().Int64("courseId", id).Str("name", course.Name).Msg("Course created")
	return course, nil
}

// CreateTeacher registers a teaching staff member.
func (s *misAdminService) CreateTeacher(ctx context.Context, req *dto.CreateTeacherRequest) (*models.Teacher, error) {
	teacher := &models.Teacher{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	}

	id, err := s.teachers.Create(ctx, teacher)
	if err != nil {
		return nil, err
	}
	teacher.ID = id

	s.logger.Info().Int64("teacherId", id).Str("email", teacher.Email).Msg("Teacher created")
	return teacher, nil
}

// CreateSubject adds a subject to a course, optionally assigned to a teacher.
func (s *misAdminService) CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*models.Subject, error) {
	if _, err := s.courses.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	subject := &models.Subject{
		Name:      req.Name,
		CourseID:  req.CourseID,
		TeacherID: req.TeacherID,
	}

	id, err := s.subjects.Create(ctx, subject)
	if err != nil {
		return nil, err
	}
	subject.ID = id

	s.logger.Info().Int64("subjectId", id).Str("name", subject.Name).Msg("Subject created")
	return subject, nil
}

// DeleteCourse removes a course without dependants.
func (s *misAdminService) DeleteCourse(ctx context.Context, id int64) error {
	return s.courses.Delete(ctx, id)
}

// DeleteTeacher removes a teacher without assigned subjects.
func (s *misAdminService) DeleteTeacher(ctx context.Context, id int64) error {
	return s.teachers.Delete(ctx, id)
}

// DeleteSubject removes a subject along with its enrollments.
func (s *misAdminService) DeleteSubject(ctx context.Context, id int64) error {
	return s.subjects.Delete(ctx, id)
}
