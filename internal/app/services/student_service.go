package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/coeptech/unimis/internal/app/models"
	"github.com/coeptech/unimis/internal/app/models/dto"
	"github.com/coeptech/unimis/internal/pkg/apperrors"
	"github.com/coeptech/unimis/internal/pkg/certificate"
)

// Student work happens against the current semester. Multi-semester
// progression is tracked on the enrollment rows; the portal currently
// operates on semester 1.
const currentSemester = 1

// StudentStore is the slice of the student repository the student service
// needs.
type StudentStore interface {
	GetByMISID(ctx context.Context, misID string) (*models.Student, error)
}

// CourseSubjectStore lists the subjects of a course.
type CourseSubjectStore interface {
	GetByCourse(ctx context.Context, courseID int64) ([]*models.Subject, error)
}

// EnrollmentStore is the slice of the enrollment repository the student
// service needs.
type EnrollmentStore interface {
	GetSubjectIDs(ctx context.Context, misID string, semester int) ([]int64, error)
	GetEnrolledSubjects(ctx context.Context, misID string, semester int) ([]*models.Enrollment, error)
	ReplaceForSemester(ctx context.Context, misID string, semester int, subjectIDs []int64) error
}

// CertificateRenderer renders a student certificate PDF.
type CertificateRenderer interface {
	Render(certType string, student certificate.StudentInfo) ([]byte, error)
}

// StudentService handles the student-facing MIS operations.
type StudentService interface {
	Profile(ctx context.Context, misID string) (*dto.StudentProfileResponse, error)
	AvailableSubjects(ctx context.Context, misID string) (*dto.AvailableSubjectsResponse, error)
	SelectSubjects(ctx context.Context, misID string, req *dto.SubjectSelectionRequest) error
	Enrollments(ctx context.Context, misID string) (*dto.EnrollmentsResponse, error)
	Certificate(ctx context.Context, misID, certType string) ([]byte, error)
}

type studentService struct {
	students    StudentStore
	subjects    CourseSubjectStore
	enrollments EnrollmentStore
	renderer    CertificateRenderer
	subjectCap  int
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	students StudentStore,
	subjects CourseSubjectStore,
	enrollments EnrollmentStore,
	renderer CertificateRenderer,
	subjectCap int,
	logger zerolog.Logger,
) StudentService {
	return &studentService{
		students:    students,
		subjects:    subjects,
		enrollments: enrollments,
		renderer:    renderer,
		subjectCap:  subjectCap,
		logger:      logger,
	}
}

// Profile returns the student row with the names of the course's subjects.
func (s *studentService) Profile(ctx context.Context, misID string) (*dto.StudentProfileResponse, error) {
	student, err := s.students.GetByMISID(ctx, misID)
	if err != nil {
		return nil, err
	}

	subjects, err := s.subjects.GetByCourse(ctx, student.CourseID)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(subjects))
	for _, subject := range subjects {
		names = append(names, subject.Name)
	}

	return &dto.StudentProfileResponse{
		Student:  student,
		Subjects: names,
	}, nil
}

// AvailableSubjects lists the student's course subjects along with the ids
// already picked for the semester.
func (s *studentService) AvailableSubjects(ctx context.Context, misID string) (*dto.AvailableSubjectsResponse, error) {
	student, err := s.students.GetByMISID(ctx, misID)
	if err != nil {
		return nil, err
	}

	subjects, err := s.subjects.GetByCourse(ctx, student.CourseID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.enrollments.GetSubjectIDs(ctx, misID, currentSemester)
	if err != nil {
		return nil, err
	}

	return &dto.AvailableSubjectsResponse{
		Subjects: subjects,
		Enrolled: enrolled,
	}, nil
}

// SelectSubjects replaces the student's semester selection. The selection
// must hold exactly the configured number of subjects from the student's own
// course.
func (s *studentService) SelectSubjects(ctx context.Context, misID string, req *dto.SubjectSelectionRequest) error {
	if len(req.SelectedSubjects) != s.subjectCap {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("Exactly %d subjects must be selected", s.subjectCap))
	}

	student, err := s.students.GetByMISID(ctx, misID)
	if err != nil {
		return err
	}

	courseSubjects, err := s.subjects.GetByCourse(ctx, student.CourseID)
	if err != nil {
		return err
	}
	allowed := make(map[int64]bool, len(courseSubjects))
	for _, subject := range courseSubjects {
		allowed[subject.ID] = true
	}

	seen := make(map[int64]bool, len(req.SelectedSubjects))
	for _, id := range req.SelectedSubjects {
		if !allowed[id] {
			return apperrors.NewCustomError(apperrors.ErrValidationFailed,
				fmt.Sprintf("Subject %d does not belong to your course", id))
		}
		if seen[id] {
			return apperrors.NewCustomError(apperrors.ErrValidationFailed, "Duplicate subject in selection")
		}
		seen[id] = true
	}

	if err := s.enrollments.ReplaceForSemester(ctx, misID, currentSemester, req.SelectedSubjects); err != nil {
		return err
	}

	s.logger.Info().Str("misId", misID).Ints64("subjects", req.SelectedSubjects).Msg("Subject selection saved")
	return nil
}

// Enrollments returns the student's semester enrollments with instructor
// names, attendance counters and marks.
func (s *studentService) Enrollments(ctx context.Context, misID string) (*dto.EnrollmentsResponse, error) {
	enrolled, err := s.enrollments.GetEnrolledSubjects(ctx, misID, currentSemester)
	if err != nil {
		return nil, err
	}

	return &dto.EnrollmentsResponse{EnrolledSubjects: enrolled}, nil
}

// Certificate renders a certificate PDF for the student. Unknown types still
// render, carrying an invalid-type notice.
func (s *studentService) Certificate(ctx context.Context, misID, certType string) ([]byte, error) {
	student, err := s.students.GetByMISID(ctx, misID)
	if err != nil {
		return nil, err
	}

	info := certificate.StudentInfo{
		MISID:    student.MISID,
		FullName: student.FullName(),
		Email:    student.Email,
	}
	if student.CourseName != nil {
		info.CourseName = *student.CourseName
	}

	return s.renderer.Render(certType, info)
}
