package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/coeptech/unimis/internal/app/models"
	"github.com/coeptech/unimis/internal/app/models/dto"
	"github.com/coeptech/unimis/internal/pkg/apperrors"
)

// Upper mark bounds per exam type. Lower bound is zero for all.
var markBounds = map[models.MarkType]int{
	models.MarkMidsem:   30,
	models.MarkEndsem:   50,
	models.MarkInternal: 20,
}

// TeacherStore is the slice of the teacher repository the teacher service
// needs.
type TeacherStore interface {
	GetByEmail(ctx context.Context, email string) (*models.Teacher, error)
}

// TeacherSubjectStore resolves subjects by teacher and id.
type TeacherSubjectStore interface {
	GetByTeacher(ctx context.Context, teacherID int64) ([]*models.Subject, error)
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
}

// TeacherEnrollmentStore is the slice of the enrollment repository the
// teacher service needs.
type TeacherEnrollmentStore interface {
	GetStudentsBySubject(ctx context.Context, subjectID int64, semester int) ([]*models.EnrolledStudent, error)
	RecordAttendance(ctx context.Context, misID string, subjectID int64, semester int, present bool) error
	UpdateMarks(ctx context.Context, misID string, subjectID int64, semester int, markType models.MarkType, marks int) error
}

// TeacherService handles the teacher-facing MIS operations.
type TeacherService interface {
	Profile(ctx context.Context, email string) (*dto.TeacherProfileResponse, error)
	Subjects(ctx context.Context, email string) ([]*models.Subject, error)
	SubjectStudents(ctx context.Context, email string, subjectID int64) (*dto.SubjectStudentsResponse, error)
	RecordAttendance(ctx context.Context, email string, subjectID int64, req *dto.AttendanceRequest) error
	UpdateMarks(ctx context.Context, email string, subjectID int64, req *dto.MarksRequest) error
}

type teacherService struct {
	teachers    TeacherStore
	subjects    TeacherSubjectStore
	enrollments TeacherEnrollmentStore
	logger      zerolog.Logger
}

// NewTeacherService creates a new TeacherService
func NewTeacherService(teachers TeacherStore, subjects TeacherSubjectStore, enrollments TeacherEnrollmentStore, logger zerolog.Logger) TeacherService {
	return &teacherService{
		teachers:    teachers,
		subjects:    subjects,
		enrollments: enrollments,
		logger:      logger,
	}
}

// Profile returns the teacher row with the subjects assigned to them.
func (s *teacherService) Profile(ctx context.Context, email string) (*dto.TeacherProfileResponse, error) {
	teacher, err := s.teachers.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	subjects, err := s.subjects.GetByTeacher(ctx, teacher.ID)
	if err != nil {
		return nil, err
	}

	return &dto.TeacherProfileResponse{
		Teacher:  teacher,
		Subjects: subjects,
	}, nil
}

// Subjects lists the subjects assigned to the teacher.
func (s *teacherService) Subjects(ctx context.Context, email string) ([]*models.Subject, error) {
	teacher, err := s.teachers.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.subjects.GetByTeacher(ctx, teacher.ID)
}

// ownedSubject resolves a subject and verifies the teacher teaches it.
func (s *teacherService) ownedSubject(ctx context.Context, email string, subjectID int64) (*models.Subject, error) {
	teacher, err := s.teachers.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	subject, err := s.subjects.GetByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	if subject.TeacherID == nil || *subject.TeacherID != teacher.ID {
		return nil, apperrors.NewForbiddenError("You are not assigned to this subject")
	}

	return subject, nil
}

// SubjectStudents lists the students enrolled in one of the teacher's
// subjects with their attendance counters and marks.
func (s *teacherService) SubjectStudents(ctx context.Context, email string, subjectID int64) (*dto.SubjectStudentsResponse, error) {
	if _, err := s.ownedSubject(ctx, email, subjectID); err != nil {
		return nil, err
	}

	students, err := s.enrollments.GetStudentsBySubject(ctx, subjectID, currentSemester)
	if err != nil {
		return nil, err
	}

	return &dto.SubjectStudentsResponse{Students: students}, nil
}

// RecordAttendance marks one lecture outcome for a student in one of the
// teacher's subjects.
func (s *teacherService) RecordAttendance(ctx context.Context, email string, subjectID int64, req *dto.AttendanceRequest) error {
	if _, err := s.ownedSubject(ctx, email, subjectID); err != nil {
		return err
	}

	var present bool
	switch req.Status {
	case models.AttendancePresent:
		present = true
	case models.AttendanceAbsent:
		present = false
	default:
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "Status must be present or absent")
	}

	if err := s.enrollments.RecordAttendance(ctx, req.MISID, subjectID, currentSemester, present); err != nil {
		return err
	}

	s.logger.Info().Str("misId", req.MISID).Int64("subjectId", subjectID).Str("status", string(req.Status)).Msg("Attendance recorded")
	return nil
}

// UpdateMarks overwrites one mark field for a student in one of the
// teacher's subjects, enforcing the per-type bounds.
func (s *teacherService) UpdateMarks(ctx context.Context, email string, subjectID int64, req *dto.MarksRequest) error {
	if _, err := s.ownedSubject(ctx, email, subjectID); err != nil {
		return err
	}

	max, ok := markBounds[req.Type]
	if !ok {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "Type must be midsem, endsem or internal")
	}
	if req.Marks < 0 || req.Marks > max {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("%s marks must be between 0 and %d", req.Type, max))
	}

	if err := s.enrollments.UpdateMarks(ctx, req.MISID, subjectID, currentSemester, req.Type, req.Marks); err != nil {
		return err
	}

	s.logger.Info().Str("misId", req.MISID).Int64("subjectId", subjectID).Str("type", string(req.Type)).Int("marks", req.Marks).Msg("Marks updated")
	return nil
}
