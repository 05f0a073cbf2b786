package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coeptech/unimis/internal/app/models"
	"github.com/coeptech/unimis/internal/app/models/dto"
	"github.com/coeptech/unimis/internal/pkg/apperrors"
)

type fakeTeacherStore struct {
	byEmail map[string]*models.Teacher
}

func (f *fakeTeacherStore) GetByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	teacher, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrTeacherNotFound
	}
	return teacher, nil
}

type fakeSubjectStore struct {
	byID map[int64]*models.Subject
}

func (f *fakeSubjectStore) GetByTeacher(ctx context.Context, teacherID int64) ([]*models.Subject, error) {
	subjects := []*models.Subject{}
	for _, subject := range f.byID {
		if subject.TeacherID != nil && *subject.TeacherID == teacherID {
			subjects = append(subjects, subject)
		}
	}
	return subjects, nil
}

func (f *fakeSubjectStore) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	subject, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	return subject, nil
}

func (f *fakeSubjectStore) GetByCourse(ctx context.Context, courseID int64) ([]*models.Subject, error) {
	subjects := []*models.Subject{}
	for _, subject := range f.byID {
		if subject.CourseID == courseID {
			subjects = append(subjects, subject)
		}
	}
	return subjects, nil
}

type attendanceCall struct {
	misID   string
	present bool
}

type marksCall struct {
	misID    string
	markType models.MarkType
	marks    int
}

type fakeEnrollmentStore struct {
	attendance []attendanceCall
	marks      []marksCall
}

func (f *fakeEnrollmentStore) GetStudentsBySubject(ctx context.Context, subjectID int64, semester int) ([]*models.EnrolledStudent, error) {
	return []*models.EnrolledStudent{}, nil
}

func (f *fakeEnrollmentStore) RecordAttendance(ctx context.Context, misID string, subjectID int64, semester int, present bool) error {
	f.attendance = append(f.attendance, attendanceCall{misID: misID, present: present})
	return nil
}

func (f *fakeEnrollmentStore) UpdateMarks(ctx context.Context, misID string, subjectID int64, semester int, markType models.MarkType, marks int) error {
	f.marks = append(f.marks, marksCall{misID: misID, markType: markType, marks: marks})
	return nil
}

func int64Ptr(v int64) *int64 { return &v }

func newTeacherFixture() (TeacherService, *fakeEnrollmentStore) {
	teachers := &fakeTeacherStore{byEmail: map[string]*models.Teacher{
		"rao@mis.local":  {ID: 1, FullName: "Prof. Rao", Email: "rao@mis.local"},
		"iyer@mis.local": {ID: 2, FullName: "Prof. Iyer", Email: "iyer@mis.local"},
	}}
	subjects := &fakeSubjectStore{byID: map[int64]*models.Subject{
		10: {ID: 10, Name: "Data Structures", CourseID: 1, TeacherID: int64Ptr(1)},
		11: {ID: 11, Name: "Thermodynamics", CourseID: 2, TeacherID: int64Ptr(2)},
		12: {ID: 12, Name: "Unassigned Elective", CourseID: 1},
	}}
	enrollments := &fakeEnrollmentStore{}
	return NewTeacherService(teachers, subjects, enrollments, zerolog.Nop()), enrollments
}

func TestUpdateMarks_Bounds(t *testing.T) {
	svc, enrollments := newTeacherFixture()
	ctx := context.Background()

	cases := []struct {
		markType models.MarkType
		marks    int
		valid    bool
	}{
		{models.MarkMidsem, 30, true},
		{models.MarkMidsem, 31, false},
		{models.MarkEndsem, 50, true},
		{models.MarkEndsem, 51, false},
		{models.MarkInternal, 20, true},
		{models.MarkInternal, 21, false},
		{models.MarkMidsem, 0, true},
		{models.MarkMidsem, -1, false},
	}

	accepted := 0
	for _, tc := range cases {
		err := svc.UpdateMarks(ctx, "rao@mis.local", 10, &dto.MarksRequest{
			MISID: "MIS2026-COEP-001",
			Type:  tc.markType,
			Marks: tc.marks,
		})
		if tc.valid {
			assert.NoError(t, err, "%s=%d should be accepted", tc.markType, tc.marks)
			accepted++
		} else {
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "%s=%d should be rejected", tc.markType, tc.marks)
		}
	}
	assert.Len(t, enrollments.marks, accepted)
}

func TestUpdateMarks_UnknownType(t *testing.T) {
	svc, enrollments := newTeacherFixture()

	err := svc.UpdateMarks(context.Background(), "rao@mis.local", 10, &dto.MarksRequest{
		MISID: "MIS2026-COEP-001",
		Type:  models.MarkType("viva"),
		Marks: 10,
	})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, enrollments.marks)
}

func TestUpdateMarks_SubjectNotOwned(t *testing.T) {
	svc, enrollments := newTeacherFixture()

	err := svc.UpdateMarks(context.Background(), "iyer@mis.local", 10, &dto.MarksRequest{
		MISID: "MIS2026-COEP-001",
		Type:  models.MarkMidsem,
		Marks: 10,
	})

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Empty(t, enrollments.marks)
}

func TestUpdateMarks_UnassignedSubject(t *testing.T) {
	svc, _ := newTeacherFixture()

	err := svc.UpdateMarks(context.Background(), "rao@mis.local", 12, &dto.MarksRequest{
		MISID: "MIS2026-COEP-001",
		Type:  models.MarkMidsem,
		Marks: 10,
	})

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestRecordAttendance_Present(t *testing.T) {
	svc, enrollments := newTeacherFixture()

	err := svc.RecordAttendance(context.Background(), "rao@mis.local", 10, &dto.AttendanceRequest{
		MISID:  "MIS2026-COEP-001",
		Status: models.AttendancePresent,
	})

	require.NoError(t, err)
	require.Len(t, enrollments.attendance, 1)
	assert.True(t, enrollments.attendance[0].present)
}

func TestRecordAttendance_Absent(t *testing.T) {
	svc, enrollments := newTeacherFixture()

	err := svc.RecordAttendance(context.Background(), "rao@mis.local", 10, &dto.AttendanceRequest{
		MISID:  "MIS2026-COEP-001",
		Status: models.AttendanceAbsent,
	})

	require.NoError(t, err)
	require.Len(t, enrollments.attendance, 1)
	assert.False(t, enrollments.attendance[0].present)
}

func TestRecordAttendance_UnknownStatus(t *testing.T) {
	svc, enrollments := newTeacherFixture()

	err := svc.RecordAttendance(context.Background(), "rao@mis.local", 10, &dto.AttendanceRequest{
		MISID:  "MIS2026-COEP-001",
		Status: models.AttendanceStatus("late"),
	})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, enrollments.attendance)
}

func TestSubjectStudents_UnknownSubject(t *testing.T) {
	svc, _ := newTeacherFixture()

	_, err := svc.SubjectStudents(context.Background(), "rao@mis.local", 999)
	assert.ErrorIs(t, err, apperrors.ErrSubjectNotFound)
}

func TestSubjects_ListsOnlyOwn(t *testing.T) {
	svc, _ := newTeacherFixture()

	subjects, err := svc.Subjects(context.Background(), "rao@mis.local")
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "Data Structures", subjects[0].Name)
}

func TestUpdateMarks_ForbiddenErrorCarriesMessage(t *testing.T) {
	svc, _ := newTeacherFixture()

	err := svc.UpdateMarks(context.Background(), "iyer@mis.local", 10, &dto.MarksRequest{
		MISID: "MIS2026-COEP-001",
		Type:  models.MarkMidsem,
		Marks: 10,
	})

	var custom *apperrors.CustomError
	require.True(t, errors.As(err, &custom))
	assert.Equal(t, "You are not assigned to this subject", custom.Message)
}
