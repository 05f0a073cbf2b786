package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coeptech/unimis/internal/app/models"
	"github.com/coeptech/unimis/internal/app/models/dto"
	"github.com/coeptech/unimis/internal/pkg/apperrors"
	"github.com/coeptech/unimis/internal/pkg/certificate"
)

type fakeStudentLookup struct {
	byMISID map[string]*models.Student
}

func (f *fakeStudentLookup) GetByMISID(ctx context.Context, misID string) (*models.Student, error) {
	student, ok := f.byMISID[misID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

type fakeSelectionStore struct {
	selections map[string][]int64
}

func (f *fakeSelectionStore) GetSubjectIDs(ctx context.Context, misID string, semester int) ([]int64, error) {
	return f.selections[misID], nil
}

func (f *fakeSelectionStore) GetEnrolledSubjects(ctx context.Context, misID string, semester int) ([]*models.Enrollment, error) {
	enrolled := []*models.Enrollment{}
	for _, id := range f.selections[misID] {
		enrolled = append(enrolled, &models.Enrollment{MISID: misID, SubjectID: id, Semester: semester})
	}
	return enrolled, nil
}

func (f *fakeSelectionStore) ReplaceForSemester(ctx context.Context, misID string, semester int, subjectIDs []int64) error {
	if f.selections == nil {
		f.selections = map[string][]int64{}
	}
	f.selections[misID] = subjectIDs
	return nil
}

type fakeRenderer struct {
	lastType    string
	lastStudent certificate.StudentInfo
}

func (f *fakeRenderer) Render(certType string, student certificate.StudentInfo) ([]byte, error) {
	f.lastType = certType
	f.lastStudent = student
	return []byte("%PDF-stub"), nil
}

func courseName(name string) *string { return &name }

func newStudentFixture() (StudentService, *fakeSelectionStore, *fakeRenderer) {
	students := &fakeStudentLookup{byMISID: map[string]*models.Student{
		"MIS2026-COEP-001": {
			ID:         1,
			MISID:      "MIS2026-COEP-001",
			Email:      "asha@example.com",
			FirstName:  "Asha",
			LastName:   "Patil",
			CourseID:   1,
			CourseName: courseName("Computer Engineering"),
		},
	}}
	subjects := &fakeSubjectStore{byID: map[int64]*models.Subject{
		10: {ID: 10, Name: "Data Structures", CourseID: 1},
		11: {ID: 11, Name: "Discrete Mathematics", CourseID: 1},
		12: {ID: 12, Name: "Digital Logic", CourseID: 1},
		13: {ID: 13, Name: "Computer Organization", CourseID: 1},
		14: {ID: 14, Name: "Programming Laboratory", CourseID: 1},
		15: {ID: 15, Name: "Operating Systems", CourseID: 1},
		20: {ID: 20, Name: "Thermodynamics", CourseID: 2},
	}}
	enrollments := &fakeSelectionStore{selections: map[string][]int64{}}
	renderer := &fakeRenderer{}
	return NewStudentService(students, subjects, enrollments, renderer, 5, zerolog.Nop()), enrollments, renderer
}

func TestSelectSubjects_ValidSelection(t *testing.T) {
	svc, enrollments, _ := newStudentFixture()

	err := svc.SelectSubjects(context.Background(), "MIS2026-COEP-001", &dto.SubjectSelectionRequest{
		SelectedSubjects: []int64{10, 11, 12, 13, 14},
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11, 12, 13, 14}, enrollments.selections["MIS2026-COEP-001"])
}

func TestSelectSubjects_WrongCount(t *testing.T) {
	svc, enrollments, _ := newStudentFixture()

	for _, selection := range [][]int64{
		{10, 11, 12, 13},
		{10, 11, 12, 13, 14, 15},
		{},
	} {
		err := svc.SelectSubjects(context.Background(), "MIS2026-COEP-001", &dto.SubjectSelectionRequest{
			SelectedSubjects: selection,
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "selection of %d should be rejected", len(selection))
	}
	assert.Empty(t, enrollments.selections["MIS2026-COEP-001"])
}

func TestSelectSubjects_ForeignSubject(t *testing.T) {
	svc, enrollments, _ := newStudentFixture()

	err := svc.SelectSubjects(context.Background(), "MIS2026-COEP-001", &dto.SubjectSelectionRequest{
		SelectedSubjects: []int64{10, 11, 12, 13, 20},
	})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, enrollments.selections["MIS2026-COEP-001"])
}

func TestSelectSubjects_DuplicateSubject(t *testing.T) {
	svc, enrollments, _ := newStudentFixture()

	err := svc.SelectSubjects(context.Background(), "MIS2026-COEP-001", &dto.SubjectSelectionRequest{
		SelectedSubjects: []int64{10, 11, 12, 13, 13},
	})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, enrollments.selections["MIS2026-COEP-001"])
}

func TestSelectSubjects_Reselection(t *testing.T) {
	svc, enrollments, _ := newStudentFixture()
	ctx := context.Background()

	require.NoError(t, svc.SelectSubjects(ctx, "MIS2026-COEP-001", &dto.SubjectSelectionRequest{
		SelectedSubjects: []int64{10, 11, 12, 13, 14},
	}))
	require.NoError(t, svc.SelectSubjects(ctx, "MIS2026-COEP-001", &dto.SubjectSelectionRequest{
		SelectedSubjects: []int64{10, 11, 12, 13, 15},
	}))

	assert.Equal(t, []int64{10, 11, 12, 13, 15}, enrollments.selections["MIS2026-COEP-001"])
}

func TestAvailableSubjects_ReportsEnrolled(t *testing.T) {
	svc, _, _ := newStudentFixture()
	ctx := context.Background()

	require.NoError(t, svc.SelectSubjects(ctx, "MIS2026-COEP-001", &dto.SubjectSelectionRequest{
		SelectedSubjects: []int64{10, 11, 12, 13, 14},
	}))

	resp, err := svc.AvailableSubjects(ctx, "MIS2026-COEP-001")
	require.NoError(t, err)
	assert.Len(t, resp.Subjects, 6)
	assert.Equal(t, []int64{10, 11, 12, 13, 14}, resp.Enrolled)
}

func TestProfile_UnknownStudent(t *testing.T) {
	svc, _, _ := newStudentFixture()

	_, err := svc.Profile(context.Background(), "MIS2026-COEP-999")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestCertificate_PassesStudentInfo(t *testing.T) {
	svc, _, renderer := newStudentFixture()

	pdf, err := svc.Certificate(context.Background(), "MIS2026-COEP-001", "bonafide")
	require.NoError(t, err)

	assert.NotEmpty(t, pdf)
	assert.Equal(t, "bonafide", renderer.lastType)
	assert.Equal(t, "Asha Patil", renderer.lastStudent.FullName)
	assert.Equal(t, "Computer Engineering", renderer.lastStudent.CourseName)
}
