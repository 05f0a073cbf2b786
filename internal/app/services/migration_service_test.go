package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coeptech/unimis/internal/app/models"
	"github.com/coeptech/unimis/internal/pkg/apperrors"
)

type fakeApplicationSource struct {
	apps []*models.Application
}

func (f *fakeApplicationSource) GetConfirmed(ctx context.Context) ([]*models.Application, error) {
	confirmed := []*models.Application{}
	for _, app := range f.apps {
		if app.AdmissionStatus == models.AdmissionConfirmed {
			confirmed = append(confirmed, app)
		}
	}
	return confirmed, nil
}

type fakeUserSource struct {
	users map[int64]*models.User
}

func (f *fakeUserSource) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

type fakeCourseStore struct {
	courses []*models.Course
}

func (f *fakeCourseStore) GetAll(ctx context.Context) ([]*models.Course, error) {
	return f.courses, nil
}

type fakeMISUserStore struct {
	emails map[string]bool
}

func (f *fakeMISUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return f.emails[email], nil
}

type fakeStudentStore struct {
	emails  map[string]bool
	count   int
	created []*models.Student
	users   *fakeMISUserStore
}

func (f *fakeStudentStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return f.emails[email], nil
}

func (f *fakeStudentStore) Count(ctx context.Context) (int, error) {
	return f.count, nil
}

func (f *fakeStudentStore) CreateWithUser(ctx context.Context, user *models.MISUser, student *models.Student) error {
	if f.emails[student.Email] || f.users.emails[user.Email] {
		return apperrors.ErrEmailAlreadyExists
	}
	f.emails[student.Email] = true
	f.users.emails[user.Email] = true
	f.created = append(f.created, student)
	return nil
}

func confirmedApplication(userID int64, email, course string) *models.Application {
	return &models.Application{
		UserID:          userID,
		Email:           email,
		FirstName:       "Asha",
		LastName:        "Patil",
		DOB:             "2004-06-01",
		Phone:           "9876543210",
		Address:         "Pune",
		Course:          course,
		FeeStatus:       models.FeePaid,
		AdmissionStatus: models.AdmissionConfirmed,
	}
}

func newMigrationFixture(apps []*models.Application, existingStudents int) (*migrationService, *fakeStudentStore) {
	users := map[int64]*models.User{}
	for _, app := range apps {
		users[app.UserID] = &models.User{ID: app.UserID, Email: app.Email, PasswordHash: "$2a$12$hash"}
	}

	misUsers := &fakeMISUserStore{emails: map[string]bool{}}
	students := &fakeStudentStore{
		emails: map[string]bool{},
		count:  existingStudents,
		users:  misUsers,
	}
	courses := &fakeCourseStore{courses: []*models.Course{
		{ID: 1, Name: "Computer Engineering", Code: "COMP"},
		{ID: 2, Name: "Information Technology", Code: "IT"},
	}}

	svc := NewMigrationService(
		&fakeApplicationSource{apps: apps},
		&fakeUserSource{users: users},
		courses,
		misUsers,
		students,
		"COEP",
		zerolog.Nop(),
	).(*migrationService)
	svc.now = func() time.Time { return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC) }

	return svc, students
}

func TestMigrateConfirmed_CopiesResolvableRows(t *testing.T) {
	apps := []*models.Application{
		confirmedApplication(1, "asha@example.com", "Computer Engineering"),
		confirmedApplication(2, "ravi@example.com", "computer engineering"),
	}
	svc, students := newMigrationFixture(apps, 0)

	resp, err := svc.MigrateConfirmed(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Migrated)
	assert.Equal(t, 0, resp.Skipped)
	require.Len(t, students.created, 2)

	// Both names normalize to the same catalog entry
	assert.Equal(t, int64(1), students.created[0].CourseID)
	assert.Equal(t, int64(1), students.created[1].CourseID)
	assert.Equal(t, models.FeePaid, students.created[0].FeeStatus)
}

func TestMigrateConfirmed_SkipsUnresolvableCourse(t *testing.T) {
	apps := []*models.Application{
		confirmedApplication(1, "asha@example.com", "Computer Engg"),
		confirmedApplication(2, "ravi@example.com", "Computer Engineering"),
	}
	svc, students := newMigrationFixture(apps, 0)

	resp, err := svc.MigrateConfirmed(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Migrated)
	assert.Equal(t, 1, resp.Skipped)
	require.Len(t, students.created, 1)
	assert.Equal(t, "ravi@example.com", students.created[0].Email)
}

func TestMigrateConfirmed_SecondRunMigratesNothing(t *testing.T) {
	apps := []*models.Application{
		confirmedApplication(1, "asha@example.com", "Computer Engineering"),
		confirmedApplication(2, "ravi@example.com", "Information Technology"),
	}
	svc, _ := newMigrationFixture(apps, 0)

	first, err := svc.MigrateConfirmed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first.Migrated)

	second, err := svc.MigrateConfirmed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Migrated)
	assert.Equal(t, 2, second.Skipped)
}

func TestMigrateConfirmed_SequenceContinuesFromExistingCount(t *testing.T) {
	apps := []*models.Application{
		confirmedApplication(1, "asha@example.com", "Computer Engineering"),
		confirmedApplication(2, "bad@example.com", "Unknown Course"),
		confirmedApplication(3, "ravi@example.com", "Information Technology"),
	}
	svc, students := newMigrationFixture(apps, 41)

	_, err := svc.MigrateConfirmed(context.Background())
	require.NoError(t, err)

	require.Len(t, students.created, 2)
	assert.Equal(t, "MIS2026-COEP-042", students.created[0].MISID)
	// The skipped row must not consume a sequence number
	assert.Equal(t, "MIS2026-COEP-043", students.created[1].MISID)
}

func TestMigrateConfirmed_SkipsMissingPasswordHash(t *testing.T) {
	apps := []*models.Application{
		confirmedApplication(1, "asha@example.com", "Computer Engineering"),
	}
	svc, students := newMigrationFixture(apps, 0)
	svc.applicantUsers = &fakeUserSource{users: map[int64]*models.User{
		1: {ID: 1, Email: "asha@example.com", PasswordHash: ""},
	}}

	resp, err := svc.MigrateConfirmed(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Migrated)
	assert.Equal(t, 1, resp.Skipped)
	assert.Empty(t, students.created)
}

func TestMigrateConfirmed_NoConfirmedApplications(t *testing.T) {
	pending := confirmedApplication(1, "asha@example.com", "Computer Engineering")
	pending.AdmissionStatus = models.AdmissionPending
	svc, _ := newMigrationFixture([]*models.Application{pending}, 0)

	_, err := svc.MigrateConfirmed(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNoConfirmedApplications)
}

func TestNormalizeCourseName(t *testing.T) {
	cases := map[string]string{
		"Computer Engineering":   "computerengineering",
		"computer engineering":   "computerengineering",
		"COMPUTER-ENGINEERING":   "computerengineering",
		"Computer Engg":          "computerengg",
		"B.Tech (Mechanical) 21": "btechmechanical21",
	}
	for input, want := range cases {
		assert.Equal(t, want, normalizeCourseName(input), "input %q", input)
	}
}

func TestMigrateConfirmed_PasswordHashCopied(t *testing.T) {
	apps := []*models.Application{
		confirmedApplication(1, "asha@example.com", "Computer Engineering"),
	}
	svc, students := newMigrationFixture(apps, 0)

	_, err := svc.MigrateConfirmed(context.Background())
	require.NoError(t, err)
	require.Len(t, students.created, 1)
	assert.Equal(t, "asha@example.com", students.created[0].Email)
}
