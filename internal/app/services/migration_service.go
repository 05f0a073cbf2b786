package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/coeptech/unimis/internal/app/models"
	"github.com/coeptech/unimis/internal/app/models/dto"
	"github.com/coeptech/unimis/internal/pkg/apperrors"
)

// ConfirmedApplicationSource yields the admissions rows eligible for
// migration.
type ConfirmedApplicationSource interface {
	GetConfirmed(ctx context.Context) ([]*models.Application, error)
}

// MigrationCourseStore resolves the MIS course catalog.
type MigrationCourseStore interface {
	GetAll(ctx context.Context) ([]*models.Course, error)
}

// AdmissionsUserSource resolves the applicant account behind an
// application. The copied bcrypt hash lets migrated students log in to the
// MIS portal with their admissions password.
type AdmissionsUserSource interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// MigrationUserStore checks for existing MIS accounts.
type MigrationUserStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// MigrationStudentStore checks for and creates MIS student rows.
type MigrationStudentStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int, error)
	CreateWithUser(ctx context.Context, user *models.MISUser, student *models.Student) error
}

// MigrationService copies confirmed admission applications into the MIS
// database as student accounts.
type MigrationService interface {
	MigrateConfirmed(ctx context.Context) (*dto.MigrationResponse, error)
}

type migrationService struct {
	applications    ConfirmedApplicationSource
	applicantUsers  AdmissionsUserSource
	courses         MigrationCourseStore
	misUsers        MigrationUserStore
	students        MigrationStudentStore
	institutionCode string
	now             func() time.Time
	logger          zerolog.Logger
}

// NewMigrationService creates a new MigrationService
func NewMigrationService(
	applications ConfirmedApplicationSource,
	applicantUsers AdmissionsUserSource,
	courses MigrationCourseStore,
	misUsers MigrationUserStore,
	students MigrationStudentStore,
	institutionCode string,
	logger zerolog.Logger,
) MigrationService {
	return &migrationService{
		applications:    applications,
		applicantUsers:  applicantUsers,
		courses:         courses,
		misUsers:        misUsers,
		students:        students,
		institutionCode: institutionCode,
		now:             time.Now,
		logger:          logger,
	}
}

// applicantPasswordHash looks up the applicant account backing an
// application. A missing account or empty hash yields "" so the caller can
// skip the row.
func (s *migrationService) applicantPasswordHash(ctx context.Context, app *models.Application) (string, error) {
	user, err := s.applicantUsers.GetByID(ctx, app.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", nil
		}
		return "", err
	}
	return user.PasswordHash, nil
}

// normalizeCourseName reduces a course name to its lookup key: lowercase
// with everything outside [a-z0-9] removed. "Computer Engineering" and
// "computer engineering" collide on purpose; "Computer Engg" does not.
func normalizeCourseName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MigrateConfirmed runs the migration batch. Rows that cannot be migrated
// (already present, unknown course, missing password hash) are skipped and
// logged; each migrated row is written in its own transaction so a failure
// partway leaves earlier rows committed.
func (s *migrationService) MigrateConfirmed(ctx context.Context) (*dto.MigrationResponse, error) {
	confirmed, err := s.applications.GetConfirmed(ctx)
	if err != nil {
		return nil, err
	}
	if len(confirmed) == 0 {
		return nil, apperrors.ErrNoConfirmedApplications
	}

	catalog, err := s.courses.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	coursesByKey := make(map[string]*models.Course, len(catalog))
	for _, course := range catalog {
		coursesByKey[normalizeCourseName(course.Name)] = course
	}

	seq, err := s.students.Count(ctx)
	if err != nil {
		return nil, err
	}
	seq++
	year := s.now().Year()

	migrated := 0
	skipped := 0
	for _, app := range confirmed {
		userExists, err := s.misUsers.ExistsByEmail(ctx, app.Email)
		if err != nil {
			return nil, err
		}
		studentExists, err := s.students.ExistsByEmail(ctx, app.Email)
		if err != nil {
			return nil, err
		}
		if userExists || studentExists {
			s.logger.Info().Str("email", app.Email).Msg("Skipping already migrated application")
			skipped++
			continue
		}

		course, ok := coursesByKey[normalizeCourseName(app.Course)]
		if !ok {
			s.logger.Warn().Str("email", app.Email).Str("course", app.Course).Msg("Skipping application with unknown course")
			skipped++
			continue
		}

		hash, err := s.applicantPasswordHash(ctx, app)
		if err != nil {
			return nil, err
		}
		if hash == "" {
			s.logger.Warn().Str("email", app.Email).Msg("Skipping application with no password hash")
			skipped++
			continue
		}

		misID := fmt.Sprintf("MIS%d-%s-%03d", year, s.institutionCode, seq)

		user := &models.MISUser{
			MISID:        misID,
			Email:        app.Email,
			PasswordHash: hash,
			Role:         models.MISRoleStudent,
		}
		student := &models.Student{
			MISID:            misID,
			Email:            app.Email,
			FirstName:        app.FirstName,
			MiddleName:       app.MiddleName,
			LastName:         app.LastName,
			DOB:              app.DOB,
			Phone:            app.Phone,
			Address:          app.Address,
			IsScholarship:    app.IsScholarship,
			FeeStatus:        app.FeeStatus,
			ReceiptPath:      app.ReceiptPath,
			MeritDocument:    app.MeritDocument,
			CourseID:         course.ID,
			PaymentOrderID:   app.PaymentOrderID,
			PaymentID:        app.PaymentID,
			PaymentSignature: app.PaymentSignature,
			PaymentAmount:    app.PaymentAmount,
			PaymentAt:        app.PaymentAt,
		}

		if err := s.students.CreateWithUser(ctx, user, student); err != nil {
			// A concurrent run can beat us to the insert. The unique email
			// constraints make that surface here; treat it as a skip.
			if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
				s.logger.Info().Str("email", app.Email).Msg("Application migrated concurrently, skipping")
				skipped++
				continue
			}
			return nil, err
		}

		s.logger.Info().Str("misId", misID).Str("email", app.Email).Str("course", course.Name).Msg("Application migrated")
		migrated++
		seq++
	}

	return &dto.MigrationResponse{
		Message:  fmt.Sprintf("%d students migrated successfully", migrated),
		Migrated: migrated,
		Skipped:  skipped,
	}, nil
}
