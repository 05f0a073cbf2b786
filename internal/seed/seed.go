package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/coeptech/unimis/internal/app/models"
	"github.com/coeptech/unimis/internal/app/repositories"
	"github.com/coeptech/unimis/internal/pkg/apperrors"
	"github.com/coeptech/unimis/internal/pkg/auth"
)

const (
	defaultAdmissionsAdminEmail    = "admin@admissions.local"
	defaultAdmissionsAdminPassword = "admin12345"

	defaultMISAdminEmail    = "admin@mis.local"
	defaultMISAdminPassword = "admin12345"
	defaultMISAdminID       = "MIS-ADMIN-000001"
)

// defaultCourses is the initial programme catalog. The migration job matches
// application course names against these by normalized name.
var defaultCourses = []models.Course{
	{Name: "Computer Engineering", Code: "COMP", DurationYears: 4},
	{Name: "Information Technology", Code: "IT", DurationYears: 4},
	{Name: "Electronics and Telecommunication", Code: "ENTC", DurationYears: 4},
	{Name: "Mechanical Engineering", Code: "MECH", DurationYears: 4},
	{Name: "Civil Engineering", Code: "CIVIL", DurationYears: 4},
}

// CreateAdmissionsDefaults seeds the admissions admin account when absent.
func CreateAdmissionsDefaults(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)

	hash, err := auth.HashPassword(defaultAdmissionsAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admissions admin password: %w", err)
	}

	_, err = userRepo.Create(ctx, defaultAdmissionsAdminEmail, hash, models.RoleAdmin)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return err
	}

	lgr.Info().Str("email", defaultAdmissionsAdminEmail).Msg("Seeded admissions admin account")
	return nil
}

// CreateMISDefaults seeds the MIS admin account and the course catalog when
// absent.
func CreateMISDefaults(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewMISUserRepository(dbPool)
	courseRepo := repositories.NewCourseRepository(dbPool)

	var finalErr error

	hash, err := auth.HashPassword(defaultMISAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash MIS admin password: %w", err)
	}

	_, err = userRepo.Create(ctx, &models.MISUser{
		MISID:        defaultMISAdminID,
		Email:        defaultMISAdminEmail,
		PasswordHash: hash,
		Role:         models.MISRoleAdmin,
	})
	if err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		lgr.Error().Err(err).Msg("Error seeding MIS admin account")
		finalErr = errors.Join(finalErr, err)
	} else if err == nil {
		lgr.Info().Str("email", defaultMISAdminEmail).Msg("Seeded MIS admin account")
	}

	for _, course := range defaultCourses {
		c := course
		_, err := courseRepo.Create(ctx, &c)
		if err != nil && !errors.Is(err, apperrors.ErrConflict) {
			lgr.Error().Err(err).Str("course", course.Name).Msg("Error seeding course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
