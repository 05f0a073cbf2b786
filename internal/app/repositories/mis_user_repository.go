package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coeptech/unimis/internal/app/models"
	"github.com/coeptech/unimis/internal/pkg/apperrors"
	"github.com/coeptech/unimis/internal/pkg/dberrors"
	"github.com/coeptech/unimis/internal/pkg/logger"
)

// MISUserRepository handles MIS-portal user rows in the MIS database.
type MISUserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMISUserRepository creates a new MISUserRepository
func NewMISUserRepository(db *pgxpool.Pool) *MISUserRepository {
	return &MISUserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new MIS user and returns its generated id.
func (r *MISUserRepository) Create(ctx context.Context, user *models.MISUser) (int64, error) {
	sql, args, err := r.sb.Insert("users").
		Columns("mis_id", "email", "password_hash", "role").
		Values(user.MISID, user.Email, user.PasswordHash, user.Role).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create MIS user query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create MIS user query")
		return 0, fmt.Errorf("error creating MIS user: %w", err)
	}

	return id, nil
}

// GetByEmail retrieves an MIS user by email.
func (r *MISUserRepository) GetByEmail(ctx context.Context, email string) (*models.MISUser, error) {
	sql, args, err := r.sb.Select("id", "mis_id", "email", "password_hash", "role", "created_at").
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get MIS user query: %w", err)
	}

	user := &models.MISUser{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.MISID, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning MIS user row")
		return nil, fmt.Errorf("error getting MIS user: %w", err)
	}

	return user, nil
}

// ExistsByEmail reports whether an MIS user exists with the given email.
func (r *MISUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("users").
		Where(squirrel.Eq{"email": email}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build MIS user existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Str("email", email).Msg("Error checking MIS user existence")
		return false, fmt.Errorf("error checking MIS user existence: %w", err)
	}

	return exists, nil
}
