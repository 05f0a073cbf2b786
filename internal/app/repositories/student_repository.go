package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coeptech/unimis/internal/app/models"
	"github.com/coeptech/unimis/internal/db"
	"github.com/coeptech/unimis/internal/pkg/apperrors"
	"github.com/coeptech/unimis/internal/pkg/dberrors"
	"github.com/coeptech/unimis/internal/pkg/logger"
)

var studentColumns = []string{
	"id", "mis_id", "user_id", "email", "firstname", "middlename", "lastname",
	"dob", "phone", "address", "is_scholarship", "fee_status",
	"receipt_path", "merit_document", "course_id",
	"payment_order_id", "payment_id", "payment_signature", "payment_amount", "payment_at",
	"created_at",
}

// StudentRepository handles student rows in the MIS database.
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(
		&s.ID, &s.MISID, &s.UserID, &s.Email, &s.FirstName, &s.MiddleName, &s.LastName,
		&s.DOB, &s.Phone, &s.Address, &s.IsScholarship, &s.FeeStatus,
		&s.ReceiptPath, &s.MeritDocument, &s.CourseID,
		&s.PaymentOrderID, &s.PaymentID, &s.PaymentSignature, &s.PaymentAmount, &s.PaymentAt,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CreateWithUser inserts the MIS user account and the student row in a
// single transaction. The unique constraints on both email columns make a
// concurrent duplicate fail atomically instead of slipping past the
// pre-insert existence check.
func (r *StudentRepository) CreateWithUser(ctx context.Context, user *models.MISUser, student *models.Student) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		userSQL, userArgs, err := r.sb.Insert("users").
			Columns("mis_id", "email", "password_hash", "role").
			Values(user.MISID, user.Email, user.PasswordHash, user.Role).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create MIS user query: %w", err)
		}

		var userID int64
		if err := tx.QueryRow(ctx, userSQL, userArgs...).Scan(&userID); err != nil {
			return err
		}

		studentSQL, studentArgs, err := r.sb.Insert("students").
			Columns("mis_id", "user_id", "email", "firstname", "middlename", "lastname",
				"dob", "phone", "address", "is_scholarship", "fee_status",
				"receipt_path", "merit_document", "course_id",
				"payment_order_id", "payment_id", "payment_signature", "payment_amount", "payment_at").
			Values(student.MISID, userID, student.Email, student.FirstName, student.MiddleName, student.LastName,
				student.DOB, student.Phone, student.Address, student.IsScholarship, student.FeeStatus,
				student.ReceiptPath, student.MeritDocument, student.CourseID,
				student.PaymentOrderID, student.PaymentID, student.PaymentSignature, student.PaymentAmount, student.PaymentAt).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create student query: %w", err)
		}

		if _, err := tx.Exec(ctx, studentSQL, studentArgs...); err != nil {
			return err
		}

		student.UserID = userID
		return nil
	})
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", student.Email).Msg("Error creating student with user")
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetAll retrieves all students with their course names.
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	cols := prefixColumns("s", studentColumns)
	sql, args, err := r.sb.Select(append(cols, "c.name")...).
		From("students s").
		LeftJoin("courses c ON s.course_id = c.id").
		OrderBy("s.mis_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		s := &models.Student{}
		err := rows.Scan(
			&s.ID, &s.MISID, &s.UserID, &s.Email, &s.FirstName, &s.MiddleName, &s.LastName,
			&s.DOB, &s.Phone, &s.Address, &s.IsScholarship, &s.FeeStatus,
			&s.ReceiptPath, &s.MeritDocument, &s.CourseID,
			&s.PaymentOrderID, &s.PaymentID, &s.PaymentSignature, &s.PaymentAmount, &s.PaymentAt,
			&s.CreatedAt, &s.CourseName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// GetByEmail retrieves a student by email, with the course name joined in.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	return r.getJoined(ctx, squirrel.Eq{"s.email": email})
}

// GetByMISID retrieves a student by mis_id, with the course name joined in.
func (r *StudentRepository) GetByMISID(ctx context.Context, misID string) (*models.Student, error) {
	return r.getJoined(ctx, squirrel.Eq{"s.mis_id": misID})
}

func (r *StudentRepository) getJoined(ctx context.Context, where squirrel.Eq) (*models.Student, error) {
	cols := prefixColumns("s", studentColumns)
	sql, args, err := r.sb.Select(append(cols, "c.name")...).
		From("students s").
		LeftJoin("courses c ON s.course_id = c.id").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	s := &models.Student{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&s.ID, &s.MISID, &s.UserID, &s.Email, &s.FirstName, &s.MiddleName, &s.LastName,
		&s.DOB, &s.Phone, &s.Address, &s.IsScholarship, &s.FeeStatus,
		&s.ReceiptPath, &s.MeritDocument, &s.CourseID,
		&s.PaymentOrderID, &s.PaymentID, &s.PaymentSignature, &s.PaymentAmount, &s.PaymentAt,
		&s.CreatedAt, &s.CourseName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student: %w", err)
	}

	return s, nil
}

// ExistsByEmail reports whether a student exists with the given email.
func (r *StudentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("students").
		Where(squirrel.Eq{"email": email}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build student existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Str("email", email).Msg("Error checking student existence")
		return false, fmt.Errorf("error checking student existence: %w", err)
	}

	return exists, nil
}

// Count returns the number of student rows. The migration job uses it as
// the basis of the mis_id sequence at the start of a run.
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("students").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error counting students")
		return 0, fmt.Errorf("error counting students: %w", err)
	}

	return count, nil
}

// prefixColumns qualifies column names with a table alias.
func prefixColumns(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}
