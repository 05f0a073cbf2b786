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

var applicationColumns = []string{
	"id", "user_id", "email", "firstname", "middlename", "lastname",
	"dob", "phone", "address", "course", "is_scholarship", "fee_status",
	"receipt_path", "merit_document",
	"payment_order_id", "payment_id", "payment_signature", "payment_amount", "payment_at",
	"admission_status", "created_at",
}

// ApplicationRepository handles application rows in the applications database.
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	app := &models.Application{}
	err := row.Scan(
		&app.ID, &app.UserID, &app.Email, &app.FirstName, &app.MiddleName, &app.LastName,
		&app.DOB, &app.Phone, &app.Address, &app.Course, &app.IsScholarship, &app.FeeStatus,
		&app.ReceiptPath, &app.MeritDocument,
		&app.PaymentOrderID, &app.PaymentID, &app.PaymentSignature, &app.PaymentAmount, &app.PaymentAt,
		&app.AdmissionStatus, &app.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// Create inserts a new application and returns its generated id. A unique
// constraint on user_id makes duplicate submissions fail atomically.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) (int64, error) {
	sql, args, err := r.sb.Insert("applications").
		Columns("user_id", "email", "firstname", "middlename", "lastname",
			"dob", "phone", "address", "course", "is_scholarship", "fee_status",
			"receipt_path", "merit_document").
		Values(app.UserID, app.Email, app.FirstName, app.MiddleName, app.LastName,
			app.DOB, app.Phone, app.Address, app.Course, app.IsScholarship, app.FeeStatus,
			app.ReceiptPath, app.MeritDocument).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create application query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrApplicationAlreadySubmitted
		}
		logger.Error().Err(err).Int64("userId", app.UserID).Msg("Error executing create application query")
		return 0, fmt.Errorf("error creating application: %w", err)
	}

	return id, nil
}

// GetByUserID retrieves the application submitted by a user.
func (r *ApplicationRepository) GetByUserID(ctx context.Context, userID int64) (*models.Application, error) {
	sql, args, err := r.sb.Select(applicationColumns...).
		From("applications").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	app, err := scanApplication(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		logger.Error().Err(err).Int64("userId", userID).Msg("Error scanning application row")
		return nil, fmt.Errorf("error getting application: %w", err)
	}

	return app, nil
}

// GetAll retrieves all applications, newest first.
func (r *ApplicationRepository) GetAll(ctx context.Context) ([]*models.Application, error) {
	return r.list(ctx, nil)
}

// GetConfirmed retrieves all applications with a confirmed admission status.
func (r *ApplicationRepository) GetConfirmed(ctx context.Context) ([]*models.Application, error) {
	return r.list(ctx, squirrel.Eq{"admission_status": models.AdmissionConfirmed})
}

func (r *ApplicationRepository) list(ctx context.Context, where interface{}) ([]*models.Application, error) {
	builder := r.sb.Select(applicationColumns...).
		From("applications").
		OrderBy("created_at DESC")
	if where != nil {
		builder = builder.Where(where)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list applications query")
		return nil, fmt.Errorf("error querying applications: %w", err)
	}
	defer rows.Close()

	applications := []*models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning application row during list")
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		applications = append(applications, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}

	return applications, nil
}

// UpdateStatus moves an application to a new admission status.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status models.AdmissionStatus) error {
	sql, args, err := r.sb.Update("applications").
		Set("admission_status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("applicationId", id).Msg("Error executing update status query")
		return fmt.Errorf("error updating admission status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}

	return nil
}

// SetPaymentOrder records the gateway order id and amount for a user's
// application when an order is created.
func (r *ApplicationRepository) SetPaymentOrder(ctx context.Context, userID int64, orderID string, amount int64) error {
	sql, args, err := r.sb.Update("applications").
		SetMap(map[string]interface{}{
			"payment_order_id": orderID,
			"payment_amount":   amount,
		}).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set payment order query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userId", userID).Msg("Error recording payment order")
		return fmt.Errorf("error recording payment order: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}

	return nil
}

// MarkPaid sets the fee status to paid and stores the verified payment
// fields.
func (r *ApplicationRepository) MarkPaid(ctx context.Context, userID int64, paymentID, signature string) error {
	sql, args, err := r.sb.Update("applications").
		SetMap(map[string]interface{}{
			"fee_status":        models.FeePaid,
			"payment_id":        paymentID,
			"payment_signature": signature,
		}).
		Set("payment_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark paid query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userId", userID).Msg("Error marking application paid")
		return fmt.Errorf("error marking application paid: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}

	return nil
}
