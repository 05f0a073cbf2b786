package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coeptech/unimis/internal/app/models"
	"github.com/coeptech/unimis/internal/pkg/apperrors"
	"github.com/coeptech/unimis/internal/pkg/dberrors"
	"github.com/coeptech/unimis/internal/pkg/logger"
)

// SubjectRepository handles subject rows in the MIS database.
type SubjectRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new subject and returns its generated id.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) (int64, error) {
	sql, args, err := r.sb.Insert("subjects").
		Columns("name", "course_id", "teacher_id").
		Values(subject.Name, subject.CourseID, subject.TeacherID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create subject query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Str("name", subject.Name).Msg("Error executing create subject query")
		return 0, fmt.Errorf("error creating subject: %w", err)
	}

	return id, nil
}

const subjectJoinedSelect = `
	SELECT s.id, s.name, s.course_id, s.teacher_id, c.name, t.full_name
	FROM subjects s
	JOIN courses c ON s.course_id = c.id
	LEFT JOIN teachers t ON s.teacher_id = t.id`

func (r *SubjectRepository) queryJoined(ctx context.Context, query string, args ...interface{}) ([]*models.Subject, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing subjects query")
		return nil, fmt.Errorf("error querying subjects: %w", err)
	}
	defer rows.Close()

	subjects := []*models.Subject{}
	for rows.Next() {
		subject := &models.Subject{}
		if err := rows.Scan(&subject.ID, &subject.Name, &subject.CourseID, &subject.TeacherID,
			&subject.CourseName, &subject.TeacherName); err != nil {
			return nil, fmt.Errorf("error scanning subject row: %w", err)
		}
		subjects = append(subjects, subject)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subject rows: %w", err)
	}

	return subjects, nil
}

// GetAll retrieves all subjects with course and teacher names.
func (r *SubjectRepository) GetAll(ctx context.Context) ([]*models.Subject, error) {
	return r.queryJoined(ctx, subjectJoinedSelect+` ORDER BY c.name, s.name`)
}

// GetByCourse retrieves the subjects belonging to a course.
func (r *SubjectRepository) GetByCourse(ctx context.Context, courseID int64) ([]*models.Subject, error) {
	return r.queryJoined(ctx, subjectJoinedSelect+` WHERE s.course_id = $1 ORDER BY s.name`, courseID)
}

// GetByTeacher retrieves the subjects assigned to a teacher.
func (r *SubjectRepository) GetByTeacher(ctx context.Context, teacherID int64) ([]*models.Subject, error) {
	return r.queryJoined(ctx, subjectJoinedSelect+` WHERE s.teacher_id = $1 ORDER BY s.name`, teacherID)
}

// GetByID retrieves a subject by id.
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	subjects, err := r.queryJoined(ctx, subjectJoinedSelect+` WHERE s.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(subjects) == 0 {
		return nil, apperrors.ErrSubjectNotFound
	}
	return subjects[0], nil
}

// Delete removes a subject and its enrollments.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE subject_id = $1`, id); err != nil {
		logger.Error().Err(err).Int64("subjectId", id).Msg("Error deleting subject enrollments")
		return fmt.Errorf("error deleting subject enrollments: %w", err)
	}

	sql, args, err := r.sb.Delete("subjects").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete subject query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("subjectId", id).Msg("Error executing delete subject query")
		return fmt.Errorf("error deleting subject: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}

	return nil
}
