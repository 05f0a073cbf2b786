package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coeptech/unimis/internal/app/models"
	"github.com/coeptech/unimis/internal/db"
	"github.com/coeptech/unimis/internal/pkg/apperrors"
	"github.com/coeptech/unimis/internal/pkg/logger"
)

// EnrollmentRepository handles enrollment rows in the MIS database. An
// enrollment ties a student (by MIS id) to a subject for a semester and
// accumulates attendance counters and marks.
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ReplaceForSemester replaces the student's enrollments for a semester with
// the given subject ids. Delete and reinsert run in a single transaction so a
// failed insert leaves the previous selection intact.
func (r *EnrollmentRepository) ReplaceForSemester(ctx context.Context, misID string, semester int, subjectIDs []int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `DELETE FROM enrollments WHERE mis_id = $1 AND semester = $2`, misID, semester)
		if err != nil {
			return fmt.Errorf("error clearing previous selection: %w", err)
		}

		for _, subjectID := range subjectIDs {
			sql, args, err := r.sb.Insert("enrollments").
				Columns("mis_id", "subject_id", "semester").
				Values(misID, subjectID, semester).
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build enrollment insert: %w", err)
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return fmt.Errorf("error inserting enrollment: %w", err)
			}
		}

		return nil
	})
}

// GetSubjectIDs returns the subject ids the student is enrolled in for a semester.
func (r *EnrollmentRepository) GetSubjectIDs(ctx context.Context, misID string, semester int) ([]int64, error) {
	sql, args, err := r.sb.Select("subject_id").
		From("enrollments").
		Where(squirrel.Eq{"mis_id": misID, "semester": semester}).
		OrderBy("subject_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("misId", misID).Msg("Error querying enrolled subject ids")
		return nil, fmt.Errorf("error querying enrollments: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// GetEnrolledSubjects returns the student's enrollments for a semester with
// subject and instructor names resolved.
func (r *EnrollmentRepository) GetEnrolledSubjects(ctx context.Context, misID string, semester int) ([]*models.Enrollment, error) {
	query := `
		SELECT e.mis_id, e.subject_id, e.semester,
		       e.lectures_attended, e.total_lectures,
		       e.midsem_marks, e.endsem_marks, e.internal_marks,
		       s.name, t.full_name
		FROM enrollments e
		JOIN subjects s ON e.subject_id = s.id
		LEFT JOIN teachers t ON s.teacher_id = t.id
		WHERE e.mis_id = $1 AND e.semester = $2
		ORDER BY s.name`

	rows, err := r.db.Query(ctx, query, misID, semester)
	if err != nil {
		logger.Error().Err(err).Str("misId", misID).Msg("Error querying enrolled subjects")
		return nil, fmt.Errorf("error querying enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []*models.Enrollment{}
	for rows.Next() {
		e := &models.Enrollment{}
		if err := rows.Scan(&e.MISID, &e.SubjectID, &e.Semester,
			&e.LecturesAttended, &e.TotalLectures,
			&e.MidsemMarks, &e.EndsemMarks, &e.InternalMarks,
			&e.SubjectName, &e.InstructorName); err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		enrollments = append(enrollments, e)
	}

	return enrollments, rows.Err()
}

// GetStudentsBySubject returns the students enrolled in a subject for a
// semester along with their per-subject attendance and marks.
func (r *EnrollmentRepository) GetStudentsBySubject(ctx context.Context, subjectID int64, semester int) ([]*models.EnrolledStudent, error) {
	query := `
		SELECT e.mis_id, st.firstname, st.lastname, st.email,
		       e.lectures_attended, e.total_lectures,
		       e.midsem_marks, e.endsem_marks, e.internal_marks
		FROM enrollments e
		JOIN students st ON e.mis_id = st.mis_id
		WHERE e.subject_id = $1 AND e.semester = $2
		ORDER BY e.mis_id`

	rows, err := r.db.Query(ctx, query, subjectID, semester)
	if err != nil {
		logger.Error().Err(err).Int64("subjectId", subjectID).Msg("Error querying subject students")
		return nil, fmt.Errorf("error querying subject students: %w", err)
	}
	defer rows.Close()

	students := []*models.EnrolledStudent{}
	for rows.Next() {
		s := &models.EnrolledStudent{}
		if err := rows.Scan(&s.MISID, &s.FirstName, &s.LastName, &s.Email,
			&s.LecturesAttended, &s.TotalLectures,
			&s.MidsemMarks, &s.EndsemMarks, &s.InternalMarks); err != nil {
			return nil, fmt.Errorf("error scanning enrolled student row: %w", err)
		}
		students = append(students, s)
	}

	return students, rows.Err()
}

// RecordAttendance bumps the attendance counters for one student in one
// subject. A present lecture increments both counters, an absent one only the
// total.
func (r *EnrollmentRepository) RecordAttendance(ctx context.Context, misID string, subjectID int64, semester int, present bool) error {
	query := `
		UPDATE enrollments
		SET total_lectures = total_lectures + 1,
		    lectures_attended = lectures_attended + CASE WHEN $4 THEN 1 ELSE 0 END
		WHERE mis_id = $1 AND subject_id = $2 AND semester = $3`

	cmdTag, err := r.db.Exec(ctx, query, misID, subjectID, semester, present)
	if err != nil {
		logger.Error().Err(err).Str("misId", misID).Int64("subjectId", subjectID).Msg("Error recording attendance")
		return fmt.Errorf("error recording attendance: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// UpdateMarks sets one marks column for one student in one subject. The
// column is chosen from the mark type, never from request input.
func (r *EnrollmentRepository) UpdateMarks(ctx context.Context, misID string, subjectID int64, semester int, markType models.MarkType, marks int) error {
	var column string
	switch markType {
	case models.MarkMidsem:
		column = "midsem_marks"
	case models.MarkEndsem:
		column = "endsem_marks"
	case models.MarkInternal:
		column = "internal_marks"
	default:
		return apperrors.ErrValidationFailed
	}

	sql, args, err := r.sb.Update("enrollments").
		Set(column, marks).
		Where(squirrel.Eq{"mis_id": misID, "subject_id": subjectID, "semester": semester}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update marks query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("misId", misID).Int64("subjectId", subjectID).Msg("Error updating marks")
		return fmt.Errorf("error updating marks: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}
