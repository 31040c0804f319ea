// Package assignmentrepository reads assignments authored on the course side.
package assignmentrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/gradebench.net/internal/core/ports/primary"
	"gitlab.com/gradebench.net/internal/core/ports/secondary"
	"gitlab.com/gradebench.net/internal/domain"
)

var _ secondary.AssignmentRepository = (*AssignmentRepository)(nil)

// AssignmentRepository implements the AssignmentRepository interface with PostgreSQL.
// Questions are kept as a JSONB document per assignment.
type AssignmentRepository struct {
	db     *sqlx.DB
	logger primary.Logger
}

func NewAssignmentRepository(db *sqlx.DB, logger primary.Logger) *AssignmentRepository {
	return &AssignmentRepository{
		db:     db,
		logger: logger,
	}
}

type assignmentRow struct {
	ID        string         `db:"id"`
	CourseID  string         `db:"course_id"`
	Title     string         `db:"title"`
	Type      string         `db:"type"`
	Day       int            `db:"day"`
	DueDate   sql.NullString `db:"due_date"`
	Questions []byte         `db:"questions"`
}

// GetAssignment retrieves an assignment by ID
func (r *AssignmentRepository) GetAssignment(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	query := `
		SELECT id, course_id, title, type, day, due_date, questions
		FROM assignments
		WHERE id = $1
	`

	var row assignmentRow
	if err := r.db.GetContext(ctx, &row, query, assignmentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get assignment", "assignmentId", assignmentID, "error", err)
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	assignment := &domain.Assignment{
		ID:       row.ID,
		CourseID: row.CourseID,
		Title:    row.Title,
		Type:     domain.AssignmentType(row.Type),
		Day:      row.Day,
	}
	if row.DueDate.Valid {
		assignment.DueDate = &row.DueDate.String
	}

	if err := assignment.SetQuestionsJSON(row.Questions); err != nil {
		r.logger.Error("Failed to unmarshal assignment questions", "assignmentId", assignmentID, "error", err)
		return nil, fmt.Errorf("failed to unmarshal assignment questions: %w", err)
	}

	return assignment, nil
}

// SaveAssignment inserts or replaces an assignment. Used by seeding and tests.
func (r *AssignmentRepository) SaveAssignment(ctx context.Context, assignment *domain.Assignment) error {
	questions, err := assignment.QuestionsJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal assignment questions: %w", err)
	}

	query := `
		INSERT INTO assignments (id, course_id, title, type, day, due_date, questions)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			course_id = EXCLUDED.course_id,
			title = EXCLUDED.title,
			type = EXCLUDED.type,
			day = EXCLUDED.day,
			due_date = EXCLUDED.due_date,
			questions = EXCLUDED.questions
	`

	_, err = r.db.ExecContext(ctx, query,
		assignment.ID,
		assignment.CourseID,
		assignment.Title,
		string(assignment.Type),
		assignment.Day,
		assignment.DueDate,
		string(questions),
	)
	if err != nil {
		r.logger.Error("Failed to save assignment", "assignmentId", assignment.ID, "error", err)
		return fmt.Errorf("failed to save assignment: %w", err)
	}
	return nil
}
