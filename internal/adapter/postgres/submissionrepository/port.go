// Package submissionrepository stores graded submissions in PostgreSQL.
package submissionrepository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/gradebench.net/internal/core/ports/primary"
	"gitlab.com/gradebench.net/internal/core/ports/secondary"
	"gitlab.com/gradebench.net/internal/domain"
	querybuilder "gitlab.com/gradebench.net/internal/utils"
)

var _ secondary.SubmissionRepository = (*SubmissionRepository)(nil)

// SubmissionRepository implements the SubmissionRepository interface with PostgreSQL
type SubmissionRepository struct {
	db     *sqlx.DB
	schema string
	logger primary.Logger
}

// NewSubmissionRepository creates a new PostgreSQL submission repository
func NewSubmissionRepository(db *sqlx.DB, schema string, logger primary.Logger) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		schema: schema,
		logger: logger,
	}
}

type submissionRow struct {
	ID             uuid.UUID     `db:"id"`
	CourseID       string        `db:"course_id"`
	AssignmentID   string        `db:"assignment_id"`
	StudentID      string        `db:"student_id"`
	StudentName    string        `db:"student_name"`
	SubmittedAt    time.Time     `db:"submitted_at"`
	ResultStatus   string        `db:"result_status"`
	PassCount      int           `db:"pass_count"`
	TotalCount     int           `db:"total_count"`
	AutoScore      sql.NullInt64 `db:"auto_score"`
	MCQAnswers     []byte        `db:"mcq_answers"`
	CodingSolution string        `db:"coding_solution"`
	Language       string        `db:"language"`
}

func (row *submissionRow) toDomain() (*domain.SubmissionRecord, error) {
	record := &domain.SubmissionRecord{
		ID:             row.ID,
		CourseID:       row.CourseID,
		AssignmentID:   row.AssignmentID,
		StudentID:      row.StudentID,
		StudentName:    row.StudentName,
		SubmittedAt:    row.SubmittedAt,
		ResultStatus:   domain.ResultStatus(row.ResultStatus),
		TestSummary:    domain.TestSummary{PassCount: row.PassCount, TotalCount: row.TotalCount},
		CodingSolution: row.CodingSolution,
		Language:       row.Language,
	}
	if row.AutoScore.Valid {
		score := int(row.AutoScore.Int64)
		record.AutoScore = &score
	}
	if len(row.MCQAnswers) > 0 {
		if err := json.Unmarshal(row.MCQAnswers, &record.MCQAnswers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal mcq answers: %w", err)
		}
	}
	return record, nil
}

// GetByAssignmentAndStudent retrieves the submission of a student for an assignment
func (r *SubmissionRepository) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID string) (*domain.SubmissionRecord, error) {
	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.AssignmentID), assignmentID).
		And(fmt.Sprintf("%s = ?", tbl.StudentID), studentID).
		Limit(1).
		Build()

	var row submissionRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get submission", "assignmentId", assignmentID, "studentId", studentID, "error", err)
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	record, err := row.toDomain()
	if err != nil {
		r.logger.Error("Failed to decode submission", "assignmentId", assignmentID, "studentId", studentID, "error", err)
		return nil, err
	}
	return record, nil
}

// ListByAssignment returns every submission for an assignment, newest first
func (r *SubmissionRepository) ListByAssignment(ctx context.Context, assignmentID string) ([]*domain.SubmissionRecord, error) {
	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.AssignmentID), assignmentID).
		OrderBy(tbl.SubmittedAt, false).
		Build()

	var rows []submissionRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		r.logger.Error("Failed to list submissions", "assignmentId", assignmentID, "error", err)
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	records := make([]*domain.SubmissionRecord, 0, len(rows))
	for i := range rows {
		record, err := rows[i].toDomain()
		if err != nil {
			r.logger.Error("Failed to decode submission", "submissionId", rows[i].ID, "error", err)
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// CreateSubmission inserts a new submission
func (r *SubmissionRepository) CreateSubmission(ctx context.Context, record *domain.SubmissionRecord) error {
	answers, err := marshalAnswers(record.MCQAnswers)
	if err != nil {
		return err
	}

	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.Columns()...).
		Into(tbl.TableName()).
		Values(
			record.ID,
			record.CourseID,
			record.AssignmentID,
			record.StudentID,
			record.StudentName,
			record.SubmittedAt,
			string(record.ResultStatus),
			record.TestSummary.PassCount,
			record.TestSummary.TotalCount,
			autoScoreValue(record.AutoScore),
			answers,
			record.CodingSolution,
			record.Language,
		).
		Build()

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		r.logger.Error("Failed to create submission", "submissionId", record.ID, "error", err)
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

// UpdateSubmission overwrites the graded fields of an existing submission
func (r *SubmissionRepository) UpdateSubmission(ctx context.Context, record *domain.SubmissionRecord) error {
	answers, err := marshalAnswers(record.MCQAnswers)
	if err != nil {
		return err
	}

	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Update(tbl.TableName()).
		Set(tbl.StudentName, record.StudentName).
		Set(tbl.SubmittedAt, record.SubmittedAt).
		Set(tbl.ResultStatus, string(record.ResultStatus)).
		Set(tbl.PassCount, record.TestSummary.PassCount).
		Set(tbl.TotalCount, record.TestSummary.TotalCount).
		Set(tbl.AutoScore, autoScoreValue(record.AutoScore)).
		Set(tbl.MCQAnswers, answers).
		Set(tbl.CodingSolution, record.CodingSolution).
		Set(tbl.Language, record.Language).
		Where(fmt.Sprintf("%s = ?", tbl.ID), record.ID).
		Build()

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		r.logger.Error("Failed to update submission", "submissionId", record.ID, "error", err)
		return fmt.Errorf("failed to update submission: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Error checking rows affected", "error", err)
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("submission not found: %s", record.ID)
	}
	return nil
}

// marshalAnswers encodes answers for the JSONB column. JSON goes over the
// wire as text; lib/pq would send []byte as bytea.
func marshalAnswers(answers map[int]domain.Answer) (sql.NullString, error) {
	if answers == nil {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to marshal mcq answers: %w", err)
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

func autoScoreValue(score *int) sql.NullInt64 {
	if score == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*score), Valid: true}
}
