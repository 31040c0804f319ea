package submissionrepository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/gradebench.net/internal/adapter/logging"
	"gitlab.com/gradebench.net/internal/domain"
)

func setupMockDB(t *testing.T) (*SubmissionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewSubmissionRepository(sqlx.NewDb(db, "postgres"), "public", logging.NewNopLogger()), mock
}

func TestGetByAssignmentAndStudent(t *testing.T) {
	ctx := context.Background()
	selectSQL := regexp.QuoteMeta("FROM public.submissions WHERE assignment_id = $1 AND student_id = $2 LIMIT 1")

	t.Run("found", func(t *testing.T) {
		repo, mock := setupMockDB(t)
		id := uuid.New()
		at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows(domain.GetSubmissionTable().Columns()).
			AddRow(id.String(), "c1", "m1", "s1", "Sam", at, "partial", 2, 3, int64(67), []byte(`{"0":1,"1":[0,2]}`), "", "")
		mock.ExpectQuery(selectSQL).WithArgs("m1", "s1").WillReturnRows(rows)

		rec, err := repo.GetByAssignmentAndStudent(ctx, "m1", "s1")
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, id, rec.ID)
		assert.Equal(t, domain.ResultStatusPartial, rec.ResultStatus)
		assert.Equal(t, domain.TestSummary{PassCount: 2, TotalCount: 3}, rec.TestSummary)
		require.NotNil(t, rec.AutoScore)
		assert.Equal(t, 67, *rec.AutoScore)
		assert.True(t, rec.MCQAnswers[1].Equal(domain.SetAnswer(0, 2)))
		assert.Equal(t, at, rec.SubmittedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("null score and answers", func(t *testing.T) {
		repo, mock := setupMockDB(t)
		rows := sqlmock.NewRows(domain.GetSubmissionTable().Columns()).
			AddRow(uuid.New().String(), "c1", "a1", "s1", "", time.Now(), "ungraded", 0, 0, nil, nil, "x", "cpp")
		mock.ExpectQuery(selectSQL).WithArgs("a1", "s1").WillReturnRows(rows)

		rec, err := repo.GetByAssignmentAndStudent(ctx, "a1", "s1")
		require.NoError(t, err)
		assert.Nil(t, rec.AutoScore)
		assert.Nil(t, rec.MCQAnswers)
		assert.Equal(t, "cpp", rec.Language)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := setupMockDB(t)
		mock.ExpectQuery(selectSQL).WithArgs("a1", "s1").WillReturnError(sql.ErrNoRows)

		rec, err := repo.GetByAssignmentAndStudent(ctx, "a1", "s1")
		assert.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock := setupMockDB(t)
		mock.ExpectQuery(selectSQL).WillReturnError(errors.New("connection refused"))

		_, err := repo.GetByAssignmentAndStudent(ctx, "a1", "s1")
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestListByAssignment(t *testing.T) {
	ctx := context.Background()
	listSQL := regexp.QuoteMeta("FROM public.submissions WHERE assignment_id = $1 ORDER BY submitted_at DESC")

	t.Run("newest first", func(t *testing.T) {
		repo, mock := setupMockDB(t)
		newer := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)
		older := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows(domain.GetSubmissionTable().Columns()).
			AddRow(uuid.New().String(), "c1", "a1", "s2", "Kim", newer, "success", 3, 3, int64(100), nil, "int main(){}", "cpp").
			AddRow(uuid.New().String(), "c1", "a1", "s1", "Sam", older, "partial", 1, 3, nil, nil, "int main(){}", "cpp")
		mock.ExpectQuery(listSQL).WithArgs("a1").WillReturnRows(rows)

		records, err := repo.ListByAssignment(ctx, "a1")
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "s2", records[0].StudentID)
		assert.Equal(t, newer, records[0].SubmittedAt)
		assert.Nil(t, records[1].AutoScore)
		assert.Equal(t, domain.TestSummary{PassCount: 1, TotalCount: 3}, records[1].TestSummary)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("none", func(t *testing.T) {
		repo, mock := setupMockDB(t)
		mock.ExpectQuery(listSQL).WithArgs("a1").WillReturnRows(sqlmock.NewRows(domain.GetSubmissionTable().Columns()))

		records, err := repo.ListByAssignment(ctx, "a1")
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("bad answers json", func(t *testing.T) {
		repo, mock := setupMockDB(t)
		rows := sqlmock.NewRows(domain.GetSubmissionTable().Columns()).
			AddRow(uuid.New().String(), "c1", "m1", "s1", "Sam", time.Now(), "fail", 0, 2, int64(0), []byte(`{`), "", "")
		mock.ExpectQuery(listSQL).WithArgs("m1").WillReturnRows(rows)

		_, err := repo.ListByAssignment(ctx, "m1")
		assert.ErrorContains(t, err, "failed to unmarshal mcq answers")
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock := setupMockDB(t)
		mock.ExpectQuery(listSQL).WillReturnError(errors.New("connection refused"))

		_, err := repo.ListByAssignment(ctx, "a1")
		assert.ErrorContains(t, err, "failed to list submissions")
	})
}

func sampleRecord() *domain.SubmissionRecord {
	score := 50
	return &domain.SubmissionRecord{
		ID:           uuid.New(),
		CourseID:     "c1",
		AssignmentID: "m1",
		StudentID:    "s1",
		StudentName:  "Sam",
		SubmittedAt:  time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		ResultStatus: domain.ResultStatusPartial,
		TestSummary:  domain.TestSummary{PassCount: 1, TotalCount: 2},
		AutoScore:    &score,
		MCQAnswers:   map[int]domain.Answer{0: domain.SingleAnswer(1)},
	}
}

func TestCreateSubmission(t *testing.T) {
	repo, mock := setupMockDB(t)
	rec := sampleRecord()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO public.submissions (id, course_id, assignment_id, student_id, student_name, submitted_at, result_status, pass_count, total_count, auto_score, mcq_answers, coding_solution, language) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)")).
		WithArgs(rec.ID.String(), "c1", "m1", "s1", "Sam", rec.SubmittedAt, "partial", 1, 2, int64(50), `{"0":1}`, "", "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.CreateSubmission(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSubmissionDuplicate(t *testing.T) {
	repo, mock := setupMockDB(t)
	mock.ExpectExec("INSERT INTO public.submissions").WillReturnError(errors.New("duplicate key value violates unique constraint"))

	err := repo.CreateSubmission(context.Background(), sampleRecord())
	assert.ErrorContains(t, err, "failed to create submission")
}

func TestUpdateSubmission(t *testing.T) {
	updateSQL := regexp.QuoteMeta("UPDATE public.submissions SET student_name = $1, submitted_at = $2, result_status = $3, pass_count = $4, total_count = $5, auto_score = $6, mcq_answers = $7, coding_solution = $8, language = $9 WHERE id = $10")

	t.Run("updates by id", func(t *testing.T) {
		repo, mock := setupMockDB(t)
		rec := sampleRecord()
		rec.AutoScore = nil
		rec.MCQAnswers = nil

		mock.ExpectExec(updateSQL).
			WithArgs("Sam", rec.SubmittedAt, "partial", 1, 2, nil, nil, "", "", rec.ID.String()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateSubmission(context.Background(), rec))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows", func(t *testing.T) {
		repo, mock := setupMockDB(t)
		mock.ExpectExec(updateSQL).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateSubmission(context.Background(), sampleRecord())
		assert.ErrorContains(t, err, "submission not found")
	})
}
