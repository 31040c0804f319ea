// Package chapteraccess checks chapter unlocks recorded by the course side.
package chapteraccess

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/gradebench.net/internal/core/ports/primary"
	"gitlab.com/gradebench.net/internal/core/ports/secondary"
)

var _ secondary.ChapterAccess = (*ChapterAccessRepository)(nil)

// ChapterAccessRepository resolves a day to the course's chapter at that
// position and looks for the learner's unlock of it.
type ChapterAccessRepository struct {
	db     *sqlx.DB
	query  string
	logger primary.Logger
}

func NewChapterAccessRepository(db *sqlx.DB, schema string, logger primary.Logger) *ChapterAccessRepository {
	return &ChapterAccessRepository{
		db:     db,
		query:  buildAccessQuery(schema),
		logger: logger,
	}
}

func buildAccessQuery(schema string) string {
	prefix := ""
	if schema != "" {
		prefix = schema + "."
	}
	return fmt.Sprintf(`SELECT EXISTS (
	SELECT 1 FROM %[1]schapter_access ca
	WHERE ca.student_id = $1 AND ca.course_id = $2
	AND ca.chapter_id = (
		SELECT c.id FROM %[1]schapters c
		WHERE c.course_id = $2
		ORDER BY c.position ASC, c.id ASC
		OFFSET $3 LIMIT 1))`, prefix)
}

// CanAccess returns false when the course has fewer chapters than day.
func (r *ChapterAccessRepository) CanAccess(ctx context.Context, studentID, courseID string, day int) (bool, error) {
	if day < 1 {
		day = 1
	}

	var ok bool
	if err := r.db.GetContext(ctx, &ok, r.query, studentID, courseID, day-1); err != nil {
		r.logger.Error("Failed to check chapter access", "studentId", studentID, "courseId", courseID, "day", day, "error", err)
		return false, fmt.Errorf("failed to check chapter access: %w", err)
	}
	return ok, nil
}
