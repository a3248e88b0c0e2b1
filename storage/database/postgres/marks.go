package pgrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/marks"
)

type markRepository struct {
	db *sqlx.DB
}

var _ marks.Repository = (*markRepository)(nil)

func NewMarkRepository(db *sqlx.DB) marks.Repository {
	return &markRepository{db: db}
}

func (repo *markRepository) UpsertMark(ctx context.Context, m marks.Mark) (marks.Mark, error) {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO mark (roll_no, course_code, score, grade, remarks)
		VALUES (:roll_no, :course_code, :score, :grade, :remarks)
		ON CONFLICT (roll_no, course_code)
		DO UPDATE SET score = EXCLUDED.score, grade = EXCLUDED.grade, remarks = EXCLUDED.remarks`, m)
	if err != nil {
		return marks.Mark{}, errors.Wrap(err, "upserting mark")
	}
	return m, nil
}

func (repo *markRepository) GetMark(ctx context.Context, rollNo, code string) (marks.Mark, error) {
	var m marks.Mark
	err := repo.db.GetContext(ctx, &m,
		`SELECT * FROM mark WHERE roll_no = $1 AND course_code = $2`, rollNo, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return marks.Mark{}, marks.ErrNotFound
		}
		return marks.Mark{}, errors.Wrap(err, "getting mark")
	}
	return m, nil
}

func (repo *markRepository) QueryByStudent(ctx context.Context, rollNo string) ([]marks.Mark, error) {
	ms := make([]marks.Mark, 0)
	err := repo.db.SelectContext(ctx, &ms,
		`SELECT * FROM mark WHERE roll_no = $1 ORDER BY course_code`, rollNo)
	if err != nil {
		return nil, errors.Wrap(err, "querying marks")
	}
	return ms, nil
}

func (repo *markRepository) QueryByCourse(ctx context.Context, code string) ([]marks.Mark, error) {
	ms := make([]marks.Mark, 0)
	err := repo.db.SelectContext(ctx, &ms,
		`SELECT * FROM mark WHERE course_code = $1 ORDER BY roll_no`, code)
	if err != nil {
		return nil, errors.Wrap(err, "querying marks")
	}
	return ms, nil
}
