package pgrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/attendance"
)

type attendanceRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil)

func NewAttendanceRepository(db *sqlx.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

// attendanceRow adapts the DATE column to the Record's civil-date string.
type attendanceRow struct {
	RollNo     string            `db:"roll_no"`
	CourseCode string            `db:"course_code"`
	Date       string            `db:"date"`
	Status     attendance.Status `db:"status"`
}

func (repo *attendanceRepository) UpsertRecords(ctx context.Context, recs ...attendance.Record) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	const q = `
		INSERT INTO attendance (roll_no, course_code, date, status)
		VALUES (:roll_no, :course_code, :date, :status)
		ON CONFLICT (roll_no, course_code, date) DO UPDATE SET status = EXCLUDED.status`
	for _, rec := range recs {
		if _, err = tx.NamedExecContext(ctx, q, rec); err != nil {
			return errors.Wrap(err, "upserting attendance record")
		}
	}
	return errors.Wrap(tx.Commit(), "committing attendance sheet")
}

func (repo *attendanceRepository) selectRecords(ctx context.Context, q string, args ...interface{}) ([]attendance.Record, error) {
	rows := make([]attendanceRow, 0)
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying attendance")
	}
	recs := make([]attendance.Record, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, attendance.Record{
			RollNo:     row.RollNo,
			CourseCode: row.CourseCode,
			Date:       row.Date,
			Status:     row.Status,
		})
	}
	return recs, nil
}

func (repo *attendanceRepository) QueryByStudent(ctx context.Context, rollNo string) ([]attendance.Record, error) {
	return repo.selectRecords(ctx, `
		SELECT roll_no, course_code, to_char(date, 'YYYY-MM-DD') AS date, status
		FROM attendance WHERE roll_no = $1
		ORDER BY date DESC, course_code`, rollNo)
}

func (repo *attendanceRepository) QueryByCourse(ctx context.Context, code string) ([]attendance.Record, error) {
	return repo.selectRecords(ctx, `
		SELECT roll_no, course_code, to_char(date, 'YYYY-MM-DD') AS date, status
		FROM attendance WHERE course_code = $1
		ORDER BY date DESC, roll_no`, code)
}

func (repo *attendanceRepository) QueryByCourseDate(ctx context.Context, code, date string) ([]attendance.Record, error) {
	return repo.selectRecords(ctx, `
		SELECT roll_no, course_code, to_char(date, 'YYYY-MM-DD') AS date, status
		FROM attendance WHERE course_code = $1 AND date = $2
		ORDER BY roll_no`, code, date)
}
