package pgrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/student"
)

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) CheckRollNoUniqueness(ctx context.Context, rollNo string) error {
	var count int
	err := repo.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM student WHERE roll_no = $1`, rollNo)
	if err != nil {
		return errors.Wrap(err, "checking roll number uniqueness")
	}
	if count > 0 {
		return student.ErrRollNoExists
	}
	return nil
}

func (repo *studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO student (roll_no, name, semester)
		VALUES (:roll_no, :name, :semester)`, std)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return student.Student{}, student.ErrRollNoExists
		case isForeignKeyViolation(err):
			return student.Student{}, student.ErrNoSuchUser
		}
		return student.Student{}, errors.Wrap(err, "creating student")
	}
	return std, nil
}

func (repo *studentRepository) GetStudent(ctx context.Context, rollNo string) (student.Student, error) {
	var std student.Student
	err := repo.db.GetContext(ctx, &std, `SELECT * FROM student WHERE roll_no = $1`, rollNo)
	if err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting student")
	}
	return std, nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	students := make([]student.Student, 0)
	if err := repo.db.SelectContext(ctx, &students, `SELECT * FROM student ORDER BY roll_no`); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return students, nil
}

func (repo *studentRepository) FilterStudents(ctx context.Context, filter student.QueryFilter) ([]student.Student, error) {
	students := make([]student.Student, 0)
	err := repo.db.SelectContext(ctx, &students,
		`SELECT * FROM student WHERE semester = $1 ORDER BY roll_no`, filter.Semester)
	if err != nil {
		return nil, errors.Wrap(err, "filtering students")
	}
	return students, nil
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE student SET name = :name, semester = :semester WHERE roll_no = :roll_no`, std)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return std, nil
}

func (repo *studentRepository) DeleteStudent(ctx context.Context, rollNo string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM student WHERE roll_no = $1`, rollNo)
	if err != nil {
		return errors.Wrap(err, "deleting student")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return student.ErrNotFound
	}
	return nil
}
