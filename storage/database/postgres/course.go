package pgrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/course"
)

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil)

func NewCourseRepository(db *sqlx.DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CheckCodeUniqueness(ctx context.Context, code string) error {
	var count int
	if err := repo.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM course WHERE code = $1`, code); err != nil {
		return errors.Wrap(err, "checking course code uniqueness")
	}
	if count > 0 {
		return course.ErrCodeExists
	}
	return nil
}

func (repo *courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO course (code, name, semester, teacher_username)
		VALUES (:code, :name, :semester, :teacher_username)`, crs)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return course.Course{}, course.ErrCodeExists
		case isForeignKeyViolation(err):
			return course.Course{}, course.ErrNoSuchTeacher
		}
		return course.Course{}, errors.Wrap(err, "creating course")
	}
	return crs, nil
}

func (repo *courseRepository) GetCourse(ctx context.Context, code string) (course.Course, error) {
	var crs course.Course
	err := repo.db.GetContext(ctx, &crs, `SELECT * FROM course WHERE code = $1`, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "getting course")
	}
	return crs, nil
}

func (repo *courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	courses := make([]course.Course, 0)
	if err := repo.db.SelectContext(ctx, &courses, `SELECT * FROM course ORDER BY code`); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return courses, nil
}

func (repo *courseRepository) FilterCourses(ctx context.Context, filter course.QueryFilter) ([]course.Course, error) {
	q := `SELECT * FROM course WHERE 1=1`
	args := make([]interface{}, 0, 2)
	if filter.Semester != 0 {
		args = append(args, filter.Semester)
		q += ` AND semester = $` + itoa(len(args))
	}
	if filter.Teacher != "" {
		args = append(args, filter.Teacher)
		q += ` AND teacher_username = $` + itoa(len(args))
	}
	q += ` ORDER BY code`

	courses := make([]course.Course, 0)
	if err := repo.db.SelectContext(ctx, &courses, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering courses")
	}
	return courses, nil
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE course
		SET name = :name, semester = :semester, teacher_username = :teacher_username
		WHERE code = :code`, crs)
	if err != nil {
		if isForeignKeyViolation(err) {
			return course.Course{}, course.ErrNoSuchTeacher
		}
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return crs, nil
}

func (repo *courseRepository) DeleteCourse(ctx context.Context, code string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM course WHERE code = $1`, code)
	if err != nil {
		return errors.Wrap(err, "deleting course")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return course.ErrNotFound
	}
	return nil
}
