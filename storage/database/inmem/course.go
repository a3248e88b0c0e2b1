package inmemdb

import (
	"context"
	"sort"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/course"
)

type courseRepository struct {
	db *courseTable
}

var _ course.Repository = (*courseRepository)(nil)

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db.course}
}

func (repo *courseRepository) query() []course.Course {
	courses := make([]course.Course, 0, len(repo.db.table))
	for _, c := range repo.db.table {
		courses = append(courses, *c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].Code < courses[j].Code })
	return courses
}

func (repo *courseRepository) CheckCodeUniqueness(_ context.Context, code string) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if _, ok := repo.db.table[code]; ok {
		return course.ErrCodeExists
	}
	return nil
}

func (repo *courseRepository) CreateCourse(_ context.Context, crs course.Course) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[crs.Code]; ok {
		return course.Course{}, course.ErrCodeExists
	}
	repo.db.table[crs.Code] = &crs
	return crs, nil
}

func (repo *courseRepository) GetCourse(_ context.Context, code string) (course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if crs, ok := repo.db.table[code]; ok {
		return *crs, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) QueryAllCourses(_ context.Context) ([]course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *courseRepository) FilterCourses(_ context.Context, filter course.QueryFilter) ([]course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	courses := make([]course.Course, 0)
	for _, crs := range repo.query() {
		if filter.Semester != 0 && crs.Semester != filter.Semester {
			continue
		}
		if filter.Teacher != "" && (crs.Teacher == nil || *crs.Teacher != filter.Teacher) {
			continue
		}
		courses = append(courses, crs)
	}
	return courses, nil
}

func (repo *courseRepository) UpdateCourse(_ context.Context, crs course.Course) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[crs.Code]; !ok {
		return course.Course{}, course.ErrNotFound
	}
	repo.db.table[crs.Code] = &crs
	return crs, nil
}

func (repo *courseRepository) DeleteCourse(_ context.Context, code string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[code]; !ok {
		return course.ErrNotFound
	}
	delete(repo.db.table, code)
	return nil
}
