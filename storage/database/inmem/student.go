package inmemdb

import (
	"context"
	"sort"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) query() []student.Student {
	students := make([]student.Student, 0, len(repo.db.table))
	for _, s := range repo.db.table {
		students = append(students, *s)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].RollNo < students[j].RollNo })
	return students
}

func (repo *studentRepository) CheckRollNoUniqueness(_ context.Context, rollNo string) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if _, ok := repo.db.table[rollNo]; ok {
		return student.ErrRollNoExists
	}
	return nil
}

func (repo *studentRepository) CreateStudent(_ context.Context, std student.Student) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[std.RollNo]; ok {
		return student.Student{}, student.ErrRollNoExists
	}
	repo.db.table[std.RollNo] = &std
	return std, nil
}

func (repo *studentRepository) GetStudent(_ context.Context, rollNo string) (student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if std, ok := repo.db.table[rollNo]; ok {
		return *std, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) QueryAllStudents(_ context.Context) ([]student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *studentRepository) FilterStudents(_ context.Context, filter student.QueryFilter) ([]student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	students := make([]student.Student, 0)
	for _, std := range repo.query() {
		if filter.Semester != 0 && std.Semester != filter.Semester {
			continue
		}
		students = append(students, std)
	}
	return students, nil
}

func (repo *studentRepository) UpdateStudent(_ context.Context, std student.Student) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[std.RollNo]; !ok {
		return student.Student{}, student.ErrNotFound
	}
	repo.db.table[std.RollNo] = &std
	return std, nil
}

func (repo *studentRepository) DeleteStudent(_ context.Context, rollNo string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[rollNo]; !ok {
		return student.ErrNotFound
	}
	delete(repo.db.table, rollNo)
	return nil
}
