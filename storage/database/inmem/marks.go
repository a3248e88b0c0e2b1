package inmemdb

import (
	"context"
	"sort"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/marks"
)

type markRepository struct {
	db *markTable
}

var _ marks.Repository = (*markRepository)(nil)

func NewMarkRepository(db *DB) marks.Repository {
	return &markRepository{db: db.mark}
}

func markKey(rollNo, code string) string {
	return rollNo + "|" + code
}

func (repo *markRepository) UpsertMark(_ context.Context, m marks.Mark) (marks.Mark, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[markKey(m.RollNo, m.CourseCode)] = &m
	return m, nil
}

func (repo *markRepository) GetMark(_ context.Context, rollNo, code string) (marks.Mark, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if m, ok := repo.db.table[markKey(rollNo, code)]; ok {
		return *m, nil
	}
	return marks.Mark{}, marks.ErrNotFound
}

func (repo *markRepository) query(match func(marks.Mark) bool) []marks.Mark {
	ms := make([]marks.Mark, 0)
	for _, m := range repo.db.table {
		if match(*m) {
			ms = append(ms, *m)
		}
	}
	sort.Slice(ms, func(i, j int) bool {
		if ms[i].RollNo != ms[j].RollNo {
			return ms[i].RollNo < ms[j].RollNo
		}
		return ms[i].CourseCode < ms[j].CourseCode
	})
	return ms
}

func (repo *markRepository) QueryByStudent(_ context.Context, rollNo string) ([]marks.Mark, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(func(m marks.Mark) bool { return m.RollNo == rollNo }), nil
}

func (repo *markRepository) QueryByCourse(_ context.Context, code string) ([]marks.Mark, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(func(m marks.Mark) bool { return m.CourseCode == code }), nil
}
