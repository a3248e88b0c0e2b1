package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/attendance"
)

type attendanceRepository struct {
	db *attendanceTable
}

var _ attendance.Repository = (*attendanceRepository)(nil)

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db.attendance}
}

func recordKey(rec attendance.Record) string {
	return strings.Join([]string{rec.RollNo, rec.CourseCode, rec.Date}, "|")
}

func (repo *attendanceRepository) UpsertRecords(_ context.Context, recs ...attendance.Record) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, rec := range recs {
		rec := rec
		repo.db.table[recordKey(rec)] = &rec
	}
	return nil
}

func (repo *attendanceRepository) query(match func(attendance.Record) bool) []attendance.Record {
	recs := make([]attendance.Record, 0)
	for _, rec := range repo.db.table {
		if match(*rec) {
			recs = append(recs, *rec)
		}
	}
	// newest date first, then by roll for stable output
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Date != recs[j].Date {
			return recs[i].Date > recs[j].Date
		}
		return recs[i].RollNo < recs[j].RollNo
	})
	return recs
}

func (repo *attendanceRepository) QueryByStudent(_ context.Context, rollNo string) ([]attendance.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(func(rec attendance.Record) bool { return rec.RollNo == rollNo }), nil
}

func (repo *attendanceRepository) QueryByCourse(_ context.Context, code string) ([]attendance.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(func(rec attendance.Record) bool { return rec.CourseCode == code }), nil
}

func (repo *attendanceRepository) QueryByCourseDate(_ context.Context, code, date string) ([]attendance.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(func(rec attendance.Record) bool {
		return rec.CourseCode == code && rec.Date == date
	}), nil
}
