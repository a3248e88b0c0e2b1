package inmemdb

import (
	"context"
	"sort"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/feedback"
)

type feedbackRepository struct {
	db *feedbackTable
}

var _ feedback.Repository = (*feedbackRepository)(nil)

func NewFeedbackRepository(db *DB) feedback.Repository {
	return &feedbackRepository{db: db.feedback}
}

func (repo *feedbackRepository) CreateEntry(_ context.Context, e feedback.Entry) (feedback.Entry, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[e.ID] = &e
	return e, nil
}

func (repo *feedbackRepository) QueryAllEntries(_ context.Context) ([]feedback.Entry, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	entries := make([]feedback.Entry, 0, len(repo.db.table))
	for _, e := range repo.db.table {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].CreatedAt.After(entries[j].CreatedAt) })
	return entries, nil
}
