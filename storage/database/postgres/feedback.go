package pgrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/feedback"
)

type feedbackRepository struct {
	db *sqlx.DB
}

var _ feedback.Repository = (*feedbackRepository)(nil)

func NewFeedbackRepository(db *sqlx.DB) feedback.Repository {
	return &feedbackRepository{db: db}
}

func (repo *feedbackRepository) CreateEntry(ctx context.Context, e feedback.Entry) (feedback.Entry, error) {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO feedback (id, roll_no, message, created_at)
		VALUES (:id, :roll_no, :message, :created_at)`, e)
	if err != nil {
		return feedback.Entry{}, errors.Wrap(err, "creating feedback")
	}
	return e, nil
}

func (repo *feedbackRepository) QueryAllEntries(ctx context.Context) ([]feedback.Entry, error) {
	entries := make([]feedback.Entry, 0)
	err := repo.db.SelectContext(ctx, &entries, `SELECT * FROM feedback ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying feedback")
	}
	return entries, nil
}
