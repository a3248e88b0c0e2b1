package pgrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/announce"
)

type announcementRepository struct {
	db *sqlx.DB
}

var _ announce.Repository = (*announcementRepository)(nil)

func NewAnnouncementRepository(db *sqlx.DB) announce.Repository {
	return &announcementRepository{db: db}
}

func (repo *announcementRepository) CreateAnnouncement(ctx context.Context, ann announce.Announcement) (announce.Announcement, error) {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO announcement (id, message, author, created_at)
		VALUES (:id, :message, :author, :created_at)`, ann)
	if err != nil {
		return announce.Announcement{}, errors.Wrap(err, "creating announcement")
	}
	return ann, nil
}

func (repo *announcementRepository) QueryAllAnnouncements(ctx context.Context) ([]announce.Announcement, error) {
	anns := make([]announce.Announcement, 0)
	err := repo.db.SelectContext(ctx, &anns, `SELECT * FROM announcement ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying announcements")
	}
	return anns, nil
}

func (repo *announcementRepository) DeleteAnnouncement(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM announcement WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting announcement")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return announce.ErrNotFound
	}
	return nil
}
