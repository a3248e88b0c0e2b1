package inmemdb

import (
	"context"
	"sort"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/announce"
)

type announcementRepository struct {
	db *announcementTable
}

var _ announce.Repository = (*announcementRepository)(nil)

func NewAnnouncementRepository(db *DB) announce.Repository {
	return &announcementRepository{db: db.announcement}
}

func (repo *announcementRepository) CreateAnnouncement(_ context.Context, ann announce.Announcement) (announce.Announcement, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[ann.ID] = &ann
	return ann, nil
}

func (repo *announcementRepository) QueryAllAnnouncements(_ context.Context) ([]announce.Announcement, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	anns := make([]announce.Announcement, 0, len(repo.db.table))
	for _, ann := range repo.db.table {
		anns = append(anns, *ann)
	}
	sort.Slice(anns, func(i, j int) bool { return anns[i].CreatedAt.After(anns[j].CreatedAt) })
	return anns, nil
}

func (repo *announcementRepository) DeleteAnnouncement(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return announce.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
