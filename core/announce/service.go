package announce

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/auth"
)

var ErrNotFound = errors.New("announcement not found")

// Announcement is a broadcast note shown to every role, newest first.
type Announcement struct {
	ID        string    `json:"id" db:"id"`
	Message   string    `json:"message" db:"message"`
	Author    string    `json:"author" db:"author"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
}

type NewAnnouncement struct {
	Message string `json:"message" validate:"required"`
}

func (na *NewAnnouncement) Validate(validate *validator.Validate) error {
	na.Message = core.CleanString(na.Message)
	return validate.Struct(na)
}

type (
	Repository interface {
		CreateAnnouncement(ctx context.Context, ann Announcement) (Announcement, error)
		// QueryAllAnnouncements returns announcements newest first.
		QueryAllAnnouncements(ctx context.Context) ([]Announcement, error)
		DeleteAnnouncement(ctx context.Context, id string) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(validate *validator.Validate, repo Repository) *Service {
	return &Service{repo: repo, validate: validate}
}

// Create posts an announcement authored by the session's principal.
func (svc *Service) Create(ctx context.Context, sess *auth.Session, na NewAnnouncement) (Announcement, error) {
	if err := auth.Authorize(sess, auth.OpAnnouncementCreate); err != nil {
		return Announcement{}, err
	}
	if err := na.Validate(svc.validate); err != nil {
		return Announcement{}, err
	}

	p, _ := sess.Current()
	return svc.repo.CreateAnnouncement(ctx, Announcement{
		ID:        uuid.New().String(),
		Message:   na.Message,
		Author:    p.Name,
		CreatedAt: time.Now().UTC(),
	})
}

// QueryAll lists announcements for any authenticated role, newest first.
func (svc *Service) QueryAll(ctx context.Context, sess *auth.Session) ([]Announcement, error) {
	if err := auth.Authorize(sess, auth.OpAnnouncementRead); err != nil {
		return nil, err
	}
	return svc.repo.QueryAllAnnouncements(ctx)
}

// Delete removes an announcement; reuses the create capability since only
// posting roles curate the board.
func (svc *Service) Delete(ctx context.Context, sess *auth.Session, id string) error {
	if err := auth.Authorize(sess, auth.OpAnnouncementCreate); err != nil {
		return err
	}
	return svc.repo.DeleteAnnouncement(ctx, id)
}
