package feedback

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/auth"
)

var ErrNotFound = errors.New("feedback not found")

// Entry is a student's note to the administration. Students write, only
// admins read.
type Entry struct {
	ID        string    `json:"id" db:"id"`
	RollNo    string    `json:"roll_no" db:"roll_no"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
}

type NewEntry struct {
	Message string `json:"message" validate:"required"`
}

func (ne *NewEntry) Validate(validate *validator.Validate) error {
	ne.Message = core.CleanString(ne.Message)
	return validate.Struct(ne)
}

type (
	Repository interface {
		CreateEntry(ctx context.Context, e Entry) (Entry, error)
		// QueryAllEntries returns entries newest first.
		QueryAllEntries(ctx context.Context) ([]Entry, error)
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(validate *validator.Validate, repo Repository) *Service {
	return &Service{repo: repo, validate: validate}
}

// Create files feedback under the session's own roll number.
func (svc *Service) Create(ctx context.Context, sess *auth.Session, ne NewEntry) (Entry, error) {
	if err := auth.Authorize(sess, auth.OpFeedbackCreate); err != nil {
		return Entry{}, err
	}
	if err := ne.Validate(svc.validate); err != nil {
		return Entry{}, err
	}

	p, _ := sess.Current()
	return svc.repo.CreateEntry(ctx, Entry{
		ID:        uuid.New().String(),
		RollNo:    p.Username,
		Message:   ne.Message,
		CreatedAt: time.Now().UTC(),
	})
}

// QueryAll lists feedback; admin only.
func (svc *Service) QueryAll(ctx context.Context, sess *auth.Session) ([]Entry, error) {
	if err := auth.Authorize(sess, auth.OpFeedbackRead); err != nil {
		return nil, err
	}
	return svc.repo.QueryAllEntries(ctx)
}
