package announce_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/announce"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/auth"
	inmemdb "github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/storage/database/inmem"
	testutil "github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/tests"
)

func setup(t *testing.T) *announce.Service {
	t.Helper()
	validate, _ := testutil.NewValidator()
	return announce.NewService(validate, inmemdb.NewAnnouncementRepository(inmemdb.Open()))
}

func TestService_Create(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	t.Run("author comes from the session", func(t *testing.T) {
		ann, err := svc.Create(ctx, testutil.TeacherSession("t1"), announce.NewAnnouncement{Message: "Quiz on Friday"})
		assert.NoError(t, err)
		assert.NotEmpty(t, ann.ID)
		assert.Equal(t, "Teacher t1", ann.Author)
		assert.False(t, ann.CreatedAt.IsZero())
	})

	t.Run("students cannot post", func(t *testing.T) {
		_, err := svc.Create(ctx, testutil.StudentSession("fa22bscs001"), announce.NewAnnouncement{Message: "hi"})
		assert.True(t, auth.IsDenied(err))
	})

	t.Run("empty message rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, testutil.AdminSession(), announce.NewAnnouncement{Message: "   "})
		assert.Error(t, err)
	})
}

func TestService_QueryAll(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, testutil.AdminSession(), announce.NewAnnouncement{Message: "first"})
	assert.NoError(t, err)
	second, err := svc.Create(ctx, testutil.AdminSession(), announce.NewAnnouncement{Message: "second"})
	assert.NoError(t, err)

	// every authenticated role can read, newest first
	for _, sess := range []*auth.Session{
		testutil.AdminSession(),
		testutil.TeacherSession("t1"),
		testutil.StudentSession("fa22bscs001"),
	} {
		anns, err := svc.QueryAll(ctx, sess)
		assert.NoError(t, err)
		if assert.Len(t, anns, 2) {
			assert.Equal(t, second.ID, anns[0].ID)
			assert.Equal(t, first.ID, anns[1].ID)
		}
	}

	_, err = svc.QueryAll(ctx, auth.NewSession())
	assert.True(t, auth.IsDenied(err))
}

func TestService_Delete(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	ann, err := svc.Create(ctx, testutil.AdminSession(), announce.NewAnnouncement{Message: "stale"})
	assert.NoError(t, err)

	assert.True(t, auth.IsDenied(svc.Delete(ctx, testutil.StudentSession("fa22bscs001"), ann.ID)))

	assert.NoError(t, svc.Delete(ctx, testutil.AdminSession(), ann.ID))
	anns, err := svc.QueryAll(ctx, testutil.AdminSession())
	assert.NoError(t, err)
	assert.Empty(t, anns)
}
