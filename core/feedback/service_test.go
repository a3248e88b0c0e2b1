package feedback_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/auth"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/feedback"
	inmemdb "github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/storage/database/inmem"
	testutil "github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/tests"
)

func setup(t *testing.T) *feedback.Service {
	t.Helper()
	validate, _ := testutil.NewValidator()
	return feedback.NewService(validate, inmemdb.NewFeedbackRepository(inmemdb.Open()))
}

func TestService_Create(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	t.Run("filed under the session's roll number", func(t *testing.T) {
		entry, err := svc.Create(ctx, testutil.StudentSession("fa22bscs001"), feedback.NewEntry{Message: "The lab AC is broken"})
		assert.NoError(t, err)
		assert.NotEmpty(t, entry.ID)
		assert.Equal(t, "fa22bscs001", entry.RollNo)
	})

	t.Run("only students file feedback", func(t *testing.T) {
		_, err := svc.Create(ctx, testutil.TeacherSession("t1"), feedback.NewEntry{Message: "hi"})
		assert.True(t, auth.IsDenied(err))
		_, err = svc.Create(ctx, testutil.AdminSession(), feedback.NewEntry{Message: "hi"})
		assert.True(t, auth.IsDenied(err))
	})

	t.Run("empty message rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, testutil.StudentSession("fa22bscs001"), feedback.NewEntry{Message: ""})
		assert.Error(t, err)
	})
}

func TestService_QueryAll(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	entry, err := svc.Create(ctx, testutil.StudentSession("fa22bscs001"), feedback.NewEntry{Message: "More library hours please"})
	assert.NoError(t, err)

	t.Run("admin sees filed feedback", func(t *testing.T) {
		entries, err := svc.QueryAll(ctx, testutil.AdminSession())
		assert.NoError(t, err)
		if assert.Len(t, entries, 1) {
			assert.Equal(t, entry.ID, entries[0].ID)
		}
	})

	// the box is write-only for everyone but admins
	t.Run("non-admin readers denied", func(t *testing.T) {
		_, err := svc.QueryAll(ctx, testutil.StudentSession("fa22bscs001"))
		assert.True(t, auth.IsDenied(err))
		_, err = svc.QueryAll(ctx, testutil.TeacherSession("t1"))
		assert.True(t, auth.IsDenied(err))
	})
}
