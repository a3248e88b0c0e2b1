package student_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/auth"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/student"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/user"
	inmemdb "github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/storage/database/inmem"
	testutil "github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/tests"
)

func setup(t *testing.T) (*student.Service, student.Repository, *user.Service) {
	t.Helper()
	validate, _ := testutil.NewValidator()
	db := inmemdb.Open()
	usrSvc := user.NewService(validate, inmemdb.NewUserRepository(db))
	repo := inmemdb.NewStudentRepository(db)
	return student.NewService(validate, repo, usrSvc), repo, usrSvc
}

func TestService_Enroll(t *testing.T) {
	svc, _, usrSvc := setup(t)
	ctx := context.Background()
	admin := testutil.AdminSession()

	ne := student.NewEnrollment{
		RollNo:          "fa22bscs001",
		Name:            "Ada L",
		Semester:        3,
		Password:        "s3cr3t!",
		PasswordConfirm: "s3cr3t!",
	}
	std, err := svc.Enroll(ctx, admin, ne)
	assert.NoError(t, err)
	assert.Equal(t, "fa22bscs001", std.RollNo)
	assert.Equal(t, 3, std.Semester)

	// the account is created alongside the profile and can log in
	usr, err := usrSvc.Authenticate(ctx, "fa22bscs001", "s3cr3t!")
	assert.NoError(t, err)
	assert.True(t, usr.IsStudent())

	t.Run("duplicate roll number", func(t *testing.T) {
		_, err := svc.Enroll(ctx, admin, ne)
		assert.Error(t, err)
	})

	t.Run("semester out of range", func(t *testing.T) {
		bad := ne
		bad.RollNo = "fa22bscs002"
		bad.Semester = 9
		_, err := svc.Enroll(ctx, admin, bad)
		assert.Error(t, err)
	})

	t.Run("denied for non-admins", func(t *testing.T) {
		_, err := svc.Enroll(ctx, testutil.TeacherSession("t1"), ne)
		assert.True(t, auth.IsDenied(err))
	})
}

// failingStudentRepo rejects every profile write.
type failingStudentRepo struct {
	student.Repository
}

func (failingStudentRepo) CreateStudent(context.Context, student.Student) (student.Student, error) {
	return student.Student{}, errors.New("disk on fire")
}

func TestService_Enroll_compensation(t *testing.T) {
	validate, _ := testutil.NewValidator()
	db := inmemdb.Open()
	usrSvc := user.NewService(validate, inmemdb.NewUserRepository(db))
	repo := failingStudentRepo{inmemdb.NewStudentRepository(db)}
	svc := student.NewService(validate, repo, usrSvc)

	ctx := context.Background()
	_, err := svc.Enroll(ctx, testutil.AdminSession(), student.NewEnrollment{
		RollNo:          "fa22bscs001",
		Name:            "Ada L",
		Semester:        3,
		Password:        "s3cr3t!",
		PasswordConfirm: "s3cr3t!",
	})
	assert.Error(t, err)

	// the half-created account was rolled back
	_, err = usrSvc.GetByUsername(ctx, "fa22bscs001")
	assert.Equal(t, user.ErrNotFound, errors.Cause(err))
}

func TestService_Create(t *testing.T) {
	svc, _, usrSvc := setup(t)
	ctx := context.Background()
	admin := testutil.AdminSession()

	t.Run("requires an existing student account", func(t *testing.T) {
		_, err := svc.Create(ctx, admin, student.NewStudent{RollNo: "ghost01", Name: "Ghost", Semester: 1})
		assert.Equal(t, student.ErrNoSuchUser, errors.Cause(err))
	})

	t.Run("rejects non-student accounts", func(t *testing.T) {
		_, err := usrSvc.Create(ctx, admin, user.NewUser{
			Username: "t1", Name: "Teacher One", Role: auth.RoleTeacher,
			Password: "s3cr3t!", PasswordConfirm: "s3cr3t!",
		})
		assert.NoError(t, err)
		_, err = svc.Create(ctx, admin, student.NewStudent{RollNo: "t1", Name: "Teacher One", Semester: 1})
		assert.Equal(t, student.ErrNoSuchUser, errors.Cause(err))
	})

	t.Run("profile for existing account", func(t *testing.T) {
		_, err := usrSvc.Create(ctx, admin, user.NewUser{
			Username: "fa22bscs003", Name: "Chuck", Role: auth.RoleStudent,
			Password: "s3cr3t!", PasswordConfirm: "s3cr3t!",
		})
		assert.NoError(t, err)
		std, err := svc.Create(ctx, admin, student.NewStudent{RollNo: "fa22bscs003", Name: "Chuck", Semester: 2})
		assert.NoError(t, err)
		assert.Equal(t, "fa22bscs003", std.RollNo)
	})
}

func TestService_Get(t *testing.T) {
	svc, repo, _ := setup(t)
	ctx := context.Background()
	testutil.CreateStudent(t, repo, "fa22bscs001", "Ada L", 3)
	testutil.CreateStudent(t, repo, "fa22bscs002", "Bob M", 3)

	t.Run("admin reads any", func(t *testing.T) {
		std, err := svc.Get(ctx, testutil.AdminSession(), "fa22bscs001")
		assert.NoError(t, err)
		assert.Equal(t, "Ada L", std.Name)
	})

	t.Run("student reads self only", func(t *testing.T) {
		sess := testutil.StudentSession("fa22bscs001")
		std, err := svc.Get(ctx, sess, "fa22bscs001")
		assert.NoError(t, err)
		assert.Equal(t, "Ada L", std.Name)

		_, err = svc.Get(ctx, sess, "fa22bscs002")
		assert.True(t, auth.IsDenied(err))
	})

	t.Run("teacher denied", func(t *testing.T) {
		_, err := svc.Get(ctx, testutil.TeacherSession("t1"), "fa22bscs001")
		assert.True(t, auth.IsDenied(err))
	})

	t.Run("unknown roll", func(t *testing.T) {
		_, err := svc.Get(ctx, testutil.AdminSession(), "nope")
		assert.Equal(t, student.ErrNotFound, errors.Cause(err))
	})
}

func TestService_Filter(t *testing.T) {
	svc, repo, _ := setup(t)
	ctx := context.Background()
	testutil.CreateStudent(t, repo, "fa22bscs001", "Ada L", 3)
	testutil.CreateStudent(t, repo, "fa22bscs002", "Bob M", 5)

	all, err := svc.Filter(ctx, testutil.AdminSession(), student.QueryFilter{})
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	third, err := svc.Filter(ctx, testutil.AdminSession(), student.QueryFilter{Semester: 3})
	assert.NoError(t, err)
	if assert.Len(t, third, 1) {
		assert.Equal(t, "fa22bscs001", third[0].RollNo)
	}

	_, err = svc.Filter(ctx, testutil.StudentSession("fa22bscs001"), student.QueryFilter{})
	assert.True(t, auth.IsDenied(err))
}

func TestService_Update(t *testing.T) {
	svc, repo, _ := setup(t)
	ctx := context.Background()
	testutil.CreateStudent(t, repo, "fa22bscs001", "Ada L", 3)

	std, err := svc.Update(ctx, testutil.AdminSession(), "fa22bscs001", student.UpdateStudent{Semester: 4})
	assert.NoError(t, err)
	assert.Equal(t, 4, std.Semester)
	assert.Equal(t, "Ada L", std.Name) // untouched

	_, err = svc.Update(ctx, testutil.AdminSession(), "fa22bscs001", student.UpdateStudent{Semester: 12})
	assert.Error(t, err)
}
