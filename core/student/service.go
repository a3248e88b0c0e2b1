package student

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/auth"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/user"
)

var (
	// errors
	ErrNotFound     = errors.New("student not found")
	ErrRollNoExists = errors.New("a student with this roll number already exists")
	ErrNoSuchUser   = errors.New("no student account exists for this roll number")
)

type (
	Repository interface {
		CheckRollNoUniqueness(ctx context.Context, rollNo string) error
		CreateStudent(ctx context.Context, std Student) (Student, error)
		GetStudent(ctx context.Context, rollNo string) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		FilterStudents(ctx context.Context, filter QueryFilter) ([]Student, error)
		UpdateStudent(ctx context.Context, std Student) (Student, error)
		DeleteStudent(ctx context.Context, rollNo string) error
	}

	Service struct {
		repo     Repository
		users    *user.Service
		validate *validator.Validate
	}
)

func NewService(validate *validator.Validate, repo Repository, users *user.Service) *Service {
	return &Service{repo: repo, users: users, validate: validate}
}

// Enroll provisions the student account and its profile together.
// If the profile write fails the freshly created account is deleted again,
// so no orphaned login is left behind.
func (svc *Service) Enroll(ctx context.Context, sess *auth.Session, ne NewEnrollment) (Student, error) {
	if err := auth.Authorize(sess, auth.OpStudentCreate); err != nil {
		return Student{}, err
	}
	if err := ne.Validate(svc.validate); err != nil {
		return Student{}, err
	}
	if err := svc.checkUniqueness(ctx, ne.RollNo); err != nil {
		return Student{}, err
	}

	usr, err := svc.users.Create(ctx, sess, user.NewUser{
		Username:        ne.RollNo,
		Name:            ne.Name,
		Role:            auth.RoleStudent,
		Password:        ne.Password,
		PasswordConfirm: ne.PasswordConfirm,
	})
	if err != nil {
		return Student{}, err
	}

	std, err := svc.repo.CreateStudent(ctx, Student{
		RollNo:   usr.Username,
		Name:     ne.Name,
		Semester: ne.Semester,
	})
	if err != nil {
		// compensate: drop the account we just created
		if delErr := svc.users.Delete(ctx, sess, usr.Username); delErr != nil {
			return Student{}, errors.Wrapf(err, "creating profile (account %q left orphaned: %v)", usr.Username, delErr)
		}
		return Student{}, errors.Wrap(err, "creating profile")
	}
	return std, nil
}

// Create adds a profile for an existing student account.
func (svc *Service) Create(ctx context.Context, sess *auth.Session, ns NewStudent) (Student, error) {
	if err := auth.Authorize(sess, auth.OpStudentCreate); err != nil {
		return Student{}, err
	}
	if err := ns.Validate(svc.validate); err != nil {
		return Student{}, err
	}

	usr, err := svc.users.GetByUsername(ctx, ns.RollNo)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return Student{}, ErrNoSuchUser
		}
		return Student{}, errors.Wrap(err, "checking student account")
	}
	if !usr.IsStudent() {
		return Student{}, ErrNoSuchUser
	}
	if err = svc.checkUniqueness(ctx, ns.RollNo); err != nil {
		return Student{}, err
	}

	return svc.repo.CreateStudent(ctx, Student{
		RollNo:   ns.RollNo,
		Name:     ns.Name,
		Semester: ns.Semester,
	})
}

// Get returns a profile: admins any, students their own.
func (svc *Service) Get(ctx context.Context, sess *auth.Session, rollNo string) (Student, error) {
	rollNo = core.CleanString(rollNo, true /* lower */)
	if p, ok := sess.Current(); ok && p.Role == auth.RoleStudent {
		if err := auth.Authorize(sess, auth.OpStudentReadSelf); err != nil {
			return Student{}, err
		}
		if rollNo != p.Username {
			return Student{}, &auth.DeniedError{Op: auth.OpStudentReadSelf, Reason: auth.DeniedInsufficientRole}
		}
		return svc.repo.GetStudent(ctx, rollNo)
	}
	if err := auth.Authorize(sess, auth.OpStudentList); err != nil {
		return Student{}, err
	}
	return svc.repo.GetStudent(ctx, rollNo)
}

func (svc *Service) Filter(ctx context.Context, sess *auth.Session, filter QueryFilter) ([]Student, error) {
	if err := auth.Authorize(sess, auth.OpStudentList); err != nil {
		return nil, err
	}
	if filter.IsEmpty() {
		return svc.repo.QueryAllStudents(ctx)
	}
	return svc.repo.FilterStudents(ctx, filter)
}

func (svc *Service) Update(ctx context.Context, sess *auth.Session, rollNo string, us UpdateStudent) (Student, error) {
	if err := auth.Authorize(sess, auth.OpStudentUpdate); err != nil {
		return Student{}, err
	}
	if err := us.Validate(svc.validate); err != nil {
		return Student{}, err
	}

	std, err := svc.repo.GetStudent(ctx, core.CleanString(rollNo, true /* lower */))
	if err != nil {
		return Student{}, err
	}
	if us.Name != "" {
		std.Name = us.Name
	}
	if us.Semester != 0 {
		std.Semester = us.Semester
	}
	return svc.repo.UpdateStudent(ctx, std)
}

func (svc *Service) Delete(ctx context.Context, sess *auth.Session, rollNo string) error {
	if err := auth.Authorize(sess, auth.OpStudentDelete); err != nil {
		return err
	}
	return svc.repo.DeleteStudent(ctx, core.CleanString(rollNo, true /* lower */))
}

func (svc *Service) checkUniqueness(ctx context.Context, rollNo string) error {
	if err := svc.repo.CheckRollNoUniqueness(ctx, rollNo); err != nil {
		if errors.Cause(err) == ErrRollNoExists {
			return core.NewValidationError(err, core.FieldError{Field: "roll_no", Error: err.Error()})
		}
		return err
	}
	return nil
}
