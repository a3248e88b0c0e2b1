package course

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
	ErrNotFound      = errors.New("course not found")
	ErrCodeExists    = errors.New("a course with this code already exists")
	ErrNoSuchTeacher = errors.New("no teacher account exists for this username")
)

// clearTeacher is the UpdateCourse.Teacher sentinel that unassigns a course.
const clearTeacher = "-"

type (
	Repository interface {
		CheckCodeUniqueness(ctx context.Context, code string) error
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		GetCourse(ctx context.Context, code string) (Course, error)
		QueryAllCourses(ctx context.Context) ([]Course, error)
		FilterCourses(ctx context.Context, filter QueryFilter) ([]Course, error)
		UpdateCourse(ctx context.Context, crs Course) (Course, error)
		DeleteCourse(ctx context.Context, code string) error
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

func (svc *Service) Create(ctx context.Context, sess *auth.Session, nc NewCourse) (Course, error) {
	if err := auth.Authorize(sess, auth.OpCourseCreate); err != nil {
		return Course{}, err
	}
	if err := nc.Validate(svc.validate); err != nil {
		return Course{}, err
	}

	var teacher *string
	if nc.Teacher != "" {
		if err := svc.checkTeacher(ctx, nc.Teacher); err != nil {
			return Course{}, err
		}
		teacher = &nc.Teacher
	}
	if err := svc.checkUniqueness(ctx, nc.Code); err != nil {
		return Course{}, err
	}

	return svc.repo.CreateCourse(ctx, Course{
		Code:     nc.Code,
		Name:     nc.Name,
		Semester: nc.Semester,
		Teacher:  teacher,
	})
}

func (svc *Service) Get(ctx context.Context, sess *auth.Session, code string) (Course, error) {
	code = core.CleanString(code, true /* lower */)
	if p, ok := sess.Current(); ok && p.Role == auth.RoleTeacher {
		if err := auth.Authorize(sess, auth.OpCourseReadOwn); err != nil {
			return Course{}, err
		}
		crs, err := svc.repo.GetCourse(ctx, code)
		if err != nil {
			return Course{}, err
		}
		if crs.Teacher == nil || *crs.Teacher != p.Username {
			return Course{}, &auth.DeniedError{Op: auth.OpCourseReadOwn, Reason: auth.DeniedInsufficientRole}
		}
		return crs, nil
	}
	if err := auth.Authorize(sess, auth.OpCourseList); err != nil {
		return Course{}, err
	}
	return svc.repo.GetCourse(ctx, code)
}

// Filter lists courses: admins see everything, teachers their own courses.
func (svc *Service) Filter(ctx context.Context, sess *auth.Session, filter QueryFilter) ([]Course, error) {
	filter.Clean()
	if p, ok := sess.Current(); ok && p.Role == auth.RoleTeacher {
		if err := auth.Authorize(sess, auth.OpCourseReadOwn); err != nil {
			return nil, err
		}
		filter.Teacher = p.Username
		return svc.repo.FilterCourses(ctx, filter)
	}
	if err := auth.Authorize(sess, auth.OpCourseList); err != nil {
		return nil, err
	}
	if filter.IsEmpty() {
		return svc.repo.QueryAllCourses(ctx)
	}
	return svc.repo.FilterCourses(ctx, filter)
}

func (svc *Service) Update(ctx context.Context, sess *auth.Session, code string, uc UpdateCourse) (Course, error) {
	if err := auth.Authorize(sess, auth.OpCourseUpdate); err != nil {
		return Course{}, err
	}
	if err := uc.Validate(svc.validate); err != nil {
		return Course{}, err
	}

	crs, err := svc.repo.GetCourse(ctx, core.CleanString(code, true /* lower */))
	if err != nil {
		return Course{}, err
	}
	if uc.Name != "" {
		crs.Name = uc.Name
	}
	if uc.Semester != 0 {
		crs.Semester = uc.Semester
	}
	switch uc.Teacher {
	case "":
		// untouched
	case clearTeacher:
		crs.Teacher = nil
	default:
		if err = svc.checkTeacher(ctx, uc.Teacher); err != nil {
			return Course{}, err
		}
		crs.Teacher = &uc.Teacher
	}
	return svc.repo.UpdateCourse(ctx, crs)
}

func (svc *Service) Delete(ctx context.Context, sess *auth.Session, code string) error {
	if err := auth.Authorize(sess, auth.OpCourseDelete); err != nil {
		return err
	}
	return svc.repo.DeleteCourse(ctx, core.CleanString(code, true /* lower */))
}

func (svc *Service) checkTeacher(ctx context.Context, uname string) error {
	usr, err := svc.users.GetByUsername(ctx, uname)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return ErrNoSuchTeacher
		}
		return errors.Wrap(err, "checking teacher account")
	}
	if !usr.IsTeacher() {
		return ErrNoSuchTeacher
	}
	return nil
}

func (svc *Service) checkUniqueness(ctx context.Context, code string) error {
	if err := svc.repo.CheckCodeUniqueness(ctx, code); err != nil {
		if errors.Cause(err) == ErrCodeExists {
			return core.NewValidationError(err, core.FieldError{Field: "code", Error: err.Error()})
		}
		return err
	}
	return nil
}
