package marks

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/auth"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/course"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/student"
)

// ErrNotFound covers lookups of a (student, course) pair with no result yet.
var ErrNotFound = errors.New("mark not found")

type (
	Repository interface {
		// UpsertMark replaces any existing mark for the same
		// (roll_no, course_code) pair and inserts otherwise.
		UpsertMark(ctx context.Context, m Mark) (Mark, error)
		GetMark(ctx context.Context, rollNo, code string) (Mark, error)
		QueryByStudent(ctx context.Context, rollNo string) ([]Mark, error)
		QueryByCourse(ctx context.Context, code string) ([]Mark, error)
	}

	Service struct {
		repo     Repository
		courses  course.Repository
		students student.Repository
		validate *validator.Validate
	}
)

func NewService(validate *validator.Validate, repo Repository, courses course.Repository, students student.Repository) *Service {
	return &Service{repo: repo, courses: courses, students: students, validate: validate}
}

// Upsert records a student's result for a course.
// Admins may grade any course; teachers only their own.
func (svc *Service) Upsert(ctx context.Context, sess *auth.Session, nm NewMark) (Mark, error) {
	if err := auth.Authorize(sess, auth.OpMarksUpsert); err != nil {
		return Mark{}, err
	}
	if err := nm.Validate(svc.validate); err != nil {
		return Mark{}, err
	}

	crs, err := svc.courses.GetCourse(ctx, nm.CourseCode)
	if err != nil {
		return Mark{}, err
	}
	if p, ok := sess.Current(); ok && p.Role == auth.RoleTeacher {
		if crs.Teacher == nil || *crs.Teacher != p.Username {
			return Mark{}, &auth.DeniedError{Op: auth.OpMarksUpsert, Reason: auth.DeniedInsufficientRole}
		}
	}
	if _, err = svc.students.GetStudent(ctx, nm.RollNo); err != nil {
		return Mark{}, err
	}

	grade := nm.Grade
	if grade == "" {
		grade = GradeFor(nm.Score)
	}
	return svc.repo.UpsertMark(ctx, Mark{
		RollNo:     nm.RollNo,
		CourseCode: crs.Code,
		Score:      nm.Score,
		Grade:      grade,
		Remarks:    nm.Remarks,
	})
}

// ListByStudent returns a student's results: admins any, students their own.
func (svc *Service) ListByStudent(ctx context.Context, sess *auth.Session, rollNo string) ([]Mark, error) {
	rollNo = core.CleanString(rollNo, true /* lower */)
	if p, ok := sess.Current(); ok && p.Role == auth.RoleStudent {
		if err := auth.Authorize(sess, auth.OpMarksReadSelf); err != nil {
			return nil, err
		}
		if rollNo != p.Username {
			return nil, &auth.DeniedError{Op: auth.OpMarksReadSelf, Reason: auth.DeniedInsufficientRole}
		}
		return svc.repo.QueryByStudent(ctx, rollNo)
	}
	if err := auth.Authorize(sess, auth.OpMarksList); err != nil {
		return nil, err
	}
	return svc.repo.QueryByStudent(ctx, rollNo)
}

// ListByCourse returns a course's results; admin only.
func (svc *Service) ListByCourse(ctx context.Context, sess *auth.Session, code string) ([]Mark, error) {
	if err := auth.Authorize(sess, auth.OpMarksList); err != nil {
		return nil, err
	}
	code = core.CleanString(code, true /* lower */)
	if _, err := svc.courses.GetCourse(ctx, code); err != nil {
		return nil, err
	}
	return svc.repo.QueryByCourse(ctx, code)
}
