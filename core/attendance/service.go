package attendance

import (
	"context"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/auth"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/course"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/student"
)

var (
	// errors
	ErrNotEnrolled = errors.New("student is not enrolled in this course's semester")
	ErrNoStudents  = errors.New("no students enrolled in this course's semester")
)

type (
	Repository interface {
		// UpsertRecords replaces any existing record sharing a
		// (roll_no, course_code, date) key and inserts the rest.
		UpsertRecords(ctx context.Context, recs ...Record) error
		// QueryByStudent returns a student's records, newest date first.
		QueryByStudent(ctx context.Context, rollNo string) ([]Record, error)
		QueryByCourse(ctx context.Context, code string) ([]Record, error)
		QueryByCourseDate(ctx context.Context, code, date string) ([]Record, error)
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

// Mark saves a full attendance sheet for one course and date.
// Admins may mark any course; teachers only their own.
func (svc *Service) Mark(ctx context.Context, sess *auth.Session, ms MarkSheet) ([]Record, error) {
	if err := auth.Authorize(sess, auth.OpAttendanceMark); err != nil {
		return nil, err
	}
	if err := ms.Validate(svc.validate); err != nil {
		return nil, err
	}

	crs, err := svc.courses.GetCourse(ctx, ms.CourseCode)
	if err != nil {
		return nil, err
	}
	if err = requireCourseOwnership(sess, crs, auth.OpAttendanceMark); err != nil {
		return nil, err
	}

	enrolled, err := svc.students.FilterStudents(ctx, student.QueryFilter{Semester: crs.Semester})
	if err != nil {
		return nil, errors.Wrap(err, "listing enrolled students")
	}
	if len(enrolled) == 0 {
		return nil, ErrNoStudents
	}

	byRoll := make(map[string]struct{}, len(enrolled))
	recs := make([]Record, 0, len(enrolled))
	for _, std := range enrolled {
		byRoll[std.RollNo] = struct{}{}
		status, ok := ms.Statuses[std.RollNo]
		if !ok {
			status = StatusAbsent
		}
		recs = append(recs, Record{
			RollNo:     std.RollNo,
			CourseCode: crs.Code,
			Date:       ms.Date,
			Status:     status,
		})
	}
	// a sheet may not smuggle in rolls from outside the semester
	for roll := range ms.Statuses {
		if _, ok := byRoll[roll]; !ok {
			return nil, ErrNotEnrolled
		}
	}

	if err = svc.repo.UpsertRecords(ctx, recs...); err != nil {
		return nil, errors.Wrap(err, "saving attendance sheet")
	}
	return recs, nil
}

// ListByStudent returns a student's history: admins any, students their own.
func (svc *Service) ListByStudent(ctx context.Context, sess *auth.Session, rollNo string) ([]Record, error) {
	rollNo = core.CleanString(rollNo, true /* lower */)
	if err := svc.authorizeStudentRead(sess, rollNo); err != nil {
		return nil, err
	}
	return svc.repo.QueryByStudent(ctx, rollNo)
}

// Summary rolls a student's records up into per-course presence percentages.
func (svc *Service) Summary(ctx context.Context, sess *auth.Session, rollNo string) ([]CourseSummary, error) {
	rollNo = core.CleanString(rollNo, true /* lower */)
	if err := svc.authorizeStudentRead(sess, rollNo); err != nil {
		return nil, err
	}

	recs, err := svc.repo.QueryByStudent(ctx, rollNo)
	if err != nil {
		return nil, err
	}

	byCourse := make(map[string]*CourseSummary)
	for _, rec := range recs {
		sum, ok := byCourse[rec.CourseCode]
		if !ok {
			sum = &CourseSummary{CourseCode: rec.CourseCode}
			if crs, cErr := svc.courses.GetCourse(ctx, rec.CourseCode); cErr == nil {
				sum.CourseName = crs.Name
			}
			byCourse[rec.CourseCode] = sum
		}
		sum.Total++
		if rec.Status == StatusPresent {
			sum.Present++
		}
	}

	sums := make([]CourseSummary, 0, len(byCourse))
	for _, sum := range byCourse {
		if sum.Total > 0 {
			sum.Percent = float64(sum.Present) / float64(sum.Total) * 100
		}
		sums = append(sums, *sum)
	}
	sort.Slice(sums, func(i, j int) bool { return sums[i].CourseCode < sums[j].CourseCode })
	return sums, nil
}

// ListByCourse returns a course's records; admin only. An optional date
// narrows the listing to a single day.
func (svc *Service) ListByCourse(ctx context.Context, sess *auth.Session, code string, date ...string) ([]Record, error) {
	if err := auth.Authorize(sess, auth.OpAttendanceList); err != nil {
		return nil, err
	}
	code = core.CleanString(code, true /* lower */)
	if _, err := svc.courses.GetCourse(ctx, code); err != nil {
		return nil, err
	}
	if len(date) > 0 && date[0] != "" {
		return svc.repo.QueryByCourseDate(ctx, code, date[0])
	}
	return svc.repo.QueryByCourse(ctx, code)
}

func (svc *Service) authorizeStudentRead(sess *auth.Session, rollNo string) error {
	if p, ok := sess.Current(); ok && p.Role == auth.RoleStudent {
		if err := auth.Authorize(sess, auth.OpAttendanceReadSelf); err != nil {
			return err
		}
		if rollNo != p.Username {
			return &auth.DeniedError{Op: auth.OpAttendanceReadSelf, Reason: auth.DeniedInsufficientRole}
		}
		return nil
	}
	return auth.Authorize(sess, auth.OpAttendanceList)
}

// requireCourseOwnership lets admins through and holds teachers to courses
// assigned to them.
func requireCourseOwnership(sess *auth.Session, crs course.Course, op auth.Operation) error {
	p, ok := sess.Current()
	if !ok {
		return &auth.DeniedError{Op: op, Reason: auth.DeniedUnauthenticated}
	}
	if p.Role != auth.RoleTeacher {
		return nil
	}
	if crs.Teacher == nil || *crs.Teacher != p.Username {
		return &auth.DeniedError{Op: op, Reason: auth.DeniedInsufficientRole}
	}
	return nil
}
