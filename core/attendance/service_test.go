package attendance_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/attendance"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/auth"
	inmemdb "github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/storage/database/inmem"
	testutil "github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/tests"
)

func setup(t *testing.T) (*attendance.Service, *inmemdb.DB) {
	t.Helper()
	validate, _ := testutil.NewValidator()
	db := inmemdb.Open()
	svc := attendance.NewService(
		validate,
		inmemdb.NewAttendanceRepository(db),
		inmemdb.NewCourseRepository(db),
		inmemdb.NewStudentRepository(db),
	)
	return svc, db
}

func seed(t *testing.T, db *inmemdb.DB) {
	t.Helper()
	stdRepo := inmemdb.NewStudentRepository(db)
	crsRepo := inmemdb.NewCourseRepository(db)
	testutil.CreateStudent(t, stdRepo, "fa22bscs001", "Ada L", 3)
	testutil.CreateStudent(t, stdRepo, "fa22bscs002", "Bob M", 3)
	testutil.CreateStudent(t, stdRepo, "fa20bscs009", "Zed K", 5)
	testutil.CreateCourse(t, crsRepo, "cs301", "Algorithms", 3, "t1")
	testutil.CreateCourse(t, crsRepo, "cs501", "Networks", 5, "t2")
}

func TestService_Mark(t *testing.T) {
	svc, db := setup(t)
	seed(t, db)
	ctx := context.Background()
	teacher := testutil.TeacherSession("t1")

	t.Run("full sheet for own course", func(t *testing.T) {
		recs, err := svc.Mark(ctx, teacher, attendance.MarkSheet{
			CourseCode: "cs301",
			Date:       "2026-03-02",
			Statuses: map[string]attendance.Status{
				"fa22bscs001": attendance.StatusPresent,
				"fa22bscs002": attendance.StatusAbsent,
			},
		})
		assert.NoError(t, err)
		assert.Len(t, recs, 2)
	})

	t.Run("omitted students default to absent", func(t *testing.T) {
		recs, err := svc.Mark(ctx, teacher, attendance.MarkSheet{
			CourseCode: "cs301",
			Date:       "2026-03-03",
			Statuses: map[string]attendance.Status{
				"fa22bscs001": attendance.StatusPresent,
			},
		})
		assert.NoError(t, err)
		assert.Len(t, recs, 2)
		for _, rec := range recs {
			if rec.RollNo == "fa22bscs002" {
				assert.Equal(t, attendance.StatusAbsent, rec.Status)
			}
		}
	})

	t.Run("re-marking overwrites, no duplicate rows", func(t *testing.T) {
		_, err := svc.Mark(ctx, teacher, attendance.MarkSheet{
			CourseCode: "cs301",
			Date:       "2026-03-02",
			Statuses: map[string]attendance.Status{
				"fa22bscs001": attendance.StatusAbsent, // was present
				"fa22bscs002": attendance.StatusAbsent,
			},
		})
		assert.NoError(t, err)

		day, err := svc.ListByCourse(ctx, testutil.AdminSession(), "cs301", "2026-03-02")
		assert.NoError(t, err)
		assert.Len(t, day, 2)
		for _, rec := range day {
			assert.Equal(t, attendance.StatusAbsent, rec.Status)
		}
	})

	t.Run("roll outside the semester rejected", func(t *testing.T) {
		_, err := svc.Mark(ctx, teacher, attendance.MarkSheet{
			CourseCode: "cs301",
			Date:       "2026-03-04",
			Statuses: map[string]attendance.Status{
				"fa20bscs009": attendance.StatusPresent, // semester 5 student
			},
		})
		assert.Equal(t, attendance.ErrNotEnrolled, errors.Cause(err))
	})

	t.Run("teacher cannot mark someone else's course", func(t *testing.T) {
		_, err := svc.Mark(ctx, teacher, attendance.MarkSheet{
			CourseCode: "cs501",
			Date:       "2026-03-02",
			Statuses:   map[string]attendance.Status{"fa20bscs009": attendance.StatusPresent},
		})
		assert.True(t, auth.IsDenied(err))
	})

	t.Run("admin can mark any course", func(t *testing.T) {
		recs, err := svc.Mark(ctx, testutil.AdminSession(), attendance.MarkSheet{
			CourseCode: "cs501",
			Date:       "2026-03-02",
			Statuses:   map[string]attendance.Status{"fa20bscs009": attendance.StatusPresent},
		})
		assert.NoError(t, err)
		assert.Len(t, recs, 1)
	})

	t.Run("student denied", func(t *testing.T) {
		_, err := svc.Mark(ctx, testutil.StudentSession("fa22bscs001"), attendance.MarkSheet{
			CourseCode: "cs301",
			Date:       "2026-03-05",
			Statuses:   map[string]attendance.Status{},
		})
		assert.True(t, auth.IsDenied(err))
	})

	t.Run("bad date rejected", func(t *testing.T) {
		_, err := svc.Mark(ctx, teacher, attendance.MarkSheet{
			CourseCode: "cs301",
			Date:       "03/02/2026",
			Statuses:   map[string]attendance.Status{},
		})
		assert.Error(t, err)
	})
}

func TestService_ListByStudent(t *testing.T) {
	svc, db := setup(t)
	seed(t, db)
	ctx := context.Background()

	_, err := svc.Mark(ctx, testutil.AdminSession(), attendance.MarkSheet{
		CourseCode: "cs301",
		Date:       "2026-03-02",
		Statuses:   map[string]attendance.Status{"fa22bscs001": attendance.StatusPresent},
	})
	assert.NoError(t, err)

	t.Run("student reads their own", func(t *testing.T) {
		recs, err := svc.ListByStudent(ctx, testutil.StudentSession("fa22bscs001"), "fa22bscs001")
		assert.NoError(t, err)
		assert.Len(t, recs, 1)
	})

	t.Run("student denied on someone else", func(t *testing.T) {
		_, err := svc.ListByStudent(ctx, testutil.StudentSession("fa22bscs001"), "fa22bscs002")
		assert.True(t, auth.IsDenied(err))
	})

	t.Run("teacher denied", func(t *testing.T) {
		_, err := svc.ListByStudent(ctx, testutil.TeacherSession("t1"), "fa22bscs001")
		assert.True(t, auth.IsDenied(err))
	})
}

func TestService_Summary(t *testing.T) {
	svc, db := setup(t)
	seed(t, db)
	ctx := context.Background()
	admin := testutil.AdminSession()

	// 3 sittings of cs301: present, absent, present
	sheets := []struct {
		date   string
		status attendance.Status
	}{
		{"2026-03-02", attendance.StatusPresent},
		{"2026-03-03", attendance.StatusAbsent},
		{"2026-03-04", attendance.StatusPresent},
	}
	for _, s := range sheets {
		_, err := svc.Mark(ctx, admin, attendance.MarkSheet{
			CourseCode: "cs301",
			Date:       s.date,
			Statuses:   map[string]attendance.Status{"fa22bscs001": s.status},
		})
		assert.NoError(t, err)
	}

	sums, err := svc.Summary(ctx, testutil.StudentSession("fa22bscs001"), "fa22bscs001")
	assert.NoError(t, err)
	if assert.Len(t, sums, 1) {
		sum := sums[0]
		assert.Equal(t, "cs301", sum.CourseCode)
		assert.Equal(t, "Algorithms", sum.CourseName)
		assert.Equal(t, 2, sum.Present)
		assert.Equal(t, 3, sum.Total)
		assert.InDelta(t, 66.67, sum.Percent, 0.01)
	}
}

func TestService_ListByCourse(t *testing.T) {
	svc, db := setup(t)
	seed(t, db)
	ctx := context.Background()
	admin := testutil.AdminSession()

	_, err := svc.Mark(ctx, admin, attendance.MarkSheet{
		CourseCode: "cs301",
		Date:       "2026-03-02",
		Statuses:   map[string]attendance.Status{"fa22bscs001": attendance.StatusPresent},
	})
	assert.NoError(t, err)

	t.Run("whole course", func(t *testing.T) {
		recs, err := svc.ListByCourse(ctx, admin, "cs301")
		assert.NoError(t, err)
		assert.Len(t, recs, 2)
	})

	t.Run("single day", func(t *testing.T) {
		recs, err := svc.ListByCourse(ctx, admin, "cs301", "2026-03-02")
		assert.NoError(t, err)
		assert.Len(t, recs, 2)
	})

	t.Run("unknown course", func(t *testing.T) {
		_, err := svc.ListByCourse(ctx, admin, "nope")
		assert.Error(t, err)
	})

	t.Run("teacher denied", func(t *testing.T) {
		_, err := svc.ListByCourse(ctx, testutil.TeacherSession("t1"), "cs301")
		assert.True(t, auth.IsDenied(err))
	})
}
