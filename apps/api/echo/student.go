package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/attendance"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/marks"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/student"
)

type studentApi struct {
	deps *ServerDeps
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := studentApi{deps: deps}

	sg := g.Group("/students", jwt)
	sg.POST("", api.enroll)
	sg.GET("", api.query)

	dg := sg.Group("/:roll_no")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.GET("/attendance", api.attendance)
	dg.GET("/attendance/summary", api.attendanceSummary)
	dg.GET("/marks", api.marks)
}

func (api *studentApi) enroll(ctx echo.Context) error {
	var data student.NewEnrollment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEnrollment")
	}

	sess := getContextSession(ctx)
	std, err := api.deps.StudentSvc.Enroll(ctx.Request().Context(), sess, data)
	if err != nil {
		return errors.Wrap(err, "enrolling student")
	}
	return ctx.JSON(http.StatusCreated, std)
}

func (api *studentApi) query(ctx echo.Context) error {
	filter := new(student.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}

	sess := getContextSession(ctx)
	students, err := api.deps.StudentSvc.Filter(ctx.Request().Context(), sess, *filter)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	sess := getContextSession(ctx)
	std, err := api.deps.StudentSvc.Get(ctx.Request().Context(), sess, ctx.Param("roll_no"))
	if err != nil {
		return errors.Wrap(err, "finding student")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) update(ctx echo.Context) error {
	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}

	sess := getContextSession(ctx)
	std, err := api.deps.StudentSvc.Update(ctx.Request().Context(), sess, ctx.Param("roll_no"), data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	sess := getContextSession(ctx)
	if err := api.deps.StudentSvc.Delete(ctx.Request().Context(), sess, ctx.Param("roll_no")); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) attendance(ctx echo.Context) error {
	sess := getContextSession(ctx)
	recs, err := api.deps.AttendanceSvc.ListByStudent(ctx.Request().Context(), sess, ctx.Param("roll_no"))
	if err != nil {
		return errors.Wrap(err, "listing attendance")
	}
	if recs == nil {
		recs = []attendance.Record{}
	}
	return ctx.JSON(http.StatusOK, recs)
}

func (api *studentApi) attendanceSummary(ctx echo.Context) error {
	sess := getContextSession(ctx)
	sums, err := api.deps.AttendanceSvc.Summary(ctx.Request().Context(), sess, ctx.Param("roll_no"))
	if err != nil {
		return errors.Wrap(err, "summarizing attendance")
	}
	if sums == nil {
		sums = []attendance.CourseSummary{}
	}
	return ctx.JSON(http.StatusOK, sums)
}

func (api *studentApi) marks(ctx echo.Context) error {
	sess := getContextSession(ctx)
	mks, err := api.deps.MarkSvc.ListByStudent(ctx.Request().Context(), sess, ctx.Param("roll_no"))
	if err != nil {
		return errors.Wrap(err, "listing marks")
	}
	if mks == nil {
		mks = []marks.Mark{}
	}
	return ctx.JSON(http.StatusOK, mks)
}
