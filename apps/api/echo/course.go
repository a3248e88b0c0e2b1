package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/attendance"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/course"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/marks"
)

type courseApi struct {
	deps *ServerDeps
}

func registerCourseAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := courseApi{deps: deps}

	cg := g.Group("/courses", jwt)
	cg.POST("", api.create)
	cg.GET("", api.query)

	dg := cg.Group("/:code")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.GET("/attendance", api.attendance)
	dg.GET("/marks", api.marks)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}

	sess := getContextSession(ctx)
	crs, err := api.deps.CourseSvc.Create(ctx.Request().Context(), sess, data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) query(ctx echo.Context) error {
	filter := new(course.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	filter.Clean()

	sess := getContextSession(ctx)
	courses, err := api.deps.CourseSvc.Filter(ctx.Request().Context(), sess, *filter)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	sess := getContextSession(ctx)
	crs, err := api.deps.CourseSvc.Get(ctx.Request().Context(), sess, ctx.Param("code"))
	if err != nil {
		return errors.Wrap(err, "finding course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) update(ctx echo.Context) error {
	var data course.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}

	sess := getContextSession(ctx)
	crs, err := api.deps.CourseSvc.Update(ctx.Request().Context(), sess, ctx.Param("code"), data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	sess := getContextSession(ctx)
	if err := api.deps.CourseSvc.Delete(ctx.Request().Context(), sess, ctx.Param("code")); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *courseApi) attendance(ctx echo.Context) error {
	sess := getContextSession(ctx)

	var recs []attendance.Record
	var err error
	if date := ctx.QueryParam("date"); date != "" {
		recs, err = api.deps.AttendanceSvc.ListByCourse(ctx.Request().Context(), sess, ctx.Param("code"), date)
	} else {
		recs, err = api.deps.AttendanceSvc.ListByCourse(ctx.Request().Context(), sess, ctx.Param("code"))
	}
	if err != nil {
		return errors.Wrap(err, "listing attendance")
	}
	if recs == nil {
		recs = []attendance.Record{}
	}
	return ctx.JSON(http.StatusOK, recs)
}

func (api *courseApi) marks(ctx echo.Context) error {
	sess := getContextSession(ctx)
	mks, err := api.deps.MarkSvc.ListByCourse(ctx.Request().Context(), sess, ctx.Param("code"))
	if err != nil {
		return errors.Wrap(err, "listing marks")
	}
	if mks == nil {
		mks = []marks.Mark{}
	}
	return ctx.JSON(http.StatusOK, mks)
}
