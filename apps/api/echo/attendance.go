package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/attendance"
)

type attendanceApi struct {
	deps *ServerDeps
}

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := attendanceApi{deps: deps}

	ag := g.Group("/attendance", jwt)
	ag.POST("", api.mark)
}

// mark records a whole class sitting at once; re-posting the same
// (course, date) sheet overwrites the previous statuses.
func (api *attendanceApi) mark(ctx echo.Context) error {
	var data attendance.MarkSheet
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkSheet")
	}

	sess := getContextSession(ctx)
	recs, err := api.deps.AttendanceSvc.Mark(ctx.Request().Context(), sess, data)
	if err != nil {
		return errors.Wrap(err, "marking attendance")
	}
	return ctx.JSON(http.StatusCreated, recs)
}
