package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/marks"
)

type marksApi struct {
	deps *ServerDeps
}

func registerMarksAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := marksApi{deps: deps}

	mg := g.Group("/marks", jwt)
	mg.POST("", api.upsert)
}

func (api *marksApi) upsert(ctx echo.Context) error {
	var data marks.NewMark
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMark")
	}

	sess := getContextSession(ctx)
	mk, err := api.deps.MarkSvc.Upsert(ctx.Request().Context(), sess, data)
	if err != nil {
		return errors.Wrap(err, "upserting mark")
	}
	return ctx.JSON(http.StatusCreated, mk)
}
