package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/announce"
)

type announcementApi struct {
	deps *ServerDeps
}

func registerAnnouncementAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := announcementApi{deps: deps}

	ag := g.Group("/announcements", jwt)
	ag.POST("", api.create)
	ag.GET("", api.query)
	ag.DELETE("/:id", api.destroy)
}

func (api *announcementApi) create(ctx echo.Context) error {
	var data announce.NewAnnouncement
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAnnouncement")
	}

	sess := getContextSession(ctx)
	ann, err := api.deps.AnnounceSvc.Create(ctx.Request().Context(), sess, data)
	if err != nil {
		return errors.Wrap(err, "creating announcement")
	}
	return ctx.JSON(http.StatusCreated, ann)
}

func (api *announcementApi) query(ctx echo.Context) error {
	sess := getContextSession(ctx)
	anns, err := api.deps.AnnounceSvc.QueryAll(ctx.Request().Context(), sess)
	if err != nil {
		return errors.Wrap(err, "querying announcements")
	}
	if anns == nil {
		anns = []announce.Announcement{}
	}
	return ctx.JSON(http.StatusOK, anns)
}

func (api *announcementApi) destroy(ctx echo.Context) error {
	sess := getContextSession(ctx)
	if err := api.deps.AnnounceSvc.Delete(ctx.Request().Context(), sess, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting announcement")
	}
	return ctx.NoContent(http.StatusNoContent)
}
