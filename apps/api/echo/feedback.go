package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/feedback"
)

type feedbackApi struct {
	deps *ServerDeps
}

func registerFeedbackAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := feedbackApi{deps: deps}

	fg := g.Group("/feedback", jwt)
	fg.POST("", api.create)
	fg.GET("", api.query)
}

func (api *feedbackApi) create(ctx echo.Context) error {
	var data feedback.NewEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEntry")
	}

	sess := getContextSession(ctx)
	entry, err := api.deps.FeedbackSvc.Create(ctx.Request().Context(), sess, data)
	if err != nil {
		return errors.Wrap(err, "creating feedback")
	}
	return ctx.JSON(http.StatusCreated, entry)
}

func (api *feedbackApi) query(ctx echo.Context) error {
	sess := getContextSession(ctx)
	entries, err := api.deps.FeedbackSvc.QueryAll(ctx.Request().Context(), sess)
	if err != nil {
		return errors.Wrap(err, "querying feedback")
	}
	if entries == nil {
		entries = []feedback.Entry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}
