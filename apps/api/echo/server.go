// Package echoapi exposes the portal's operations over HTTP.
package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/announce"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/attendance"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/course"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/feedback"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/marks"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/student"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/user"
)

type (
	ServerDeps struct {
		Conf   *core.Config
		Logger core.Logger

		UserSvc       *user.Service
		StudentSvc    *student.Service
		CourseSvc     *course.Service
		AttendanceSvc *attendance.Service
		MarkSvc       *marks.Service
		AnnounceSvc   *announce.Service
		FeedbackSvc   *feedback.Service

		Validate   *validator.Validate
		Translator ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
		Shutdown(context.Context) error
		Close() error
	}

	server struct {
		deps       ServerDeps
		app        *echo.Echo
		errCh      chan error
		shutdownCh chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:       deps,
		app:        echo.New(),
		errCh:      make(chan error, 1),
		shutdownCh: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(newJWTConfig(conf))

	registerUserAPI(v1, jwt, &s.deps)
	registerStudentAPI(v1, jwt, &s.deps)
	registerCourseAPI(v1, jwt, &s.deps)
	registerAttendanceAPI(v1, jwt, &s.deps)
	registerMarksAPI(v1, jwt, &s.deps)
	registerAnnouncementAPI(v1, jwt, &s.deps)
	registerFeedbackAPI(v1, jwt, &s.deps)
}

func (s *server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address()); err != nil {
		s.errCh <- err
	}
}

func (s *server) Errors() <-chan error { return s.errCh }

func (s *server) ShutdownSignal() <-chan os.Signal { return s.shutdownCh }

// signalShutdown forces a graceful shutdown; used when an unrecoverable
// error bubbles up through the error handler.
func (s *server) signalShutdown() {
	s.shutdownCh <- syscall.SIGTERM
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the AI Department Portal API!")
}
