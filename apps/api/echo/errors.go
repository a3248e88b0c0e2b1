package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/announce"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/attendance"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/auth"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/course"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/feedback"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/marks"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/student"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/user"
)

var (
	errUnauthorized   = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errRefreshExpired = echo.NewHTTPError(http.StatusForbidden, "refresh has expired")
)

// domainStatus maps domain sentinels to HTTP statuses.
// Anything unmapped is treated as a server error.
func domainStatus(err error) (int, bool) {
	switch err {
	case user.ErrInvalidCredentials:
		return http.StatusBadRequest, true
	case user.ErrNotFound, student.ErrNotFound, course.ErrNotFound,
		marks.ErrNotFound, announce.ErrNotFound, feedback.ErrNotFound:
		return http.StatusNotFound, true
	case user.ErrUsernameExists, student.ErrRollNoExists, course.ErrCodeExists:
		return http.StatusConflict, true
	case student.ErrNoSuchUser, course.ErrNoSuchTeacher,
		attendance.ErrNotEnrolled, attendance.ErrNoStudents:
		return http.StatusBadRequest, true
	}
	return 0, false
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how
// to handle our errors. signalShutdown is called to gracefully stop the Server
// whenever a core shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = origErr.Message
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case *auth.DeniedError:
			if origErr.Reason == auth.DeniedUnauthenticated {
				code = http.StatusUnauthorized
			} else {
				code = http.StatusForbidden
			}
			message = origErr.Error()
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default:
			if status, ok := domainStatus(errors.Cause(err)); ok {
				code = status
				message = errors.Cause(err).Error()
				break
			}

			// any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			var p auth.Principal
			if claims, cErr := getContextClaims(ctx); cErr == nil {
				p.Username = claims.Subject
				p.Name = claims.Name
				p.Role = claims.Role
			}
			logger.Error(msg, errors.Wrap(err, msg), p)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		} else if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
