package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/apps/api/echo"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/announce"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/attendance"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/auth"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/course"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/feedback"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/marks"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/student"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/user"
	logsvc "github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/services/logger"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/storage/database"
	pgrepos "github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/storage/database/postgres"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error("failed to close database", err)
		}
	}()

	// set up validation
	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	auth.InitValidators(validate, translator)

	// set up services
	usrRepo := pgrepos.NewUserRepository(db)
	stdRepo := pgrepos.NewStudentRepository(db)
	crsRepo := pgrepos.NewCourseRepository(db)

	usrSvc := user.NewService(validate, usrRepo)
	stdSvc := student.NewService(validate, stdRepo, usrSvc)
	crsSvc := course.NewService(validate, crsRepo, usrSvc)
	attSvc := attendance.NewService(validate, pgrepos.NewAttendanceRepository(db), crsRepo, stdRepo)
	mrkSvc := marks.NewService(validate, pgrepos.NewMarkRepository(db), crsRepo, stdRepo)
	annSvc := announce.NewService(validate, pgrepos.NewAnnouncementRepository(db))
	fbkSvc := feedback.NewService(validate, pgrepos.NewFeedbackRepository(db))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	if _, err = usrSvc.EnsureDefaultAdmin(
		context.Background(), conf.DefaultAdmin.Username, conf.DefaultAdmin.Password,
	); err != nil {
		logger.Fatal(fmt.Sprintf("ensuring default admin: %v", err), err)
	}

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			UserSvc:       usrSvc,
			StudentSvc:    stdSvc,
			CourseSvc:     crsSvc,
			AttendanceSvc: attSvc,
			MarkSvc:       mrkSvc,
			AnnounceSvc:   annSvc,
			FeedbackSvc:   fbkSvc,
			Validate:      validate,
			Translator:    translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
