package main

import (
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/auth"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/user"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/storage/database"
	pgrepos "github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/storage/database/postgres"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	auth.InitValidators(validate, translator)

	usrRepo := pgrepos.NewUserRepository(db)

	// start CLI
	cli := commandLine{
		conf:    conf,
		db:      db,
		usrRepo: usrRepo,
		usrSvc:  user.NewService(validate, usrRepo),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
