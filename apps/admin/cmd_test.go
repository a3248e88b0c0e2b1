package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/auth"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/user"
	inmemdb "github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/storage/database/inmem"
	testutil "github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/tests"
)

func setup(t *testing.T) *commandLine {
	t.Helper()

	validate, _ := testutil.NewValidator()
	usrRepo := inmemdb.NewUserRepository(inmemdb.Open())

	conf := &core.Config{TestMode: true, Env: "TEST"}
	conf.DefaultAdmin.Username = "admin"
	conf.DefaultAdmin.Password = "admin123"

	return &commandLine{
		conf:    conf,
		usrRepo: usrRepo,
		usrSvc:  user.NewService(validate, usrRepo),
	}
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
}

func Test_commandLine_run_usage(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no args", args: []string{}, wantErr: errHelp},
		{name: "unknown command", args: []string{"frobnicate"}, wantErr: errHelp},
		{name: "resetpassword without username", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "migrate without command", args: []string{"migrate"}, wantErr: errHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(append([]string{"admin"}, tt.args...))
			assert.Equal(t, tt.wantErr, err)
		})
	}
}

func Test_commandLine_createAdmin(t *testing.T) {
	cli := setup(t)

	assert.NoError(t, cli.run([]string{"admin", "createadmin"}))

	usr, err := cli.usrSvc.Authenticate(context.Background(), "admin", "admin123")
	assert.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, usr.Role)

	// idempotent
	assert.NoError(t, cli.run([]string{"admin", "createadmin"}))
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)
	testutil.CreateUser(t, cli.usrRepo, "fa22bscs001", "Ada L", "oldpass1", auth.RoleStudent)

	origReadPassword := readPasswordFunc
	readPasswordFunc = func(int) ([]byte, error) { return []byte("newpass1"), nil }
	defer func() { readPasswordFunc = origReadPassword }()

	err := cli.run([]string{"admin", "resetpassword", "-username", "FA22BSCS001"})
	assert.NoError(t, err)

	usr, err := cli.usrRepo.GetUser(context.Background(), "fa22bscs001")
	assert.NoError(t, err)
	assert.NoError(t, usr.CheckPassword("newpass1"))
	assert.WithinDuration(t, time.Now().UTC(), usr.UpdatedAt, time.Minute)

	t.Run("unknown username", func(t *testing.T) {
		err := cli.run([]string{"admin", "resetpassword", "-username", "ghost"})
		assert.Error(t, err)
	})
}
