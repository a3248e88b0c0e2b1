package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) createAdmin() error {
	usr, err := cli.usrSvc.EnsureDefaultAdmin(
		context.Background(), cli.conf.DefaultAdmin.Username, cli.conf.DefaultAdmin.Password,
	)
	if err != nil {
		return err
	}
	fmt.Printf("admin account %q ready\n", usr.Username)
	return nil
}
