package main

import (
	"os"

	"github.com/charmbracelet/log"
	todoscli "github.com/go-barry/todos/cli"
	clilib "github.com/urfave/cli/v2"
)

func runApp(args []string) error {
	app := &clilib.App{
		Name:  "todos",
		Usage: "A server-rendered todo list",
		Commands: []*clilib.Command{
			todoscli.InitCommand,
			todoscli.DevCommand,
			todoscli.ProdCommand,
			todoscli.BuildCommand,
			todoscli.CleanCommand,
			todoscli.CheckCommand,
			todoscli.InfoCommand,
		},
	}

	return app.Run(args)
}

func main() {
	if err := runApp(os.Args); err != nil {
		log.Fatal(err)
	}
}
