package cli

import (
	"github.com/go-barry/todos"
	"github.com/go-barry/todos/core"

	"github.com/urfave/cli/v2"
)

const defaultPort = 8080

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   core.DefaultConfigPath,
		Usage:   "path to the YAML config file",
	}
}

func portFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "port",
		Aliases: []string{"p"},
		Value:   defaultPort,
		Usage:   "port to listen on",
		EnvVars: []string{"TODOS_PORT"},
	}
}

func loadConfig(c *cli.Context) (core.Config, error) {
	return core.LoadConfig(c.String("config"))
}

func runtimeConfig(c *cli.Context, env string) todos.RuntimeConfig {
	return todos.RuntimeConfig{
		Env:        env,
		Port:       c.Int("port"),
		ConfigPath: c.String("config"),
	}
}

var DevCommand = &cli.Command{
	Name:  "dev",
	Usage: "Start the todo server in dev mode (templates re-read per request, live reload)",
	Flags: []cli.Flag{portFlag(), configFlag()},
	Action: func(c *cli.Context) error {
		return todos.Start(runtimeConfig(c, "dev"))
	},
}

var ProdCommand = &cli.Command{
	Name:  "prod",
	Usage: "Start the todo server in production mode (cached templates, minified output)",
	Flags: []cli.Flag{portFlag(), configFlag()},
	Action: func(c *cli.Context) error {
		return todos.Start(runtimeConfig(c, "prod"))
	},
}
