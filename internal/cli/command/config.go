package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/isis-go/internal/cli/config"
	"github.com/yndnr/isis-go/internal/cli/output"
	"github.com/yndnr/isis-go/internal/core/domain"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: configShow,
			},
			{
				Name:  "init",
				Usage: "Write the default configuration file",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: configInit,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	env := GetEnv(c)

	// A flat table hides nested sections, so table mode prints YAML.
	f := env.Formatter()
	if _, ok := f.(*output.TableFormatter); ok {
		f = &output.YAMLFormatter{}
	}
	return f.Format(env.Stdout, env.Config)
}

func configInit(c *cli.Context) error {
	env := GetEnv(c)

	path := ParseGlobalFlags(c).ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return domain.ErrInvalidArgument.WithDetails(path + " already exists (use --force to overwrite)")
	}

	if err := config.Save(config.Default(), path); err != nil {
		return domain.ErrIO.WithDetails(path).WithCause(err)
	}
	fmt.Fprintf(env.Stdout, "wrote %s\n", path)
	return nil
}
