package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/isis-go/internal/core/domain"
	"github.com/yndnr/isis-go/internal/infra/imageio"
)

// CapacityCommand returns the capacity command.
func CapacityCommand() *cli.Command {
	return &cli.Command{
		Name:  "capacity",
		Usage: "Show how much data a carrier image can hold",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "image",
				Aliases:  []string{"i"},
				Usage:    "Carrier image",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "File name that will be stored with the payload",
				Value:   domain.DefaultName,
			},
		},
		Action: capacityAction,
	}
}

func capacityAction(c *cli.Context) error {
	env := GetEnv(c)

	name := c.String("name")
	if len(name) > domain.MaxNameLength {
		return domain.ErrNameTooLong
	}

	grid, err := imageio.Load(c.String("image"))
	if err != nil {
		return err
	}
	return env.Print(env.Service.Capacity(grid, len(name)))
}
