package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/isis-go/internal/cli/menu"
	"github.com/yndnr/isis-go/internal/cli/prompt"
	"github.com/yndnr/isis-go/internal/infra/buildinfo"
)

// MenuCommand returns the menu command.
func MenuCommand() *cli.Command {
	return &cli.Command{
		Name:   "menu",
		Usage:  "Interactive menu (default when no command is given)",
		Action: menuAction,
	}
}

func menuAction(c *cli.Context) error {
	env := GetEnv(c)
	p := prompt.New(env.Stdin, env.Stdout)

	m := menu.New(p, banner(),
		menu.Item{Key: "1", Label: "Hide file", Action: func(ctx context.Context, p *prompt.Prompter) error {
			return menuHide(ctx, env, p)
		}},
		menu.Item{Key: "2", Label: "Extract file", Action: func(ctx context.Context, p *prompt.Prompter) error {
			return menuExtract(ctx, env, p)
		}},
		menu.Item{Key: "3", Label: "Exit"},
	)
	return m.Run(c.Context)
}

func banner() string {
	return fmt.Sprintf("Isis - LSB steganography (%s)\n", buildinfo.Get().Version)
}

// askPassword asks whether to use a password and reads it if so.
func askPassword(p *prompt.Prompter, question string) ([]byte, error) {
	use, err := p.Confirm(question+" (y/n): ", false)
	if err != nil || !use {
		return nil, err
	}
	return p.Password("Password: ")
}

func menuHide(ctx context.Context, env *Env, p *prompt.Prompter) error {
	var opts hideOptions
	var err error

	if opts.Carrier, err = p.Required("Carrier image path: "); err != nil {
		return err
	}
	if opts.Output, err = p.Required("Output image path: "); err != nil {
		return err
	}
	if opts.File, err = p.Required("File to hide: "); err != nil {
		return err
	}
	if opts.Password, err = askPassword(p, "Protect the file with a password?"); err != nil {
		return err
	}

	res, err := runHide(ctx, env, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(p.Out(), "\nFile hidden in %s (%d planes used).\n\n", res.Output, res.PlanesUsed)
	return nil
}

func menuExtract(ctx context.Context, env *Env, p *prompt.Prompter) error {
	var opts extractOptions
	var err error

	if opts.Image, err = p.Required("Image path: "); err != nil {
		return err
	}
	if opts.Password, err = askPassword(p, "Is the file password protected?"); err != nil {
		return err
	}

	res, err := runExtract(ctx, env, opts)
	if err != nil {
		return err
	}
	if res.Path == "" {
		fmt.Fprintln(p.Out(), "\nNo data found. Are you sure the image carries a hidden file?")
		fmt.Fprintln(p.Out())
		return nil
	}
	fmt.Fprintf(p.Out(), "\nFile extracted to %s\n\n", res.Path)
	return nil
}
