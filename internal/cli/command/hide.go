package command

import (
	"context"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/isis-go/internal/core/domain"
	"github.com/yndnr/isis-go/internal/core/service"
	"github.com/yndnr/isis-go/internal/infra/imageio"
	"github.com/yndnr/isis-go/internal/infra/shutdown"
)

// HideCommand returns the hide command.
func HideCommand() *cli.Command {
	return &cli.Command{
		Name:    "hide",
		Aliases: []string{"embed"},
		Usage:   "Hide a file inside a carrier image",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "carrier",
				Aliases:  []string{"c"},
				Usage:    "Carrier image to read",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "output",
				Usage:    "Image to write (lossy extensions are changed to .png)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "File to hide",
				Required: true,
			},
			encryptFlag(),
			passwordFlag(),
		},
		Action: hideAction,
	}
}

func encryptFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "encrypt",
		Aliases: []string{"e"},
		Usage:   "Protect the payload with a password (prompted unless --password is given)",
	}
}

func passwordFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "password",
		Aliases: []string{"p"},
		Usage:   "Password for the payload; implies --encrypt",
		EnvVars: []string{"ISIS_PASSWORD"},
	}
}

// password returns the password from flags, prompting when --encrypt is set
// without one. nil means no encryption.
func password(c *cli.Context, env *Env) ([]byte, error) {
	if pw := c.String("password"); pw != "" {
		return []byte(pw), nil
	}
	if !c.Bool("encrypt") {
		return nil, nil
	}
	return env.Prompter().Password("Password: ")
}

// hideOptions are the inputs of one hide run.
type hideOptions struct {
	Carrier  string
	Output   string
	File     string
	Password []byte
}

// HideResult reports a successful hide.
type HideResult struct {
	Carrier      string `json:"carrier" yaml:"carrier"`
	Output       string `json:"output" yaml:"output"`
	Name         string `json:"name" yaml:"name"`
	PayloadBytes int    `json:"payload_bytes" yaml:"payload_bytes" table:"bytes"`
	StoredBytes  int    `json:"stored_bytes" yaml:"stored_bytes" table:"bytes"`
	BitsWritten  uint64 `json:"bits_written" yaml:"bits_written" table:"count"`
	CapacityBits uint64 `json:"capacity_bits" yaml:"capacity_bits" table:"count"`
	PlanesUsed   int    `json:"planes_used" yaml:"planes_used"`
	Encrypted    bool   `json:"encrypted" yaml:"encrypted"`
}

func hideAction(c *cli.Context) error {
	env := GetEnv(c)

	pw, err := password(c, env)
	if err != nil {
		return err
	}

	ctx, stop := shutdown.WithSignals(c.Context)
	defer stop()

	res, err := runHide(ctx, env, hideOptions{
		Carrier:  c.String("carrier"),
		Output:   c.String("output"),
		File:     c.String("file"),
		Password: pw,
	})
	if err != nil {
		return err
	}
	return env.Print(res)
}

// runHide loads the carrier, embeds the file and saves the result. The
// output is written only after the embed succeeded.
func runHide(ctx context.Context, env *Env, opts hideOptions) (*HideResult, error) {
	grid, err := imageio.Load(opts.Carrier)
	if err != nil {
		return nil, err
	}

	env.Logger.Debug("carrier loaded",
		"path", opts.Carrier,
		"height", grid.Height,
		"width", grid.Width,
		"capacity_bits", grid.Capacity(),
	)

	payload, err := os.ReadFile(opts.File)
	if err != nil {
		return nil, domain.ErrIO.WithDetails(opts.File).WithCause(err)
	}

	out := opts.Output
	lossless, w := imageio.LosslessPath(out)
	switch {
	case w == imageio.WarningRenamed && env.Config.Stego.ForceLossless:
		out = lossless
		env.Warnf("output changed to %s", out)
	case w != imageio.WarningNone:
		env.Warnf("%s: %s", out, imageio.WarningNotPNG)
	}

	resp, err := env.Service.Embed(ctx, &service.EmbedRequest{
		Grid:     grid,
		Name:     filepath.Base(opts.File),
		Payload:  payload,
		Password: opts.Password,
	})
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := imageio.Save(resp.Grid, out); err != nil {
		return nil, err
	}
	env.Logger.Debug("image saved", "path", out)

	return &HideResult{
		Carrier:      opts.Carrier,
		Output:       out,
		Name:         filepath.Base(opts.File),
		PayloadBytes: len(payload),
		StoredBytes:  resp.StoredBytes,
		BitsWritten:  resp.BitsWritten,
		CapacityBits: grid.Capacity(),
		PlanesUsed:   resp.PlanesUsed,
		Encrypted:    resp.Encrypted,
	}, nil
}
