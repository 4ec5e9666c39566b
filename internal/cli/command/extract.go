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

// ExtractCommand returns the extract command.
func ExtractCommand() *cli.Command {
	return &cli.Command{
		Name:  "extract",
		Usage: "Recover a file hidden in an image",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "image",
				Aliases:  []string{"i"},
				Usage:    "Image carrying the hidden file",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Directory to write the file to (default: the image's directory)",
			},
			encryptFlag(),
			passwordFlag(),
		},
		Action: extractAction,
	}
}

type extractOptions struct {
	Image    string
	Dir      string
	Password []byte
}

// ExtractResult reports what was recovered. Path is empty when the carrier
// held nothing.
type ExtractResult struct {
	Image        string `json:"image" yaml:"image"`
	Name         string `json:"name" yaml:"name"`
	Path         string `json:"path" yaml:"path"`
	PayloadBytes int    `json:"payload_bytes" yaml:"payload_bytes" table:"bytes"`
	StoredBytes  int    `json:"stored_bytes" yaml:"stored_bytes" table:"bytes"`
	Encrypted    bool   `json:"encrypted" yaml:"encrypted"`
}

func extractAction(c *cli.Context) error {
	env := GetEnv(c)

	pw, err := password(c, env)
	if err != nil {
		return err
	}

	ctx, stop := shutdown.WithSignals(c.Context)
	defer stop()

	res, err := runExtract(ctx, env, extractOptions{
		Image:    c.String("image"),
		Dir:      c.String("dir"),
		Password: pw,
	})
	if err != nil {
		return err
	}
	return env.Print(res)
}

// runExtract decodes the record in the image and writes its payload as
// dir/<base name>. An empty payload is reported and nothing is written.
func runExtract(ctx context.Context, env *Env, opts extractOptions) (*ExtractResult, error) {
	if _, w := imageio.LosslessPath(opts.Image); w == imageio.WarningRenamed {
		env.Warnf("%s is not a lossless image; hidden data may be corrupted", opts.Image)
	}

	grid, err := imageio.Load(opts.Image)
	if err != nil {
		return nil, err
	}

	resp, err := env.Service.Extract(ctx, &service.ExtractRequest{
		Grid:     grid,
		Password: opts.Password,
	})
	if err != nil {
		return nil, err
	}

	rec := resp.Record
	res := &ExtractResult{
		Image:        opts.Image,
		Name:         rec.Name,
		PayloadBytes: len(rec.Payload),
		StoredBytes:  resp.StoredBytes,
		Encrypted:    resp.Encrypted,
	}
	if len(rec.Payload) == 0 {
		env.Warnf("nothing embedded in %s", opts.Image)
		return res, nil
	}

	dir := opts.Dir
	if dir == "" {
		dir = filepath.Dir(opts.Image)
	}
	res.Path = filepath.Join(dir, outputName(rec.Name, env.Config.Stego.FallbackName))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.WriteFile(res.Path, rec.Payload, 0o644); err != nil {
		return nil, domain.ErrIO.WithDetails(res.Path).WithCause(err)
	}
	env.Logger.Debug("payload written", "path", res.Path, "bytes", len(rec.Payload))
	return res, nil
}

// outputName reduces a stored name to a plain file name so a crafted record
// cannot write outside the target directory.
func outputName(name, fallback string) string {
	base := filepath.Base(filepath.Clean("/" + filepath.FromSlash(name)))
	if base == "/" || base == "." || base == string(filepath.Separator) {
		return fallback
	}
	return base
}
