package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/isis-go/internal/cli/config"
	"github.com/yndnr/isis-go/internal/cli/output"
	"github.com/yndnr/isis-go/internal/cli/prompt"
	"github.com/yndnr/isis-go/internal/core/domain"
	"github.com/yndnr/isis-go/internal/core/service"
	"github.com/yndnr/isis-go/internal/infra/buildinfo"
	"github.com/yndnr/isis-go/internal/infra/shutdown"
	"github.com/yndnr/isis-go/internal/telemetry/logger"
	"github.com/yndnr/isis-go/internal/telemetry/metric"
)

const envKey = "isis.env"

// shutdownTimeout bounds the cleanup hooks run after every command.
const shutdownTimeout = 5 * time.Second

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "isis",
		Usage:   "hide files inside images using least-significant-bit steganography",
		Version: buildinfo.Get().Version,
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			HideCommand(),
			ExtractCommand(),
			CapacityCommand(),
			MenuCommand(),
			ConfigCommand(),
			VersionCommand(),
		},
		Before: setup,
		After:  teardown,
		Action: menuAction,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Config file (default ~/.isis/config.yaml)",
			EnvVars: []string{"ISIS_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.StringFlag{
			Name:  "metrics-file",
			Usage: "Write Prometheus metrics to this file on exit",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Log at debug level",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	ConfigPath  string
	LogLevel    string
	LogFormat   string
	Output      string
	MetricsFile string
	Verbose     bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		ConfigPath:  c.String("config"),
		LogLevel:    c.String("log-level"),
		LogFormat:   c.String("log-format"),
		Output:      c.String("output"),
		MetricsFile: c.String("metrics-file"),
		Verbose:     c.Bool("verbose"),
	}
}

// overrides turns explicitly set flags into config keys.
func (f *GlobalFlags) overrides() map[string]any {
	m := make(map[string]any)
	if f.LogLevel != "" {
		m["log.level"] = f.LogLevel
	}
	if f.LogFormat != "" {
		m["log.format"] = f.LogFormat
	}
	if f.Output != "" {
		m["output.format"] = f.Output
	}
	if f.MetricsFile != "" {
		m["metrics.textfile"] = f.MetricsFile
	}
	if f.Verbose {
		m["log.level"] = "debug"
	}
	return m
}

// Env is what every command needs for one invocation.
type Env struct {
	Config   *config.Config
	Metrics  *metric.Registry
	Service  *service.StegoService
	Shutdown *shutdown.Handler

	// Logger carries OperationID on every line.
	Logger logger.Logger

	// OperationID tags every log line of this invocation.
	OperationID string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Formatter returns the formatter for the configured output format.
func (e *Env) Formatter() output.Formatter {
	f, err := output.ParseFormat(e.Config.Output.Format)
	if err != nil {
		f = output.FormatTable
	}
	return output.NewFormatter(f, false)
}

// Print formats data to Stdout.
func (e *Env) Print(data any) error {
	return e.Formatter().Format(e.Stdout, data)
}

// Warnf prints a warning to Stderr.
func (e *Env) Warnf(format string, args ...any) {
	fmt.Fprintf(e.Stderr, "warning: "+format+"\n", args...)
}

// Prompter returns an interactive prompter on the app's streams.
func (e *Env) Prompter() *prompt.Prompter {
	return prompt.New(e.Stdin, e.Stderr)
}

// setup loads configuration and builds the Env for this invocation.
func setup(c *cli.Context) error {
	flags := ParseGlobalFlags(c)

	cfg, err := config.Load(flags.ConfigPath, flags.overrides())
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	logger.SetDefault(log)

	env := &Env{
		Config:      cfg,
		Metrics:     metric.NewRegistry(),
		Shutdown:    shutdown.NewHandler(shutdownTimeout),
		OperationID: ulid.Make().String(),
		Stdin:       reader(c.App.Reader),
		Stdout:      writer(c.App.Writer, os.Stdout),
		Stderr:      writer(c.App.ErrWriter, os.Stderr),
	}
	env.Logger = log.With("op_id", env.OperationID)
	env.Service = service.NewStegoService(env.Metrics)

	if path := cfg.Metrics.Textfile; path != "" {
		env.Shutdown.OnShutdown(func(context.Context) error {
			return env.Metrics.WriteTextfile(path)
		})
	}

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithLogger(ctx, log)
	ctx = logger.WithOperationID(ctx, env.OperationID)
	c.Context = ctx

	c.App.Metadata[envKey] = env
	env.Logger.Debug("configuration loaded",
		"config", flags.ConfigPath,
		"output", cfg.Output.Format,
	)
	return nil
}

// teardown runs shutdown hooks once the command has finished.
func teardown(c *cli.Context) error {
	env, ok := c.App.Metadata[envKey].(*Env)
	if !ok {
		return nil
	}
	if err := env.Shutdown.Shutdown(); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// GetEnv retrieves the invocation environment set up by the Before hook.
func GetEnv(c *cli.Context) *Env {
	if env, ok := c.App.Metadata[envKey].(*Env); ok {
		return env
	}
	return nil
}

func reader(r io.Reader) io.Reader {
	if r == nil {
		return os.Stdin
	}
	return r
}

func writer(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitCode maps an error returned by App().Run to a process exit code.
// Rejected arguments exit with ExitUsage; everything else is a failure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case domain.IsDomainError(err, domain.ErrInvalidArgument.Code),
		domain.IsDomainError(err, domain.ErrMissingArgument.Code):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// PrintError writes err to w in the form shown to users.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
}
