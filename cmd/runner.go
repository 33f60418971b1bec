package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/dmrsv-appdata/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	now        func() time.Time
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config // Used instead of reading --config when set
	HTTPClient *http.Client   // When nil the track list client builds one with the configured timeout
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		now:        time.Now,
	}
}

func (r *Runner) command() *cli.Command {
	return rootCommand(r)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){historyCommand, initCommand} {
		commands = append(commands, fn(r))
	}

	return commands
}

// resolveConfig builds the configuration for one invocation.
//
// A --config file that does not exist is only an error when the flag was given explicitly.
// --data-dir and --history override the file; the Runner's own config is never mutated.
func (r *Runner) resolveConfig(cmd *cli.Command) (*shared.Config, error) {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	var config shared.Config
	switch path := cmd.String("config"); {
	case r.config != nil:
		config = *r.config
	case fileExists(path):
		loaded, err := shared.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		r.logger.Debug("loaded config", "path", path)
		config = *loaded
	case cmd.IsSet("config"):
		return nil, fmt.Errorf("%w: %s", shared.ErrMissingConfig, path)
	default:
		config = *shared.DefaultConfig()
	}

	if cmd.IsSet("data-dir") {
		config.Data.Dir = cmd.String("data-dir")
	}
	if cmd.Bool("history") {
		config.History.Enabled = true
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (r *Runner) write(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if !pretty {
		output = append(output, '\n')
	}
	return r.write(output)
}

func (r *Runner) writePlain(format string, args ...any) error {
	return r.write([]byte(fmt.Sprintf(format, args...)))
}

func (r *Runner) writePlainln(format string, args ...any) error {
	return r.writePlain(format+"\n", args...)
}
