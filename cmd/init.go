package main

import (
	"context"

	"github.com/desertthunder/dmrsv-appdata/internal/shared"
	"github.com/urfave/cli/v3"
)

// Init writes the built-in configuration template to the --config path.
func (r *Runner) Init(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	return r.writePlainln("Created %s", path)
}
