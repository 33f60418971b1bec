// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

const version = "0.1.0"

// rootCommand runs the generator and carries the flags shared with every subcommand.
func rootCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "appdatagen",
		Usage:   "Reconcile appdata.json with the upstream DJMAX RESPECT V track list",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "appdata.toml",
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Aliases: []string{"d"},
				Usage:   "Directory containing AllTrackList.json and appdata.json",
				Value:   "DjmaxRandomSelectorV/DMRSV3_Data",
			},
			&cli.BoolFlag{
				Name:  "no-download",
				Usage: "Use the existing AllTrackList.json instead of downloading",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Analyze and report without writing any files",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the run summary as JSON",
			},
			&cli.BoolFlag{
				Name:  "history",
				Usage: "Record the run in the history database",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Action:   r.Generate,
		Commands: r.register(),
	}
}

// historyCommand lists recorded runs.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recorded runs, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of runs to show",
				Value: 10,
			},
		},
		Action: r.History,
	}
}

// initCommand writes the example configuration file.
func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "init",
		Usage:  "Create a configuration file from the built-in template",
		Action: r.Init,
	}
}
