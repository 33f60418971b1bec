package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/dmrsv-appdata/internal/formatter"
	"github.com/desertthunder/dmrsv-appdata/internal/models"
	"github.com/desertthunder/dmrsv-appdata/internal/repositories"
	"github.com/desertthunder/dmrsv-appdata/internal/services"
	"github.com/desertthunder/dmrsv-appdata/internal/shared"
	"github.com/desertthunder/dmrsv-appdata/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Generate downloads (or reads) the track list, reconciles appdata.json and prints the report.
func (r *Runner) Generate(ctx context.Context, cmd *cli.Command) error {
	config, err := r.resolveConfig(cmd)
	if err != nil {
		return err
	}

	dryRun := cmd.Bool("dry-run")
	noDownload := cmd.Bool("no-download")

	dataDir, err := filepath.Abs(config.Data.Dir)
	if err != nil {
		dataDir = config.Data.Dir
	}

	snapshot := repositories.NewTrackListFile(config.TrackListPath())
	store := repositories.NewAppDataFile(config.AppDataPath())

	var source tasks.TrackSource
	runSource := models.SourceRemote
	if noDownload {
		runSource = models.SourceLocal
		source = services.NewLocalTrackSource(snapshot, r.logger)
	} else {
		client := services.NewVArchiveClient(config.Source.URL, config.Source.UserAgent, config.Source.Timeout.Duration, r.httpClient)
		source = services.NewRemoteTrackSource(client, snapshot, r.logger)
	}

	r.logger.Info("starting run", "data_dir", dataDir, "source", runSource, "dry_run", dryRun)

	result, err := tasks.NewEngine(source, store, r.logger).Run(ctx, tasks.RunOptions{DryRun: dryRun})
	if err != nil {
		return err
	}

	opts := formatter.ReportOptions{
		DataDir: dataDir,
		DryRun:  dryRun,
		Source:  runSource,
		Path:    store.Path(),
	}

	if cmd.Bool("json") {
		data, err := formatter.SummaryJSON(result, opts)
		if err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		if err := r.write(data); err != nil {
			return err
		}
	} else if err := formatter.RenderReport(r.output, result, opts); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if config.History.Enabled && !dryRun {
		r.recordRun(config, runSource, result)
	}

	return nil
}

// recordRun stores the run summary. The document is already saved, so failures are only logged.
func (r *Runner) recordRun(config *shared.Config, source models.RunSource, result *tasks.Result) {
	path := config.HistoryPath()
	logger := shared.WithLogger(r.logger, "component", "history", "path", path)

	codes := make([]string, 0, len(result.NewCategories))
	for _, c := range result.NewCategories {
		codes = append(codes, c.ID)
	}

	run := models.NewRunRecord(source, models.RunCounts{
		Tracks:          result.Tracks,
		DLCCodes:        len(result.Analysis.DLCs),
		NonASCII:        len(result.Analysis.NonASCII),
		MissingEnglish:  len(result.MissingEnglish),
		MissingJapanese: len(result.MissingJapanese),
	}, codes, result.StartedAt, result.CompletedAt)

	repo, closeDB, err := openHistory(path, logger)
	if err != nil {
		logger.Warn("run history unavailable", "error", err)
		return
	}
	defer closeDB()

	if err := repo.Create(run); err != nil {
		logger.Warn("failed to record run", "error", err)
		return
	}

	logger.Debug("recorded run", "sequence", run.Sequence(), "id", run.ID())
}

// openHistory opens the history database at path, creating it and applying migrations as needed.
func openHistory(path string, logger *log.Logger) (*repositories.RunRepository, func() error, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, nil, err
	}
	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	version, err := shared.SchemaVersion(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	logger.Debug("history database ready", "schema_version", version)

	return repositories.NewRunRepository(db), db.Close, nil
}
