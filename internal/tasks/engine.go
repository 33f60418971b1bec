package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/dmrsv-appdata/internal/models"
	"github.com/desertthunder/dmrsv-appdata/internal/shared"
)

// TrackSource supplies the upstream track list.
type TrackSource interface {
	Tracks(ctx context.Context) ([]models.TrackRecord, error)
}

// SnapshotSaver is implemented by sources that keep a copy of what they loaded.
// The engine calls SaveSnapshot in the persist phase, right before the document is saved.
type SnapshotSaver interface {
	SaveSnapshot() error
}

// AppDataStore loads and persists appdata.json.
//
// Load returns an error wrapping [shared.ErrNotFound] when no document exists yet.
type AppDataStore interface {
	Load() (*models.AppData, error)
	Save(doc *models.AppData) error
}

// RunOptions controls a single [Engine.Run].
type RunOptions struct {
	DryRun bool // Analyze and report without saving the document
}

// Result contains everything produced by one run.
type Result struct {
	Tracks          int                    // Number of upstream tracks
	Analysis        Analysis               // Aggregator output
	NewCategories   []models.Category      // Placeholder categories appended to the document
	MissingEnglish  []models.NonASCIITrack // Non-ASCII tracks without an englishTitles entry
	MissingJapanese []models.NonASCIITrack // Non-ASCII tracks without a japaneseTitles entry
	Document        *models.AppData        // Reconciled document
	Initialized     bool                   // The document did not exist and was started from the template
	Written         bool                   // The document was saved
	StartedAt       time.Time
	CompletedAt     time.Time
}

// Engine runs the reconciliation pipeline.
type Engine struct {
	source TrackSource
	store  AppDataStore
	logger *log.Logger
	now    func() time.Time
}

// NewEngine creates an Engine. A nil logger falls back to [shared.NewLogger].
func NewEngine(source TrackSource, store AppDataStore, logger *log.Logger) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Engine{
		source: source,
		store:  store,
		logger: shared.WithLogger(logger, "component", "engine"),
		now:    time.Now,
	}
}

// Run executes the pipeline once. Any error aborts the run before anything is written.
func (e *Engine) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	result := &Result{StartedAt: e.now()}

	e.logger.Debug("loading tracks", "phase", LoadTracks)
	tracks, err := e.source.Tracks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tracks: %w", err)
	}
	result.Tracks = len(tracks)

	e.logger.Debug("loading appdata", "phase", LoadAppData)
	doc, err := e.store.Load()
	switch {
	case errors.Is(err, shared.ErrNotFound):
		e.logger.Warn("appdata not found, starting from a minimal template", "error", err)
		doc = models.NewAppData()
		result.Initialized = true
	case err != nil:
		return nil, fmt.Errorf("failed to load appdata: %w", err)
	}

	e.logger.Debug("analyzing tracks", "phase", Aggregate, "tracks", len(tracks))
	result.Analysis = Analyze(tracks)
	for _, c := range result.Analysis.Conflicts {
		e.logger.Warn("dlc name differs from first seen, keeping first",
			"code", c.Code, "kept", c.Kept, "seen", c.Seen, "track", c.TrackID)
	}

	e.logger.Debug("reconciling categories", "phase", Reconcile, "codes", len(result.Analysis.DLCs))
	result.NewCategories = ReconcileCategories(doc, result.Analysis.DLCs)

	e.logger.Debug("detecting localization gaps", "phase", DetectGaps, "non_ascii", len(result.Analysis.NonASCII))
	result.MissingEnglish = FindMissingTitles(result.Analysis.NonASCII, doc.EnglishTitles)
	result.MissingJapanese = FindMissingTitles(result.Analysis.NonASCII, doc.JapaneseTitles)
	result.Document = doc

	if opts.DryRun {
		e.logger.Info("dry run, appdata not written")
	} else {
		e.logger.Debug("saving appdata", "phase", Persist)
		if saver, ok := e.source.(SnapshotSaver); ok {
			if err := saver.SaveSnapshot(); err != nil {
				return nil, err
			}
		}
		if err := e.store.Save(doc); err != nil {
			return nil, fmt.Errorf("failed to save appdata: %w", err)
		}
		result.Written = true
	}

	result.CompletedAt = e.now()
	e.logger.Info("run complete",
		"tracks", result.Tracks,
		"new_categories", len(result.NewCategories),
		"missing_english", len(result.MissingEnglish),
		"missing_japanese", len(result.MissingJapanese),
		"written", result.Written,
	)

	return result, nil
}
