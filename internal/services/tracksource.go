package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/dmrsv-appdata/internal/models"
	"github.com/desertthunder/dmrsv-appdata/internal/shared"
)

// TrackListFetcher downloads the raw upstream track list.
// Implemented by [VArchiveClient].
type TrackListFetcher interface {
	FetchTrackList(ctx context.Context) ([]byte, error)
	URL() string
}

// SnapshotWriter persists a downloaded track list.
type SnapshotWriter interface {
	Write(data []byte) error
}

// SnapshotReader reads a previously saved track list.
type SnapshotReader interface {
	Read() ([]byte, error)
}

// RemoteTrackSource downloads the track list and keeps the last body so that
// [RemoteTrackSource.SaveSnapshot] can store it once the run has succeeded.
type RemoteTrackSource struct {
	fetcher  TrackListFetcher
	snapshot SnapshotWriter
	logger   *log.Logger

	raw    []byte
	tracks int
}

// NewRemoteTrackSource creates a RemoteTrackSource. A nil snapshot turns SaveSnapshot into a no-op.
func NewRemoteTrackSource(fetcher TrackListFetcher, snapshot SnapshotWriter, logger *log.Logger) *RemoteTrackSource {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &RemoteTrackSource{
		fetcher:  fetcher,
		snapshot: snapshot,
		logger:   shared.WithLogger(logger, "source", models.SourceRemote),
	}
}

// Tracks implements tasks.TrackSource. Nothing is written to disk.
func (s *RemoteTrackSource) Tracks(ctx context.Context) ([]models.TrackRecord, error) {
	s.logger.Info("downloading track list", "url", s.fetcher.URL())
	s.raw = nil

	raw, err := s.fetcher.FetchTrackList(ctx)
	if err != nil {
		return nil, err
	}

	tracks, err := models.ParseTrackList(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrFetchFailed, err)
	}

	s.raw = shared.StripBOM(raw)
	s.tracks = len(tracks)
	return tracks, nil
}

// SaveSnapshot writes the last downloaded track list re-indented with every upstream field intact.
// It does nothing before a successful [RemoteTrackSource.Tracks] or without a snapshot writer.
func (s *RemoteTrackSource) SaveSnapshot() error {
	if s.snapshot == nil || s.raw == nil {
		return nil
	}

	indented, err := shared.IndentJSON(s.raw)
	if err != nil {
		return fmt.Errorf("failed to format track list snapshot: %w", err)
	}
	if err := s.snapshot.Write(indented); err != nil {
		return fmt.Errorf("failed to save track list snapshot: %w", err)
	}

	s.logger.Info("saved track list snapshot", "tracks", s.tracks)
	return nil
}

// LocalTrackSource reads the track list snapshot from disk.
type LocalTrackSource struct {
	snapshot SnapshotReader
	logger   *log.Logger
}

// NewLocalTrackSource creates a LocalTrackSource.
func NewLocalTrackSource(snapshot SnapshotReader, logger *log.Logger) *LocalTrackSource {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &LocalTrackSource{
		snapshot: snapshot,
		logger:   shared.WithLogger(logger, "source", models.SourceLocal),
	}
}

// Tracks implements tasks.TrackSource.
func (s *LocalTrackSource) Tracks(ctx context.Context) ([]models.TrackRecord, error) {
	raw, err := s.snapshot.Read()
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %v (remove --no-download to fetch it)", shared.ErrMissingTrackList, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read track list snapshot: %w", err)
	}

	tracks, err := models.ParseTrackList(raw)
	if err != nil {
		return nil, err
	}

	s.logger.Info("loaded tracks from existing file", "tracks", len(tracks))
	return tracks, nil
}
