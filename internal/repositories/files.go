package repositories

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/desertthunder/dmrsv-appdata/internal/models"
	"github.com/desertthunder/dmrsv-appdata/internal/shared"
)

// AppDataFile stores the appdata.json document.
type AppDataFile struct {
	path string
}

// NewAppDataFile creates an AppDataFile for path.
func NewAppDataFile(path string) *AppDataFile {
	return &AppDataFile{path: path}
}

// Path returns the document path.
func (f *AppDataFile) Path() string {
	return f.path
}

// Load reads and decodes the document.
//
// A missing file returns an error wrapping [shared.ErrNotFound]; an unparsable one wraps [shared.ErrMalformedDocument].
func (f *AppDataFile) Load() (*models.AppData, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", shared.ErrNotFound, f.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read appdata: %w", err)
	}

	doc, err := models.ParseAppData(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}
	return doc, nil
}

// Save encodes the document with four-space indentation, leaving non-ASCII text unescaped.
//
// The file is replaced atomically, so a failed save leaves the previous document in place.
func (f *AppDataFile) Save(doc *models.AppData) error {
	data, err := shared.MarshalJSON(doc, true)
	if err != nil {
		return fmt.Errorf("failed to encode appdata: %w", err)
	}
	return writeFileAtomic(f.path, data)
}

// TrackListFile stores the AllTrackList.json snapshot.
type TrackListFile struct {
	path string
}

// NewTrackListFile creates a TrackListFile for path.
func NewTrackListFile(path string) *TrackListFile {
	return &TrackListFile{path: path}
}

// Path returns the snapshot path.
func (f *TrackListFile) Path() string {
	return f.path
}

// Read returns the raw snapshot. A missing file yields an error matching [fs.ErrNotExist].
func (f *TrackListFile) Read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read track list: %w", err)
	}
	return data, nil
}

// Write replaces the snapshot atomically.
func (f *TrackListFile) Write(data []byte) error {
	return writeFileAtomic(f.path, data)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}
