// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/dmrsv-appdata/internal/models"
	"github.com/desertthunder/dmrsv-appdata/internal/shared"
)

// MockTrackSource is a test double for tasks.TrackSource and tasks.SnapshotSaver
type MockTrackSource struct {
	Records     []models.TrackRecord
	Err         error
	Calls       int
	SnapshotErr error
	Snapshots   int
}

func (m *MockTrackSource) Tracks(ctx context.Context) ([]models.TrackRecord, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Records, nil
}

func (m *MockTrackSource) SaveSnapshot() error {
	if m.SnapshotErr != nil {
		return m.SnapshotErr
	}
	m.Snapshots++
	return nil
}

// MemoryStore is an in-memory tasks.AppDataStore.
//
// A nil Doc behaves like a missing appdata.json.
type MemoryStore struct {
	Doc     *models.AppData
	LoadErr error
	SaveErr error
	Saved   []byte
	Saves   int
}

func (m *MemoryStore) Load() (*models.AppData, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Doc == nil {
		return nil, shared.ErrNotFound
	}
	return m.Doc, nil
}

func (m *MemoryStore) Save(doc *models.AppData) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := shared.MarshalJSON(doc, true)
	if err != nil {
		return err
	}
	m.Doc = doc
	m.Saved = data
	m.Saves++
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("File should not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

// SampleTracks returns the two-track list used across package tests:
// one ASCII regular track and one Korean-titled DLC track.
func SampleTracks() []models.TrackRecord {
	return []models.TrackRecord{
		{ID: 1, Name: "Test", DLCCode: "R", DLC: "Regular"},
		{ID: 2, Name: "테스트", DLCCode: "P1", DLC: "Plus1"},
	}
}

// SampleTrackListJSON is [SampleTracks] in upstream wire form, with an extra field.
const SampleTrackListJSON = `[{"title":1,"name":"Test","composer":"A","dlcCode":"R","dlc":"Regular"},` +
	`{"title":2,"name":"테스트","composer":"B","dlcCode":"P1","dlc":"Plus1"}]`
