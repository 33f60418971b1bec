package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/dmrsv-appdata/internal/shared"
	tu "github.com/desertthunder/dmrsv-appdata/internal/testing"
)

type memSnapshot struct {
	data     []byte
	readErr  error
	writeErr error
	writes   int
}

func (m *memSnapshot) Read() ([]byte, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	return m.data, nil
}

func (m *memSnapshot) Write(data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.data = data
	m.writes++
	return nil
}

func TestVArchiveClient(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Defaults", func(t *testing.T) {
			c := NewVArchiveClient("", "", 0, nil)

			if c.url != DefaultTrackListURL {
				t.Errorf("expected default url, got %s", c.url)
			}
			if c.userAgent != DefaultUserAgent {
				t.Errorf("expected default user agent, got %s", c.userAgent)
			}
			if c.httpClient.Timeout != DefaultTimeout {
				t.Errorf("expected default timeout, got %v", c.httpClient.Timeout)
			}
		})

		t.Run("With Custom Client", func(t *testing.T) {
			client := &http.Client{}
			c := NewVArchiveClient("http://example.com/songs.json", "ua", time.Second, client)

			if c.httpClient != client {
				t.Error("expected custom client to be used")
			}
			if c.URL() != "http://example.com/songs.json" {
				t.Errorf("unexpected url %s", c.URL())
			}
		})
	})

	t.Run("FetchTrackList", func(t *testing.T) {
		t.Run("Sends Identifying Header", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET method, got %s", r.Method)
				}
				if got := r.Header.Get("User-Agent"); got != "appdatagen-test" {
					t.Errorf("expected User-Agent appdatagen-test, got %s", got)
				}
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, tu.SampleTrackListJSON)
			}))
			defer server.Close()

			body, err := NewVArchiveClient(server.URL, "appdatagen-test", time.Second, nil).FetchTrackList(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if string(body) != tu.SampleTrackListJSON {
				t.Errorf("unexpected body %s", body)
			}
		})

		t.Run("Non-2xx Status", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			}))
			defer server.Close()

			_, err := NewVArchiveClient(server.URL, "", time.Second, nil).FetchTrackList(context.Background())
			if !errors.Is(err, shared.ErrFetchFailed) {
				t.Fatalf("expected ErrFetchFailed, got %v", err)
			}
			if !strings.Contains(err.Error(), "503") {
				t.Errorf("expected status in error, got %v", err)
			}
		})

		t.Run("Failed HTTP Request", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection failed")),
			}

			_, err := NewVArchiveClient("http://example.com", "", 0, client).FetchTrackList(context.Background())
			if !errors.Is(err, shared.ErrFetchFailed) {
				t.Errorf("expected ErrFetchFailed, got %v", err)
			}
			if errors.Is(err, shared.ErrTimeout) {
				t.Error("connection failure should not be reported as timeout")
			}
		})

		t.Run("Failed Response Body Read", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(&http.Response{
					StatusCode: http.StatusOK,
					Body:       &tu.FCloser{},
					Header:     http.Header{},
				}, nil),
			}

			_, err := NewVArchiveClient("http://example.com", "", 0, client).FetchTrackList(context.Background())
			if !errors.Is(err, shared.ErrFetchFailed) || !strings.Contains(err.Error(), "failed to read response") {
				t.Errorf("expected read failure, got %v", err)
			}
		})

		t.Run("Timeout", func(t *testing.T) {
			release := make(chan struct{})
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				<-release
			}))
			defer server.Close()
			defer close(release)

			_, err := NewVArchiveClient(server.URL, "", 50*time.Millisecond, nil).FetchTrackList(context.Background())
			if !errors.Is(err, shared.ErrFetchFailed) || !errors.Is(err, shared.ErrTimeout) {
				t.Errorf("expected ErrFetchFailed and ErrTimeout, got %v", err)
			}
		})

		t.Run("With Canceled Context", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := NewVArchiveClient(server.URL, "", time.Second, nil).FetchTrackList(ctx)
			if !errors.Is(err, shared.ErrFetchFailed) {
				t.Errorf("expected ErrFetchFailed for canceled context, got %v", err)
			}
		})
	})
}

func TestRemoteTrackSource(t *testing.T) {
	newServer := func(body string) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, body)
		}))
	}

	t.Run("Parses Without Writing", func(t *testing.T) {
		server := newServer(tu.SampleTrackListJSON)
		defer server.Close()

		snapshot := &memSnapshot{}
		source := NewRemoteTrackSource(NewVArchiveClient(server.URL, "", time.Second, nil), snapshot, shared.NewLogger(io.Discard))

		tracks, err := source.Tracks(context.Background())
		if err != nil {
			t.Fatalf("Tracks failed: %v", err)
		}
		if len(tracks) != 2 || tracks[1].Name != "테스트" {
			t.Errorf("unexpected tracks %+v", tracks)
		}

		if snapshot.writes != 0 {
			t.Errorf("Tracks must not write the snapshot, got %d writes", snapshot.writes)
		}
	})

	t.Run("SaveSnapshot", func(t *testing.T) {
		server := newServer(tu.SampleTrackListJSON)
		defer server.Close()

		snapshot := &memSnapshot{}
		source := NewRemoteTrackSource(NewVArchiveClient(server.URL, "", time.Second, nil), snapshot, shared.NewLogger(io.Discard))

		if _, err := source.Tracks(context.Background()); err != nil {
			t.Fatalf("Tracks failed: %v", err)
		}
		if err := source.SaveSnapshot(); err != nil {
			t.Fatalf("SaveSnapshot failed: %v", err)
		}

		if snapshot.writes != 1 {
			t.Fatalf("expected one snapshot write, got %d", snapshot.writes)
		}
		saved := string(snapshot.data)
		if !strings.Contains(saved, "\n        \"composer\": \"A\",") {
			t.Errorf("snapshot should keep all fields with 4-space indentation, got %s", saved)
		}
		if !strings.Contains(saved, "테스트") {
			t.Error("snapshot should keep non-ASCII text unescaped")
		}
	})

	t.Run("SaveSnapshot Unescapes Upstream Text", func(t *testing.T) {
		server := newServer(`[{"title":2,"name":"\uD14C\uC2A4\uD2B8","dlcCode":"P1","dlc":"Plus1"}]`)
		defer server.Close()

		snapshot := &memSnapshot{}
		source := NewRemoteTrackSource(NewVArchiveClient(server.URL, "", time.Second, nil), snapshot, shared.NewLogger(io.Discard))

		if _, err := source.Tracks(context.Background()); err != nil {
			t.Fatalf("Tracks failed: %v", err)
		}
		if err := source.SaveSnapshot(); err != nil {
			t.Fatalf("SaveSnapshot failed: %v", err)
		}

		if !strings.Contains(string(snapshot.data), `"name": "테스트"`) {
			t.Errorf("escaped names should be written as literal text, got %s", snapshot.data)
		}
	})

	t.Run("SaveSnapshot Before Tracks", func(t *testing.T) {
		snapshot := &memSnapshot{}
		source := NewRemoteTrackSource(NewVArchiveClient("http://127.0.0.1:1", "", time.Second, nil), snapshot, shared.NewLogger(io.Discard))

		if err := source.SaveSnapshot(); err != nil {
			t.Fatalf("SaveSnapshot failed: %v", err)
		}
		if snapshot.writes != 0 {
			t.Error("nothing was downloaded, nothing should be written")
		}
	})

	t.Run("Nil Snapshot Skips Writing", func(t *testing.T) {
		server := newServer(tu.SampleTrackListJSON)
		defer server.Close()

		source := NewRemoteTrackSource(NewVArchiveClient(server.URL, "", time.Second, nil), nil, shared.NewLogger(io.Discard))
		if _, err := source.Tracks(context.Background()); err != nil {
			t.Fatalf("Tracks failed: %v", err)
		}
		if err := source.SaveSnapshot(); err != nil {
			t.Errorf("SaveSnapshot without writer should be a no-op, got %v", err)
		}
	})

	t.Run("Malformed Body", func(t *testing.T) {
		server := newServer(`<html>maintenance</html>`)
		defer server.Close()

		snapshot := &memSnapshot{}
		source := NewRemoteTrackSource(NewVArchiveClient(server.URL, "", time.Second, nil), snapshot, shared.NewLogger(io.Discard))

		_, err := source.Tracks(context.Background())
		if !errors.Is(err, shared.ErrFetchFailed) || !errors.Is(err, shared.ErrMalformedDocument) {
			t.Errorf("expected fetch and malformed errors, got %v", err)
		}
		if err := source.SaveSnapshot(); err != nil || snapshot.writes != 0 {
			t.Errorf("malformed body must not be saved, writes=%d err=%v", snapshot.writes, err)
		}
	})

	t.Run("Snapshot Write Failure", func(t *testing.T) {
		server := newServer(tu.SampleTrackListJSON)
		defer server.Close()

		snapshot := &memSnapshot{writeErr: errors.New("read-only filesystem")}
		source := NewRemoteTrackSource(NewVArchiveClient(server.URL, "", time.Second, nil), snapshot, shared.NewLogger(io.Discard))

		if _, err := source.Tracks(context.Background()); err != nil {
			t.Fatalf("Tracks failed: %v", err)
		}
		if err := source.SaveSnapshot(); err == nil || !strings.Contains(err.Error(), "read-only") {
			t.Errorf("expected snapshot error, got %v", err)
		}
	})
}

func TestLocalTrackSource(t *testing.T) {
	t.Run("Reads Snapshot", func(t *testing.T) {
		source := NewLocalTrackSource(&memSnapshot{data: []byte(tu.SampleTrackListJSON)}, shared.NewLogger(io.Discard))

		tracks, err := source.Tracks(context.Background())
		if err != nil {
			t.Fatalf("Tracks failed: %v", err)
		}
		if len(tracks) != 2 {
			t.Errorf("expected 2 tracks, got %d", len(tracks))
		}
	})

	t.Run("Missing Snapshot", func(t *testing.T) {
		source := NewLocalTrackSource(&memSnapshot{readErr: fs.ErrNotExist}, shared.NewLogger(io.Discard))

		_, err := source.Tracks(context.Background())
		if !errors.Is(err, shared.ErrMissingTrackList) {
			t.Errorf("expected ErrMissingTrackList, got %v", err)
		}
	})

	t.Run("Malformed Snapshot", func(t *testing.T) {
		source := NewLocalTrackSource(&memSnapshot{data: []byte(`{}`)}, shared.NewLogger(io.Discard))

		_, err := source.Tracks(context.Background())
		if !errors.Is(err, shared.ErrMalformedDocument) {
			t.Errorf("expected ErrMalformedDocument, got %v", err)
		}
	})

	t.Run("Other Read Errors", func(t *testing.T) {
		source := NewLocalTrackSource(&memSnapshot{readErr: fs.ErrPermission}, shared.NewLogger(io.Discard))

		_, err := source.Tracks(context.Background())
		if err == nil || errors.Is(err, shared.ErrMissingTrackList) {
			t.Errorf("expected a generic read error, got %v", err)
		}
	})
}
