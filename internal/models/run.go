package models

import (
	"fmt"
	"strings"
	"time"
)

// RunSource records where a run read its track list from.
type RunSource string

const (
	SourceRemote RunSource = "remote"
	SourceLocal  RunSource = "local"
)

// RunRecord is the persisted summary of one completed reconciliation run.
type RunRecord struct {
	id              string
	sequence        int
	source          RunSource
	tracks          int
	dlcCodes        int
	nonASCII        int
	newCategories   []string
	missingEnglish  int
	missingJapanese int
	startedAt       time.Time
	completedAt     time.Time
	createdAt       time.Time
}

// RunCounts carries the counters of a run.
type RunCounts struct {
	Tracks          int
	DLCCodes        int
	NonASCII        int
	MissingEnglish  int
	MissingJapanese int
}

// NewRunRecord creates a RunRecord; the id and sequence are assigned by the repository.
func NewRunRecord(source RunSource, counts RunCounts, newCategories []string, startedAt, completedAt time.Time) *RunRecord {
	return &RunRecord{
		source:          source,
		tracks:          counts.Tracks,
		dlcCodes:        counts.DLCCodes,
		nonASCII:        counts.NonASCII,
		newCategories:   append([]string(nil), newCategories...),
		missingEnglish:  counts.MissingEnglish,
		missingJapanese: counts.MissingJapanese,
		startedAt:       startedAt,
		completedAt:     completedAt,
		createdAt:       time.Now(),
	}
}

// LoadRunRecord rebuilds a RunRecord from stored columns.
func LoadRunRecord(id string, sequence int, source RunSource, counts RunCounts, newCategories string, startedAt, completedAt, createdAt time.Time) *RunRecord {
	r := NewRunRecord(source, counts, splitCodes(newCategories), startedAt, completedAt)
	r.id = id
	r.sequence = sequence
	r.createdAt = createdAt
	return r
}

func (r *RunRecord) ID() string {
	return r.id
}

func (r *RunRecord) Sequence() int {
	return r.sequence
}

func (r *RunRecord) Source() RunSource {
	return r.source
}

func (r *RunRecord) Counts() RunCounts {
	return RunCounts{
		Tracks:          r.tracks,
		DLCCodes:        r.dlcCodes,
		NonASCII:        r.nonASCII,
		MissingEnglish:  r.missingEnglish,
		MissingJapanese: r.missingJapanese,
	}
}

func (r *RunRecord) NewCategories() []string {
	return append([]string(nil), r.newCategories...)
}

func (r *RunRecord) StartedAt() time.Time {
	return r.startedAt
}

func (r *RunRecord) CompletedAt() time.Time {
	return r.completedAt
}

func (r *RunRecord) CreatedAt() time.Time {
	return r.createdAt
}

func (r *RunRecord) Duration() time.Duration {
	return r.completedAt.Sub(r.startedAt)
}

func (r *RunRecord) JoinedCategories() string {
	return strings.Join(r.newCategories, ",")
}

func (r *RunRecord) SetID(id string) {
	r.id = id
}

func (r *RunRecord) SetSequence(seq int) {
	r.sequence = seq
}

// Validate checks the record before it is written.
func (r *RunRecord) Validate() error {
	if r.source != SourceRemote && r.source != SourceLocal {
		return fmt.Errorf("invalid run source %q", r.source)
	}
	if r.tracks < 0 || r.dlcCodes < 0 || r.nonASCII < 0 || r.missingEnglish < 0 || r.missingJapanese < 0 {
		return fmt.Errorf("run counts must not be negative")
	}
	if r.startedAt.IsZero() || r.completedAt.IsZero() {
		return fmt.Errorf("run timestamps are required")
	}
	if r.completedAt.Before(r.startedAt) {
		return fmt.Errorf("run completed before it started")
	}
	return nil
}

func splitCodes(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
