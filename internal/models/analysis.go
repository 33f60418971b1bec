package models

import (
	"cmp"
	"slices"

	"github.com/desertthunder/dmrsv-appdata/internal/script"
)

// DLCSummary describes one DLC code seen in the track list.
type DLCSummary struct {
	Name  string `json:"name"`  // Display name from the first track carrying the code
	Count int    `json:"count"` // Number of tracks carrying the code
}

// DLCAggregate maps a DLC code to its summary.
type DLCAggregate map[string]DLCSummary

// Codes returns the aggregate's codes in ascending lexicographic order.
func (a DLCAggregate) Codes() []string {
	codes := make([]string, 0, len(a))
	for code := range a {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// NonASCIITrack is a track whose title contains non-ASCII characters.
type NonASCIITrack struct {
	ID     TrackID    `json:"id"`
	Name   string     `json:"name"`
	Script script.Tag `json:"script"`
}

// SortByID returns a copy of tracks ordered by ascending track id.
func SortByID(tracks []NonASCIITrack) []NonASCIITrack {
	sorted := slices.Clone(tracks)
	slices.SortStableFunc(sorted, func(a, b NonASCIITrack) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return sorted
}
