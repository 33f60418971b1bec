package tasks

import (
	"github.com/desertthunder/dmrsv-appdata/internal/models"
	"github.com/desertthunder/dmrsv-appdata/internal/script"
)

// NameConflict records a track whose DLC name disagrees with the name already kept for its code.
type NameConflict struct {
	Code    string         // DLC code
	Kept    string         // Name from the first track with this code
	Seen    string         // Disagreeing name
	TrackID models.TrackID // Track carrying the disagreeing name
}

// Analysis is the output of [Analyze].
type Analysis struct {
	DLCs      models.DLCAggregate    // DLC code to display name and track count
	NonASCII  []models.NonASCIITrack // Tracks with non-ASCII titles, in encounter order
	Conflicts []NameConflict         // DLC name disagreements; first seen wins
}

// Analyze scans the track list once.
//
// Tracks with an empty DLC code add nothing to the aggregate but may still be non-ASCII.
func Analyze(tracks []models.TrackRecord) Analysis {
	a := Analysis{
		DLCs:     make(models.DLCAggregate),
		NonASCII: []models.NonASCIITrack{},
	}

	for _, track := range tracks {
		if track.DLCCode != "" {
			entry, ok := a.DLCs[track.DLCCode]
			if !ok {
				entry = models.DLCSummary{Name: track.DLC}
			} else if entry.Name != track.DLC {
				a.Conflicts = append(a.Conflicts, NameConflict{
					Code:    track.DLCCode,
					Kept:    entry.Name,
					Seen:    track.DLC,
					TrackID: track.ID,
				})
			}
			entry.Count++
			a.DLCs[track.DLCCode] = entry
		}

		if script.IsNonASCII(track.Name) {
			a.NonASCII = append(a.NonASCII, models.NonASCIITrack{
				ID:     track.ID,
				Name:   track.Name,
				Script: script.Classify(track.Name),
			})
		}
	}

	return a
}
