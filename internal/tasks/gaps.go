package tasks

import "github.com/desertthunder/dmrsv-appdata/internal/models"

// FindMissingTitles returns the tracks in nonASCII whose id has no entry in titles,
// keeping the order of nonASCII.
func FindMissingTitles(nonASCII []models.NonASCIITrack, titles models.Titles) []models.NonASCIITrack {
	existing := titles.TrackIDs()
	missing := []models.NonASCIITrack{}

	for _, track := range nonASCII {
		if _, ok := existing[track.ID]; !ok {
			missing = append(missing, track)
		}
	}

	return missing
}
