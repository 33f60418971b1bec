package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/desertthunder/dmrsv-appdata/internal/shared"
)

// TrackID is the upstream numeric track identifier.
//
// The upstream list encodes it as a number, but a quoted numeric string is accepted too.
type TrackID int

// UnmarshalJSON implements [json.Unmarshaler].
func (id *TrackID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}

	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("invalid track id %s", data)
	}
	*id = TrackID(n)
	return nil
}

// Key returns the id as used in localization map keys.
func (id TrackID) Key() string {
	return strconv.Itoa(int(id))
}

// TrackRecord is one entry of the upstream track list.
//
// Only the fields the reconciler needs are decoded; the snapshot on disk keeps the rest.
type TrackRecord struct {
	ID      TrackID `json:"title"`
	Name    string  `json:"name"`
	DLCCode string  `json:"dlcCode"`
	DLC     string  `json:"dlc"`
}

// ParseTrackList decodes an upstream track list document.
//
// A leading UTF-8 BOM is ignored. Anything other than a JSON array of objects is a [shared.ErrMalformedDocument].
func ParseTrackList(data []byte) ([]TrackRecord, error) {
	data = shared.StripBOM(data)

	var tracks []TrackRecord
	if err := json.Unmarshal(data, &tracks); err != nil {
		return nil, fmt.Errorf("%w: track list: %v", shared.ErrMalformedDocument, err)
	}
	if tracks == nil {
		return nil, fmt.Errorf("%w: track list is null", shared.ErrMalformedDocument)
	}

	return tracks, nil
}
