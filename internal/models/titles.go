package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Titles is a localization map from stringified track id to a translated title.
//
// Keys keep the order they had in the document so a rewritten appdata.json diffs cleanly.
type Titles struct {
	keys   []string
	values map[string]string
}

// NewTitles builds a map from alternating key/value pairs.
func NewTitles(pairs ...string) Titles {
	var t Titles
	for i := 0; i+1 < len(pairs); i += 2 {
		t.Set(pairs[i], pairs[i+1])
	}
	return t
}

// Len returns the number of entries.
func (t Titles) Len() int {
	return len(t.keys)
}

// Keys returns the keys in document order.
func (t Titles) Keys() []string {
	return append([]string(nil), t.keys...)
}

// Get returns the title stored under key.
func (t Titles) Get(key string) (string, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Has reports whether key is present.
func (t Titles) Has(key string) bool {
	_, ok := t.values[key]
	return ok
}

// Set stores value under key, appending new keys at the end.
func (t *Titles) Set(key, value string) {
	if t.values == nil {
		t.values = make(map[string]string)
	}
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// TrackIDs returns the set of keys that parse as integer track ids.
// Non-numeric keys are skipped.
func (t Titles) TrackIDs() map[TrackID]struct{} {
	ids := make(map[TrackID]struct{}, len(t.keys))
	for _, k := range t.keys {
		n, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		ids[TrackID(n)] = struct{}{}
	}
	return ids
}

// UnmarshalJSON implements [json.Unmarshaler]. A JSON null decodes to an empty map.
func (t *Titles) UnmarshalJSON(data []byte) error {
	*t = Titles{}
	if string(data) == "null" {
		return nil
	}
	return decodeObject(data, func(key string, value json.RawMessage) error {
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return fmt.Errorf("title must be a string: %w", err)
		}
		t.Set(key, s)
		return nil
	})
}

// MarshalJSON implements [json.Marshaler].
func (t Titles) MarshalJSON() ([]byte, error) {
	var w objectWriter
	for _, k := range t.keys {
		if err := w.value(k, t.values[k]); err != nil {
			return nil, err
		}
	}
	return w.bytes(), nil
}
