package models

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/desertthunder/dmrsv-appdata/internal/shared"
)

// Top-level keys of appdata.json, in the order a fresh document is written.
const (
	KeyCategoryType    = "categoryType"
	KeyBasicCategories = "basicCategories"
	KeyCategories      = "categories"
	KeyPliCategories   = "pliCategories"
	KeyLinkDisc        = "linkDisc"
	KeyEnglishTitles   = "englishTitles"
	KeyJapaneseTitles  = "japaneseTitles"
)

var knownKeys = []string{
	KeyCategoryType,
	KeyBasicCategories,
	KeyCategories,
	KeyPliCategories,
	KeyLinkDisc,
	KeyEnglishTitles,
	KeyJapaneseTitles,
}

var emptyArray = json.RawMessage("[]")

// CategoryType is the index of a category kind in AppData.CategoryType.
type CategoryType int

const (
	Regular CategoryType = iota
	CollabMusicGame
	CollabVariety
	PLI
)

func (t CategoryType) String() string {
	switch t {
	case Regular:
		return "Regular"
	case CollabMusicGame:
		return "CollabMusicGame"
	case CollabVariety:
		return "CollabVariety"
	case PLI:
		return "PLI"
	default:
		return fmt.Sprintf("CategoryType(%d)", int(t))
	}
}

// Category is one selectable DLC category. ID matches [TrackRecord.DLCCode].
//
// A category decoded from a document is re-encoded from its original bytes, so
// curated entries and any fields this type does not model survive unchanged.
type Category struct {
	Name    string       `json:"name"`
	ID      string       `json:"id"`
	SteamID *string      `json:"steamId"`
	Type    CategoryType `json:"type"`

	raw json.RawMessage
}

// NewPlaceholderCategory builds an entry for a newly seen DLC code.
// SteamID and Type are unknown upstream and need manual review.
func NewPlaceholderCategory(code, name string) Category {
	return Category{Name: name, ID: code, SteamID: nil, Type: Regular}
}

// Curated reports whether the category was read from an existing document.
func (c Category) Curated() bool {
	return c.raw != nil
}

// UnmarshalJSON implements [json.Unmarshaler].
func (c *Category) UnmarshalJSON(data []byte) error {
	type plain Category
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Category(p)
	c.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON implements [json.Marshaler].
func (c Category) MarshalJSON() ([]byte, error) {
	if c.raw != nil {
		return c.raw, nil
	}
	type plain Category
	return shared.MarshalJSON(plain(c), false)
}

// AppData is the curated appdata.json document.
//
// PliCategories, LinkDisc and unknown top-level keys are opaque and round-tripped as raw JSON.
// Top-level keys are written back in the order they were read.
type AppData struct {
	CategoryType    []string
	BasicCategories []string
	Categories      []Category
	PliCategories   json.RawMessage
	LinkDisc        json.RawMessage
	EnglishTitles   Titles
	JapaneseTitles  Titles

	order []string
	extra map[string]json.RawMessage
}

// NewAppData returns the minimal template used when no appdata.json exists yet.
func NewAppData() *AppData {
	return &AppData{
		CategoryType:    []string{"Regular", "CollabMusicGame", "CollabVariety", "PLI"},
		BasicCategories: []string{"R", "RV", "P1", "P2", "GG"},
		Categories:      []Category{},
		PliCategories:   emptyArray,
		LinkDisc:        emptyArray,
	}
}

// CategoryIDs returns the set of category ids already present.
func (a *AppData) CategoryIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(a.Categories))
	for _, c := range a.Categories {
		ids[c.ID] = struct{}{}
	}
	return ids
}

// Extra returns the raw value of a top-level key this type does not model.
func (a *AppData) Extra(key string) (json.RawMessage, bool) {
	v, ok := a.extra[key]
	return v, ok
}

// ParseAppData decodes appdata.json, tolerating a leading UTF-8 BOM.
//
// Missing collections default to empty; in particular documents written before
// japaneseTitles existed load with an empty Japanese map.
func ParseAppData(data []byte) (*AppData, error) {
	var a AppData
	if err := json.Unmarshal(shared.StripBOM(data), &a); err != nil {
		return nil, fmt.Errorf("%w: appdata: %v", shared.ErrMalformedDocument, err)
	}
	return &a, nil
}

// UnmarshalJSON implements [json.Unmarshaler].
func (a *AppData) UnmarshalJSON(data []byte) error {
	*a = AppData{}
	err := decodeObject(data, func(key string, value json.RawMessage) error {
		if !slices.Contains(a.order, key) {
			a.order = append(a.order, key)
		}

		switch key {
		case KeyCategoryType:
			return json.Unmarshal(value, &a.CategoryType)
		case KeyBasicCategories:
			return json.Unmarshal(value, &a.BasicCategories)
		case KeyCategories:
			return json.Unmarshal(value, &a.Categories)
		case KeyPliCategories:
			a.PliCategories = value
		case KeyLinkDisc:
			a.LinkDisc = value
		case KeyEnglishTitles:
			return json.Unmarshal(value, &a.EnglishTitles)
		case KeyJapaneseTitles:
			return json.Unmarshal(value, &a.JapaneseTitles)
		default:
			if a.extra == nil {
				a.extra = make(map[string]json.RawMessage)
			}
			a.extra[key] = value
		}
		return nil
	})
	if err != nil {
		return err
	}

	if a.Categories == nil {
		a.Categories = []Category{}
	}
	return nil
}

// MarshalJSON implements [json.Marshaler].
func (a AppData) MarshalJSON() ([]byte, error) {
	order := append([]string(nil), a.order...)
	for _, k := range knownKeys {
		if !slices.Contains(order, k) {
			order = append(order, k)
		}
	}

	var w objectWriter
	for _, key := range order {
		var err error
		switch key {
		case KeyCategoryType:
			err = w.value(key, nonNil(a.CategoryType))
		case KeyBasicCategories:
			err = w.value(key, nonNil(a.BasicCategories))
		case KeyCategories:
			err = w.value(key, nonNil(a.Categories))
		case KeyPliCategories:
			err = w.raw(key, rawOrEmpty(a.PliCategories))
		case KeyLinkDisc:
			err = w.raw(key, rawOrEmpty(a.LinkDisc))
		case KeyEnglishTitles:
			err = w.value(key, a.EnglishTitles)
		case KeyJapaneseTitles:
			err = w.value(key, a.JapaneseTitles)
		default:
			if v, ok := a.extra[key]; ok {
				err = w.raw(key, v)
			}
		}
		if err != nil {
			return nil, err
		}
	}

	return w.bytes(), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func rawOrEmpty(v json.RawMessage) json.RawMessage {
	if len(v) == 0 {
		return emptyArray
	}
	return v
}
