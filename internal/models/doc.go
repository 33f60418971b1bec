// Package models defines the documents and derived views used to reconcile appdata.json against the upstream track list.
//
// The package contains three categories of types:
//
// 1. Wire documents: JSON shapes read from and written to disk
//   - [TrackRecord] : One entry of AllTrackList.json
//   - [AppData] : The curated appdata.json document
//   - [Category] : One entry of AppData.Categories
//
// 2. Derived views: Built fresh each run and discarded after reporting
//   - [DLCAggregate] : DLC code to display name and track count
//   - [NonASCIITrack] : A track whose title needs a localization entry
//
// 3. Persistent entities: Database-backed history
//   - [RunRecord] : Summary of one completed reconciliation run
//
// Documents decoded from disk keep whatever they do not model (opaque sections, unknown keys, the exact bytes of existing categories) so that a load/save cycle never drops curated data.
package models
