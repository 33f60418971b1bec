// Package repositories implements persistence for the appdata generator.
//
// Key Implementations:
//   - [AppDataFile] : Loads and atomically saves appdata.json (tasks.AppDataStore)
//   - [TrackListFile] : Reads and writes the AllTrackList.json snapshot
//   - [RunRepository] : SQLite run history with sequence numbers
//
// Sequence numbers provide stable, human-readable ordering (e.g., run #42) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
