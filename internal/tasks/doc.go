// Package tasks reconciles appdata.json against the upstream track list.
//
// # Core Operations
//
//  1. [Analyze] : Aggregator
//     - Counts tracks per DLC code, keeping the first display name seen
//     - Collects tracks with non-ASCII titles in encounter order, tagged by script
//
//  2. [ReconcileCategories] : Category Reconciler
//     - Appends a placeholder category for each DLC code missing from the document
//     - New codes are processed in ascending order; existing entries are never touched
//
//  3. [FindMissingTitles] : Localization Gap Detector
//     - Reports non-ASCII tracks without an entry in one localization map
//     - Run once per map; results are independent
//
// # Orchestration
//
// [Engine] runs the pipeline once: load tracks from a [TrackSource], load the
// document from an [AppDataStore] (or start from [models.NewAppData]), analyze,
// reconcile, detect gaps for englishTitles and japaneseTitles, and save unless
// the run is a dry run. The returned [Result] carries everything a report needs.
//
// Nothing is written until every analysis step has succeeded. Sources that
// implement [SnapshotSaver] store their copy of the track list in the persist
// phase, before the document.
package tasks
