// Package services supplies the upstream track list to the reconciliation engine.
//
// # Track Sources
//
// Both sources implement tasks.TrackSource:
//   - [RemoteTrackSource] : Downloads the list with a [VArchiveClient] and saves a snapshot for later offline runs
//   - [LocalTrackSource] : Reads a previously saved snapshot (--no-download)
//
// # V-Archive Client
//
// [VArchiveClient] performs a single GET against the configured endpoint with an
// identifying User-Agent and a fixed client timeout. There is no retry.
//
// # Error Handling
//
// Sources use typed errors from the shared package:
//   - [shared.ErrFetchFailed] : Network failure, timeout, non-2xx status or undecodable body
//   - [shared.ErrTimeout] : Additionally wrapped when the failure was a timeout
//   - [shared.ErrMissingTrackList] : No local snapshot exists
//   - [shared.ErrMalformedDocument] : The snapshot or body is not a track list
package services
