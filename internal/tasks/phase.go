package tasks

// Phase names a stage of a reconciliation run. Used as a structured log field.
type Phase int

const (
	LoadTracks Phase = iota
	LoadAppData
	Aggregate
	Reconcile
	DetectGaps
	Persist
)

func (p Phase) String() string {
	switch p {
	case LoadTracks:
		return "load_tracks"
	case LoadAppData:
		return "load_appdata"
	case Aggregate:
		return "aggregate"
	case Reconcile:
		return "reconcile"
	case DetectGaps:
		return "detect_gaps"
	case Persist:
		return "persist"
	default:
		return "unknown"
	}
}
