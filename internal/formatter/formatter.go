// package formatter renders run results as a console report or a JSON summary
package formatter

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/desertthunder/dmrsv-appdata/internal/models"
	"github.com/desertthunder/dmrsv-appdata/internal/shared"
	"github.com/desertthunder/dmrsv-appdata/internal/tasks"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	manualReview    = "[verify steamId & type manually]"
)

var rule = strings.Repeat("=", 60)

// ReportOptions describes the run being reported.
type ReportOptions struct {
	DataDir   string
	DryRun    bool
	Source    models.RunSource
	Path      string    // Path of the saved document, shown when it was written
	Timestamp time.Time // Defaults to the run start time
}

// RenderReport writes the human-readable report for result to w.
//
// Gap lists are sorted by track id; the closing stubs can be pasted into appdata.json after filling in the titles.
func RenderReport(w io.Writer, result *tasks.Result, opts ReportOptions) error {
	p := NewPalette(w)
	ts := opts.Timestamp
	if ts.IsZero() {
		ts = result.StartedAt
	}

	missingEN := models.SortByID(result.MissingEnglish)
	missingJA := models.SortByID(result.MissingJapanese)

	var buf bytes.Buffer
	line := func(format string, args ...any) {
		fmt.Fprintf(&buf, format+"\n", args...)
	}

	line("%s", p.Title(rule))
	line("%s", p.Title("DJMAX Random Selector V - AppData Generator"))
	line("Timestamp : %s", ts.Format(timestampLayout))
	line("Data dir  : %s", opts.DataDir)
	if opts.Source != "" {
		line("Source    : %s", opts.Source)
	}
	if opts.DryRun {
		line("%s", p.Warn("[DRY RUN - no files will be written]"))
	}
	line("%s", p.Title(rule))
	line("")

	line("Analyzing tracks ...")
	line("  Total tracks      : %d", result.Tracks)
	line("  DLC codes found   : %d", len(result.Analysis.DLCs))
	line("  Non-ASCII names   : %d", len(result.Analysis.NonASCII))
	line("")

	line("Checking for new DLC categories ...")
	if len(result.NewCategories) == 0 {
		line("  %s", p.OK("No new categories."))
	}
	for _, c := range result.NewCategories {
		line("  + %-8s  name=%q  type=%d  %s", c.ID, c.Name, int(c.Type), p.Warn(manualReview))
	}
	line("")

	writeGaps(&buf, p, models.KeyEnglishTitles, missingEN)
	writeGaps(&buf, p, models.KeyJapaneseTitles, missingJA)

	if result.Written && opts.Path != "" {
		line("Saved %s", opts.Path)
		line("")
	}

	line("%s", p.Title(rule))
	line("%s", p.Title("Summary"))
	line("  New categories added        : %d", len(result.NewCategories))
	line("  Missing englishTitles       : %d", len(missingEN))
	line("  Missing japaneseTitles      : %d", len(missingJA))
	writeStubs(&buf, p, models.KeyEnglishTitles, "English", missingEN)
	writeStubs(&buf, p, models.KeyJapaneseTitles, "Japanese", missingJA)
	line("%s", p.Title(rule))

	_, err := w.Write(buf.Bytes())
	return err
}

func writeGaps(buf *bytes.Buffer, p *Palette, key string, missing []models.NonASCIITrack) {
	fmt.Fprintf(buf, "Checking for missing %s entries ...\n", key)
	if len(missing) == 0 {
		fmt.Fprintf(buf, "  %s\n\n", p.OK("All non-ASCII tracks are covered in "+key+"."))
		return
	}

	fmt.Fprintf(buf, "  %s\n", p.Warn(fmt.Sprintf("%d track(s) need an entry in %s:", len(missing), key)))
	for _, t := range missing {
		fmt.Fprintf(buf, "    [%s] ID %4d  %s\n", t.Script, t.ID, t.Name)
	}
	buf.WriteString("\n")
}

func writeStubs(buf *bytes.Buffer, p *Palette, key, language string, missing []models.NonASCIITrack) {
	if len(missing) == 0 {
		return
	}

	fmt.Fprintf(buf, "\n  %s\n", p.Warn("ACTION REQUIRED: add the following to "+key+" in appdata.json"))
	fmt.Fprintf(buf, "  %s\n\n", p.Help("(key = track ID as string, value = "+language+" title for navigation)"))
	for _, t := range missing {
		fmt.Fprintf(buf, "    %q: \"\",  // [%s] %s\n", t.ID.Key(), t.Script, t.Name)
	}
}

// Summary is the machine-readable form of a run, emitted with --json.
type Summary struct {
	Timestamp       time.Time              `json:"timestamp"`
	DataDir         string                 `json:"dataDir"`
	Source          models.RunSource       `json:"source,omitempty"`
	DryRun          bool                   `json:"dryRun"`
	Written         bool                   `json:"written"`
	Initialized     bool                   `json:"initialized"`
	Tracks          int                    `json:"tracks"`
	DLCCodes        int                    `json:"dlcCodes"`
	NonASCII        int                    `json:"nonAscii"`
	NewCategories   []models.Category      `json:"newCategories"`
	MissingEnglish  []models.NonASCIITrack `json:"missingEnglishTitles"`
	MissingJapanese []models.NonASCIITrack `json:"missingJapaneseTitles"`
}

// NewSummary builds a [Summary] with gap lists sorted by track id.
func NewSummary(result *tasks.Result, opts ReportOptions) Summary {
	ts := opts.Timestamp
	if ts.IsZero() {
		ts = result.StartedAt
	}

	newCategories := result.NewCategories
	if newCategories == nil {
		newCategories = []models.Category{}
	}

	return Summary{
		Timestamp:       ts,
		DataDir:         opts.DataDir,
		Source:          opts.Source,
		DryRun:          opts.DryRun,
		Written:         result.Written,
		Initialized:     result.Initialized,
		Tracks:          result.Tracks,
		DLCCodes:        len(result.Analysis.DLCs),
		NonASCII:        len(result.Analysis.NonASCII),
		NewCategories:   newCategories,
		MissingEnglish:  sortedGaps(result.MissingEnglish),
		MissingJapanese: sortedGaps(result.MissingJapanese),
	}
}

func sortedGaps(tracks []models.NonASCIITrack) []models.NonASCIITrack {
	if len(tracks) == 0 {
		return []models.NonASCIITrack{}
	}
	return models.SortByID(tracks)
}

// SummaryJSON renders [NewSummary] as indented JSON.
func SummaryJSON(result *tasks.Result, opts ReportOptions) ([]byte, error) {
	return shared.MarshalJSON(NewSummary(result, opts), true)
}
