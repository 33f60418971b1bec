package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/dmrsv-appdata/internal/models"
	"github.com/desertthunder/dmrsv-appdata/internal/shared"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/urfave/cli/v3"
)

type runSummary struct {
	ID              string    `json:"id"`
	Sequence        int       `json:"sequence"`
	Source          string    `json:"source"`
	Tracks          int       `json:"tracks"`
	DLCCodes        int       `json:"dlcCodes"`
	NonASCII        int       `json:"nonAscii"`
	NewCategories   []string  `json:"newCategories"`
	MissingEnglish  int       `json:"missingEnglishTitles"`
	MissingJapanese int       `json:"missingJapaneseTitles"`
	StartedAt       time.Time `json:"startedAt"`
	CompletedAt     time.Time `json:"completedAt"`
}

func newRunSummary(run *models.RunRecord) runSummary {
	counts := run.Counts()
	newCategories := run.NewCategories()
	if newCategories == nil {
		newCategories = []string{}
	}
	return runSummary{
		ID:              run.ID(),
		Sequence:        run.Sequence(),
		Source:          string(run.Source()),
		Tracks:          counts.Tracks,
		DLCCodes:        counts.DLCCodes,
		NonASCII:        counts.NonASCII,
		NewCategories:   newCategories,
		MissingEnglish:  counts.MissingEnglish,
		MissingJapanese: counts.MissingJapanese,
		StartedAt:       run.StartedAt(),
		CompletedAt:     run.CompletedAt(),
	}
}

// History lists recorded runs, newest first.
//
// A history database that does not exist yet is reported as empty and is not created.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	config, err := r.resolveConfig(cmd)
	if err != nil {
		return err
	}

	limit := cmd.Int("limit")
	if limit < 0 {
		return fmt.Errorf("%w: --limit must not be negative", shared.ErrInvalidArgument)
	}
	useJSON := cmd.Bool("json")
	path := config.HistoryPath()

	var runs []*models.RunRecord
	if path == ":memory:" || fileExists(path) {
		repo, closeDB, err := openHistory(path, shared.WithLogger(r.logger, "component", "history", "path", path))
		if err != nil {
			return err
		}
		defer closeDB()

		if runs, err = repo.List(limit); err != nil {
			return err
		}
	}

	if useJSON {
		summaries := make([]runSummary, 0, len(runs))
		for _, run := range runs {
			summaries = append(summaries, newRunSummary(run))
		}
		return r.writeJSON(summaries, true)
	}

	if len(runs) == 0 {
		return r.writePlainln("No runs recorded in %s", path)
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		counts := run.Counts()
		newCategories := strings.Join(run.NewCategories(), " ")
		if newCategories == "" {
			newCategories = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(run.Sequence()),
			run.StartedAt().Local().Format("2006-01-02 15:04:05"),
			string(run.Source()),
			strconv.Itoa(counts.Tracks),
			strconv.Itoa(counts.DLCCodes),
			strconv.Itoa(counts.MissingEnglish),
			strconv.Itoa(counts.MissingJapanese),
			newCategories,
		})
	}

	return r.writePlainln("%s", renderTable(historyColumns, rows))
}

var historyColumns = []column{
	{Header: "#", Align: text.AlignRight},
	{Header: "Started", Align: text.AlignLeft},
	{Header: "Source", Align: text.AlignLeft},
	{Header: "Tracks", Align: text.AlignRight},
	{Header: "DLC", Align: text.AlignRight},
	{Header: "Missing EN", Align: text.AlignRight},
	{Header: "Missing JA", Align: text.AlignRight},
	{Header: "New", Align: text.AlignLeft},
}

