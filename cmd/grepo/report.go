package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/msandoval/grepo/internal/git"
	"github.com/msandoval/grepo/internal/output"
	"github.com/msandoval/grepo/internal/report"
	"github.com/msandoval/grepo/internal/ui"
	"github.com/msandoval/grepo/internal/watch"
)

// watchedRefs returns the watch list as dispatchable refs, failing
// when nothing is watched yet.
func watchedRefs() ([]git.RepoRef, error) {
	if len(cfg.Repos) == 0 {
		return nil, fmt.Errorf("no repositories watched (run 'grepo watch add' or 'grepo scan' first)")
	}
	return watch.Refs(cfg), nil
}

// branchCell renders a report row's branch column, folding call
// failures into a visible error cell instead of dropping the repo.
func branchCell(row report.Row) string {
	if row.Error != "" {
		return "error: " + row.Error
	}
	return row.Item
}

// printReport renders a report as JSON or a table and maps partial
// repo failures to errPartialFailure so Execute can exit with 2.
func printReport(ctx context.Context, rep report.Report, headers []string, cells func(report.Row) []string, jsonOutput bool, emptyMsg string) error {
	out := output.FromContext(ctx)

	if jsonOutput {
		enc := json.NewEncoder(out.Writer())
		enc.SetIndent("", "  ")
		rows := rep.Rows
		if rows == nil {
			rows = []report.Row{}
		}
		if err := enc.Encode(rows); err != nil {
			return err
		}
	} else if len(rep.Rows) == 0 {
		out.Println(emptyMsg)
	} else {
		var tableRows [][]string
		for _, row := range rep.Rows {
			tableRows = append(tableRows, cells(row))
		}
		out.Print(ui.RenderTable(headers, tableRows))
	}

	if !rep.AllOK() {
		return fmt.Errorf("%w (%d of %d)", errPartialFailure, rep.Failed, rep.Total)
	}
	return nil
}
