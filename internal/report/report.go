// Package report aggregates per-user outcomes into the run summary.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"igcorpus/pkg/textutil"
)

// maxStatusWidth caps error text in the summary table.
const maxStatusWidth = 60

// UserResult records the outcome of one user's export.
type UserResult struct {
	User   string
	Posts  int
	Units  int
	Words  int
	Output string
	Err    error
}

// Report collects per-user results across one run.
type Report struct {
	runID   string
	format  string
	started time.Time
	results []UserResult
}

// New creates an empty report for a run.
func New(runID, format string) *Report {
	return &Report{
		runID:   runID,
		format:  format,
		started: time.Now(),
	}
}

// RunID returns the engine session id the run executed under.
func (r *Report) RunID() string {
	return r.runID
}

// Format returns the output format the run used.
func (r *Report) Format() string {
	return r.format
}

// Add records one user's result.
func (r *Report) Add(result UserResult) {
	r.results = append(r.results, result)
}

// Results returns the recorded results in processing order.
func (r *Report) Results() []UserResult {
	return r.results
}

// Failed returns how many users failed.
func (r *Report) Failed() int {
	failed := 0

	for _, result := range r.results {
		if result.Err != nil {
			failed++
		}
	}

	return failed
}

// HasFailures reports whether any user failed.
func (r *Report) HasFailures() bool {
	return r.Failed() > 0
}

// TotalUnits returns the units written across all users.
func (r *Report) TotalUnits() int {
	total := 0

	for _, result := range r.results {
		total += result.Units
	}

	return total
}

// TotalWords returns the corpus words counted across all users.
func (r *Report) TotalWords() int {
	total := 0

	for _, result := range r.results {
		total += result.Words
	}

	return total
}

// Duration returns the elapsed time since the report was created.
func (r *Report) Duration() time.Duration {
	return time.Since(r.started)
}

// Render returns the per-user summary as an aligned table. Column widths
// use display width so wide characters in user names keep the table
// straight.
func (r *Report) Render() string {
	rows := [][]string{{"USER", "POSTS", "UNITS", "WORDS", "STATUS"}}

	for _, result := range r.results {
		status := "ok"
		if result.Err != nil {
			status = textutil.Truncate(result.Err.Error(), maxStatusWidth)
		}

		rows = append(rows, []string{
			result.User,
			fmt.Sprintf("%d", result.Posts),
			fmt.Sprintf("%d", result.Units),
			fmt.Sprintf("%d", result.Words),
			status,
		})
	}

	return renderTable(rows)
}

// renderTable pads every cell to its column's display width. The first row
// is the header and gets a dashed separator under it.
func renderTable(rows [][]string) string {
	colCount := 0

	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	colWidths := make([]int, colCount)

	for _, row := range rows {
		for i, cell := range row {
			width := runewidth.StringWidth(cell)
			if width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	var sb strings.Builder

	for rowIdx, row := range rows {
		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			sb.WriteString(cell)

			if i < colCount-1 {
				padding := colWidths[i] - runewidth.StringWidth(cell)
				sb.WriteString(strings.Repeat(" ", padding+2))
			}
		}

		sb.WriteString("\n")

		if rowIdx == 0 {
			for i, width := range colWidths {
				sb.WriteString(strings.Repeat("-", width))

				if i < colCount-1 {
					sb.WriteString("  ")
				}
			}

			sb.WriteString("\n")
		}
	}

	return sb.String()
}
