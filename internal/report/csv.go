// Package report implements component C8's external report writers
// (spec.md section 8): CSV, JSON and HTML outcome reports consumed after a
// run for audit or further tooling (the SMTP summary email lives in
// internal/mail). Each writer
// implements runctl.Reporter so the controller never depends on a
// concrete output format.
package report

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/morroware/DupeFInder/internal/model"
	"github.com/morroware/DupeFInder/internal/runerr"
)

// CSVReporter streams one row per ActionOutcome to a CSV file with the
// columns group_id, path, size_bytes (the bytes reclaimed for that target),
// size_human (the same value via go-humanize, matching the teacher stack's
// choice of that library for exactly this kind of operator-facing
// formatting), action, effected, dry_run and failure_reason. It writes no
// digest column and no system-root flag.
type CSVReporter struct {
	f *os.File
	w *csv.Writer
}

// NewCSVReporter creates (or truncates) path and writes the header row.
func NewCSVReporter(path string) (*CSVReporter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, runerr.Wrap(runerr.CodeActionIO, "create csv report "+path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"group_id", "path", "size_bytes", "size_human", "action", "effected", "dry_run", "failure_reason"}); err != nil {
		f.Close()
		return nil, runerr.Wrap(runerr.CodeActionIO, "write csv header", err)
	}
	return &CSVReporter{f: f, w: w}, nil
}

func (r *CSVReporter) Outcome(o model.ActionOutcome) {
	_ = r.w.Write([]string{
		strconv.Itoa(o.GroupID),
		o.TargetPath,
		strconv.FormatUint(o.BytesReclaimed, 10),
		humanize.Bytes(o.BytesReclaimed),
		string(o.Intended),
		string(o.Effected),
		strconv.FormatBool(o.DryRun),
		o.FailureReason,
	})
}

func (r *CSVReporter) Summary(model.RunSummary) {
	r.w.Flush()
	_ = r.f.Close()
}
