package report

import (
	"encoding/json"
	"os"

	"github.com/morroware/DupeFInder/internal/model"
)

// jsonDocument is the schema written by JSONReporter: a "summary" object
// (the final RunSummary counters) plus an "outcomes" array with one entry
// per target. It carries no groups array and no tool version, roots or
// algorithm metadata.
type jsonDocument struct {
	Summary  model.RunSummary      `json:"summary"`
	Outcomes []model.ActionOutcome `json:"outcomes"`
}

// JSONReporter buffers every outcome in memory and writes one JSON
// document once the run's final summary arrives. Buffering (rather than
// streaming a JSON array incrementally) keeps the file always
// well-formed, even if the process is killed mid-run and CSVReporter's
// partial file is the only surviving audit trail.
type JSONReporter struct {
	path     string
	outcomes []model.ActionOutcome
}

// NewJSONReporter returns a JSONReporter that will write to path once
// Summary is called.
func NewJSONReporter(path string) *JSONReporter {
	return &JSONReporter{path: path}
}

func (r *JSONReporter) Outcome(o model.ActionOutcome) {
	r.outcomes = append(r.outcomes, o)
}

func (r *JSONReporter) Summary(s model.RunSummary) {
	doc := jsonDocument{Summary: s, Outcomes: r.outcomes}
	f, err := os.Create(r.path)
	if err != nil {
		return
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	_ = enc.Encode(doc)
}
