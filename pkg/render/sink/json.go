package sink

import (
	json "github.com/goccy/go-json"

	"github.com/matzehuels/conceptmap/pkg/layout"
	"github.com/matzehuels/conceptmap/pkg/progress"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	mapID   string
	report  *progress.Report
	overall *progress.Pair
	known   map[string]bool
	indent  bool
}

// WithJSONMapID records the map id in the output.
func WithJSONMapID(id string) JSONOption {
	return func(r *jsonRenderer) { r.mapID = id }
}

// WithJSONProgress includes the aggregated progress report and overall pair.
func WithJSONProgress(report progress.Report, overall progress.Pair) JSONOption {
	return func(r *jsonRenderer) { r.report, r.overall = &report, &overall }
}

// WithJSONKnown includes the known set.
func WithJSONKnown(known map[string]bool) JSONOption {
	return func(r *jsonRenderer) { r.known = known }
}

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption {
	return func(r *jsonRenderer) { r.indent = true }
}

type jsonOutput struct {
	MapID string `json:"mapId,omitempty"`
	layout.Result
	Progress *progress.Report `json:"progress,omitempty"`
	Overall  *progress.Pair   `json:"overall,omitempty"`
	Known    map[string]bool  `json:"known,omitempty"`
}

// RenderJSON encodes res with the requested extras.
func RenderJSON(res layout.Result, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	out := jsonOutput{
		MapID:    r.mapID,
		Result:   res,
		Progress: r.report,
		Overall:  r.overall,
		Known:    r.known,
	}
	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
