// Package report renders salad.InspectResult and prediction scores as
// plain text or JSON: a thin io.Writer-based formatter outside the
// core.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/letter-salad/salad"
)

// Format selects the output encoding.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// WriteInspect renders r in the requested format.
func WriteInspect(w io.Writer, r salad.InspectResult, format Format) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		return enc.Encode(struct {
			New         uint64  `json:"new"`
			Uniq        uint64  `json:"uniq"`
			Total       uint64  `json:"total"`
			Saturation  float64 `json:"saturation"`
			ExpectedFPR float64 `json:"expected_fpr"`
		}{r.New, r.Uniq, r.Total, r.Saturation, r.ExpectedFPR})
	}
	_, err := fmt.Fprintf(w, "new=%s uniq=%s total=%s saturation=%.4f expected_fpr=%.6f\n",
		humanize.Comma(int64(r.New)), humanize.Comma(int64(r.Uniq)), humanize.Comma(int64(r.Total)),
		r.Saturation, r.ExpectedFPR)
	return err
}

// WriteScores renders one score per line (text) or a JSON array.
func WriteScores(w io.Writer, scores []float64, format Format) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		return enc.Encode(scores)
	}
	for _, s := range scores {
		if _, err := fmt.Fprintf(w, "%.6f\n", s); err != nil {
			return err
		}
	}
	return nil
}

// WriteStats renders a raw salad.Stats tuple, used by train subcommands
// that don't derive saturation/FPR (no bloom filter handle at hand).
func WriteStats(w io.Writer, st salad.Stats, format Format) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		return enc.Encode(struct {
			New   uint64 `json:"new"`
			Uniq  uint64 `json:"uniq"`
			Total uint64 `json:"total"`
		}{st.New, st.Uniq, st.Total})
	}
	_, err := fmt.Fprintf(w, "new=%s uniq=%s total=%s\n",
		humanize.Comma(int64(st.New)), humanize.Comma(int64(st.Uniq)), humanize.Comma(int64(st.Total)))
	return err
}
