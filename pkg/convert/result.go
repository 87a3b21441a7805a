package convert

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/JMcKiern/warhawk-reversing/pkg/format"
	"github.com/JMcKiern/warhawk-reversing/pkg/ngp"
)

// Result holds the outcome of converting one input.
type Result struct {
	Input    string    `json:"input"`
	Offset   string    `json:"offset,omitempty"`
	Outputs  []string  `json:"outputs,omitempty"`
	Warnings []string  `json:"warnings,omitempty"`
	Error    string    `json:"error,omitempty"`
	Reason   string    `json:"reason,omitempty"`
	Mesh     *MeshInfo `json:"mesh,omitempty"`
}

// MeshInfo summarizes an extracted model.
type MeshInfo struct {
	Vertices int        `json:"vertices"`
	Faces    int        `json:"faces"`
	UVs      int        `json:"uvs"`
	Min      [3]float64 `json:"min"`
	Max      [3]float64 `json:"max"`
}

func meshInfo(m *ngp.Mesh) *MeshInfo {
	lo, hi := m.Bounds()
	return &MeshInfo{
		Vertices: len(m.Vertices),
		Faces:    len(m.Faces),
		UVs:      len(m.UVs),
		Min:      lo,
		Max:      hi,
	}
}

// OK reports whether the input converted.
func (r *Result) OK() bool {
	return r.Error == ""
}

func (r *Result) fail(err error) {
	r.Error = err.Error()
	if reason, ok := format.ReasonOf(err); ok {
		r.Reason = reason.String()
	}
}

func (r *Result) warn(w format.Warnings) {
	for _, e := range w {
		r.Warnings = append(r.Warnings, e.Error())
	}
}

func hexOffset(off int) string {
	return fmt.Sprintf("0x%x", off)
}

// Summary counts converted and failed results.
type Summary struct {
	Total    int `json:"total"`
	Success  int `json:"success"`
	Failed   int `json:"failed"`
	Warnings int `json:"warnings"`
}

// Summarize counts results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for i := range results {
		if results[i].OK() {
			s.Success++
		} else {
			s.Failed++
		}
		if len(results[i].Warnings) > 0 {
			s.Warnings++
		}
	}
	return s
}

// Report is the JSON document written by WriteReport.
type Report struct {
	Tool      string    `json:"tool"`
	Generated time.Time `json:"generated"`
	Summary   Summary   `json:"summary"`
	Results   []Result  `json:"results"`
}

// WriteReport writes a JSON report of results to path.
func WriteReport(path, tool string, results []Result) error {
	report := Report{
		Tool:      tool,
		Generated: time.Now().UTC(),
		Summary:   Summarize(results),
		Results:   results,
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
