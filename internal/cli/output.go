// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/rootbox/interval"
	"github.com/katalvlaran/rootbox/solver"
)

// report is the serialized form of a solver.Result. Bounds are rendered
// as strings so unbounded rest boxes survive JSON.
type report struct {
	Problem     string      `json:"problem" yaml:"problem"`
	Solutions   []boxReport `json:"solutions" yaml:"solutions"`
	Rest        []boxReport `json:"rest,omitempty" yaml:"rest,omitempty"`
	Stats       statsReport `json:"stats" yaml:"stats"`
	Violations  []string    `json:"violations,omitempty" yaml:"violations,omitempty"`
	Interrupted bool        `json:"interrupted,omitempty" yaml:"interrupted,omitempty"`
}

type boxReport struct {
	Intervals []string  `json:"intervals" yaml:"intervals"`
	Mid       []float64 `json:"mid,omitempty" yaml:"mid,omitempty,flow"`
}

type statsReport struct {
	Processed    int64 `json:"processed" yaml:"processed"`
	Inconclusive int64 `json:"inconclusive" yaml:"inconclusive"`
	NonExistent  int64 `json:"nonexistent" yaml:"nonexistent"`
	Existent     int64 `json:"existent" yaml:"existent"`
	Duplicates   int64 `json:"duplicates" yaml:"duplicates"`
	GaveUp       int64 `json:"gaveup" yaml:"gaveup"`
	Conflicts    int64 `json:"conflicts" yaml:"conflicts"`
}

func newBoxReport(b interval.Box, withMid bool) boxReport {
	r := boxReport{Intervals: make([]string, len(b))}
	for i, x := range b {
		r.Intervals[i] = x.String()
	}
	if withMid {
		r.Mid = b.Mid()
	}

	return r
}

func newReport(name string, res *solver.Result) report {
	r := report{
		Problem:     name,
		Solutions:   make([]boxReport, len(res.Solutions)),
		Stats:       statsReport(res.Stats),
		Interrupted: res.Interrupted,
	}
	for i, s := range res.Solutions {
		r.Solutions[i] = newBoxReport(s.Enclosure, true)
	}
	for _, b := range res.Rest {
		r.Rest = append(r.Rest, newBoxReport(b, false))
	}
	for _, err := range res.Violations {
		r.Violations = append(r.Violations, err.Error())
	}

	return r
}

// writeReport renders r as text, json or yaml.
func writeReport(w io.Writer, format string, r report) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(r)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}

		return enc.Close()
	case "text", "":
		return writeText(w, r)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeText(w io.Writer, r report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d solution(s)\n", r.Problem, len(r.Solutions))
	for i, s := range r.Solutions {
		fmt.Fprintf(&b, "  #%d %s\n", i, strings.Join(s.Intervals, " × "))
	}
	if len(r.Rest) > 0 {
		fmt.Fprintf(&b, "rest: %d box(es)\n", len(r.Rest))
		for _, s := range r.Rest {
			fmt.Fprintf(&b, "  %s\n", strings.Join(s.Intervals, " × "))
		}
	}
	for _, v := range r.Violations {
		fmt.Fprintf(&b, "violation: %s\n", v)
	}
	if r.Interrupted {
		b.WriteString("interrupted: result is incomplete\n")
	}
	st := r.Stats
	fmt.Fprintf(&b, "processed=%d existent=%d nonexistent=%d inconclusive=%d giveup=%d duplicates=%d conflicts=%d\n",
		st.Processed, st.Existent, st.NonExistent, st.Inconclusive, st.GaveUp, st.Duplicates, st.Conflicts)
	_, err := io.WriteString(w, b.String())

	return err
}
