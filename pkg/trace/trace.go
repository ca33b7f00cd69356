// Package trace collects per-step snapshots emitted by the multiplier and
// divider's optional trace mode, and renders them for the CLI's --trace and
// --trace-json flags.
//
// This is a direct, adapted descendant of the teacher's result.Table: a
// mutex-guarded slice with a stable, sorted read view. Unlike result.Table
// it is not touched from multiple goroutines anywhere in this module (the
// core is single-threaded, and pkg/cpu's batch runner records no traces);
// the mutex keeps a Recorder safe to share if a caller does so.
package trace

import (
	"encoding/json"
	"io"
	"sort"
	"sync"
)

// Step is one recorded snapshot of the multiplier or divider's internal
// state at iteration Index. Fields holds the named bit-strings for that
// step (e.g. "acc"/"mulcand"/"mult", or "rem"/"quo"/"action").
type Step struct {
	Index  int               `json:"index"`
	Fields map[string]string `json:"fields"`
}

// Recorder accumulates Steps from a single traced operation.
type Recorder struct {
	mu    sync.Mutex
	steps []Step
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Add appends a step snapshot.
func (r *Recorder) Add(index int, fields map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, Step{Index: index, Fields: fields})
}

// Steps returns a copy of the recorded steps, sorted by Index.
func (r *Recorder) Steps() []Step {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Step, len(r.steps))
	copy(out, r.steps)
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Len returns the number of recorded steps.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.steps)
}

// WriteJSON writes the recorder's sorted steps to w as a JSON array.
func WriteJSON(w io.Writer, steps []Step) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(steps)
}
