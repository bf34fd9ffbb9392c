// Package result collects solved constants from a batch run into a
// single sortable, exportable table.
package result

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/nfiege/scm-synth/internal/synth"
)

// Entry is one solved (or failed) constant from a batch run.
type Entry struct {
	ConstantRaw uint64         `json:"constant_raw"`
	Outcome     synth.Outcome  `json:"outcome"`
	Solution    *synth.Solution `json:"solution,omitempty"`
}

// Table stores the entries discovered by a batch run. Safe for
// concurrent Add calls from parallel workers.
type Table struct {
	mu      sync.Mutex
	entries []Entry
}

func NewTable() *Table {
	return &Table{}
}

func (t *Table) Add(e Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, e)
}

// Entries returns a copy of all entries, sorted by constant value
// ascending.
func (t *Table) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	sort.Slice(out, func(i, j int) bool {
		return out[i].ConstantRaw < out[j].ConstantRaw
	})
	return out
}

func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// MarshalJSON renders the table as a JSON array of its sorted
// entries, the format cmd/scmsynth's batch --output writes.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Entries())
}
