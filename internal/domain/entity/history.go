package entity

import "fmt"

// History is the append-only list of plan summaries of finished rounds.
type History struct {
	entries []string
}

func NewHistory(seed ...string) *History {
	h := &History{}
	for _, s := range seed {
		h.Append(s)
	}
	return h
}

// SeedForURL is the first history entry of a run started at url.
func SeedForURL(url string) string {
	return fmt.Sprintf("go to website %s", url)
}

func (h *History) Append(summary string) {
	h.entries = append(h.entries, summary)
}

func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of all summaries in append order.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// All returns a view over the whole history.
func (h *History) All() HistoryView {
	return HistoryView{Entries: h.Entries()}
}

// Recent returns a view over the last n entries. n <= 0 means all of them.
func (h *History) Recent(n int) HistoryView {
	if n <= 0 || n >= len(h.entries) {
		return h.All()
	}
	skip := len(h.entries) - n
	out := make([]string, n)
	copy(out, h.entries[skip:])
	return HistoryView{Entries: out, Omitted: skip}
}

// HistoryView is a read-only window over History. Omitted earlier entries
// keep their place in the numbering.
type HistoryView struct {
	Entries []string
	Omitted int
}

// HistoryFrom builds a view over the given summaries with nothing omitted.
func HistoryFrom(entries ...string) HistoryView {
	return HistoryView{Entries: entries}
}
