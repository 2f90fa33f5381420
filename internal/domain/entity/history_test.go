package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory_AppendOnly(t *testing.T) {
	h := NewHistory(SeedForURL("https://example.com"))
	h.Append("accept cookies")

	entries := h.Entries()
	entries[0] = "mutated"

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, []string{"go to website https://example.com", "accept cookies"}, h.Entries())
}

func TestHistory_Recent(t *testing.T) {
	h := NewHistory("a", "b", "c", "d")

	view := h.Recent(2)
	assert.Equal(t, []string{"c", "d"}, view.Entries)
	assert.Equal(t, 2, view.Omitted)

	all := h.Recent(0)
	assert.Equal(t, 4, len(all.Entries))
	assert.Equal(t, 0, all.Omitted)

	assert.Equal(t, h.All(), h.Recent(10))
	assert.Equal(t, 4, h.Len(), "windowing must not truncate the history")
}

func TestElementRecord_Descriptor(t *testing.T) {
	r := ElementRecord{
		TagName:    "input",
		Text:       "  ",
		Attributes: map[string]string{"id": "from", "value": "Zurich", "class": "x"},
	}

	assert.Equal(t, Descriptor{Name: "input", ID: "from", Value: "Zurich"}, r.Descriptor())
	assert.True(t, r.IsActionable())
	assert.False(t, ElementRecord{TagName: "p"}.IsActionable())
}

func TestIsFatal(t *testing.T) {
	assert.True(t, IsFatal(ErrStaleDocument))
	assert.True(t, IsFatal(ErrMalformedPlan))
	assert.True(t, IsFatal(ErrPlannerFailed))
	assert.False(t, IsFatal(ErrElementNotFound))
	assert.False(t, IsFatal(ErrActionFailed))
}
