package entity

import "strings"

const (
	TagButton    = "button"
	TagInput     = "input"
	TagAnchor    = "a"
	TagParagraph = "p"
	TagHeading1  = "h1"
	TagHeading2  = "h2"
	TagHeading3  = "h3"
)

const (
	AttrID    = "id"
	AttrValue = "value"
)

// DescriptiveAttrs are the attributes shown to the planner and usable to
// describe an element.
var DescriptiveAttrs = []string{AttrID, AttrValue}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ElementRecord is one observed DOM element at a point in time.
type ElementRecord struct {
	TagName    string
	Text       string
	Attributes map[string]string
	Position   Position
	Size       Size
}

// Attr returns the attribute value, empty when absent.
func (r ElementRecord) Attr(name string) string {
	if r.Attributes == nil {
		return ""
	}
	return r.Attributes[name]
}

// IsActionable reports whether the planner may click or fill the element.
func (r ElementRecord) IsActionable() bool {
	return IsActionableTag(r.TagName)
}

// Descriptor returns the lookup key used to find the element again.
func (r ElementRecord) Descriptor() Descriptor {
	return Descriptor{
		Name:  r.TagName,
		Text:  strings.TrimSpace(r.Text),
		ID:    r.Attr(AttrID),
		Value: r.Attr(AttrValue),
	}
}

func IsActionableTag(tag string) bool {
	switch strings.ToLower(tag) {
	case TagButton, TagAnchor, TagInput:
		return true
	}
	return false
}

// Descriptor is the subset of an ElementRecord sufficient to re-locate it.
// It is a lookup key, the live page may have changed since observation.
type Descriptor struct {
	Name  string `json:"name"`
	Text  string `json:"text,omitempty"`
	ID    string `json:"id,omitempty"`
	Value string `json:"value,omitempty"`
}
