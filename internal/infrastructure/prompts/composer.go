package prompts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"websitebot/internal/domain/entity"
)

type HistoryLine struct {
	Number  int
	Summary string
}

type PlanPromptData struct {
	Goal     string
	Omitted  int
	History  []HistoryLine
	Elements []string
}

// Compose renders the planning request for one round. The output depends
// only on its arguments.
func Compose(goal string, history entity.HistoryView, elements []entity.ElementRecord) (string, error) {
	data := PlanPromptData{
		Goal:     goal,
		Omitted:  history.Omitted,
		History:  make([]HistoryLine, 0, len(history.Entries)),
		Elements: make([]string, 0, len(elements)),
	}

	for i, summary := range history.Entries {
		data.History = append(data.History, HistoryLine{
			Number:  history.Omitted + i + 1,
			Summary: strings.Join(strings.Fields(summary), " "),
		})
	}

	for _, el := range elements {
		line, err := RenderElement(el)
		if err != nil {
			return "", err
		}
		data.Elements = append(data.Elements, line)
	}

	var buf bytes.Buffer
	if err := planTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render plan prompt: %w", err)
	}
	return buf.String(), nil
}

// RenderElement renders text content as its bare text and actionable
// elements as a compact JSON tag the planner can copy into a step.
func RenderElement(el entity.ElementRecord) (string, error) {
	if !el.IsActionable() {
		return el.Text, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(el.Descriptor()); err != nil {
		return "", fmt.Errorf("encode element %s: %w", el.TagName, err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
