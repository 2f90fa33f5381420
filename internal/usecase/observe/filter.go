package observe

import (
	"strings"

	"websitebot/internal/domain/entity"
)

// DefaultYMax drops elements further down the page, mostly footer clutter.
const DefaultYMax = 3000

// Filter keeps the elements worth showing to the planner. An element is
// dropped when it is below yMax, has no area, cannot be described, or is a
// non-actionable element without text. Survivors are copies with trimmed text.
//
// Elements whose text is contained in another element's text are kept: both
// may be needed to address nested interactive elements.
func Filter(records []entity.ElementRecord, yMax float64) []entity.ElementRecord {
	out := make([]entity.ElementRecord, 0, len(records))
	for _, rec := range records {
		if !keep(rec, yMax) {
			continue
		}
		rec.Text = strings.TrimSpace(rec.Text)
		out = append(out, rec)
	}
	return out
}

func keep(rec entity.ElementRecord, yMax float64) bool {
	if rec.Position.Y > yMax {
		return false
	}
	if rec.Size.Width == 0 || rec.Size.Height == 0 {
		return false
	}

	trimmed := strings.TrimSpace(rec.Text)
	if rec.TagName == "" || !describable(rec, trimmed) {
		return false
	}

	if !rec.IsActionable() && (rec.Text == "" || trimmed == "") {
		return false
	}
	return true
}

func describable(rec entity.ElementRecord, trimmedText string) bool {
	if trimmedText != "" {
		return true
	}
	for _, att := range entity.DescriptiveAttrs {
		if rec.Attr(att) != "" {
			return true
		}
	}
	return false
}
