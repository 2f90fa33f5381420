package prompts

import (
	_ "embed"
	"text/template"
)

// PlanTemplate is the planning request. Its NEXT STEPS block is the response
// format the plan parser expects; change both together.
//
//go:embed plan.tmpl
var PlanTemplate string

var planTemplate = template.Must(template.New("plan").Parse(PlanTemplate))
