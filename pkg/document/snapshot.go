package document

// PropertySchema describes one variable. A nil Default means no default.
type PropertySchema struct {
	Type        string `json:"type,omitempty"`
	Default     any    `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}

// VariablesSchema describes the variables map accepted by a snapshot.
// AdditionalProperties is only consulted in strict validation mode.
type VariablesSchema struct {
	Properties           map[string]PropertySchema `json:"properties"`
	Required             []string                  `json:"required,omitempty"`
	AdditionalProperties bool                      `json:"additionalProperties,omitempty"`
}

// TemplateSnapshot is an immutable, previously compiled document used as
// the render source for sends.
type TemplateSnapshot struct {
	StableID        string          `json:"stableId"`
	SnapshotID      string          `json:"snapshotId"`
	Markup          string          `json:"markup"`
	VariablesSchema VariablesSchema `json:"variablesSchema"`
	SubjectLines    []string        `json:"subjectLines"`
	Preheader       string          `json:"preheader,omitempty"`
}
