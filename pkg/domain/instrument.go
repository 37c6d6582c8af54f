package domain

// Instrument identifies the modeled instrument. Type and Revision form its
// identity and are required; both must be identifier-valid (validation
// concern). Label and Description are free text.
type Instrument struct {
	Type        string `json:"type" mapstructure:"type"`
	Revision    string `json:"revision" mapstructure:"revision"`
	Label       string `json:"label,omitempty" mapstructure:"label"`
	Description string `json:"description,omitempty" mapstructure:"description"`
}
