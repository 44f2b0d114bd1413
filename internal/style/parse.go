package style

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// ParsePreset decodes an uploaded style payload. YAML is tried first
// (and accepts JSON, since JSON is a YAML subset), so uploads work in
// either format. The decoded preset starts from the built-in defaults;
// a partial payload only overrides what it names. Naming a field with
// an empty value is an override, not an omission: layer_order: []
// replaces the default order and fails validation.
func ParsePreset(raw []byte) (*Preset, error) {
	if len(raw) == 0 {
		return nil, &ValidationError{Message: "empty style payload"}
	}
	p := Default()
	if err := yaml.Unmarshal(raw, p); err != nil {
		// yaml.v3 chokes on some valid JSON corner cases (tabs);
		// fall back to a strict JSON decode before giving up.
		jp := Default()
		if jsonErr := json.Unmarshal(raw, jp); jsonErr != nil {
			return nil, &ValidationError{Message: "style payload is neither valid YAML nor JSON: " + err.Error()}
		}
		p = jp
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
