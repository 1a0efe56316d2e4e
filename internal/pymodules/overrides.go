package pymodules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Overrides maps a subpackage to the one module it provides, for packages whose
// module name can't be derived from installed paths.
type Overrides map[string]string

// DefaultOverrides returns the built-in special cases.
func DefaultOverrides() Overrides {
	return Overrides{
		"dreampie-python3": "dreampielib",
		"nose":             "nose",
		"python3-nose1.1":  "nose",
		"waf-python3":      "waflib",
		"znc-modpython":    "znc",
	}
}

type overridesFile struct {
	Overrides map[string]string `yaml:"overrides"`
}

// ParseOverrides decodes an overrides document of the form
//
//	overrides:
//	  subpackage-name: module
func ParseOverrides(data []byte) (Overrides, error) {
	var doc overridesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing overrides: %w", err)
	}
	out := make(Overrides, len(doc.Overrides))
	for sub, module := range doc.Overrides {
		if module == "" {
			return nil, fmt.Errorf("parsing overrides: empty module for %s", sub)
		}
		out[sub] = module
	}
	return out, nil
}

// LoadOverrides returns the defaults merged with entries from path.
// An empty path yields just the defaults.
func LoadOverrides(path string) (Overrides, error) {
	merged := DefaultOverrides()
	if path == "" {
		return merged, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading overrides: %w", err)
	}
	extra, err := ParseOverrides(data)
	if err != nil {
		return nil, err
	}
	for sub, module := range extra {
		merged[sub] = module
	}
	return merged, nil
}
