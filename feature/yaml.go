// Package feature: declarative feature-set loading.
//
// Feature sets are described as a YAML document:
//
//	features:
//	  - name: voice
//	    type: binary
//	  - name: Labial
//	    type: node
//	    children: [labial, round]
//
// Declaration order does not matter: nodes may reference children declared
// later in the document. Loading happens in two passes — every feature is
// registered first, then node children are attached.
package feature

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlFeature is the on-disk shape of one feature declaration.
type yamlFeature struct {
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	Children []string `yaml:"children,omitempty"`
}

// yamlDoc is the on-disk shape of a feature-set document.
type yamlDoc struct {
	Features []yamlFeature `yaml:"features"`
}

// LoadYAML parses a feature-set document and registers its features.
//
// Loading is additive: existing features stay registered, and a declaration
// reusing an existing name replaces it (the Add contract). The first
// validation failure aborts the load with the offending feature named in the
// error; features registered by earlier declarations of the same call remain.
// Complexity: O(total declarations + total children).
func (r *Registry) LoadYAML(data []byte) error {
	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("feature: load yaml: %w", err)
	}

	// Pass 1: register every feature without children, so forward
	// references between nodes and their children resolve in pass 2.
	for _, yf := range doc.Features {
		t, err := ParseType(yf.Type)
		if err != nil {
			return fmt.Errorf("feature: load %q: %w", yf.Name, err)
		}
		if len(yf.Children) > 0 && t != Node {
			return fmt.Errorf("feature: load %q: %w", yf.Name, ErrNotNode)
		}
		if err = r.Add(Feature{Name: yf.Name, Type: t}); err != nil {
			return fmt.Errorf("feature: load: %w", err)
		}
	}

	// Pass 2: attach node children.
	for _, yf := range doc.Features {
		if len(yf.Children) == 0 {
			continue
		}
		if err := r.Add(Feature{Name: yf.Name, Type: Node, Children: yf.Children}); err != nil {
			return fmt.Errorf("feature: load: %w", err)
		}
	}

	return nil
}
