package manifest

import (
	"gopkg.in/yaml.v3"
)

// MarshalYAML renders the manifest as a mapping that keeps transform order.
func (m *Manifest) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, t := range m.Transforms {
		var value yaml.Node
		if err := value.Encode(t.Filters); err != nil {
			return nil, err
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t.Name},
			&value,
		)
	}

	return node, nil
}

// Marshal serializes a manifest to YAML.
func Marshal(m *Manifest) ([]byte, error) {
	return yaml.Marshal(m)
}
