package scenario

import (
	"fmt"

	"github.com/mgomes/wfl/wfl"
	"gopkg.in/yaml.v3"
)

// ConfigFromNode converts a YAML mapping into a config blob, keeping key
// order. Scalars become attributes, mappings become a child block and
// sequences of mappings become repeated child blocks of the same name.
func ConfigFromNode(node *yaml.Node) (*wfl.Config, error) {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected mapping", node.Line)
	}
	cfg := wfl.NewConfig()
	if err := fillConfig(cfg, node); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fillConfig(cfg *wfl.Config, node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := node.Content[i+1]
		switch val.Kind {
		case yaml.ScalarNode:
			var scalar any
			if err := val.Decode(&scalar); err != nil {
				return fmt.Errorf("line %d: %s: %w", val.Line, key, err)
			}
			cfg.SetAttr(key, scalar)
		case yaml.MappingNode:
			if err := fillConfig(cfg.AddChild(key), val); err != nil {
				return err
			}
		case yaml.SequenceNode:
			for _, item := range val.Content {
				if item.Kind != yaml.MappingNode {
					return fmt.Errorf("line %d: %s: child blocks must be mappings", item.Line, key)
				}
				if err := fillConfig(cfg.AddChild(key), item); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("line %d: %s: unsupported value", val.Line, key)
		}
	}
	return nil
}
