package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const pathsKey = "paths"

var (
	// ErrMissingPaths is returned when the checklist document has no paths mapping
	ErrMissingPaths = errors.New("checklist file has no paths mapping")
	// ErrInvalidCompare is returned for a malformed compareCommits input
	ErrInvalidCompare = errors.New("invalid compareCommits input")
)

// LoadChecklist reads and parses the checklist file at path
func LoadChecklist(path string) (ChecklistMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read checklist file %s: %w", path, err)
	}

	checklist, err := ParseChecklist(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse checklist file %s: %w", path, err)
	}

	return checklist, nil
}

// ParseChecklist parses a YAML checklist document.
// The order of patterns under the top-level paths key is preserved.
func ParseChecklist(data []byte) (ChecklistMap, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrMissingPaths
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("checklist document must be a mapping, got %s", nodeKind(root))
	}

	var paths *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == pathsKey {
			paths = resolveAlias(root.Content[i+1])
			break
		}
	}

	if paths == nil || paths.Tag == "!!null" {
		return nil, ErrMissingPaths
	}
	if paths.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s must be a mapping, got %s", pathsKey, nodeKind(paths))
	}

	checklist := make(ChecklistMap, 0, len(paths.Content)/2)
	for i := 0; i+1 < len(paths.Content); i += 2 {
		pattern := paths.Content[i].Value
		value := resolveAlias(paths.Content[i+1])

		var items []string
		switch {
		case value.Tag == "!!null":
			// Pattern with no items
		case value.Kind == yaml.SequenceNode:
			if err := value.Decode(&items); err != nil {
				return nil, fmt.Errorf("items for %q (line %d): %w", pattern, value.Line, err)
			}
		default:
			return nil, fmt.Errorf("items for %q (line %d) must be a list, got %s", pattern, value.Line, nodeKind(value))
		}

		if _, err := CompilePattern(pattern, MatchOptions{}); err != nil {
			return nil, err
		}

		checklist = append(checklist, ChecklistEntry{Pattern: pattern, Items: items})
	}

	return checklist, nil
}

// ParseCompareCommits parses the JSON compareCommits input. An empty input yields no comparisons.
func ParseCompareCommits(raw string) ([]CompareSpec, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var specs []CompareSpec
	if err := json.Unmarshal([]byte(raw), &specs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCompare, err)
	}

	for i, spec := range specs {
		if spec.Owner == "" || spec.Repo == "" || spec.Base == "" || spec.Head == "" {
			return nil, fmt.Errorf("%w: entry %d needs owner, repo, base and head", ErrInvalidCompare, i)
		}
	}

	return specs, nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "list"
	case yaml.ScalarNode:
		return "scalar " + node.Tag
	default:
		return "unknown node"
	}
}
