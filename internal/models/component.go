package models

import (
	"encoding/json"
	"fmt"
)

// ComponentNode is one node of a generated interface tree: a tag name,
// optional author classes, free-form attributes, optional text content,
// and an ordered child list. Trees arrive from the generation gateway or
// from the manual edit buffer; they are structurally valid by
// construction but their tag names are untrusted until render time.
type ComponentNode struct {
	Element   string           `json:"element"`
	ClassName string           `json:"className,omitempty"`
	Props     map[string]any   `json:"props,omitempty"`
	Content   string           `json:"content,omitempty"`
	Children  []*ComponentNode `json:"children,omitempty"`
}

// ValidationError reports a structural description that failed the
// mandatory-field check or could not be parsed at all. It never implies
// any stored state was mutated.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid component: " + e.Message
}

// ValidateComponent performs the one schema check applied to every
// incoming tree: the root must carry a non-empty element string.
func ValidateComponent(node *ComponentNode) error {
	if node == nil {
		return &ValidationError{Message: "missing component"}
	}
	if node.Element == "" {
		return &ValidationError{Message: "missing mandatory \"element\" field"}
	}
	return nil
}

// ParseComponent decodes a JSON structural description and applies the
// mandatory-field check. All failures come back as *ValidationError so
// callers surface them without touching stored state.
func ParseComponent(data []byte) (*ComponentNode, error) {
	var node ComponentNode
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("malformed structural description: %v", err)}
	}
	if err := ValidateComponent(&node); err != nil {
		return nil, err
	}
	return &node, nil
}

// PrettyJSON renders the tree in the exchange format for the manual
// edit buffer.
func (n *ComponentNode) PrettyJSON() string {
	if n == nil {
		return ""
	}
	data, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}

// Clone returns a deep copy of the tree. Snapshots handed to the UI must
// not alias store-owned nodes.
func (n *ComponentNode) Clone() *ComponentNode {
	if n == nil {
		return nil
	}
	out := &ComponentNode{
		Element:   n.Element,
		ClassName: n.ClassName,
		Content:   n.Content,
	}
	if n.Props != nil {
		out.Props = make(map[string]any, len(n.Props))
		for k, v := range n.Props {
			out.Props[k] = v
		}
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, child.Clone())
	}
	return out
}
