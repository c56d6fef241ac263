package models

import (
	"errors"
	"strings"
	"testing"
)

func TestParseComponent(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{"valid tree", `{"element":"div","children":[{"element":"p","content":"x"}]}`, false},
		{"missing element", `{"className":"x"}`, true},
		{"element wrong type", `{"element":true}`, true},
		{"not json", `<div>`, true},
		{"empty element", `{"element":""}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := ParseComponent([]byte(tt.payload))
			if tt.wantErr {
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("err = %v, want ValidationError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseComponent: %v", err)
			}
			if node.Element == "" {
				t.Error("parsed node missing element")
			}
		})
	}
}

func TestValidateOnlyChecksRoot(t *testing.T) {
	// Child validity is the renderer's concern, not the schema check's.
	node := &ComponentNode{
		Element:  "div",
		Children: []*ComponentNode{{ClassName: "no-element"}},
	}
	if err := ValidateComponent(node); err != nil {
		t.Errorf("root-only check rejected valid root: %v", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := &ComponentNode{
		Element: "ul",
		Props:   map[string]any{"role": "list"},
		Children: []*ComponentNode{
			{Element: "li", Content: "one"},
		},
	}

	clone := original.Clone()
	clone.Children[0].Content = "changed"
	clone.Props["role"] = "menu"

	if original.Children[0].Content != "one" {
		t.Error("clone shares child nodes")
	}
	if original.Props["role"] != "list" {
		t.Error("clone shares the props map")
	}
}

func TestPrettyJSONRoundTrips(t *testing.T) {
	node := &ComponentNode{
		Element:   "form",
		ClassName: "stack",
		Children:  []*ComponentNode{{Element: "input", Props: map[string]any{"type": "text"}}},
	}

	pretty := node.PrettyJSON()
	if !strings.Contains(pretty, `"element": "form"`) {
		t.Errorf("pretty output = %s", pretty)
	}

	back, err := ParseComponent([]byte(pretty))
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if back.Element != "form" || len(back.Children) != 1 {
		t.Errorf("round tripped node = %+v", back)
	}
}
