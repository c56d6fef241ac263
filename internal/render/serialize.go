package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/velin-dev/uisketch/internal/models"
)

// inlineContentLimit is the longest text content still emitted on the
// same line as its tags.
const inlineContentLimit = 40

// Serialize converts a component tree into source-code-like markup text
// for display. It is purely presentational and deterministic: the same
// tree always yields the same bytes. Tag names are emitted as-is; the
// allowlist applies to rendering, not to this read-only view.
func Serialize(node *models.ComponentNode) string {
	if node == nil {
		return ""
	}
	var b strings.Builder
	writeNode(&b, node, 0)
	return b.String()
}

func writeNode(b *strings.Builder, node *models.ComponentNode, depth int) {
	indent := strings.Repeat("  ", depth)
	open := "<" + node.Element + attrString(node)

	if IsVoidTag(node.Element) {
		b.WriteString(indent + open + " />\n")
		return
	}
	if node.Content == "" && len(node.Children) == 0 {
		b.WriteString(indent + open + " />\n")
		return
	}

	inline := node.Content != "" && len(node.Children) == 0 &&
		len(node.Content) <= inlineContentLimit && !strings.Contains(node.Content, "\n")
	if inline {
		b.WriteString(indent + open + ">" + node.Content + "</" + node.Element + ">\n")
		return
	}

	b.WriteString(indent + open + ">\n")
	if node.Content != "" {
		for _, line := range strings.Split(node.Content, "\n") {
			b.WriteString(indent + "  " + line + "\n")
		}
	}
	for _, child := range node.Children {
		writeNode(b, child, depth+1)
	}
	b.WriteString(indent + "</" + node.Element + ">\n")
}

// attrString renders className first, then props in sorted key order so
// serialization stays deterministic regardless of map iteration.
func attrString(node *models.ComponentNode) string {
	var b strings.Builder
	if node.ClassName != "" {
		fmt.Fprintf(&b, " className=%q", node.ClassName)
	}
	keys := make([]string, 0, len(node.Props))
	for k := range node.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := node.Props[k].(type) {
		case string:
			fmt.Fprintf(&b, " %s=%q", k, v)
		case bool:
			if v {
				fmt.Fprintf(&b, " %s", k)
			} else {
				fmt.Fprintf(&b, " %s={false}", k)
			}
		default:
			fmt.Fprintf(&b, " %s={%v}", k, v)
		}
	}
	return b.String()
}
