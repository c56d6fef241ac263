// Package render interprets generated component trees into display
// nodes. Tag names are the trust boundary: anything outside the fixed
// allowlist degrades to a generic container with a diagnostic, and
// event-handler shaped attribute names are dropped.
package render

import (
	"fmt"
	"strings"

	"github.com/velin-dev/uisketch/internal/models"
)

// FallbackTag substitutes for any element name outside the allowlist.
const FallbackTag = "div"

// RootFillClass is forced onto every rendered root so the tree fills its
// region. Author classes are merged after it, never replaced.
const RootFillClass = "w-full h-full"

// tagBehavior classifies how an allowed tag renders.
type tagBehavior int

const (
	behaviorContainer tagBehavior = iota
	behaviorVoid                  // leaf tag: content and children are ignored
)

// allowedTags is the fixed allowlist of renderable element names.
var allowedTags = map[string]tagBehavior{
	// structural
	"div": behaviorContainer, "section": behaviorContainer, "article": behaviorContainer,
	"header": behaviorContainer, "footer": behaviorContainer, "nav": behaviorContainer,
	"main": behaviorContainer, "aside": behaviorContainer,
	// text
	"h1": behaviorContainer, "h2": behaviorContainer, "h3": behaviorContainer,
	"h4": behaviorContainer, "h5": behaviorContainer, "h6": behaviorContainer,
	"p": behaviorContainer, "span": behaviorContainer, "a": behaviorContainer,
	"strong": behaviorContainer, "em": behaviorContainer, "small": behaviorContainer,
	"blockquote": behaviorContainer, "pre": behaviorContainer, "code": behaviorContainer,
	// lists
	"ul": behaviorContainer, "ol": behaviorContainer, "li": behaviorContainer,
	"dl": behaviorContainer, "dt": behaviorContainer, "dd": behaviorContainer,
	// forms
	"form": behaviorContainer, "label": behaviorContainer, "button": behaviorContainer,
	"select": behaviorContainer, "option": behaviorContainer, "textarea": behaviorContainer,
	// tables
	"table": behaviorContainer, "thead": behaviorContainer, "tbody": behaviorContainer,
	"tfoot": behaviorContainer, "tr": behaviorContainer, "th": behaviorContainer,
	"td": behaviorContainer, "caption": behaviorContainer,
	// media and voids
	"figure": behaviorContainer, "figcaption": behaviorContainer,
	"video": behaviorContainer, "audio": behaviorContainer,
	"img": behaviorVoid, "input": behaviorVoid, "br": behaviorVoid, "hr": behaviorVoid,
}

// IsVoidTag reports whether an allowed tag renders as a leaf.
func IsVoidTag(tag string) bool {
	return allowedTags[tag] == behaviorVoid
}

// DisplayNode is the sanitized output of rendering: an allowed tag, the
// resolved class string, filtered attributes, text content, and ordered
// children. Content precedes children in document order.
type DisplayNode struct {
	Tag       string
	ClassName string
	Attrs     map[string]any
	Content   string
	Children  []*DisplayNode
}

// Render interprets a component tree into a display tree. The returned
// notes are non-fatal diagnostics: substituted tags, dropped children
// under void tags, dropped handler-shaped attributes. A nil tree yields
// a nil node.
func Render(node *models.ComponentNode) (*DisplayNode, []string) {
	if node == nil {
		return nil, nil
	}
	var notes []string
	out := renderNode(node, true, &notes)
	return out, notes
}

func renderNode(node *models.ComponentNode, isRoot bool, notes *[]string) *DisplayNode {
	tag := node.Element
	behavior, allowed := allowedTags[tag]
	if !allowed {
		*notes = append(*notes, fmt.Sprintf("unknown element %q substituted with %q", tag, FallbackTag))
		tag = FallbackTag
		behavior = behaviorContainer
	}

	out := &DisplayNode{
		Tag:       tag,
		ClassName: node.ClassName,
		Content:   node.Content,
	}
	if isRoot {
		out.ClassName = mergeClasses(RootFillClass, node.ClassName)
	}

	for name, value := range node.Props {
		if isHandlerAttr(name) {
			*notes = append(*notes, fmt.Sprintf("dropped handler attribute %q on <%s>", name, tag))
			continue
		}
		if out.Attrs == nil {
			out.Attrs = make(map[string]any, len(node.Props))
		}
		out.Attrs[name] = value
	}

	if behavior == behaviorVoid {
		if len(node.Children) > 0 {
			*notes = append(*notes, fmt.Sprintf("void element <%s> cannot have children; %d dropped", tag, len(node.Children)))
		}
		out.Content = ""
		return out
	}

	for _, child := range node.Children {
		out.Children = append(out.Children, renderNode(child, false, notes))
	}
	return out
}

// mergeClasses joins the forced root classes with author classes,
// keeping both.
func mergeClasses(forced, author string) string {
	author = strings.TrimSpace(author)
	if author == "" {
		return forced
	}
	return forced + " " + author
}

// isHandlerAttr matches event-handler shaped attribute names (onclick,
// onLoad, ...). These never pass through to display output.
func isHandlerAttr(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasPrefix(lower, "on") && len(lower) > 2
}
