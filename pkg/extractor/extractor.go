package extractor

import (
	"regexp"
	"strings"

	"github.com/hellenic-development/figma-docgen/pkg/figma"
)

// ElementType is the UI category assigned to a classified node.
type ElementType string

// Classification categories. Container node types (FRAME, GROUP, COMPONENT,
// INSTANCE) are never emitted themselves; their children are.
const (
	TypeText   ElementType = "text"
	TypeButton ElementType = "button"
	TypeCard   ElementType = "card"
	TypeIcon   ElementType = "icon"
)

// DefaultMaxDepth bounds tree traversal. Real design files rarely nest past a
// few dozen levels; anything deeper is treated as malformed and skipped.
const DefaultMaxDepth = 100

// UIElement is a classified, flattened representation of a single Figma node.
// IDs are sequential starting at 1 in depth-first, left-to-right discovery
// order and always match the element's position in the result list.
// Description and Logic are empty until the enrichment stage fills them in.
type UIElement struct {
	ID          int
	Type        ElementType
	Name        string // sanitized identifier derived from the node name
	RawName     string // original node name, unmodified
	FigmaType   string // originating node type, retained for traceability
	Description string
	Logic       string
}

// Extract walks the node tree and returns the flat, ordered UI element list
// using the default depth limit.
func Extract(root *figma.Node) []UIElement {
	return ExtractWithDepth(root, DefaultMaxDepth)
}

// ExtractWithDepth performs a depth-first, left-to-right traversal of the node
// tree, classifying leaf node types into UI elements. The traversal uses an
// explicit work stack rather than recursion so that adversarial nesting cannot
// exhaust call depth; nodes deeper than maxDepth are skipped.
//
// Classification rules per node:
//   - FRAME, GROUP, COMPONENT, INSTANCE: container, recurse only.
//   - TEXT: text element.
//   - RECTANGLE: button when the name mentions button/btn or the corner radius
//     is positive, card otherwise.
//   - VECTOR, BOOLEAN_OPERATION, STAR, LINE, ELLIPSE: icon element.
//   - anything else: treated as a container when it has children, skipped otherwise.
func ExtractWithDepth(root *figma.Node, maxDepth int) []UIElement {
	elements := []UIElement{}
	if root == nil {
		return elements
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	type frame struct {
		node  *figma.Node
		depth int
	}

	stack := []frame{{node: root, depth: 0}}

	emit := func(node *figma.Node, elemType ElementType) {
		elements = append(elements, UIElement{
			ID:        len(elements) + 1,
			Type:      elemType,
			Name:      SanitizeName(node.Name),
			RawName:   node.Name,
			FigmaType: node.Type,
		})
	}

	// Children are pushed in reverse so the leftmost child is popped first,
	// preserving document order.
	pushChildren := func(f frame) {
		if f.depth+1 > maxDepth {
			return
		}
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: &f.node.Children[i], depth: f.depth + 1})
		}
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch f.node.Type {
		case "FRAME", "GROUP", "COMPONENT", "INSTANCE":
			pushChildren(f)
		case "TEXT":
			emit(f.node, TypeText)
		case "RECTANGLE":
			if isButtonLike(f.node) {
				emit(f.node, TypeButton)
			} else {
				emit(f.node, TypeCard)
			}
		case "VECTOR", "BOOLEAN_OPERATION", "STAR", "LINE", "ELLIPSE":
			emit(f.node, TypeIcon)
		default:
			// Unknown node types contribute nothing themselves but their
			// children may still be classifiable.
			pushChildren(f)
		}
	}

	return elements
}

// isButtonLike reports whether a RECTANGLE node should be classified as a
// button. This is a deliberate low-precision heuristic: a button-ish name or
// rounded corners, no visual analysis.
func isButtonLike(node *figma.Node) bool {
	name := strings.ToLower(node.Name)
	return strings.Contains(name, "button") || strings.Contains(name, "btn") || node.CornerRadius > 0
}

var (
	nonWordRe       = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	underscoreRunRe = regexp.MustCompile(`_+`)
)

// SanitizeName normalizes a node display name into a lowercase identifier:
// characters outside [A-Za-z0-9_] become underscores, runs of underscores
// collapse to one, leading/trailing underscores are trimmed. Names with no
// salvageable characters become "element". Sanitization is idempotent.
func SanitizeName(name string) string {
	s := nonWordRe.ReplaceAllString(name, "_")
	s = underscoreRunRe.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	s = strings.ToLower(s)
	if s == "" {
		return "element"
	}
	return s
}
