package domain

import (
	"iter"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mouse-blink/docgenie/internal/adapter"
	m "github.com/mouse-blink/docgenie/internal/model"
)

const (
	commentNodeType   = "comment"
	decoratorNodeType = "decorator"
)

// functionKinds maps function-like node types to their kind. Grammar
// versions differ on "function" vs "function_expression".
var functionKinds = map[string]m.FunctionKind{
	"function_declaration":           m.KindDeclaration,
	"generator_function_declaration": m.KindDeclaration,
	"function_expression":            m.KindExpression,
	"function":                       m.KindExpression,
	"generator_function":             m.KindExpression,
	"arrow_function":                 m.KindArrow,
	"method_definition":              m.KindMethod,
}

// transparentTypes wrap an expression without changing its binding.
var transparentTypes = map[string]bool{
	"parenthesized_expression": true,
	"as_expression":            true,
	"satisfies_expression":     true,
	"non_null_expression":      true,
	"type_assertion":           true,
}

// NodeMatcher selects syntax nodes during a walk.
type NodeMatcher func(n *sitter.Node) bool

// IsFunctionNode matches function-like nodes.
func IsFunctionNode(n *sitter.Node) bool {
	_, ok := functionKinds[n.Type()]

	return ok
}

// MatchingNodes yields the named descendants of root (root included) that
// match, in pre-order. The sequence can be ranged over more than once.
func MatchingNodes(root *sitter.Node, match NodeMatcher) iter.Seq[*sitter.Node] {
	return func(yield func(*sitter.Node) bool) {
		if root == nil {
			return
		}

		stack := []*sitter.Node{root}

		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if match(n) && !yield(n) {
				return
			}

			for i := int(n.NamedChildCount()) - 1; i >= 0; i-- {
				stack = append(stack, n.NamedChild(i))
			}
		}
	}
}

// FunctionNodes yields the function-like nodes under root in source order.
func FunctionNodes(root *sitter.Node) iter.Seq[*sitter.Node] {
	return MatchingNodes(root, IsFunctionNode)
}

// FunctionLocator extracts function records from a parsed file.
type FunctionLocator interface {
	Locate(tree *adapter.SourceTree) []m.FunctionRecord
}

type functionLocator struct{}

// NewFunctionLocator creates a FunctionLocator.
func NewFunctionLocator() FunctionLocator {
	return &functionLocator{}
}

// Locate returns one record per function-like node, in source order.
func (l *functionLocator) Locate(tree *adapter.SourceTree) []m.FunctionRecord {
	root := tree.Root()
	src := tree.Content
	ignoreAll := fileIgnored(root, src)

	records := []m.FunctionRecord{}

	for n := range FunctionNodes(root) {
		anchor := docAnchor(n)
		comments := precedingComments(anchor)

		records = append(records, m.FunctionRecord{
			Name:          functionName(n, src),
			FilePath:      tree.Path,
			Kind:          functionKinds[n.Type()],
			StartLine:     int(n.StartPoint().Row) + 1,
			EndLine:       int(n.EndPoint().Row) + 1,
			AnchorLine:    int(anchor.StartPoint().Row) + 1,
			SourceSpan:    n.Content(src),
			HasDocComment: hasDocComment(comments, src),
			Ignored:       ignoreAll || commentsIgnore(comments, src),
		})
	}

	return records
}

// functionName resolves the name of a function node: its own name, then the
// binding it is assigned to, then AnonymousName.
func functionName(n *sitter.Node, src []byte) string {
	if name := n.ChildByFieldName("name"); name != nil {
		return unquote(name.Content(src))
	}

	parent := n.Parent()
	for parent != nil && transparentTypes[parent.Type()] {
		parent = parent.Parent()
	}

	if parent == nil {
		return m.AnonymousName
	}

	var binding *sitter.Node

	switch parent.Type() {
	case "variable_declarator":
		binding = parent.ChildByFieldName("name")
	case "pair":
		binding = parent.ChildByFieldName("key")
	case "assignment_expression":
		binding = parent.ChildByFieldName("left")
		if binding != nil && binding.Type() == "member_expression" {
			binding = binding.ChildByFieldName("property")
		}
	case "public_field_definition", "field_definition":
		binding = parent.ChildByFieldName("name")
		if binding == nil {
			binding = parent.ChildByFieldName("property")
		}
	}

	if binding == nil {
		return m.AnonymousName
	}

	if name := unquote(binding.Content(src)); name != "" {
		return name
	}

	return m.AnonymousName
}

// docAnchor climbs from a function node to the statement a doc comment would
// precede, e.g. from an arrow function to its `export const` statement.
// Decorators the grammar places before a class member as siblings belong to
// the anchor, so the first of them is returned.
func docAnchor(n *sitter.Node) *sitter.Node {
	anchor := n

	for {
		parent := anchor.Parent()
		if parent == nil {
			return leadingDecorator(anchor)
		}

		switch parent.Type() {
		case "variable_declarator", "export_statement", "expression_statement",
			"pair", "public_field_definition", "field_definition":
			anchor = parent
		case "assignment_expression":
			if right := parent.ChildByFieldName("right"); right == nil || !sameNode(right, anchor) {
				return leadingDecorator(anchor)
			}

			anchor = parent
		case "lexical_declaration", "variable_declaration":
			if parent.NamedChildCount() == 0 || !sameNode(parent.NamedChild(0), anchor) {
				return leadingDecorator(anchor)
			}

			anchor = parent
		default:
			if !transparentTypes[parent.Type()] {
				return leadingDecorator(anchor)
			}

			anchor = parent
		}
	}
}

// leadingDecorator returns the first of the decorator siblings directly
// before n, or n when there are none.
func leadingDecorator(n *sitter.Node) *sitter.Node {
	for s := n.PrevSibling(); s != nil && s.Type() == decoratorNodeType; s = s.PrevSibling() {
		n = s
	}

	return n
}

// precedingComments returns the contiguous run of comment siblings directly
// before anchor, nearest first.
func precedingComments(anchor *sitter.Node) []*sitter.Node {
	var comments []*sitter.Node

	for s := anchor.PrevSibling(); s != nil && s.Type() == commentNodeType; s = s.PrevSibling() {
		comments = append(comments, s)
	}

	return comments
}

// hasDocComment reports whether comments holds a /** ... */ block. "/**/"
// is an empty ordinary comment.
func hasDocComment(comments []*sitter.Node, src []byte) bool {
	for _, c := range comments {
		if isDocComment(c.Content(src)) {
			return true
		}
	}

	return false
}

func isDocComment(text string) bool {
	return strings.HasPrefix(text, "/**") && text != "/**/" && strings.HasSuffix(text, "*/")
}

func sameNode(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

func unquote(s string) string {
	if len(s) >= 2 {
		switch s[0] {
		case '"', '\'', '`':
			if s[len(s)-1] == s[0] {
				return s[1 : len(s)-1]
			}
		}
	}

	return s
}
