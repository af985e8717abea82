// Package model defines the data structures shared by the diff scanner,
// the coverage analyzer and the review flow.
package model

// Path represents a file system path.
type Path string

// FunctionKind classifies a function-like syntax node.
type FunctionKind string

const (
	// KindDeclaration is a named `function` declaration (including generators).
	KindDeclaration FunctionKind = "declaration"
	// KindExpression is a `function` expression (including generators).
	KindExpression FunctionKind = "expression"
	// KindArrow is an arrow function.
	KindArrow FunctionKind = "arrow"
	// KindMethod is a class or object method definition.
	KindMethod FunctionKind = "method"
)

// AnonymousName is used when no identifier can be resolved for a function.
const AnonymousName = "anonymous"

// FunctionRecord describes one function-like node found in a source file.
// Records are produced fresh on every scan and never cached.
type FunctionRecord struct {
	Name     string       `json:"name"`
	FilePath Path         `json:"filePath"`
	Kind     FunctionKind `json:"kind"`
	// StartLine is the 1-based line where the function node begins.
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`
	// AnchorLine is the 1-based first line of the statement that owns the
	// doc comment (e.g. the `export const` line of an exported arrow).
	AnchorLine    int    `json:"anchorLine"`
	SourceSpan    string `json:"-"`
	HasDocComment bool   `json:"hasDocComment"`
	// Ignored is set by docgenie:ignore directives.
	Ignored bool `json:"ignored,omitempty"`
}
