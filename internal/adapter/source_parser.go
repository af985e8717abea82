package adapter

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	m "github.com/mouse-blink/docgenie/internal/model"
)

// DefaultMaxSourceBytes is the largest file SourceParser accepts by default.
const DefaultMaxSourceBytes = 10 << 20

var (
	errSyntax       = errors.New("syntax error")
	errTooLarge     = errors.New("file exceeds size limit")
	errInvalidUTF8  = errors.New("content is not valid UTF-8")
	errNotSupported = errors.New("unsupported file type")
)

// Grammar identifies the tree-sitter grammar used for a file.
type Grammar string

const (
	// GrammarJavaScript covers .js, .jsx, .mjs and .cjs files.
	GrammarJavaScript Grammar = "javascript"
	// GrammarTypeScript covers .ts, .mts and .cts files.
	GrammarTypeScript Grammar = "typescript"
	// GrammarTSX covers .tsx files.
	GrammarTSX Grammar = "tsx"
)

var grammarByExt = map[string]Grammar{
	".js":  GrammarJavaScript,
	".jsx": GrammarJavaScript,
	".mjs": GrammarJavaScript,
	".cjs": GrammarJavaScript,
	".ts":  GrammarTypeScript,
	".mts": GrammarTypeScript,
	".cts": GrammarTypeScript,
	".tsx": GrammarTSX,
}

var declarationSuffixes = []string{".d.ts", ".d.mts", ".d.cts"}

// SourceParser turns ECMAScript-family source text into syntax trees.
type SourceParser interface {
	// Supports reports whether path has a parseable extension. Declaration
	// files are never supported.
	Supports(path m.Path) bool
	// Parse builds a syntax tree for src. Invalid syntax is reported as
	// *m.SourceParseError. The caller must Close the returned tree.
	Parse(ctx context.Context, path m.Path, src []byte) (*SourceTree, error)
}

// SourceTree is a parsed file. It owns the underlying tree-sitter tree.
type SourceTree struct {
	Path    m.Path
	Content []byte
	Grammar Grammar

	tree *sitter.Tree
}

// Root returns the root node of the tree.
func (t *SourceTree) Root() *sitter.Node {
	return t.tree.RootNode()
}

// Text returns the source text covered by node.
func (t *SourceTree) Text(node *sitter.Node) string {
	if node == nil {
		return ""
	}

	return node.Content(t.Content)
}

// Close releases the tree. It is safe to call more than once.
func (t *SourceTree) Close() {
	if t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
}

// TreeSitterParser is the SourceParser backed by smacker/go-tree-sitter. A
// fresh parser is created per call, so one instance may be shared across
// goroutines.
type TreeSitterParser struct {
	maxBytes int64
	exts     map[string]struct{}
}

// ParserOption configures a TreeSitterParser.
type ParserOption func(*TreeSitterParser)

// WithMaxBytes sets the size limit; values <= 0 disable it.
func WithMaxBytes(n int64) ParserOption {
	return func(p *TreeSitterParser) { p.maxBytes = n }
}

// WithExtensions restricts parsing to the given extensions. Extensions
// without a known grammar are ignored.
func WithExtensions(exts []string) ParserOption {
	return func(p *TreeSitterParser) {
		if len(exts) == 0 {
			return
		}

		p.exts = make(map[string]struct{}, len(exts))
		for _, ext := range exts {
			ext = strings.ToLower(ext)
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}

			if _, ok := grammarByExt[ext]; ok {
				p.exts[ext] = struct{}{}
			}
		}
	}
}

// NewTreeSitterParser creates a TreeSitterParser.
func NewTreeSitterParser(opts ...ParserOption) *TreeSitterParser {
	p := &TreeSitterParser{maxBytes: DefaultMaxSourceBytes}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Supports reports whether path can be parsed.
func (p *TreeSitterParser) Supports(path m.Path) bool {
	_, ok := p.grammarFor(path)

	return ok
}

// Parse builds a syntax tree for src.
func (p *TreeSitterParser) Parse(ctx context.Context, path m.Path, src []byte) (*SourceTree, error) {
	grammar, ok := p.grammarFor(path)
	if !ok {
		return nil, &m.SourceParseError{Path: path, Err: errNotSupported}
	}

	if p.maxBytes > 0 && int64(len(src)) > p.maxBytes {
		return nil, &m.SourceParseError{Path: path, Err: fmt.Errorf("%w: %d bytes", errTooLarge, len(src))}
	}

	if !utf8.Valid(src) {
		return nil, &m.SourceParseError{Path: path, Err: errInvalidUTF8}
	}

	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(languageFor(grammar))

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, &m.SourceParseError{Path: path, Err: err}
	}

	root := tree.RootNode()
	if root.HasError() {
		line, column := firstErrorPosition(root)
		tree.Close()

		return nil, &m.SourceParseError{Path: path, Line: line, Column: column, Err: errSyntax}
	}

	return &SourceTree{Path: path, Content: src, Grammar: grammar, tree: tree}, nil
}

func (p *TreeSitterParser) grammarFor(path m.Path) (Grammar, bool) {
	name := strings.ToLower(filepath.Base(string(path)))
	for _, suffix := range declarationSuffixes {
		if strings.HasSuffix(name, suffix) {
			return "", false
		}
	}

	ext := filepath.Ext(name)
	if p.exts != nil {
		if _, ok := p.exts[ext]; !ok {
			return "", false
		}
	}

	grammar, ok := grammarByExt[ext]

	return grammar, ok
}

func languageFor(g Grammar) *sitter.Language {
	switch g {
	case GrammarTypeScript:
		return typescript.GetLanguage()
	case GrammarTSX:
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// firstErrorPosition returns the 1-based line and column of the first ERROR
// or MISSING node in pre-order.
func firstErrorPosition(root *sitter.Node) (int, int) {
	stack := []*sitter.Node{root}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.Type() == "ERROR" || n.IsMissing() {
			pt := n.StartPoint()

			return int(pt.Row) + 1, int(pt.Column) + 1
		}

		if !n.HasError() {
			continue
		}

		for i := int(n.ChildCount()) - 1; i >= 0; i-- {
			stack = append(stack, n.Child(i))
		}
	}

	pt := root.StartPoint()

	return int(pt.Row) + 1, int(pt.Column) + 1
}
