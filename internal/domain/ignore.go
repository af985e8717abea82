package domain

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

const (
	ignoreDirective     = "docgenie:ignore"
	ignoreFileDirective = "docgenie:ignore-file"
)

type ignoreScope int

const (
	ignoreNone ignoreScope = iota
	ignoreFunction
	ignoreFile
)

// parseIgnoreDirective inspects one comment. Every line of a block comment
// is checked; anything after the directive (a reason) is ignored.
func parseIgnoreDirective(commentText string) ignoreScope {
	s := strings.TrimSpace(commentText)

	switch {
	case strings.HasPrefix(s, "//"):
		s = strings.TrimPrefix(s, "//")
	case strings.HasPrefix(s, "/*"):
		s = strings.TrimPrefix(s, "/*")
		s = strings.TrimSuffix(s, "*/")
	default:
		return ignoreNone
	}

	scope := ignoreNone

	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimLeft(line, "*"))

		if !strings.HasPrefix(line, ignoreDirective) {
			continue
		}

		rest := strings.TrimPrefix(line, ignoreDirective)

		switch {
		case strings.HasPrefix(rest, "-file") && isDirectiveEnd(strings.TrimPrefix(rest, "-file")):
			return ignoreFile
		case isDirectiveEnd(rest):
			scope = ignoreFunction
		}
	}

	return scope
}

// isDirectiveEnd reports whether rest terminates a directive keyword, so
// that "docgenie:ignored" is not a directive.
func isDirectiveEnd(rest string) bool {
	return rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == ':'
}

// fileIgnored reports whether any top-level comment of root carries the
// file directive.
func fileIgnored(root *sitter.Node, src []byte) bool {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() != commentNodeType {
			continue
		}

		if parseIgnoreDirective(child.Content(src)) == ignoreFile {
			return true
		}
	}

	return false
}

// commentsIgnore reports whether a run of comments preceding a function
// carries a function or file directive.
func commentsIgnore(comments []*sitter.Node, src []byte) bool {
	for _, c := range comments {
		if parseIgnoreDirective(c.Content(src)) != ignoreNone {
			return true
		}
	}

	return false
}
