package domain

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/docgenie/internal/adapter"
	m "github.com/mouse-blink/docgenie/internal/model"
)

const defaultGenerateConcurrency = 4

// NormalizeDocComment extracts the first /** ... */ block from a generator
// response. Markdown code fences around it are dropped and continuation
// lines are re-aligned to " * ". Leading indentation is removed so the block
// can be indented like its anchor line on insertion.
func NormalizeDocComment(raw string) (string, error) {
	text := strings.ReplaceAll(stripFences(raw), "\r\n", "\n")

	start := strings.Index(text, "/**")
	if start < 0 {
		return "", m.ErrMalformedDocComment
	}

	end := strings.Index(text[start+3:], "*/")
	if end < 0 {
		return "", m.ErrMalformedDocComment
	}

	block := text[start : start+3+end+2]

	lines := strings.Split(block, "\n")
	if len(lines) == 1 {
		return block, nil
	}

	out := make([]string, 0, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case i == 0:
			out = append(out, trimmed)
		case strings.HasPrefix(trimmed, "*"):
			out = append(out, " "+trimmed)
		case trimmed == "":
			out = append(out, " *")
		default:
			out = append(out, " * "+trimmed)
		}
	}

	return strings.Join(out, "\n"), nil
}

func stripFences(raw string) string {
	lines := strings.Split(raw, "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}

		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}

// GenerateDocs requests a doc comment for every finding, at most concurrency
// at a time. The result has one entry per finding in input order. A failed
// request sets the finding's Err to a *m.GenerationError and never stops the
// others. done, when set, is called once per finding from the worker
// goroutines.
func GenerateDocs(
	ctx context.Context,
	gen adapter.DocGenerator,
	findings []m.Finding,
	concurrency int,
	logger *slog.Logger,
	done func(),
) []m.Finding {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if concurrency < 1 {
		concurrency = defaultGenerateConcurrency
	}

	out := make([]m.Finding, len(findings))
	copy(out, findings)

	var g errgroup.Group
	g.SetLimit(concurrency)

	for i := range out {
		g.Go(func() error {
			if done != nil {
				defer done()
			}

			f := &out[i]

			comment, err := generateOne(ctx, gen, f.OriginalSource)
			if err != nil {
				f.Err = &m.GenerationError{Function: f.FunctionName, Path: f.FilePath, Err: err}
				logger.Warn("generation failed", "path", f.FilePath, "function", f.FunctionName, "error", err)

				return nil
			}

			f.ProposedDocComment = comment

			return nil
		})
	}

	_ = g.Wait()

	return out
}

func generateOne(ctx context.Context, gen adapter.DocGenerator, code string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	raw, err := gen.Generate(ctx, code)
	if err != nil {
		return "", err
	}

	return NormalizeDocComment(raw)
}
