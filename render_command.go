package jsonlit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// RenderCommand renders stored documents as literals.
type RenderCommand struct {
	Store DocumentStore
	Log   *slog.Logger
}

// RenderOptions configures a render run.
type RenderOptions struct {
	Dialect Dialect
	Indent  string
}

// RenderedDocument is the output for one document id.
type RenderedDocument struct {
	ID   string
	Text string
}

// RenderResult holds every rendered document in request order.
type RenderResult struct {
	Dialect   Dialect
	Documents []RenderedDocument
}

// NewRenderCommand creates a RenderCommand with explicit dependencies.
func NewRenderCommand(store DocumentStore, log *slog.Logger) *RenderCommand {
	if log == nil {
		log = NewNopLogger()
	}
	return &RenderCommand{
		Store: store,
		Log:   log,
	}
}

// NewDefaultRenderCommand creates a RenderCommand reading from cfg.SourceDir.
func NewDefaultRenderCommand(cfg *Config, log *slog.Logger) *RenderCommand {
	return NewRenderCommand(NewDefaultStore(cfg.SourceDir, log), log)
}

// Run renders ids in order. The dialect is resolved before any document is
// read, and the first failure aborts the run without a partial result.
func (c *RenderCommand) Run(ctx context.Context, ids []string, opts RenderOptions) (RenderResult, error) {
	dialect, err := ParseDialect(string(opts.Dialect))
	if err != nil {
		return RenderResult{}, err
	}
	if strings.Contains(opts.Indent, "\n") {
		return RenderResult{}, fmt.Errorf("indent must not contain a newline")
	}

	result := RenderResult{Dialect: dialect}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return RenderResult{}, err
		}

		text, err := RenderDocument(c.Store, id, dialect, opts.Indent)
		if err != nil {
			return RenderResult{}, err
		}

		c.Log.Debug(fmt.Sprintf("rendered %s as %s (%d bytes)", id, dialect, len(text)),
			LogAttrKeyCategory.Attr(LogCategoryRender))

		result.Documents = append(result.Documents, RenderedDocument{ID: id, Text: text})
	}
	return result, nil
}

// Format prints each snippet followed by a newline. With more than one
// document each snippet gets a "==> id <==" header unless Quiet is set.
func (r RenderResult) Format(opts FormatOptions) FormatResult {
	var sb strings.Builder
	headers := len(r.Documents) > 1 && !opts.Quiet
	for i, doc := range r.Documents {
		if headers {
			if i > 0 {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "==> %s <==\n", doc.ID)
		}
		sb.WriteString(doc.Text)
		sb.WriteString("\n")
	}
	return FormatResult{Stdout: sb.String()}
}
