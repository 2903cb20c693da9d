package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	// ErrRender indicates a renderer failed to produce HTML.
	ErrRender = errors.New("markdown rendering failed")
	// ErrUnknownRenderer is returned by NewRenderer for an unrecognized name.
	ErrUnknownRenderer = errors.New("unknown renderer")
)

// Renderer names accepted by NewRenderer.
const (
	RendererSubset   = "subset"
	RendererGoldmark = "goldmark"
)

// Renderer converts report markdown into an HTML fragment.
type Renderer interface {
	Render(ctx context.Context, markdown string) (string, error)
}

// NewRenderer returns the renderer registered under name. An empty name
// selects the subset renderer.
func NewRenderer(name string, opts Options) (Renderer, error) {
	switch name {
	case "", RendererSubset:
		return &Subset{Options: opts}, nil
	case RendererGoldmark:
		return NewGoldmark(opts), nil
	default:
		return nil, fmt.Errorf("%w %q (want %q or %q)", ErrUnknownRenderer, name, RendererSubset, RendererGoldmark)
	}
}

// Subset renders with the rule-based transformer.
type Subset struct {
	Options Options
}

// Render implements Renderer. It only fails when ctx is already done.
func (s *Subset) Render(ctx context.Context, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.Options.Transform(markdown), nil
}

// Goldmark renders full CommonMark plus GFM extensions. The report banner is
// still stripped before conversion.
type Goldmark struct {
	md      goldmark.Markdown
	options Options
}

// NewGoldmark creates a goldmark-backed renderer.
func NewGoldmark(opts Options) *Goldmark {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
		),
	)
	return &Goldmark{md: md, options: opts}
}

// Render implements Renderer.
func (g *Goldmark) Render(ctx context.Context, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	content := stripBanner(normalizeLineEndings(markdown), g.options.banner())

	var buf bytes.Buffer
	if err := g.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.String(), nil
}
