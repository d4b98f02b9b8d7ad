package tui

import (
	"github.com/charmbracelet/glamour"
)

// FormatType specifies the type of content to format.
type FormatType string

const (
	// FormatMarkdown formats content as Markdown.
	FormatMarkdown FormatType = "markdown"
	// FormatCode formats content as code with syntax highlighting.
	FormatCode FormatType = "code"
)

// FormatOptions configures the Format component.
type FormatOptions struct {
	// Content is the text content to format.
	Content string
	// Type specifies how to format the content.
	Type FormatType
	// Language is the language for code syntax highlighting.
	Language string
	// ColorScheme selects the glamour style: "dark", "light", or "auto".
	// Empty and unknown values fall back to auto-detection.
	ColorScheme string
	// Width is the word wrap width (0 for no wrap).
	Width int
}

// Format formats content according to the specified type.
func Format(opts FormatOptions) (string, error) {
	switch opts.Type {
	case FormatMarkdown:
		return formatMarkdown(opts)
	case FormatCode:
		return formatCode(opts)
	default:
		return opts.Content, nil
	}
}

// formatMarkdown renders markdown content using glamour.
func formatMarkdown(opts FormatOptions) (string, error) {
	var rendererOpts []glamour.TermRendererOption

	switch opts.ColorScheme {
	case "dark", "light":
		rendererOpts = append(rendererOpts, glamour.WithStandardStyle(opts.ColorScheme))
	default:
		rendererOpts = append(rendererOpts, glamour.WithAutoStyle())
	}

	if opts.Width > 0 {
		rendererOpts = append(rendererOpts, glamour.WithWordWrap(opts.Width))
	}

	renderer, err := glamour.NewTermRenderer(rendererOpts...)
	if err != nil {
		return "", err
	}

	return renderer.Render(opts.Content)
}

// formatCode wraps content in a code block for markdown rendering.
func formatCode(opts FormatOptions) (string, error) {
	content := "```" + opts.Language + "\n" + opts.Content + "\n```"

	return formatMarkdown(FormatOptions{
		Content:     content,
		Type:        FormatMarkdown,
		ColorScheme: opts.ColorScheme,
		Width:       opts.Width,
	})
}

// FormatBuilder provides a fluent API for building Format operations.
type FormatBuilder struct {
	opts FormatOptions
}

// NewFormat creates a new FormatBuilder with default options.
func NewFormat() *FormatBuilder {
	return &FormatBuilder{
		opts: FormatOptions{
			Type: FormatMarkdown,
		},
	}
}

// Content sets the content to format.
func (b *FormatBuilder) Content(content string) *FormatBuilder {
	b.opts.Content = content
	return b
}

// Markdown sets the format type to markdown.
func (b *FormatBuilder) Markdown() *FormatBuilder {
	b.opts.Type = FormatMarkdown
	return b
}

// Code sets the format type to code.
func (b *FormatBuilder) Code() *FormatBuilder {
	b.opts.Type = FormatCode
	return b
}

// Language sets the language for code highlighting.
func (b *FormatBuilder) Language(lang string) *FormatBuilder {
	b.opts.Language = lang
	return b
}

// ColorScheme sets the color scheme ("auto", "dark", or "light").
func (b *FormatBuilder) ColorScheme(scheme string) *FormatBuilder {
	b.opts.ColorScheme = scheme
	return b
}

// Width sets the word wrap width.
func (b *FormatBuilder) Width(width int) *FormatBuilder {
	b.opts.Width = width
	return b
}

// Run formats the content and returns the result.
func (b *FormatBuilder) Run() (string, error) {
	return Format(b.opts)
}
