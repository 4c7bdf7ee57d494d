package ui

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// aboutHTML renders the embedded data-source notes to HTML
func aboutHTML() (template.HTML, error) {
	src, err := embeddedFiles.ReadFile("content/about.md")
	if err != nil {
		return "", err
	}
	return renderMarkdown(src), nil
}

// renderMarkdown converts Markdown to HTML with the common extension set
func renderMarkdown(src []byte) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return template.HTML(markdown.ToHTML(src, p, renderer))
}
