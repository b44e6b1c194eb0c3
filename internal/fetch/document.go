// Package fetch loads policy documents from local files or URLs and reduces
// them to plain text for extraction. All network and file errors surface
// here; the engine downstream performs no I/O.
package fetch

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// ReadFile loads a local policy document and returns its plain text.
// Markdown and HTML are reduced to text; everything else is read as-is.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return markdownText(data), nil
	case ".html", ".htm":
		return htmlText(data)
	default:
		return string(data), nil
	}
}

// markdownText walks the goldmark AST and joins the text segments, so
// formatting syntax does not leak into the extraction input.
func markdownText(source []byte) string {
	md := goldmark.New()
	doc := md.Parser().Parse(gmtext.NewReader(source))

	var sb strings.Builder
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(source))
			if node.HardLineBreak() || node.SoftLineBreak() {
				sb.WriteByte('\n')
			}
		case *ast.Heading, *ast.Paragraph, *ast.ListItem:
			sb.WriteByte('\n')
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

// htmlText strips markup, scripts, and styles from an HTML document.
func htmlText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	body := doc.Find("body")
	if body.Length() == 0 {
		return collapseWhitespace(doc.Text()), nil
	}
	return collapseWhitespace(body.Text()), nil
}

// collapseWhitespace normalizes runs of whitespace while keeping line breaks,
// so sentence-level extraction still sees paragraph boundaries.
func collapseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
