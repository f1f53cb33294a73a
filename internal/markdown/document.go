// Package markdown assembles the markdown listing document: a title, an
// optional directory tree and one fenced block per file.
package markdown

import (
	"regexp"
	"strings"

	"github.com/temirov/mdlisting/internal/types"
)

const (
	titlePrefix      = "# "
	sectionPrefix    = "## "
	codeFence        = "```"
	sectionSeparator = "\n\n"
	lineBreak        = "\n"
	labelSeparator   = " "
)

var repeatedBlankLines = regexp.MustCompile(`\n{3,}`)

// ContentBlock is the fenced rendition of one file.
type ContentBlock struct {
	LanguageTag string
	Label       string
	Content     string
}

// Document is the in-memory markdown listing prior to serialization.
type Document struct {
	Title string
	// TreeLines holds the rendered directory tree; nil omits the tree section.
	TreeLines []string
	Blocks    []ContentBlock
}

// Render serializes the document. Sections are separated by one blank line and
// any run of three or more newlines is collapsed to two.
func (document Document) Render() string {
	sections := []string{titlePrefix + document.Title}
	if document.TreeLines != nil {
		sections = append(sections,
			sectionPrefix+types.DirectoryTreeHeading,
			codeFence+lineBreak+strings.Join(document.TreeLines, lineBreak)+lineBreak+codeFence,
		)
	}
	for _, block := range document.Blocks {
		sections = append(sections, block.Render())
	}
	return CollapseBlankLines(strings.Join(sections, sectionSeparator))
}

// Render formats the block as an annotated fence around the raw content.
func (block ContentBlock) Render() string {
	return strings.Join([]string{
		codeFence + block.LanguageTag + labelSeparator + block.Label,
		block.Content,
		codeFence,
	}, lineBreak)
}

// CollapseBlankLines replaces every run of three or more newlines with exactly two.
func CollapseBlankLines(text string) string {
	return repeatedBlankLines.ReplaceAllString(text, sectionSeparator)
}
