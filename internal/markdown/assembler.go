package markdown

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/mdlisting/internal/tree"
	"github.com/temirov/mdlisting/internal/types"
	"github.com/temirov/mdlisting/internal/utils"
)

const (
	readingFileMessageFormat = "Reading file: %s"
	errorFileReadFormat      = "%w %s: %w"
	extensionSeparator       = "."
)

// ErrFileRead reports a listed file that could not be read.
var ErrFileRead = errors.New("unable to read file")

// AssembleOptions describes one document assembly.
type AssembleOptions struct {
	Files         []string
	BaseDirectory string
	Title         string
	IncludeTree   bool
	// IncludeConfig is reserved and currently leaves the document unchanged.
	IncludeConfig bool
	// Tree is the prebuilt tree for Files; it is built on demand when nil.
	Tree     *tree.Document
	Reporter utils.Reporter
}

// Build reads every file in order and returns the unserialized document.
// The first unreadable file aborts the assembly.
func Build(options AssembleOptions) (Document, error) {
	reporter := options.Reporter
	if reporter == nil {
		reporter = utils.NoopReporter{}
	}

	document := Document{Title: options.Title}
	if options.IncludeTree {
		treeDocument := options.Tree
		if treeDocument == nil {
			builtTree, treeError := tree.Build(options.Files, options.BaseDirectory)
			if treeError != nil {
				return Document{}, treeError
			}
			treeDocument = builtTree
		}
		document.TreeLines = treeDocument.Lines()
	}

	document.Blocks = make([]ContentBlock, 0, len(options.Files))
	for _, filePath := range options.Files {
		fileBytes, readError := os.ReadFile(filePath)
		if readError != nil {
			return Document{}, fmt.Errorf(errorFileReadFormat, ErrFileRead, filePath, readError)
		}
		reporter.Report(fmt.Sprintf(readingFileMessageFormat, filePath), true)
		document.Blocks = append(document.Blocks, ContentBlock{
			LanguageTag: LanguageTag(filePath),
			Label:       utils.RelativeSlashPath(filePath, options.BaseDirectory),
			Content:     string(fileBytes),
		})
	}
	return document, nil
}

// Assemble builds and renders the document in one step.
func Assemble(options AssembleOptions) (string, error) {
	document, buildError := Build(options)
	if buildError != nil {
		return "", buildError
	}
	return document.Render(), nil
}

// LanguageTag derives the fence annotation from the file extension without its dot.
// A leading dot of the file name does not start an extension, so ".gitignore" and
// "Makefile" both fall back to the plain text tag.
func LanguageTag(filePath string) string {
	fileName := filepath.Base(filePath)
	separatorIndex := strings.LastIndex(fileName, extensionSeparator)
	if separatorIndex <= 0 || separatorIndex == len(fileName)-1 {
		return types.PlainTextLanguageTag
	}
	return fileName[separatorIndex+1:]
}
