// Package tree folds a flat list of file paths into a directory hierarchy and
// renders it as an ASCII tree.
package tree

import (
	"fmt"
	"sort"
	"strings"

	"github.com/temirov/mdlisting/internal/utils"
)

const (
	rootLine            = "."
	treeBranchConnector = "├── "
	treeBranchPadding   = "│   "
	lineSeparator       = "\n"

	errorFoldPathFormat = "fold %s: %w"
)

// Document is the folded root of a file set together with its rendered lines.
// It is built once and never modified afterwards.
type Document struct {
	root  *DirectoryNode
	lines []string
}

// Build folds paths, interpreted relative to baseDirectory, into a Document.
// Paths are sorted before folding so identical sets always render identically.
// Names are kept byte for byte; repeated paths fold onto the same leaf.
func Build(paths []string, baseDirectory string) (*Document, error) {
	relativePaths := make([]string, 0, len(paths))
	for _, filePath := range paths {
		relativePaths = append(relativePaths, utils.RelativeSlashPath(filePath, baseDirectory))
	}
	sort.Strings(relativePaths)

	root := NewDirectoryNode()
	for _, relativePath := range relativePaths {
		if foldError := fold(root, utils.SplitSlashPath(relativePath)); foldError != nil {
			return nil, fmt.Errorf(errorFoldPathFormat, relativePath, foldError)
		}
	}

	lines := []string{rootLine}
	lines = appendNodeLines(lines, root, 0)
	return &Document{root: root, lines: lines}, nil
}

// Render builds the tree for paths and returns it as a single string.
func Render(paths []string, baseDirectory string) (string, error) {
	document, buildError := Build(paths, baseDirectory)
	if buildError != nil {
		return "", buildError
	}
	return document.String(), nil
}

// Root returns the folded root directory.
func (document *Document) Root() *DirectoryNode {
	return document.root
}

// Lines returns a copy of the rendered lines, the root line first.
func (document *Document) Lines() []string {
	return append([]string(nil), document.lines...)
}

// String joins the rendered lines with newlines.
func (document *Document) String() string {
	return strings.Join(document.lines, lineSeparator)
}

func fold(root *DirectoryNode, segments []string) error {
	if len(segments) == 0 {
		return nil
	}
	current := root
	for _, directoryName := range segments[:len(segments)-1] {
		child, directoryError := current.Directory(directoryName)
		if directoryError != nil {
			return directoryError
		}
		current = child
	}
	return current.AddFile(segments[len(segments)-1])
}

// appendNodeLines renders subdirectories first, each followed by its own
// children one level deeper, then the files of the node.
func appendNodeLines(lines []string, node *DirectoryNode, depth int) []string {
	indentation := strings.Repeat(treeBranchPadding, depth)
	for pair := node.directories.Oldest(); pair != nil; pair = pair.Next() {
		lines = append(lines, indentation+treeBranchConnector+pair.Key)
		lines = appendNodeLines(lines, pair.Value, depth+1)
	}
	for _, fileName := range node.files {
		lines = append(lines, indentation+treeBranchConnector+fileName)
	}
	return lines
}
