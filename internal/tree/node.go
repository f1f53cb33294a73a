package tree

import (
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const errorNameConflictFormat = "%w: %q"

// ErrNameConflict reports a name used both as a directory and as a file under one node.
var ErrNameConflict = errors.New("name is both a directory and a file")

// DirectoryNode is one path segment of the folded tree. It exclusively owns its
// subdirectories, kept in insertion order, and the names of files directly inside it.
type DirectoryNode struct {
	directories *orderedmap.OrderedMap[string, *DirectoryNode]
	files       []string
	fileNames   map[string]struct{}
}

// NewDirectoryNode returns an empty node.
func NewDirectoryNode() *DirectoryNode {
	return &DirectoryNode{
		directories: orderedmap.New[string, *DirectoryNode](),
		fileNames:   make(map[string]struct{}),
	}
}

// Directory returns the child directory called name, creating it on first use.
func (node *DirectoryNode) Directory(name string) (*DirectoryNode, error) {
	if existing, present := node.directories.Get(name); present {
		return existing, nil
	}
	if _, isFile := node.fileNames[name]; isFile {
		return nil, fmt.Errorf(errorNameConflictFormat, ErrNameConflict, name)
	}
	child := NewDirectoryNode()
	node.directories.Set(name, child)
	return child, nil
}

// AddFile records name as a file leaf of the node. Adding the same name twice is a no-op.
func (node *DirectoryNode) AddFile(name string) error {
	if _, isDirectory := node.directories.Get(name); isDirectory {
		return fmt.Errorf(errorNameConflictFormat, ErrNameConflict, name)
	}
	if _, exists := node.fileNames[name]; exists {
		return nil
	}
	node.fileNames[name] = struct{}{}
	node.files = append(node.files, name)
	return nil
}

// DirectoryNames lists the child directories in insertion order.
func (node *DirectoryNode) DirectoryNames() []string {
	names := make([]string, 0, node.directories.Len())
	for pair := node.directories.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Child returns the child directory called name.
func (node *DirectoryNode) Child(name string) (*DirectoryNode, bool) {
	return node.directories.Get(name)
}

// FileNames lists the file leaves in insertion order.
func (node *DirectoryNode) FileNames() []string {
	return append([]string(nil), node.files...)
}
