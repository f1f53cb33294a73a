package discover

import "path/filepath"

// pathSet keeps unique cleaned paths in insertion order.
type pathSet struct {
	seen    map[string]struct{}
	ordered []string
}

func newPathSet() *pathSet {
	return &pathSet{seen: make(map[string]struct{})}
}

// add records path and reports whether it was not present before.
func (set *pathSet) add(path string) bool {
	cleanPath := filepath.Clean(path)
	if _, exists := set.seen[cleanPath]; exists {
		return false
	}
	set.seen[cleanPath] = struct{}{}
	set.ordered = append(set.ordered, cleanPath)
	return true
}

func (set *pathSet) paths() []string {
	return append([]string(nil), set.ordered...)
}
