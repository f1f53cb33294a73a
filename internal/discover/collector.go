// Package discover expands glob patterns against a base directory into the set of files to list.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/temirov/mdlisting/internal/utils"
)

const (
	matchedFileMessageFormat = "Matched file: %s"
	errorPatternFormat       = "%w %q: %v"
	errorExclusionFormat     = "%w %q (exclusion)"
	parentDirectoryPrefix    = "../"
)

// ErrInvalidPattern reports a glob pattern that cannot be parsed.
var ErrInvalidPattern = errors.New("invalid glob pattern")

// Collect resolves every inclusion pattern against baseDirectory and returns the
// matching files as absolute paths. A file excluded by any exclusion pattern
// never enters the result. Matches of one pattern are ordered lexicographically;
// across patterns the first occurrence of a file determines its position. Each
// newly added file is reported once as a verbose notification.
//
// Callers guarantee inclusionPatterns is not empty.
func Collect(baseDirectory string, inclusionPatterns []string, exclusionPatterns []string, reporter utils.Reporter) ([]string, error) {
	if reporter == nil {
		reporter = utils.NoopReporter{}
	}
	absoluteBaseDirectory, absoluteError := filepath.Abs(baseDirectory)
	if absoluteError != nil {
		return nil, fmt.Errorf("resolve base directory %s: %w", baseDirectory, absoluteError)
	}

	exclusions, exclusionError := compileExclusions(exclusionPatterns)
	if exclusionError != nil {
		return nil, exclusionError
	}

	baseFileSystem := os.DirFS(absoluteBaseDirectory)
	collected := newPathSet()
	for _, inclusionPattern := range inclusionPatterns {
		candidatePaths, globError := expandPattern(baseFileSystem, absoluteBaseDirectory, inclusionPattern)
		if globError != nil {
			return nil, fmt.Errorf(errorPatternFormat, ErrInvalidPattern, inclusionPattern, globError)
		}
		sort.Strings(candidatePaths)
		for _, candidatePath := range candidatePaths {
			if exclusions.matches(candidatePath, absoluteBaseDirectory) {
				continue
			}
			if collected.add(candidatePath) {
				reporter.Report(fmt.Sprintf(matchedFileMessageFormat, candidatePath), true)
			}
		}
	}
	return collected.paths(), nil
}

// expandPattern returns absolute paths of the regular files matched by pattern.
// Patterns that stay inside the base directory are walked through an fs.FS
// rooted at it; absolute patterns and patterns climbing out of it are expanded
// against the host file system. Hidden entries are only returned when the
// pattern names them explicitly.
func expandPattern(baseFileSystem fs.FS, absoluteBaseDirectory string, pattern string) ([]string, error) {
	slashPattern := cleanSlashPattern(pattern)
	if isOutsideBase(pattern, slashPattern) {
		resolvedPattern := pattern
		if !filepath.IsAbs(pattern) {
			resolvedPattern = filepath.Join(absoluteBaseDirectory, pattern)
		}
		absoluteMatches, globError := doublestar.FilepathGlob(resolvedPattern, doublestar.WithFilesOnly())
		if globError != nil {
			return nil, globError
		}
		slashResolvedPattern := filepath.ToSlash(resolvedPattern)
		visibleMatches := make([]string, 0, len(absoluteMatches))
		for _, absoluteMatch := range absoluteMatches {
			if visibleToPattern(filepath.ToSlash(absoluteMatch), slashResolvedPattern) {
				visibleMatches = append(visibleMatches, absoluteMatch)
			}
		}
		return visibleMatches, nil
	}
	relativeMatches, globError := doublestar.Glob(baseFileSystem, slashPattern, doublestar.WithFilesOnly())
	if globError != nil {
		return nil, globError
	}
	absoluteMatches := make([]string, 0, len(relativeMatches))
	for _, relativeMatch := range relativeMatches {
		if !visibleToPattern(relativeMatch, slashPattern) {
			continue
		}
		absoluteMatches = append(absoluteMatches, filepath.Join(absoluteBaseDirectory, filepath.FromSlash(relativeMatch)))
	}
	return absoluteMatches, nil
}

func cleanSlashPattern(pattern string) string {
	return path.Clean(filepath.ToSlash(pattern))
}

func isOutsideBase(pattern string, slashPattern string) bool {
	return filepath.IsAbs(pattern) || slashPattern == ".." || strings.HasPrefix(slashPattern, parentDirectoryPrefix)
}

// exclusionSet holds exclusion patterns in forward-slash form.
type exclusionSet struct {
	relativePatterns []string
	absolutePatterns []string
}

func compileExclusions(exclusionPatterns []string) (exclusionSet, error) {
	var exclusions exclusionSet
	for _, exclusionPattern := range exclusionPatterns {
		slashPattern := cleanSlashPattern(exclusionPattern)
		if !doublestar.ValidatePattern(slashPattern) {
			return exclusionSet{}, fmt.Errorf(errorExclusionFormat, ErrInvalidPattern, exclusionPattern)
		}
		if filepath.IsAbs(exclusionPattern) {
			exclusions.absolutePatterns = append(exclusions.absolutePatterns, slashPattern)
			continue
		}
		exclusions.relativePatterns = append(exclusions.relativePatterns, slashPattern)
	}
	return exclusions, nil
}

// matches reports whether candidatePath is excluded. Relative exclusion patterns
// are resolved against the base directory, exactly like inclusion patterns.
func (exclusions exclusionSet) matches(candidatePath string, absoluteBaseDirectory string) bool {
	relativeCandidate := utils.RelativeSlashPath(candidatePath, absoluteBaseDirectory)
	for _, relativePattern := range exclusions.relativePatterns {
		if matched, _ := doublestar.Match(relativePattern, relativeCandidate); matched {
			return true
		}
	}
	absoluteCandidate := filepath.ToSlash(candidatePath)
	for _, absolutePattern := range exclusions.absolutePatterns {
		if matched, _ := doublestar.Match(absolutePattern, absoluteCandidate); matched {
			return true
		}
	}
	return false
}
