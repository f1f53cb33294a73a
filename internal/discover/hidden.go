package discover

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	hiddenEntryPrefix       = "."
	slashSeparator          = "/"
	braceDotAlternative     = "{."
	alternativeDotSeparator = ",."
)

// visibleToPattern reports whether every dot-prefixed segment of candidate is
// matched by a pattern segment that itself names a dot entry. Wildcards alone
// never select hidden files or descend into hidden directories, so "**/*"
// skips ".git/HEAD" while ".github/**" and "**/.env" still match.
// Both arguments use forward slashes.
func visibleToPattern(candidate string, pattern string) bool {
	var dotPatternSegments []string
	for _, patternSegment := range strings.Split(pattern, slashSeparator) {
		if namesDotEntry(patternSegment) {
			dotPatternSegments = append(dotPatternSegments, patternSegment)
		}
	}
	for _, candidateSegment := range strings.Split(candidate, slashSeparator) {
		if !strings.HasPrefix(candidateSegment, hiddenEntryPrefix) {
			continue
		}
		if !matchesAnySegment(dotPatternSegments, candidateSegment) {
			return false
		}
	}
	return true
}

// namesDotEntry reports whether a pattern segment starts with a literal dot,
// directly or in one of its brace alternatives.
func namesDotEntry(patternSegment string) bool {
	return strings.HasPrefix(patternSegment, hiddenEntryPrefix) ||
		strings.HasPrefix(patternSegment, braceDotAlternative) ||
		strings.Contains(patternSegment, alternativeDotSeparator)
}

func matchesAnySegment(patternSegments []string, candidateSegment string) bool {
	for _, patternSegment := range patternSegments {
		if matched, _ := doublestar.Match(patternSegment, candidateSegment); matched {
			return true
		}
	}
	return false
}
