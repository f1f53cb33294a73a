// Package utils contains general helper functions used across mdlisting.
package utils

import (
	"path/filepath"
	"strings"
)

const pathSegmentSeparator = "/"

// DeduplicatePatterns removes duplicate entries from a slice while preserving order.
// The first occurrence of each unique value is kept and blank entries are dropped.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{}, len(patterns))
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		if _, exists := encounteredPatterns[trimmedPattern]; !exists {
			encounteredPatterns[trimmedPattern] = struct{}{}
			result = append(result, trimmedPattern)
		}
	}
	return result
}

// SplitPatternList expands comma separated flag values into individual patterns.
// Commas inside brace alternations such as "*.{ts,js}" do not split.
func SplitPatternList(values []string) []string {
	var patterns []string
	for _, value := range values {
		braceDepth := 0
		segmentStart := 0
		for position, character := range value {
			switch character {
			case '{':
				braceDepth++
			case '}':
				if braceDepth > 0 {
					braceDepth--
				}
			case ',':
				if braceDepth == 0 {
					patterns = appendTrimmedPattern(patterns, value[segmentStart:position])
					segmentStart = position + 1
				}
			}
		}
		patterns = appendTrimmedPattern(patterns, value[segmentStart:])
	}
	return patterns
}

func appendTrimmedPattern(patterns []string, candidate string) []string {
	if trimmedCandidate := strings.TrimSpace(candidate); trimmedCandidate != "" {
		return append(patterns, trimmedCandidate)
	}
	return patterns
}

// RelativeSlashPath returns fullPath relative to root using forward slashes.
// Relative inputs are interpreted against root. When no relative form exists,
// the cleaned fullPath is returned.
func RelativeSlashPath(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	if !filepath.IsAbs(cleanPath) {
		return filepath.ToSlash(cleanPath)
	}
	relativePath, relativeError := filepath.Rel(filepath.Clean(root), cleanPath)
	if relativeError != nil {
		return filepath.ToSlash(cleanPath)
	}
	return filepath.ToSlash(relativePath)
}

// SplitSlashPath splits a forward-slash path into its non-empty segments.
func SplitSlashPath(slashPath string) []string {
	rawSegments := strings.Split(slashPath, pathSegmentSeparator)
	segments := make([]string, 0, len(rawSegments))
	for _, segment := range rawSegments {
		if segment == "" || segment == "." {
			continue
		}
		segments = append(segments, segment)
	}
	return segments
}
