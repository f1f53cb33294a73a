// Package types defines every cross-package data structure used by the mdlisting CLI.
package types

const (
	// DefaultTitle is the document title used when none is configured.
	DefaultTitle = "File Listing"
	// DefaultOutputFileName is the output file written inside the base directory.
	DefaultOutputFileName = "output.md"
	// DefaultBaseDirectory is the base directory used when none is configured.
	DefaultBaseDirectory = "."
	// PlainTextLanguageTag labels fenced blocks of files without an extension.
	PlainTextLanguageTag = "txt"
	// DirectoryTreeHeading titles the optional tree section.
	DirectoryTreeHeading = "Directory Tree"
	// DefaultTokenizerModel is the model used for token estimates.
	DefaultTokenizerModel = "gpt-4o"
)

// DefaultExclusionPatterns returns the exclusion globs applied when none are configured.
// A fresh slice is returned on every call.
func DefaultExclusionPatterns() []string {
	return []string{"node_modules/**", "dist/**", "build/**"}
}

// Parameters is the fully resolved, immutable configuration of one pipeline run.
// Every default has already been applied by the time a value reaches the core.
type Parameters struct {
	// BaseDirectory is the absolute directory patterns and labels are resolved against.
	BaseDirectory string
	// InclusionPatterns lists the globs selecting files, in priority order.
	InclusionPatterns []string
	// ExclusionPatterns lists globs that keep paths out of the result.
	ExclusionPatterns []string
	// OutputFilePath is the absolute path of the markdown document.
	OutputFilePath string
	// Title is rendered as the top level heading.
	Title string
	// IncludeTree controls the directory tree section.
	IncludeTree bool
	// IncludeConfig is accepted end-to-end but does not change the document.
	IncludeConfig bool
}

// Clone returns a copy of the parameters that shares no slices with the receiver.
func (parameters Parameters) Clone() Parameters {
	cloned := parameters
	cloned.InclusionPatterns = append([]string(nil), parameters.InclusionPatterns...)
	cloned.ExclusionPatterns = append([]string(nil), parameters.ExclusionPatterns...)
	return cloned
}
