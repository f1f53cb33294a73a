package config

import (
	"fmt"
	"path/filepath"

	"github.com/temirov/mdlisting/internal/types"
	"github.com/temirov/mdlisting/internal/utils"
)

// RunSettings is the fully resolved configuration of one invocation.
type RunSettings struct {
	Parameters    types.Parameters
	Force         bool
	Copy          bool
	TokensEnabled bool
	TokenModel    string
}

// ResolveParameters applies built-in defaults to configuration exactly once and
// returns the immutable settings for a run. The base directory is made absolute
// and a relative output file is placed inside it.
func ResolveParameters(configuration ApplicationConfiguration) (RunSettings, error) {
	directory := configuration.Directory
	if directory == utils.EmptyString {
		directory = types.DefaultBaseDirectory
	}
	baseDirectory, absoluteError := filepath.Abs(directory)
	if absoluteError != nil {
		return RunSettings{}, fmt.Errorf("resolve directory %s: %w", directory, absoluteError)
	}
	outputFileName := configuration.Output
	if outputFileName == utils.EmptyString {
		outputFileName = types.DefaultOutputFileName
	}
	outputFilePath := outputFileName
	if !filepath.IsAbs(outputFileName) {
		outputFilePath = filepath.Join(baseDirectory, outputFileName)
	}
	title := configuration.Title
	if title == utils.EmptyString {
		title = types.DefaultTitle
	}
	exclusionPatterns := utils.DeduplicatePatterns(configuration.Exclude)
	if len(exclusionPatterns) == 0 {
		exclusionPatterns = types.DefaultExclusionPatterns()
	}
	tokenModel := configuration.Tokens.Model
	if tokenModel == utils.EmptyString {
		tokenModel = types.DefaultTokenizerModel
	}

	return RunSettings{
		Parameters: types.Parameters{
			BaseDirectory:     baseDirectory,
			InclusionPatterns: utils.DeduplicatePatterns(configuration.Input),
			ExclusionPatterns: exclusionPatterns,
			OutputFilePath:    outputFilePath,
			Title:             title,
			IncludeTree:       boolOrDefault(configuration.Listing, true),
			IncludeConfig:     boolOrDefault(configuration.Config, true),
		},
		Force:         boolOrDefault(configuration.Force, false),
		Copy:          boolOrDefault(configuration.Copy, false),
		TokensEnabled: boolOrDefault(configuration.Tokens.Enabled, false),
		TokenModel:    tokenModel,
	}, nil
}
