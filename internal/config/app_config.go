// Package config loads mdlisting configuration files and resolves run parameters.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/temirov/mdlisting/internal/types"
	"github.com/temirov/mdlisting/internal/utils"
)

const (
	keyInput         = "input"
	keyExclude       = "exclude"
	keyOutput        = "output"
	keyDirectory     = "directory"
	keyTitle         = "title"
	keyListing       = "listing"
	keyConfig        = "config"
	keyForce         = "force"
	keyCopy          = "copy"
	keyTokensEnabled = "tokens.enabled"
	keyTokensModel   = "tokens.model"

	workingDirectoryErrorFormat = "determine working directory: %w"
	resolvePathErrorFormat      = "resolve configuration path %s: %w"
	statErrorFormat             = "stat configuration %s: %w"
	directoryErrorFormat        = "configuration path %s is a directory"
	readErrorFormat             = "read configuration from %s: %w"
	decodeErrorFormat           = "decode configuration from %s: %w"
	decodeEnvironmentFormat     = "decode environment configuration: %w"
)

var environmentKeys = []string{
	keyInput,
	keyExclude,
	keyOutput,
	keyDirectory,
	keyTitle,
	keyListing,
	keyConfig,
	keyForce,
	keyCopy,
	keyTokensEnabled,
	keyTokensModel,
}

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
	HomeDirectory    string
}

// ApplicationConfiguration holds option values read from configuration sources.
// Unset values stay nil or empty so that sources can be layered with Merge.
type ApplicationConfiguration struct {
	Input     []string           `mapstructure:"input" yaml:"input"`
	Exclude   []string           `mapstructure:"exclude" yaml:"exclude"`
	Output    string             `mapstructure:"output" yaml:"output,omitempty"`
	Directory string             `mapstructure:"directory" yaml:"directory,omitempty"`
	Title     string             `mapstructure:"title" yaml:"title,omitempty"`
	Listing   *bool              `mapstructure:"listing" yaml:"listing,omitempty"`
	Config    *bool              `mapstructure:"config" yaml:"config,omitempty"`
	Force     *bool              `mapstructure:"force" yaml:"force,omitempty"`
	Copy      *bool              `mapstructure:"copy" yaml:"copy,omitempty"`
	Tokens    TokenConfiguration `mapstructure:"tokens" yaml:"tokens"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled" yaml:"enabled,omitempty"`
	Model   string `mapstructure:"model" yaml:"model,omitempty"`
}

// LoadApplicationConfiguration loads configuration from the global file, the local
// or explicit file and MDLISTING_* environment variables, in increasing precedence.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == utils.EmptyString {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if globalPath := resolveGlobalConfigPath(options.HomeDirectory); globalPath != utils.EmptyString {
		globalConfiguration, loadError := loadConfigurationFromPath(globalPath, false)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfiguration)
	}

	localPath, resolveError := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveError != nil {
		return ApplicationConfiguration{}, resolveError
	}
	localConfiguration, loadError := loadConfigurationFromPath(localPath, options.ExplicitFilePath != utils.EmptyString)
	if loadError != nil {
		return ApplicationConfiguration{}, loadError
	}
	merged = merged.Merge(localConfiguration)

	environmentConfiguration, environmentError := loadEnvironmentConfiguration()
	if environmentError != nil {
		return ApplicationConfiguration{}, environmentError
	}
	return merged.Merge(environmentConfiguration), nil
}

// GlobalConfigPath returns the location of the global configuration file.
func GlobalConfigPath() string {
	return resolveGlobalConfigPath(utils.EmptyString)
}

func resolveGlobalConfigPath(homeDirectory string) string {
	if homeDirectory == utils.EmptyString {
		resolvedHome, homeError := os.UserHomeDir()
		if homeError != nil {
			return utils.EmptyString
		}
		homeDirectory = resolvedHome
	}
	if homeDirectory == utils.EmptyString {
		return utils.EmptyString
	}
	return filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath == utils.EmptyString {
		return filepath.Join(workingDirectory, utils.ConfigFileName), nil
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath, nil
	}
	absolutePath, absoluteError := filepath.Abs(filepath.Join(workingDirectory, explicitPath))
	if absoluteError != nil {
		return utils.EmptyString, fmt.Errorf(resolvePathErrorFormat, explicitPath, absoluteError)
	}
	return absolutePath, nil
}

// loadConfigurationFromPath decodes a single YAML file. A missing file yields an
// empty configuration unless required is set.
func loadConfigurationFromPath(path string, required bool) (ApplicationConfiguration, error) {
	info, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) && !required {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf(statErrorFormat, path, statError)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf(directoryErrorFormat, path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readError := reader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf(readErrorFormat, path, readError)
	}
	var configuration ApplicationConfiguration
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf(decodeErrorFormat, path, decodeError)
	}
	return configuration, nil
}

func loadEnvironmentConfiguration() (ApplicationConfiguration, error) {
	reader := viper.New()
	reader.SetEnvPrefix(utils.EnvironmentPrefix)
	reader.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	reader.AutomaticEnv()
	for _, key := range environmentKeys {
		if bindError := reader.BindEnv(key); bindError != nil {
			return ApplicationConfiguration{}, fmt.Errorf(decodeEnvironmentFormat, bindError)
		}
	}
	var configuration ApplicationConfiguration
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf(decodeEnvironmentFormat, decodeError)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	if len(override.Input) > 0 {
		result.Input = utils.DeduplicatePatterns(override.Input)
	}
	if len(override.Exclude) > 0 {
		result.Exclude = utils.DeduplicatePatterns(override.Exclude)
	}
	if override.Output != utils.EmptyString {
		result.Output = override.Output
	}
	if override.Directory != utils.EmptyString {
		result.Directory = override.Directory
	}
	if override.Title != utils.EmptyString {
		result.Title = override.Title
	}
	if override.Listing != nil {
		result.Listing = cloneBool(override.Listing)
	}
	if override.Config != nil {
		result.Config = cloneBool(override.Config)
	}
	if override.Force != nil {
		result.Force = cloneBool(override.Force)
	}
	if override.Copy != nil {
		result.Copy = cloneBool(override.Copy)
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	return result
}

func (configuration TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := configuration
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != utils.EmptyString {
		result.Model = override.Model
	}
	return result
}

// Bool returns a pointer to value.
func Bool(value bool) *bool {
	return &value
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func boolOrDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

// DefaultConfiguration returns the configuration matching the built-in defaults.
func DefaultConfiguration() ApplicationConfiguration {
	return ApplicationConfiguration{
		Input:     []string{},
		Exclude:   types.DefaultExclusionPatterns(),
		Output:    types.DefaultOutputFileName,
		Directory: types.DefaultBaseDirectory,
		Title:     types.DefaultTitle,
		Listing:   Bool(true),
		Config:    Bool(true),
		Force:     Bool(false),
		Copy:      Bool(false),
		Tokens: TokenConfiguration{
			Enabled: Bool(false),
			Model:   types.DefaultTokenizerModel,
		},
	}
}
