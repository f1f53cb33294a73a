package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/temirov/mdlisting/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	configurationFilePermissions      = 0o600
	configurationDirectoryPermissions = 0o755
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
	HomeDirectory    string
}

// RenderDefaultConfiguration returns the YAML form of DefaultConfiguration.
func RenderDefaultConfiguration() ([]byte, error) {
	content, marshalError := yaml.Marshal(DefaultConfiguration())
	if marshalError != nil {
		return nil, fmt.Errorf("render default configuration: %w", marshalError)
	}
	return content, nil
}

// InitializeConfiguration writes the default configuration to the requested target
// and returns the path written.
func InitializeConfiguration(options InitOptions) (string, error) {
	target := options.Target
	if target == utils.EmptyString {
		target = InitTargetLocal
	}
	var destinationPath string
	switch target {
	case InitTargetLocal:
		workingDirectory := options.WorkingDirectory
		if workingDirectory == utils.EmptyString {
			current, workingDirectoryError := os.Getwd()
			if workingDirectoryError != nil {
				return utils.EmptyString, fmt.Errorf("determine working directory for configuration: %w", workingDirectoryError)
			}
			workingDirectory = current
		}
		destinationPath = filepath.Join(workingDirectory, utils.ConfigFileName)
	case InitTargetGlobal:
		destinationPath = resolveGlobalConfigPath(options.HomeDirectory)
		if destinationPath == utils.EmptyString {
			return utils.EmptyString, errors.New("resolve home directory for configuration")
		}
		configurationDirectory := filepath.Dir(destinationPath)
		if mkdirError := os.MkdirAll(configurationDirectory, configurationDirectoryPermissions); mkdirError != nil {
			return utils.EmptyString, fmt.Errorf("create configuration directory %s: %w", configurationDirectory, mkdirError)
		}
	default:
		return utils.EmptyString, fmt.Errorf("unsupported init target %q", target)
	}

	if _, statError := os.Stat(destinationPath); statError == nil {
		if !options.Force {
			return utils.EmptyString, fmt.Errorf("configuration file already exists at %s", destinationPath)
		}
	} else if !os.IsNotExist(statError) {
		return utils.EmptyString, fmt.Errorf("inspect configuration path %s: %w", destinationPath, statError)
	}

	content, renderError := RenderDefaultConfiguration()
	if renderError != nil {
		return utils.EmptyString, renderError
	}
	if writeError := os.WriteFile(destinationPath, content, configurationFilePermissions); writeError != nil {
		return utils.EmptyString, fmt.Errorf("write configuration to %s: %w", destinationPath, writeError)
	}

	return destinationPath, nil
}
