package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/mdlisting/internal/types"
	"github.com/temirov/mdlisting/internal/utils"
)

func TestInitializeConfigurationCreatesLocalFile(testingInstance *testing.T) {
	workingDirectory := testingInstance.TempDir()
	path, initError := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory, Target: InitTargetLocal})
	if initError != nil {
		testingInstance.Fatalf("InitializeConfiguration error: %v", initError)
	}
	expectedPath := filepath.Join(workingDirectory, utils.ConfigFileName)
	if path != expectedPath {
		testingInstance.Fatalf("expected path %s, got %s", expectedPath, path)
	}
	content, readError := os.ReadFile(path)
	if readError != nil {
		testingInstance.Fatalf("read config: %v", readError)
	}
	for _, expectedFragment := range []string{"title: " + types.DefaultTitle, "output: " + types.DefaultOutputFileName, "node_modules/**"} {
		if !strings.Contains(string(content), expectedFragment) {
			testingInstance.Fatalf("expected %q in configuration:\n%s", expectedFragment, string(content))
		}
	}
}

func TestInitializedConfigurationLoadsBack(testingInstance *testing.T) {
	workingDirectory := testingInstance.TempDir()
	if _, initError := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory}); initError != nil {
		testingInstance.Fatalf("InitializeConfiguration error: %v", initError)
	}
	configuration, loadError := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory, HomeDirectory: testingInstance.TempDir()})
	if loadError != nil {
		testingInstance.Fatalf("LoadApplicationConfiguration error: %v", loadError)
	}
	settings := resolveSettings(testingInstance, configuration)
	defaults := resolveSettings(testingInstance, DefaultConfiguration())
	if settings.Parameters.Title != defaults.Parameters.Title || settings.TokenModel != defaults.TokenModel {
		testingInstance.Fatalf("expected defaults to round trip, got %+v", settings)
	}
}

func TestInitializeConfigurationHonorsGlobalTarget(testingInstance *testing.T) {
	homeDirectory := testingInstance.TempDir()
	path, initError := InitializeConfiguration(InitOptions{Target: InitTargetGlobal, HomeDirectory: homeDirectory})
	if initError != nil {
		testingInstance.Fatalf("InitializeConfiguration error: %v", initError)
	}
	expectedPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
	if path != expectedPath {
		testingInstance.Fatalf("expected %s, got %s", expectedPath, path)
	}
	if _, statError := os.Stat(path); statError != nil {
		testingInstance.Fatalf("expected file to exist at %s: %v", path, statError)
	}
}

func TestInitializeConfigurationPreventsOverwriteWithoutForce(testingInstance *testing.T) {
	workingDirectory := testingInstance.TempDir()
	path := filepath.Join(workingDirectory, utils.ConfigFileName)
	if writeError := os.WriteFile(path, []byte("existing"), 0o600); writeError != nil {
		testingInstance.Fatalf("write seed config: %v", writeError)
	}
	if _, initError := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory}); initError == nil {
		testingInstance.Fatalf("expected error when configuration already exists")
	}
	if _, initError := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory, Force: true}); initError != nil {
		testingInstance.Fatalf("expected forced overwrite to succeed: %v", initError)
	}
}
