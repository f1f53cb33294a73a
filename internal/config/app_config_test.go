package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/mdlisting/internal/utils"
)

func writeConfigurationFile(testingInstance *testing.T, path, content string) {
	testingInstance.Helper()
	if mkdirError := os.MkdirAll(filepath.Dir(path), 0o755); mkdirError != nil {
		testingInstance.Fatalf("create directory for %s: %v", path, mkdirError)
	}
	if writeError := os.WriteFile(path, []byte(content), 0o600); writeError != nil {
		testingInstance.Fatalf("write %s: %v", path, writeError)
	}
}

func TestLoadApplicationConfigurationMergesSources(testingInstance *testing.T) {
	testCases := []struct {
		name            string
		globalContent   string
		localContent    string
		explicitName    string
		explicitContent string
		expectInput     []string
		expectTitle     string
		expectListing   *bool
		expectModel     string
		expectCopy      *bool
	}{
		{
			name:          "local_overrides_global",
			globalContent: "title: Global\nlisting: false\ncopy: true\n",
			localContent:  "title: Local\ninput:\n  - \"**/*.go\"\ntokens:\n  model: custom\n",
			expectInput:   []string{"**/*.go"},
			expectTitle:   "Local",
			expectListing: Bool(false),
			expectModel:   "custom",
			expectCopy:    Bool(true),
		},
		{
			name:            "explicit_path_replaces_local",
			globalContent:   "title: Global\n",
			localContent:    "title: Local\n",
			explicitName:    "custom.yaml",
			explicitContent: "title: Explicit\ninput: [\"*.md\", \"*.md\"]\n",
			expectInput:     []string{"*.md"},
			expectTitle:     "Explicit",
		},
		{
			name:        "no_files",
			expectInput: nil,
		},
	}

	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(testingHandle *testing.T) {
			homeDirectory := testingHandle.TempDir()
			workingDirectory := testingHandle.TempDir()
			if testCase.globalContent != "" {
				writeConfigurationFile(testingHandle, filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName), testCase.globalContent)
			}
			if testCase.localContent != "" {
				writeConfigurationFile(testingHandle, filepath.Join(workingDirectory, utils.ConfigFileName), testCase.localContent)
			}
			if testCase.explicitName != "" {
				writeConfigurationFile(testingHandle, filepath.Join(workingDirectory, testCase.explicitName), testCase.explicitContent)
			}

			configuration, loadError := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDirectory,
				ExplicitFilePath: testCase.explicitName,
				HomeDirectory:    homeDirectory,
			})
			if loadError != nil {
				testingHandle.Fatalf("LoadApplicationConfiguration error: %v", loadError)
			}
			if !reflect.DeepEqual(configuration.Input, testCase.expectInput) {
				testingHandle.Fatalf("expected input %v, got %v", testCase.expectInput, configuration.Input)
			}
			if configuration.Title != testCase.expectTitle {
				testingHandle.Fatalf("expected title %q, got %q", testCase.expectTitle, configuration.Title)
			}
			if !reflect.DeepEqual(configuration.Listing, testCase.expectListing) {
				testingHandle.Fatalf("expected listing %v, got %v", testCase.expectListing, configuration.Listing)
			}
			if configuration.Tokens.Model != testCase.expectModel {
				testingHandle.Fatalf("expected model %q, got %q", testCase.expectModel, configuration.Tokens.Model)
			}
			if !reflect.DeepEqual(configuration.Copy, testCase.expectCopy) {
				testingHandle.Fatalf("expected copy %v, got %v", testCase.expectCopy, configuration.Copy)
			}
		})
	}
}

func TestLoadApplicationConfigurationRequiresExplicitFile(testingInstance *testing.T) {
	_, loadError := LoadApplicationConfiguration(LoadOptions{
		WorkingDirectory: testingInstance.TempDir(),
		ExplicitFilePath: "missing.yaml",
		HomeDirectory:    testingInstance.TempDir(),
	})
	if loadError == nil {
		testingInstance.Fatalf("expected error for missing explicit configuration file")
	}
}

func TestLoadApplicationConfigurationRejectsMalformedYAML(testingInstance *testing.T) {
	workingDirectory := testingInstance.TempDir()
	writeConfigurationFile(testingInstance, filepath.Join(workingDirectory, utils.ConfigFileName), "input: [unterminated\n")
	_, loadError := LoadApplicationConfiguration(LoadOptions{
		WorkingDirectory: workingDirectory,
		HomeDirectory:    testingInstance.TempDir(),
	})
	if loadError == nil {
		testingInstance.Fatalf("expected decode error for malformed configuration")
	}
}

func TestLoadApplicationConfigurationReadsEnvironment(testingInstance *testing.T) {
	workingDirectory := testingInstance.TempDir()
	writeConfigurationFile(testingInstance, filepath.Join(workingDirectory, utils.ConfigFileName), "title: Local\n")
	testingInstance.Setenv("MDLISTING_TITLE", "From Environment")
	testingInstance.Setenv("MDLISTING_LISTING", "false")
	testingInstance.Setenv("MDLISTING_TOKENS_MODEL", "gpt-4")

	configuration, loadError := LoadApplicationConfiguration(LoadOptions{
		WorkingDirectory: workingDirectory,
		HomeDirectory:    testingInstance.TempDir(),
	})
	if loadError != nil {
		testingInstance.Fatalf("LoadApplicationConfiguration error: %v", loadError)
	}
	if configuration.Title != "From Environment" {
		testingInstance.Fatalf("expected environment title, got %q", configuration.Title)
	}
	if configuration.Listing == nil || *configuration.Listing {
		testingInstance.Fatalf("expected listing disabled by environment, got %v", configuration.Listing)
	}
	if configuration.Tokens.Model != "gpt-4" {
		testingInstance.Fatalf("expected environment model, got %q", configuration.Tokens.Model)
	}
}

func TestMergeKeepsUnsetValues(testingInstance *testing.T) {
	base := ApplicationConfiguration{Title: "Base", Listing: Bool(false), Exclude: []string{"vendor/**"}}
	merged := base.Merge(ApplicationConfiguration{Output: "listing.md"})
	if merged.Title != "Base" || merged.Output != "listing.md" {
		testingInstance.Fatalf("unexpected merge result %+v", merged)
	}
	if merged.Listing == nil || *merged.Listing {
		testingInstance.Fatalf("expected listing to remain false")
	}
	if !reflect.DeepEqual(merged.Exclude, []string{"vendor/**"}) {
		testingInstance.Fatalf("expected exclude to remain, got %v", merged.Exclude)
	}
}
