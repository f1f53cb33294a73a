package pipeline_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/mdlisting/internal/markdown"
	"github.com/temirov/mdlisting/internal/pipeline"
	"github.com/temirov/mdlisting/internal/types"
)

type recordingReporter struct {
	messages []string
}

func (reporter *recordingReporter) Report(message string, verbose bool) {
	reporter.messages = append(reporter.messages, message)
}

func seedProject(t *testing.T) string {
	t.Helper()
	rootDirectory := t.TempDir()
	files := map[string]string{
		"a.ts":                  "let a = 1;",
		"sub/b.md":              "# B",
		"node_modules/dep/x.js": "ignored",
		"build/artifact.ts":     "ignored",
	}
	for relativePath, content := range files {
		absolutePath := filepath.Join(rootDirectory, filepath.FromSlash(relativePath))
		if err := os.MkdirAll(filepath.Dir(absolutePath), 0o755); err != nil {
			t.Fatalf("create directory for %s: %v", relativePath, err)
		}
		if err := os.WriteFile(absolutePath, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", relativePath, err)
		}
	}
	return rootDirectory
}

func scenarioParameters(rootDirectory string) types.Parameters {
	return types.Parameters{
		BaseDirectory:     rootDirectory,
		InclusionPatterns: []string{"**/*"},
		ExclusionPatterns: types.DefaultExclusionPatterns(),
		OutputFilePath:    filepath.Join(rootDirectory, "listing.out"),
		Title:             "T",
		IncludeTree:       true,
		IncludeConfig:     true,
	}
}

func TestRunProducesDocument(t *testing.T) {
	rootDirectory := seedProject(t)
	parameters := scenarioParameters(rootDirectory)
	reporter := &recordingReporter{}

	result, runError := pipeline.Run(parameters, reporter)
	if runError != nil {
		t.Fatalf("Run error: %v", runError)
	}
	if result.Stage != pipeline.StageDone {
		t.Fatalf("expected stage done, got %s", result.Stage)
	}
	if len(result.Files) != 2 {
		t.Fatalf("expected 2 files, got %v", result.Files)
	}

	written, readError := os.ReadFile(parameters.OutputFilePath)
	if readError != nil {
		t.Fatalf("read output: %v", readError)
	}
	document := string(written)
	if document != result.Document {
		t.Fatalf("written document differs from result document")
	}
	for _, expectedFragment := range []string{
		"# T\n",
		"## Directory Tree",
		".\n├── sub\n│   ├── b.md\n├── a.ts\n```",
		"```ts a.ts\nlet a = 1;\n```",
		"```md sub/b.md\n# B\n```",
	} {
		if !strings.Contains(document, expectedFragment) {
			t.Errorf("expected document to contain %q\n%s", expectedFragment, document)
		}
	}
	if strings.Index(document, "```ts a.ts") > strings.Index(document, "```md sub/b.md") {
		t.Errorf("expected content blocks in sorted path order")
	}
	if strings.Contains(document, "node_modules") || strings.Contains(document, "artifact") {
		t.Errorf("expected excluded files to be absent\n%s", document)
	}
	if strings.Count(document, "```") != 6 {
		t.Errorf("expected one tree fence and two content fences, got %d fence markers", strings.Count(document, "```"))
	}

	lastMessage := reporter.messages[len(reporter.messages)-1]
	if lastMessage != "Markdown file generated at: "+parameters.OutputFilePath {
		t.Errorf("unexpected final notification %q", lastMessage)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	rootDirectory := seedProject(t)
	parameters := scenarioParameters(rootDirectory)
	parameters.OutputFilePath = filepath.Join(t.TempDir(), "output.md")

	if _, runError := pipeline.Run(parameters, nil); runError != nil {
		t.Fatalf("first Run error: %v", runError)
	}
	first, _ := os.ReadFile(parameters.OutputFilePath)
	if _, runError := pipeline.Run(parameters, nil); runError != nil {
		t.Fatalf("second Run error: %v", runError)
	}
	second, _ := os.ReadFile(parameters.OutputFilePath)
	if string(first) != string(second) {
		t.Fatalf("expected byte-identical output")
	}
}

func TestRunNeverListsItsOwnOutput(t *testing.T) {
	rootDirectory := seedProject(t)
	parameters := scenarioParameters(rootDirectory)

	first, runError := pipeline.Run(parameters, nil)
	if runError != nil {
		t.Fatalf("first Run error: %v", runError)
	}
	second, runError := pipeline.Run(parameters, nil)
	if runError != nil {
		t.Fatalf("second Run error: %v", runError)
	}
	if len(second.Files) != len(first.Files) {
		t.Fatalf("expected the output file to stay out of the listing, got %v", second.Files)
	}
	if second.Document != first.Document {
		t.Fatalf("expected identical documents across runs")
	}
}

func TestRunWithZeroMatches(t *testing.T) {
	rootDirectory := seedProject(t)
	parameters := scenarioParameters(rootDirectory)
	parameters.InclusionPatterns = []string{"**/*.rs"}

	result, runError := pipeline.Run(parameters, nil)
	if runError != nil {
		t.Fatalf("Run error: %v", runError)
	}
	if result.Document != "# T\n\n## Directory Tree\n\n```\n.\n```" {
		t.Fatalf("unexpected document %q", result.Document)
	}
}

func TestRunRejectsMissingInclusionPatterns(t *testing.T) {
	parameters := scenarioParameters(t.TempDir())
	parameters.InclusionPatterns = nil

	result, runError := pipeline.Run(parameters, nil)
	if !errors.Is(runError, pipeline.ErrNoInclusionPatterns) {
		t.Fatalf("expected ErrNoInclusionPatterns, got %v", runError)
	}
	if result.Stage != pipeline.StageFailed {
		t.Fatalf("expected failed stage, got %s", result.Stage)
	}
	if _, statError := os.Stat(parameters.OutputFilePath); !os.IsNotExist(statError) {
		t.Fatalf("expected no output file")
	}
}

// removingReporter deletes every matched file as soon as discovery reports it,
// so the file vanishes between discovery and assembly.
type removingReporter struct {
	t *testing.T
}

func (reporter removingReporter) Report(message string, verbose bool) {
	const matchedPrefix = "Matched file: "
	if !strings.HasPrefix(message, matchedPrefix) {
		return
	}
	if err := os.Remove(strings.TrimPrefix(message, matchedPrefix)); err != nil {
		reporter.t.Fatalf("remove matched file: %v", err)
	}
}

func TestRunFailsWithoutTouchingExistingOutput(t *testing.T) {
	rootDirectory := seedProject(t)
	parameters := scenarioParameters(rootDirectory)
	parameters.InclusionPatterns = []string{"*.ts"}
	parameters.OutputFilePath = filepath.Join(t.TempDir(), "output.md")
	if err := os.WriteFile(parameters.OutputFilePath, []byte("previous"), 0o644); err != nil {
		t.Fatalf("seed output: %v", err)
	}

	result, runError := pipeline.Run(parameters, removingReporter{t: t})
	if !errors.Is(runError, markdown.ErrFileRead) {
		t.Fatalf("expected ErrFileRead, got %v", runError)
	}
	var stageError *pipeline.StageError
	if !errors.As(runError, &stageError) || stageError.Stage != pipeline.StageAssembling {
		t.Fatalf("expected assembling stage error, got %v", runError)
	}
	if result.Stage != pipeline.StageFailed {
		t.Fatalf("expected failed stage, got %s", result.Stage)
	}
	content, _ := os.ReadFile(parameters.OutputFilePath)
	if string(content) != "previous" {
		t.Fatalf("expected existing output to stay untouched, got %q", string(content))
	}
}

func TestStageString(t *testing.T) {
	if pipeline.StageTreeBuilding.String() != "tree building" {
		t.Fatalf("unexpected stage name %q", pipeline.StageTreeBuilding.String())
	}
	if pipeline.Stage(42).String() != "stage(42)" {
		t.Fatalf("unexpected unknown stage name %q", pipeline.Stage(42).String())
	}
}
