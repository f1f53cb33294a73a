// Package pipeline runs discovery, tree building, assembly and writing once per invocation.
package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/temirov/mdlisting/internal/discover"
	"github.com/temirov/mdlisting/internal/markdown"
	"github.com/temirov/mdlisting/internal/output"
	"github.com/temirov/mdlisting/internal/tree"
	"github.com/temirov/mdlisting/internal/types"
	"github.com/temirov/mdlisting/internal/utils"
)

const generatedMessageFormat = "Markdown file generated at: %s"

// ErrNoInclusionPatterns reports a run requested without any inclusion glob.
var ErrNoInclusionPatterns = errors.New("input globs must be specified")

// Result describes a finished run.
type Result struct {
	Files          []string
	Document       string
	OutputFilePath string
	Stage          Stage
}

// Run executes Idle → Collecting → TreeBuilding → Assembling → Writing → Done.
// The first failure ends the run in StageFailed with a *StageError naming the
// stage. The document is assembled completely before anything is written.
func Run(parameters types.Parameters, reporter utils.Reporter) (Result, error) {
	if reporter == nil {
		reporter = utils.NoopReporter{}
	}
	runner := &run{parameters: parameters.Clone(), result: Result{Stage: StageIdle}}
	if len(runner.parameters.InclusionPatterns) == 0 {
		return runner.fail(ErrNoInclusionPatterns)
	}
	runner.result.OutputFilePath = runner.parameters.OutputFilePath

	runner.enter(StageCollecting)
	files, collectError := discover.Collect(
		runner.parameters.BaseDirectory,
		runner.parameters.InclusionPatterns,
		runner.parameters.ExclusionPatterns,
		reporter,
	)
	if collectError != nil {
		return runner.fail(collectError)
	}
	files = withoutOutputFile(files, runner.parameters.OutputFilePath)
	runner.result.Files = files

	var treeDocument *tree.Document
	if runner.parameters.IncludeTree {
		runner.enter(StageTreeBuilding)
		builtTree, treeError := tree.Build(files, runner.parameters.BaseDirectory)
		if treeError != nil {
			return runner.fail(treeError)
		}
		treeDocument = builtTree
	}

	runner.enter(StageAssembling)
	document, assembleError := markdown.Assemble(markdown.AssembleOptions{
		Files:         files,
		BaseDirectory: runner.parameters.BaseDirectory,
		Title:         runner.parameters.Title,
		IncludeTree:   runner.parameters.IncludeTree,
		IncludeConfig: runner.parameters.IncludeConfig,
		Tree:          treeDocument,
		Reporter:      reporter,
	})
	if assembleError != nil {
		return runner.fail(assembleError)
	}
	runner.result.Document = document

	runner.enter(StageWriting)
	if writeError := output.WriteDocument(runner.parameters.OutputFilePath, document); writeError != nil {
		return runner.fail(writeError)
	}

	runner.enter(StageDone)
	reporter.Report(fmt.Sprintf(generatedMessageFormat, runner.parameters.OutputFilePath), true)
	return runner.result, nil
}

// withoutOutputFile drops the document being replaced from the listed files.
func withoutOutputFile(files []string, outputFilePath string) []string {
	absoluteOutputPath, absoluteError := filepath.Abs(outputFilePath)
	if absoluteError != nil {
		return files
	}
	kept := make([]string, 0, len(files))
	for _, filePath := range files {
		if filepath.Clean(filePath) == absoluteOutputPath {
			continue
		}
		kept = append(kept, filePath)
	}
	return kept
}

type run struct {
	parameters types.Parameters
	result     Result
}

func (runner *run) enter(stage Stage) {
	runner.result.Stage = stage
}

func (runner *run) fail(cause error) (Result, error) {
	failedStage := runner.result.Stage
	runner.result.Stage = StageFailed
	return runner.result, &StageError{Stage: failedStage, Err: cause}
}
