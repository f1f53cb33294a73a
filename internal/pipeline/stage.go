package pipeline

import "fmt"

// Stage identifies a step of a pipeline run.
type Stage int

const (
	StageIdle Stage = iota
	StageCollecting
	StageTreeBuilding
	StageAssembling
	StageWriting
	StageDone
	StageFailed
)

var stageNames = map[Stage]string{
	StageIdle:         "idle",
	StageCollecting:   "collecting",
	StageTreeBuilding: "tree building",
	StageAssembling:   "assembling",
	StageWriting:      "writing",
	StageDone:         "done",
	StageFailed:       "failed",
}

// String returns the lower-case stage name.
func (stage Stage) String() string {
	if name, known := stageNames[stage]; known {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(stage))
}

// StageError records the stage in which a run failed.
type StageError struct {
	Stage Stage
	Err   error
}

// Error implements error.
func (stageError *StageError) Error() string {
	return stageError.Stage.String() + ": " + stageError.Err.Error()
}

// Unwrap exposes the underlying failure to errors.Is and errors.As.
func (stageError *StageError) Unwrap() error {
	return stageError.Err
}
