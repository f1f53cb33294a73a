// Package output persists the assembled markdown document.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	temporaryFilePattern = ".mdlisting-*.tmp"
	outputFileMode       = 0o644
	errorWriteFormat     = "%w %s: %w"
)

// ErrWrite reports that the document could not be persisted.
var ErrWrite = errors.New("unable to write output file")

// WriteDocument stores content at outputFilePath as UTF-8 text, replacing any
// existing file. The content is written to a sibling temporary file first and
// renamed into place, so a failed write leaves an existing file untouched.
func WriteDocument(outputFilePath string, content string) (err error) {
	destinationDirectory := filepath.Dir(outputFilePath)
	temporaryFile, createError := os.CreateTemp(destinationDirectory, temporaryFilePattern)
	if createError != nil {
		return fmt.Errorf(errorWriteFormat, ErrWrite, outputFilePath, createError)
	}
	temporaryPath := temporaryFile.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(temporaryPath)
		}
	}()

	if _, writeError := temporaryFile.WriteString(content); writeError != nil {
		_ = temporaryFile.Close()
		return fmt.Errorf(errorWriteFormat, ErrWrite, outputFilePath, writeError)
	}
	if syncError := temporaryFile.Sync(); syncError != nil {
		_ = temporaryFile.Close()
		return fmt.Errorf(errorWriteFormat, ErrWrite, outputFilePath, syncError)
	}
	if closeError := temporaryFile.Close(); closeError != nil {
		return fmt.Errorf(errorWriteFormat, ErrWrite, outputFilePath, closeError)
	}
	if chmodError := os.Chmod(temporaryPath, outputFileMode); chmodError != nil {
		return fmt.Errorf(errorWriteFormat, ErrWrite, outputFilePath, chmodError)
	}
	if renameError := os.Rename(temporaryPath, outputFilePath); renameError != nil {
		return fmt.Errorf(errorWriteFormat, ErrWrite, outputFilePath, renameError)
	}
	return nil
}
