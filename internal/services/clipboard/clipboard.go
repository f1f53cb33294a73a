// Package clipboard copies the assembled markdown document to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

const copyFailedFormat = "copy document to clipboard: %w"

// ErrUnavailable indicates that no clipboard utility is available on this system.
var ErrUnavailable = errors.New("clipboard is not available on this system")

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a clipboard Service.
func NewService() *Service {
	return &Service{}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf(copyFailedFormat, ErrUnavailable)
	}
	if writeError := clipboard.WriteAll(text); writeError != nil {
		return fmt.Errorf(copyFailedFormat, writeError)
	}
	return nil
}

// CopyFunc adapts a plain function to the Copier interface.
type CopyFunc func(text string) error

// Copy calls the wrapped function.
func (copyFunction CopyFunc) Copy(text string) error {
	return copyFunction(text)
}

var (
	_ Copier = (*Service)(nil)
	_ Copier = CopyFunc(nil)
)
