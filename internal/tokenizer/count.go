package tokenizer

import (
	"errors"
	"fmt"
)

const summaryFormat = "Document tokens: %d (%s)"

// Summary is the token estimate of one document.
type Summary struct {
	Tokens int
	Model  string
}

// String formats the summary for console output.
func (summary Summary) String() string {
	return fmt.Sprintf(summaryFormat, summary.Tokens, summary.Model)
}

// CountDocument estimates tokens for document using counter.
func CountDocument(counter Counter, document string) (Summary, error) {
	if counter == nil {
		return Summary{}, errors.New("nil tokenizer counter")
	}
	tokens, countError := counter.CountString(document)
	if countError != nil {
		return Summary{}, fmt.Errorf("count tokens with %s: %w", counter.Name(), countError)
	}
	return Summary{Tokens: tokens, Model: counter.Name()}, nil
}
