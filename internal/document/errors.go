package document

import "fmt"

// ExtractionError reports a document that could not be turned into text.
// It is fatal for the caller: nothing downstream can run without text.
type ExtractionError struct {
	Filename string
	MimeType string
	Reason   string
	Err      error
}

func (e *ExtractionError) Error() string {
	msg := fmt.Sprintf("extract text from %q (%s): %s", e.Filename, e.MimeType, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExtractionError) Unwrap() error { return e.Err }
