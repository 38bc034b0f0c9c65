package extract

import "fmt"

// ExtractionError describes a failure while reading the archive or writing
// one of its entries. Entry is empty when the archive itself is unreadable.
type ExtractionError struct {
	Archive string
	Entry   string
	Err     error
}

func (e *ExtractionError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("%s: %v", e.Entry, e.Err)
	}
	return e.Err.Error()
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
