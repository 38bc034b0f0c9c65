package download

import (
	"fmt"
	"net/http"
)

// TransferError describes a failed download: a transport error or a non-2xx
// HTTP response. StatusCode is zero for transport errors.
type TransferError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransferError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return e.Err.Error()
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
