package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// ChunkSize bounds how much of the response body is held in memory at once
const ChunkSize = 8192

// File permissions
const (
	OutputFilePermissions = 0644
	OutputDirPermissions  = 0755
)

// ProgressFunc receives the number of bytes written so far and the expected
// total (-1 if unknown).
type ProgressFunc func(done, total int64)

// Fetch downloads url into dest, overwriting any existing file. The response
// status is checked before dest is opened, so a non-2xx response never
// creates the file. A failure while streaming leaves the partial file in
// place; the next attempt truncates it. It returns the number of bytes written.
func Fetch(ctx context.Context, client *http.Client, url, dest string, onProgress ProgressFunc) (int64, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, &TransferError{URL: url, Err: fmt.Errorf("creating GET request: %w", err)}
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, &TransferError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return 0, &TransferError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", resp.Status),
		}
	}

	if err := os.MkdirAll(filepath.Dir(dest), OutputDirPermissions); err != nil {
		return 0, &TransferError{URL: url, Err: fmt.Errorf("creating output directory: %w", err)}
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, OutputFilePermissions)
	if err != nil {
		return 0, &TransferError{URL: url, Err: fmt.Errorf("opening %s for writing: %w", dest, err)}
	}

	total := resp.ContentLength
	if onProgress != nil {
		onProgress(0, total)
	}

	written, err := copyChunks(out, resp.Body, total, onProgress)
	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("closing output file: %w", closeErr)
	}
	if err != nil {
		var te *TransferError
		if errors.As(err, &te) {
			te.URL = url
			return written, te
		}
		return written, &TransferError{URL: url, Err: err}
	}

	return written, nil
}

// copyChunks streams src into dst ChunkSize bytes at a time
func copyChunks(dst io.Writer, src io.Reader, total int64, onProgress ProgressFunc) (int64, error) {
	buffer := make([]byte, ChunkSize)
	var written int64
	for {
		n, readErr := src.Read(buffer)
		if n > 0 {
			if _, err := dst.Write(buffer[:n]); err != nil {
				return written, fmt.Errorf("writing to output file: %w", err)
			}
			written += int64(n)
			if onProgress != nil {
				onProgress(written, total)
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, &TransferError{Err: fmt.Errorf("reading response body: %w", readErr)}
		}
	}
}
