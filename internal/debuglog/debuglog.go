// Package debuglog reads and clears the debug log the transcription
// pipeline writes. This process never appends to it; clearing the file
// is the only write-side boundary it owns.
package debuglog

import (
	"errors"
	"fmt"
	"os"
)

// Read returns the current log content. A missing file reads as empty:
// the pipeline creates it on its next run.
func Read(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read debug log %q: %w", path, err)
	}
	return string(content), nil
}

// Clear removes the log file. Clearing an absent file is a no-op.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear debug log %q: %w", path, err)
	}
	return nil
}
