package config

import (
	"os"
	"path/filepath"
)

// Application state lives beside the binary so the pipeline scripts and
// this viewer agree on locations without any shared configuration.

// DefaultSettingsPath returns the .env settings file beside the executable.
func DefaultSettingsPath() string {
	return filepath.Join(executableDir(), ".env")
}

// DefaultDBPath returns the recording history database beside the executable.
func DefaultDBPath() string {
	return filepath.Join(executableDir(), "history.db")
}

// DefaultDebugLogPath returns the debug log the transcription pipeline writes.
func DefaultDebugLogPath() string {
	return "/tmp/voice-input-debug.log"
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
