// Package doctor runs readiness diagnostics for settings, the history
// database, and the pipeline debug log.
package doctor

import (
	"fmt"
	"os"
	"strings"

	"github.com/akessler/fluestern/internal/config"
	"github.com/akessler/fluestern/internal/history"
)

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Run executes settings/storage checks for a loaded configuration.
func Run(cfg config.Loaded, dbPath, debugLogPath string) Report {
	checks := []Check{}

	if cfg.Exists {
		checks = append(checks, Check{
			Name:    "settings",
			Pass:    true,
			Message: fmt.Sprintf("loaded %q", cfg.Path),
		})
	} else {
		checks = append(checks, Check{
			Name:    "settings",
			Pass:    true,
			Message: fmt.Sprintf("%q not found, using defaults", cfg.Path),
		})
	}

	checks = append(checks, checkAPIKey(cfg.Store))
	checks = append(checks, checkDatabase(dbPath))
	checks = append(checks, checkDebugLog(debugLogPath))

	return Report{Checks: checks}
}

// checkAPIKey validates that a Groq API key is configured; the pipeline
// cannot transcribe without one.
func checkAPIKey(store *config.Store) Check {
	if strings.TrimSpace(store.Get(config.KeyGroqAPIKey, "")) == "" {
		return Check{Name: "groq.api_key", Pass: false, Message: "GROQ_API_KEY is empty"}
	}
	return Check{Name: "groq.api_key", Pass: true, Message: "API key is set"}
}

// checkDatabase opens the history database and counts stored attempts.
func checkDatabase(path string) Check {
	store, err := history.Open(path)
	if err != nil {
		return Check{Name: "database", Pass: false, Message: err.Error()}
	}
	defer store.Close()

	recordings, err := store.Recordings(1)
	if err != nil {
		return Check{Name: "database", Pass: false, Message: err.Error()}
	}
	if len(recordings) == 0 {
		return Check{Name: "database", Pass: true, Message: fmt.Sprintf("opened %q (no recordings yet)", path)}
	}
	return Check{Name: "database", Pass: true, Message: fmt.Sprintf("opened %q", path)}
}

// checkDebugLog reports whether the pipeline has written its log yet.
func checkDebugLog(path string) Check {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Check{Name: "debug.log", Pass: true, Message: fmt.Sprintf("%q not created yet (pipeline writes it)", path)}
		}
		return Check{Name: "debug.log", Pass: false, Message: err.Error()}
	}
	return Check{Name: "debug.log", Pass: true, Message: fmt.Sprintf("%q present (%d bytes)", path, info.Size())}
}
