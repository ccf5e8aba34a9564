// Package prompt renders stored correction patterns as LLM prompt context.
package prompt

import (
	"fmt"
	"strings"

	"github.com/akessler/fluestern/internal/history"
)

// MaxPatterns caps how many recent patterns one export includes.
const MaxPatterns = 20

// contextHeader opens with two newlines so the block can be appended
// directly to an existing system prompt. The exact layout is a
// compatibility contract with the transcription pipeline; do not reflow.
const contextHeader = "\n\nUser correction patterns (use these to better understand what the user means):"

// CorrectionContext renders patterns (expected newest first) as prompt
// context. Returns the empty string when there is nothing to export.
func CorrectionContext(patterns []history.Correction) string {
	if len(patterns) == 0 {
		return ""
	}
	if len(patterns) > MaxPatterns {
		patterns = patterns[:MaxPatterns]
	}

	var b strings.Builder
	b.WriteString(contextHeader)
	for _, p := range patterns {
		fmt.Fprintf(&b, "\n- When transcribed as \"%s\", the user meant: \"%s\"", p.WhisperPattern, p.IntendedText)
	}
	return b.String()
}
