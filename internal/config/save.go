package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Save writes the six known keys in fixed order with their comment
// headers, replacing the whole file. Unknown keys picked up by Load are
// dropped here on purpose: the file is regenerated, not merged.
//
// The write goes through a temp file and rename so a crash mid-save
// cannot leave a half-written settings file behind.
func (s *Store) Save() error {
	var b strings.Builder

	b.WriteString("# Voice Input Configuration\n")
	b.WriteString("# Get your Groq API key from: https://console.groq.com/keys\n")
	fmt.Fprintf(&b, "GROQ_API_KEY=\"%s\"\n\n", s.Get(KeyGroqAPIKey, ""))

	b.WriteString("# Selected microphone source (leave empty for default, or set via tray menu)\n")
	b.WriteString("# Run 'pactl list sources short' to see available sources\n")
	fmt.Fprintf(&b, "MIC_SOURCE=\"%s\"\n\n", s.Get(KeyMicSource, ""))

	b.WriteString("# Language for transcription (e.g., \"de\" for German, \"en\" for English)\n")
	b.WriteString("# Leave empty for auto-detect\n")
	fmt.Fprintf(&b, "LANGUAGE=\"%s\"\n\n", s.Get(KeyLanguage, ""))

	b.WriteString("# Show notifications (true/false, default: true)\n")
	fmt.Fprintf(&b, "NOTIFICATIONS=\"%s\"\n\n", s.Get(KeyNotifications, "true"))

	b.WriteString("# Show tray icon (true/false, default: true)\n")
	fmt.Fprintf(&b, "TRAY_ICON=\"%s\"\n\n", s.Get(KeyTrayIcon, "true"))

	b.WriteString("# System prompt for LLM formatting (customize to improve output)\n")
	fmt.Fprintf(&b, "SYSTEM_PROMPT=\"%s\"\n\n", s.Get(KeySystemPrompt, DefaultSystemPrompt))

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("write settings %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace settings %q: %w", s.path, err)
	}
	return nil
}
