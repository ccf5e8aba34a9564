// Package history stores transcription attempts and learned corrections.
package history

import "time"

// Recording is one completed transcription attempt.
type Recording struct {
	ID                int64
	Timestamp         time.Time
	WhisperOutput     string
	LLMOutput         string
	UserCorrection    *string
	AudioDurationMS   int64
	WhisperDurationMS int64
	LLMDurationMS     int64
	TotalDurationMS   int64
	Success           bool
	ErrorMessage      *string
}

// Correction is a learned raw-transcription to intended-text mapping.
//
// Corrections are append-only training data: they snapshot the whisper
// output at correction time and outlive their source recording.
type Correction struct {
	ID             int64
	WhisperPattern string
	IntendedText   string
	CreatedAt      time.Time
}

// Timings carries the per-stage durations of one attempt, in milliseconds.
type Timings struct {
	AudioMS   int64
	WhisperMS int64
	LLMMS     int64
	TotalMS   int64
}
