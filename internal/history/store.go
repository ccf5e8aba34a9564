package history

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultListLimit bounds Recordings when the caller passes no limit.
const DefaultListLimit = 100

// timeLayout is RFC 3339 with a fixed-width fraction so that text
// ordering of stored timestamps matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store provides read-write access to the recording history database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS recordings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TEXT NOT NULL,
			whisper_output TEXT,
			llm_output TEXT,
			user_correction TEXT,
			audio_duration_ms INTEGER,
			whisper_duration_ms INTEGER,
			llm_duration_ms INTEGER,
			total_duration_ms INTEGER,
			success INTEGER DEFAULT 1,
			error_message TEXT
		);

		CREATE TABLE IF NOT EXISTS corrections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			whisper_pattern TEXT NOT NULL,
			intended_text TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// AddRecording inserts one completed transcription attempt and returns
// its assigned id. The timestamp is set here, not by the caller.
func (s *Store) AddRecording(whisperOutput, llmOutput string, timings Timings, success bool, errorMessage *string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO recordings
		(timestamp, whisper_output, llm_output, audio_duration_ms,
		 whisper_duration_ms, llm_duration_ms, total_duration_ms, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		s.now().UTC().Format(timeLayout),
		whisperOutput,
		llmOutput,
		timings.AudioMS,
		timings.WhisperMS,
		timings.LLMMS,
		timings.TotalMS,
		boolToInt(success),
		errorMessage,
	)
	if err != nil {
		return 0, fmt.Errorf("insert recording: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert recording id: %w", err)
	}
	return id, nil
}

// Recording returns the recording with the given id, or nil when absent.
func (s *Store) Recording(id int64) (*Recording, error) {
	row := s.db.QueryRow(`
		SELECT id, timestamp, whisper_output, llm_output, user_correction,
		       audio_duration_ms, whisper_duration_ms, llm_duration_ms,
		       total_duration_ms, success, error_message
		FROM recordings
		WHERE id = ?
	`, id)

	rec, err := scanRecording(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan recording: %w", err)
	}
	return rec, nil
}

// Recordings returns up to limit recordings, newest first. A limit of
// zero or less falls back to DefaultListLimit.
func (s *Store) Recordings(limit int) ([]Recording, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.Query(`
		SELECT id, timestamp, whisper_output, llm_output, user_correction,
		       audio_duration_ms, whisper_duration_ms, llm_duration_ms,
		       total_duration_ms, success, error_message
		FROM recordings
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recordings: %w", err)
	}
	defer rows.Close()

	var recordings []Recording
	for rows.Next() {
		rec, err := scanRecording(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan recording: %w", err)
		}
		recordings = append(recordings, *rec)
	}
	return recordings, rows.Err()
}

// UpdateCorrection sets the user correction on a recording and, when the
// recording's whisper output is non-empty, records a correction pattern
// snapshotting that output. Both writes happen in one transaction.
// A missing id is a silent no-op.
func (s *Store) UpdateCorrection(id int64, correctionText string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin correction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE recordings SET user_correction = ? WHERE id = ?
	`, correctionText, id); err != nil {
		return fmt.Errorf("update correction: %w", err)
	}

	var whisperOutput sql.NullString
	err = tx.QueryRow(`
		SELECT whisper_output FROM recordings WHERE id = ?
	`, id).Scan(&whisperOutput)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("read whisper output: %w", err)
	}

	if whisperOutput.Valid && whisperOutput.String != "" {
		if _, err := tx.Exec(`
			INSERT INTO corrections (whisper_pattern, intended_text, created_at)
			VALUES (?, ?, ?)
		`, whisperOutput.String, correctionText, s.now().UTC().Format(timeLayout)); err != nil {
			return fmt.Errorf("insert correction pattern: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit correction: %w", err)
	}
	return nil
}

// DeleteRecording hard-deletes a recording. Correction patterns derived
// from it are kept. A missing id is a silent no-op.
func (s *Store) DeleteRecording(id int64) error {
	if _, err := s.db.Exec(`DELETE FROM recordings WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete recording: %w", err)
	}
	return nil
}

// Corrections returns all correction patterns, newest first.
func (s *Store) Corrections() ([]Correction, error) {
	rows, err := s.db.Query(`
		SELECT id, whisper_pattern, intended_text, created_at
		FROM corrections
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query corrections: %w", err)
	}
	defer rows.Close()

	var corrections []Correction
	for rows.Next() {
		var c Correction
		var createdAt string
		if err := rows.Scan(&c.ID, &c.WhisperPattern, &c.IntendedText, &createdAt); err != nil {
			return nil, fmt.Errorf("scan correction: %w", err)
		}
		c.CreatedAt = parseTime(createdAt)
		corrections = append(corrections, c)
	}
	return corrections, rows.Err()
}

func scanRecording(scan func(dest ...any) error) (*Recording, error) {
	var rec Recording
	var timestamp string
	var whisperOutput, llmOutput, userCorrection, errorMessage sql.NullString
	var audioMS, whisperMS, llmMS, totalMS sql.NullInt64
	var success sql.NullInt64

	if err := scan(&rec.ID, &timestamp, &whisperOutput, &llmOutput, &userCorrection,
		&audioMS, &whisperMS, &llmMS, &totalMS, &success, &errorMessage); err != nil {
		return nil, err
	}

	rec.Timestamp = parseTime(timestamp)
	rec.WhisperOutput = whisperOutput.String
	rec.LLMOutput = llmOutput.String
	if userCorrection.Valid {
		rec.UserCorrection = &userCorrection.String
	}
	rec.AudioDurationMS = audioMS.Int64
	rec.WhisperDurationMS = whisperMS.Int64
	rec.LLMDurationMS = llmMS.Int64
	rec.TotalDurationMS = totalMS.Int64
	rec.Success = !success.Valid || success.Int64 != 0
	if errorMessage.Valid {
		rec.ErrorMessage = &errorMessage.String
	}

	return &rec, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
