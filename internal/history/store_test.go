package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// newTestStore opens a store on a temp database with a deterministic
// clock that advances one second per observation.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	base := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	return store
}

func TestAddRecordingRoundTrip(t *testing.T) {
	store := newTestStore(t)

	id, err := store.AddRecording("raw words", "Formatted words.", Timings{
		AudioMS:   3200,
		WhisperMS: 480,
		LLMMS:     710,
		TotalMS:   4390,
	}, true, nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	rec, err := store.Recording(id)
	require.NoError(t, err)
	require.NotNil(t, rec)

	require.Equal(t, id, rec.ID)
	require.False(t, rec.Timestamp.IsZero())
	require.Equal(t, "raw words", rec.WhisperOutput)
	require.Equal(t, "Formatted words.", rec.LLMOutput)
	require.Nil(t, rec.UserCorrection)
	require.Equal(t, int64(3200), rec.AudioDurationMS)
	require.Equal(t, int64(480), rec.WhisperDurationMS)
	require.Equal(t, int64(710), rec.LLMDurationMS)
	require.Equal(t, int64(4390), rec.TotalDurationMS)
	require.True(t, rec.Success)
	require.Nil(t, rec.ErrorMessage)
}

func TestAddRecordingFailure(t *testing.T) {
	store := newTestStore(t)

	msg := "whisper API timeout"
	id, err := store.AddRecording("", "", Timings{}, false, &msg)
	require.NoError(t, err)

	rec, err := store.Recording(id)
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.False(t, rec.Success)
	require.NotNil(t, rec.ErrorMessage)
	require.Equal(t, "whisper API timeout", *rec.ErrorMessage)
}

func TestRecordingMissingIDReturnsNil(t *testing.T) {
	store := newTestStore(t)

	rec, err := store.Recording(42)
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestUpdateCorrectionCreatesPattern(t *testing.T) {
	store := newTestStore(t)

	id, err := store.AddRecording("hallo wie gehts", "Hallo, wie geht's?", Timings{}, true, nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	require.NoError(t, store.UpdateCorrection(id, "Hallo, wie geht's dir?"))

	rec, err := store.Recording(id)
	require.NoError(t, err)
	require.NotNil(t, rec.UserCorrection)
	require.Equal(t, "Hallo, wie geht's dir?", *rec.UserCorrection)

	corrections, err := store.Corrections()
	require.NoError(t, err)
	require.Len(t, corrections, 1)
	require.Equal(t, "hallo wie gehts", corrections[0].WhisperPattern)
	require.Equal(t, "Hallo, wie geht's dir?", corrections[0].IntendedText)
	require.False(t, corrections[0].CreatedAt.IsZero())
}

func TestUpdateCorrectionEmptyWhisperOutputSkipsPattern(t *testing.T) {
	store := newTestStore(t)

	id, err := store.AddRecording("", "Something.", Timings{}, true, nil)
	require.NoError(t, err)

	require.NoError(t, store.UpdateCorrection(id, "Something else."))

	rec, err := store.Recording(id)
	require.NoError(t, err)
	require.NotNil(t, rec.UserCorrection)
	require.Equal(t, "Something else.", *rec.UserCorrection)

	corrections, err := store.Corrections()
	require.NoError(t, err)
	require.Empty(t, corrections)
}

func TestUpdateCorrectionMissingIDIsNoOp(t *testing.T) {
	store := newTestStore(t)

	_, err := store.AddRecording("words", "Words.", Timings{}, true, nil)
	require.NoError(t, err)

	require.NoError(t, store.UpdateCorrection(99, "never stored"))

	corrections, err := store.Corrections()
	require.NoError(t, err)
	require.Empty(t, corrections)

	recordings, err := store.Recordings(0)
	require.NoError(t, err)
	require.Len(t, recordings, 1)
	require.Nil(t, recordings[0].UserCorrection)
}

func TestUpdateCorrectionOverwritesPreviousText(t *testing.T) {
	store := newTestStore(t)

	id, err := store.AddRecording("draft words", "Draft words.", Timings{}, true, nil)
	require.NoError(t, err)

	require.NoError(t, store.UpdateCorrection(id, "First attempt."))
	require.NoError(t, store.UpdateCorrection(id, "Second attempt."))

	rec, err := store.Recording(id)
	require.NoError(t, err)
	require.Equal(t, "Second attempt.", *rec.UserCorrection)

	// Each save event appends its own pattern.
	corrections, err := store.Corrections()
	require.NoError(t, err)
	require.Len(t, corrections, 2)
	require.Equal(t, "Second attempt.", corrections[0].IntendedText)
}

func TestDeleteRecordingKeepsPatterns(t *testing.T) {
	store := newTestStore(t)

	id, err := store.AddRecording("misheard words", "Misheard words.", Timings{}, true, nil)
	require.NoError(t, err)
	require.NoError(t, store.UpdateCorrection(id, "Intended words."))

	require.NoError(t, store.DeleteRecording(id))

	recordings, err := store.Recordings(0)
	require.NoError(t, err)
	require.Empty(t, recordings)

	corrections, err := store.Corrections()
	require.NoError(t, err)
	require.Len(t, corrections, 1)

	// Deleting again is a no-op.
	require.NoError(t, store.DeleteRecording(id))
}

func TestRecordingsNewestFirstWithLimit(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		_, err := store.AddRecording("take", "Take.", Timings{}, true, nil)
		require.NoError(t, err)
	}

	recordings, err := store.Recordings(3)
	require.NoError(t, err)
	require.Len(t, recordings, 3)
	require.Equal(t, int64(5), recordings[0].ID)
	require.Equal(t, int64(4), recordings[1].ID)
	require.Equal(t, int64(3), recordings[2].ID)

	all, err := store.Recordings(0)
	require.NoError(t, err)
	require.Len(t, all, 5)
}

func TestCorrectionsNewestFirst(t *testing.T) {
	store := newTestStore(t)

	for _, text := range []string{"first", "second", "third"} {
		id, err := store.AddRecording("heard "+text, "Heard "+text+".", Timings{}, true, nil)
		require.NoError(t, err)
		require.NoError(t, store.UpdateCorrection(id, "Meant "+text+"."))
	}

	corrections, err := store.Corrections()
	require.NoError(t, err)
	require.Len(t, corrections, 3)
	require.Equal(t, "Meant third.", corrections[0].IntendedText)
	require.Equal(t, "Meant second.", corrections[1].IntendedText)
	require.Equal(t, "Meant first.", corrections[2].IntendedText)
}

func TestOpenExistingDatabaseKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	id, err := store.AddRecording("persisted", "Persisted.", Timings{}, true, nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	rec, err := reopened.Recording(id)
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, "persisted", rec.WhisperOutput)
}
