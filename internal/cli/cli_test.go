package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefaultsToHelp(t *testing.T) {
	parsed, err := Parse(nil)
	require.NoError(t, err)
	require.True(t, parsed.ShowHelp)
	require.Equal(t, CommandHelp, parsed.Command)
}

func TestParseCommandWithGlobalFlags(t *testing.T) {
	parsed, err := Parse([]string{"--config", "/tmp/.env", "--db", "/tmp/history.db", "history"})
	require.NoError(t, err)
	require.Equal(t, CommandHistory, parsed.Command)
	require.Equal(t, "/tmp/.env", parsed.ConfigPath)
	require.Equal(t, "/tmp/history.db", parsed.DBPath)
	require.False(t, parsed.ShowHelp)
	require.Empty(t, parsed.Args)
}

func TestParseCommandArgsPassThrough(t *testing.T) {
	parsed, err := Parse([]string{"correct", "7", "Hallo, wie geht's dir?"})
	require.NoError(t, err)
	require.Equal(t, CommandCorrect, parsed.Command)
	require.Equal(t, []string{"7", "Hallo, wie geht's dir?"}, parsed.Args)
}

func TestParseAddFlagsBelongToCommand(t *testing.T) {
	parsed, err := Parse([]string{"add", "--whisper", "raw words", "--llm", "Raw words."})
	require.NoError(t, err)
	require.Equal(t, CommandAdd, parsed.Command)
	require.Equal(t, []string{"--whisper", "raw words", "--llm", "Raw words."}, parsed.Args)
}

func TestParseArgMatrix(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantErr  string
		wantCmd  Command
		wantHelp bool
	}{
		{
			name:     "help short flag",
			args:     []string{"-h"},
			wantCmd:  CommandHelp,
			wantHelp: true,
		},
		{
			name:     "version flag",
			args:     []string{"--version"},
			wantCmd:  CommandVersion,
			wantHelp: false,
		},
		{
			name:    "missing config path",
			args:    []string{"--config"},
			wantErr: "requires a path",
		},
		{
			name:    "missing db path",
			args:    []string{"--db"},
			wantErr: "requires a path",
		},
		{
			name:    "unknown flag",
			args:    []string{"--bogus"},
			wantErr: "unknown flag",
		},
		{
			name:    "unknown command",
			args:    []string{"bogus"},
			wantErr: "unknown command",
		},
		{
			name:     "logs with subcommand",
			args:     []string{"logs", "clear"},
			wantCmd:  CommandLogs,
			wantHelp: false,
		},
		{
			name:     "doctor",
			args:     []string{"doctor"},
			wantCmd:  CommandDoctor,
			wantHelp: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := Parse(tc.args)
			if tc.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.wantCmd, parsed.Command)
			require.Equal(t, tc.wantHelp, parsed.ShowHelp)
		})
	}
}

func TestHelpTextIncludesCoreCommands(t *testing.T) {
	text := HelpText("fluestern")
	require.Contains(t, text, "history")
	require.Contains(t, text, "correct ID TEXT")
	require.Contains(t, text, "export")
	require.Contains(t, text, "doctor")
	require.Contains(t, text, "--config PATH")
	require.Contains(t, text, "--db PATH")
}
