package cli

import (
	"errors"
	"fmt"
	"strings"
)

type Command string

const (
	CommandAdd         Command = "add"
	CommandHistory     Command = "history"
	CommandShow        Command = "show"
	CommandCorrect     Command = "correct"
	CommandDelete      Command = "delete"
	CommandCorrections Command = "corrections"
	CommandExport      Command = "export"
	CommandConfig      Command = "config"
	CommandLogs        Command = "logs"
	CommandDoctor      Command = "doctor"
	CommandVersion     Command = "version"
	CommandHelp        Command = "help"
)

var validCommands = map[Command]struct{}{
	CommandAdd:         {},
	CommandHistory:     {},
	CommandShow:        {},
	CommandCorrect:     {},
	CommandDelete:      {},
	CommandCorrections: {},
	CommandExport:      {},
	CommandConfig:      {},
	CommandLogs:        {},
	CommandDoctor:      {},
	CommandVersion:     {},
	CommandHelp:        {},
}

type Parsed struct {
	Command    Command
	ConfigPath string
	DBPath     string
	Args       []string
	ShowHelp   bool
}

// Parse reads global flags up to the first command word; everything
// after the command belongs to the command and is passed through as-is.
func Parse(args []string) (Parsed, error) {
	parsed := Parsed{Command: CommandHelp, ShowHelp: true}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-h", "--help":
			parsed.ShowHelp = true
			parsed.Command = CommandHelp
		case "--version":
			parsed.ShowHelp = false
			parsed.Command = CommandVersion
		case "--config":
			i++
			if i >= len(args) {
				return Parsed{}, errors.New("--config requires a path")
			}
			parsed.ConfigPath = args[i]
		case "--db":
			i++
			if i >= len(args) {
				return Parsed{}, errors.New("--db requires a path")
			}
			parsed.DBPath = args[i]
		default:
			if strings.HasPrefix(arg, "-") {
				return Parsed{}, fmt.Errorf("unknown flag: %s", arg)
			}

			cmd := Command(arg)
			if _, ok := validCommands[cmd]; !ok {
				return Parsed{}, fmt.Errorf("unknown command: %s", arg)
			}

			parsed.Command = cmd
			parsed.ShowHelp = cmd == CommandHelp
			parsed.Args = args[i+1:]
			return parsed, nil
		}
	}

	return parsed, nil
}

func HelpText(binaryName string) string {
	return fmt.Sprintf(`Usage:
  %[1]s [--config PATH] [--db PATH] <command> [args]

Commands:
  add           Record one transcription attempt (used by the pipeline)
  history [N]   List recent recordings, newest first (default 100)
  show ID       Show one recording in full
  correct ID TEXT
                Save a user correction for a recording
  delete ID     Delete a recording (learned corrections are kept)
  corrections   List learned correction patterns, newest first
  export        Print correction context for the LLM system prompt
  config        Settings access: get KEY | set KEY VALUE | path | reset-prompt
  logs [clear]  Show or clear the pipeline debug log
  doctor        Run settings and storage checks
  version       Print version information
  help          Show this help

Add flags:
  --whisper TEXT --llm TEXT --audio-ms N --whisper-ms N --llm-ms N
  --total-ms N --failed --error MSG

Flags:
  --config PATH   Settings file path (default: .env beside the binary)
  --db PATH       History database path (default: history.db beside the binary)
  -h, --help      Show help
  --version       Show version
`, binaryName)
}
