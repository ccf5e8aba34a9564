// Package app wires CLI parsing, settings, and the history store into
// the fluestern command surface.
package app

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/akessler/fluestern/internal/cli"
	"github.com/akessler/fluestern/internal/config"
	"github.com/akessler/fluestern/internal/debuglog"
	"github.com/akessler/fluestern/internal/doctor"
	"github.com/akessler/fluestern/internal/history"
	"github.com/akessler/fluestern/internal/logging"
	"github.com/akessler/fluestern/internal/prompt"
	"github.com/akessler/fluestern/internal/version"
)

type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// DebugLogPath overrides the pipeline debug log location; empty
	// selects the default.
	DebugLogPath string
}

func Execute(args []string, stdout, stderr io.Writer) int {
	r := Runner{Stdout: stdout, Stderr: stderr}
	return r.Execute(args)
}

func (r Runner) Execute(args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText("fluestern"))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, cli.HelpText("fluestern"))
		return 0
	}

	if parsed.Command == cli.CommandVersion {
		fmt.Fprintln(r.Stdout, version.String())
		return 0
	}

	logRuntime, err := logging.New()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: setup logging: %v\n", err)
		return 1
	}
	defer func() { _ = logRuntime.Close() }()

	logger := r.Logger
	if logger == nil {
		logger = logRuntime.Logger
	}

	cfgLoaded, err := config.Load(parsed.ConfigPath)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("load settings failed", "error", err.Error())
		return 1
	}
	for _, w := range cfgLoaded.Warnings {
		fmt.Fprintf(r.Stderr, "warning: %s\n", w.Message)
		logger.Warn("settings warning", "message", w.Message)
	}

	dbPath := parsed.DBPath
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	debugLogPath := r.DebugLogPath
	if debugLogPath == "" {
		debugLogPath = config.DefaultDebugLogPath()
	}

	logger.Info("command start",
		"command", parsed.Command,
		"settings", cfgLoaded.Path,
		"db", dbPath,
		"log", logRuntime.Path,
	)

	switch parsed.Command {
	case cli.CommandDoctor:
		report := doctor.Run(cfgLoaded, dbPath, debugLogPath)
		fmt.Fprintln(r.Stdout, report.String())
		if report.OK() {
			return 0
		}
		return 1
	case cli.CommandConfig:
		return r.commandConfig(cfgLoaded, parsed.Args, logger)
	case cli.CommandLogs:
		return r.commandLogs(debugLogPath, parsed.Args, logger)
	}

	store, err := history.Open(dbPath)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("open history failed", "db", dbPath, "error", err.Error())
		return 1
	}
	defer func() { _ = store.Close() }()

	switch parsed.Command {
	case cli.CommandAdd:
		return r.commandAdd(store, parsed.Args, logger)
	case cli.CommandHistory:
		return r.commandHistory(store, parsed.Args)
	case cli.CommandShow:
		return r.commandShow(store, parsed.Args)
	case cli.CommandCorrect:
		return r.commandCorrect(store, parsed.Args, logger)
	case cli.CommandDelete:
		return r.commandDelete(store, parsed.Args, logger)
	case cli.CommandCorrections:
		return r.commandCorrections(store)
	case cli.CommandExport:
		return r.commandExport(store)
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return 2
	}
}

// commandAdd records one completed pipeline attempt.
func (r Runner) commandAdd(store *history.Store, args []string, logger *slog.Logger) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(r.Stderr)
	whisper := fs.String("whisper", "", "raw transcription text")
	llm := fs.String("llm", "", "LLM-formatted text")
	audioMS := fs.Int64("audio-ms", 0, "audio duration in ms")
	whisperMS := fs.Int64("whisper-ms", 0, "transcription duration in ms")
	llmMS := fs.Int64("llm-ms", 0, "LLM duration in ms")
	totalMS := fs.Int64("total-ms", 0, "total pipeline duration in ms")
	failed := fs.Bool("failed", false, "mark the attempt as failed")
	errMsg := fs.String("error", "", "error message for failed attempts")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	var errorMessage *string
	if *errMsg != "" {
		errorMessage = errMsg
	}

	id, err := store.AddRecording(*whisper, *llm, history.Timings{
		AudioMS:   *audioMS,
		WhisperMS: *whisperMS,
		LLMMS:     *llmMS,
		TotalMS:   *totalMS,
	}, !*failed, errorMessage)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("add recording failed", "error", err.Error())
		return 1
	}

	fmt.Fprintln(r.Stdout, id)
	logger.Info("recording added", "id", id, "success", !*failed, "total_ms", *totalMS)
	return 0
}

func (r Runner) commandHistory(store *history.Store, args []string) int {
	limit := 0
	if len(args) > 1 {
		return r.usageError("history takes at most one argument")
	}
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return r.usageError(fmt.Sprintf("invalid limit %q", args[0]))
		}
		limit = n
	}

	recordings, err := store.Recordings(limit)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if len(recordings) == 0 {
		fmt.Fprintln(r.Stdout, "no recordings yet")
		return 0
	}

	for _, rec := range recordings {
		r.printRecording(rec)
	}
	return 0
}

func (r Runner) commandShow(store *history.Store, args []string) int {
	if len(args) != 1 {
		return r.usageError("show requires a recording id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return r.usageError(fmt.Sprintf("invalid id %q", args[0]))
	}

	rec, err := store.Recording(id)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if rec == nil {
		fmt.Fprintf(r.Stderr, "recording %d not found\n", id)
		return 1
	}

	r.printRecording(*rec)
	fmt.Fprintf(r.Stdout, "    audio=%dms whisper=%dms llm=%dms total=%dms\n",
		rec.AudioDurationMS, rec.WhisperDurationMS, rec.LLMDurationMS, rec.TotalDurationMS)
	return 0
}

func (r Runner) commandCorrect(store *history.Store, args []string, logger *slog.Logger) int {
	if len(args) < 2 {
		return r.usageError("correct requires a recording id and the corrected text")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return r.usageError(fmt.Sprintf("invalid id %q", args[0]))
	}

	// Only non-empty trimmed text reaches the store.
	text := strings.TrimSpace(strings.Join(args[1:], " "))
	if text == "" {
		return r.usageError("correction text is empty")
	}

	if err := store.UpdateCorrection(id, text); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("save correction failed", "id", id, "error", err.Error())
		return 1
	}

	fmt.Fprintln(r.Stdout, "correction saved")
	logger.Info("correction saved", "id", id, "length", len(text))
	return 0
}

func (r Runner) commandDelete(store *history.Store, args []string, logger *slog.Logger) int {
	if len(args) != 1 {
		return r.usageError("delete requires a recording id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return r.usageError(fmt.Sprintf("invalid id %q", args[0]))
	}

	if err := store.DeleteRecording(id); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	fmt.Fprintln(r.Stdout, "deleted")
	logger.Info("recording deleted", "id", id)
	return 0
}

func (r Runner) commandCorrections(store *history.Store) int {
	corrections, err := store.Corrections()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if len(corrections) == 0 {
		fmt.Fprintln(r.Stdout, "no corrections yet")
		return 0
	}

	for _, c := range corrections {
		fmt.Fprintf(r.Stdout, "%s  heard %q, meant %q\n",
			c.CreatedAt.Local().Format("2006-01-02 15:04"), c.WhisperPattern, c.IntendedText)
	}
	return 0
}

func (r Runner) commandExport(store *history.Store) int {
	corrections, err := store.Corrections()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	context := prompt.CorrectionContext(corrections)
	if context == "" {
		fmt.Fprintln(r.Stderr, "no corrections to export")
		return 0
	}

	fmt.Fprintln(r.Stdout, context)
	return 0
}

func (r Runner) commandConfig(cfgLoaded config.Loaded, args []string, logger *slog.Logger) int {
	if len(args) == 0 {
		return r.usageError("config requires a subcommand: get, set, path, reset-prompt")
	}

	store := cfgLoaded.Store

	switch args[0] {
	case "get":
		if len(args) != 2 {
			return r.usageError("config get requires a key")
		}
		fmt.Fprintln(r.Stdout, store.Get(args[1], ""))
		return 0
	case "set":
		if len(args) < 3 {
			return r.usageError("config set requires a key and a value")
		}
		key := args[1]
		value := strings.Join(args[2:], " ")
		store.Set(key, value)
		if err := store.Save(); err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			logger.Error("save settings failed", "error", err.Error())
			return 1
		}
		fmt.Fprintln(r.Stdout, "saved")
		logger.Info("setting saved", "key", key)
		return 0
	case "path":
		fmt.Fprintln(r.Stdout, cfgLoaded.Path)
		return 0
	case "reset-prompt":
		store.Set(config.KeySystemPrompt, config.DefaultSystemPrompt)
		if err := store.Save(); err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		fmt.Fprintln(r.Stdout, "system prompt reset to default")
		logger.Info("system prompt reset")
		return 0
	default:
		return r.usageError(fmt.Sprintf("unknown config subcommand %q", args[0]))
	}
}

func (r Runner) commandLogs(path string, args []string, logger *slog.Logger) int {
	if len(args) == 0 {
		content, err := debuglog.Read(path)
		if err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		if content == "" {
			fmt.Fprintln(r.Stdout, "no debug log yet; the pipeline creates it on the next dictation")
			return 0
		}
		fmt.Fprint(r.Stdout, content)
		return 0
	}

	if len(args) == 1 && args[0] == "clear" {
		if err := debuglog.Clear(path); err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		fmt.Fprintln(r.Stdout, "debug log cleared")
		logger.Info("debug log cleared", "path", path)
		return 0
	}

	return r.usageError(fmt.Sprintf("unknown logs arguments: %s", strings.Join(args, " ")))
}

func (r Runner) printRecording(rec history.Recording) {
	status := "ok"
	if !rec.Success {
		status = "failed"
	}

	fmt.Fprintf(r.Stdout, "#%d  %s  %s  %dms\n",
		rec.ID, rec.Timestamp.Local().Format("2006-01-02 15:04:05"), status, rec.TotalDurationMS)
	fmt.Fprintf(r.Stdout, "    whisper: %s\n", rec.WhisperOutput)
	fmt.Fprintf(r.Stdout, "    llm:     %s\n", rec.LLMOutput)
	if rec.UserCorrection != nil {
		fmt.Fprintf(r.Stdout, "    correction: %s\n", *rec.UserCorrection)
	}
	if rec.ErrorMessage != nil {
		fmt.Fprintf(r.Stdout, "    error: %s\n", *rec.ErrorMessage)
	}
}

func (r Runner) usageError(msg string) int {
	fmt.Fprintf(r.Stderr, "error: %s\n\n", msg)
	fmt.Fprint(r.Stderr, cli.HelpText("fluestern"))
	return 2
}
