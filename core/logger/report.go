package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// LogEntry is a single decoded event line.
type LogEntry struct {
	Time        time.Time `json:"ts"`
	Level       string    `json:"level"`
	Event       string    `json:"msg"`
	Session     string    `json:"session"`
	User        string    `json:"user,omitempty"`
	RemoteAddr  string    `json:"remote_addr,omitempty"`
	Command     []string  `json:"command,omitempty"`
	Kind        string    `json:"kind,omitempty"`
	Path        string    `json:"path,omitempty"`
	ExitCode    int       `json:"exit_code,omitempty"`
	OutputBytes int       `json:"output_bytes,omitempty"`
}

// CommandName returns the first element of the command, if any.
func (le *LogEntry) CommandName() string {
	if len(le.Command) == 0 {
		return ""
	}
	return le.Command[0]
}

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{
		ProcessExit: ProcessExitReport{
			Failures: NewPathCounter("command", "exit_code"),
		},
	}
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       int        `json:"sessions"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	RunCommand     RunCommandReport     `json:"run_command_report"`
	UnknownCommand UnknownCommandReport `json:"unknown_command_report"`
	ProcessExit    ProcessExitReport    `json:"process_exit_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch le.Event {
	case EventSessionStart:
		r.Sessions++
	case EventRunCommand:
		r.RunCommand.update(le)
	case EventUnknownCommand:
		r.UnknownCommand.update(le)
	case EventProcessExit:
		r.ProcessExit.update(le)
	case EventSessionEnd:
		// Ignore
	default:
		r.InvalidEntries.Increment(le.Event)
	}
}

type RunCommandReport struct {
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
	// Builtin or external.
	Kinds StrCounter `json:"kinds"`
	// Resolved paths of external commands.
	ResolvedCommandPaths StrCounter `json:"resolved_command_paths"`
}

func (r *RunCommandReport) update(le *LogEntry) {
	r.CommandNames.Increment(le.CommandName())
	r.Kinds.Increment(le.Kind)
	if le.Path != "" {
		r.ResolvedCommandPaths.Increment(le.Path)
	}
}

type UnknownCommandReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *UnknownCommandReport) update(le *LogEntry) {
	r.CommandNames.Increment(le.CommandName())
}

type ProcessExitReport struct {
	ExitCodes StrCounter   `json:"exit_codes"`
	Failures  *PathCounter `json:"failures"`
	// Human readable total of captured output.
	TotalOutput string `json:"total_output"`

	outputBytes uint64
}

func (r *ProcessExitReport) update(le *LogEntry) {
	code := strconv.Itoa(le.ExitCode)
	r.ExitCodes.Increment(code)
	if le.ExitCode != 0 {
		if r.Failures == nil {
			r.Failures = NewPathCounter("command", "exit_code")
		}
		r.Failures.Increment(le.CommandName(), code)
	}

	if le.OutputBytes > 0 {
		r.outputBytes += uint64(le.OutputBytes)
	}
	r.TotalOutput = humanize.Bytes(r.outputBytes)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Count returns the number of times key was seen.
func (s *StrCounter) Count(key string) int {
	return s.internal[key]
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	if s.internal == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of distinct tuples seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic(fmt.Sprintf("wrong number of columns to add, got %d want %d", len(toAdd), len(ctr.cols)))
	}

	ctr.internal[toKey(toAdd...)]++
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
