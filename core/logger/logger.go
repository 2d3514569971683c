package logger

import (
	"fmt"
	"io"
	"math/rand"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Event names, stored in the "msg" field of each log line.
const (
	EventSessionStart   = "session_start"
	EventSessionEnd     = "session_end"
	EventRunCommand     = "run_command"
	EventUnknownCommand = "unknown_command"
	EventProcessExit    = "process_exit"
)

// Logger captures interaction events for later reporting.
type Logger struct {
	zap *zap.Logger
}

// NewJSONLinesLogger creates a Logger that exports events in newline
// delimited JSON object format.
func NewJSONLinesLogger(w io.Writer) *Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(w), zapcore.InfoLevel)
	return &Logger{zap: zap.New(core)}
}

// NewNopLogger creates a Logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{zap: zap.NewNop()}
}

// Sync flushes buffered events.
func (l *Logger) Sync() error {
	return l.zap.Sync()
}

// NewSession creates a logger with a random session ID attached.
func (l *Logger) NewSession() *SessionLogger {
	return l.NewSessionWithID(fmt.Sprintf("%d", rand.Uint64()))
}

// NewSessionWithID creates a logger with the given session ID attached.
func (l *Logger) NewSessionWithID(id string) *SessionLogger {
	return &SessionLogger{
		log: l.zap.With(zap.String("session", id)),
		id:  id,
	}
}

// SessionLogger logs events with a shared session ID.
type SessionLogger struct {
	log *zap.Logger
	id  string
}

// ID returns the session ID.
func (s *SessionLogger) ID() string {
	return s.id
}

// SessionStart records the start of an interactive session.
func (s *SessionLogger) SessionStart(user, remoteAddr string) {
	s.log.Info(EventSessionStart, zap.String("user", user), zap.String("remote_addr", remoteAddr))
}

// SessionEnd records the end of an interactive session.
func (s *SessionLogger) SessionEnd() {
	s.log.Info(EventSessionEnd)
}

// RunCommand records a successfully resolved command.
func (s *SessionLogger) RunCommand(argv []string, kind, path string) {
	s.log.Info(EventRunCommand,
		zap.Strings("command", argv),
		zap.String("kind", kind),
		zap.String("path", path))
}

// UnknownCommand records a command that couldn't be resolved.
func (s *SessionLogger) UnknownCommand(argv []string) {
	s.log.Info(EventUnknownCommand, zap.Strings("command", argv))
}

// ProcessExit records the exit of an external process.
func (s *SessionLogger) ProcessExit(argv []string, exitCode, outputBytes int) {
	s.log.Info(EventProcessExit,
		zap.Strings("command", argv),
		zap.Int("exit_code", exitCode),
		zap.Int("output_bytes", outputBytes))
}

// NewDiagnosticLogger creates a human readable logger for operational
// messages.
func NewDiagnosticLogger(w io.Writer, prefix string) *zap.SugaredLogger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), zapcore.DebugLevel)
	return zap.New(core).Named(prefix).Sugar()
}
