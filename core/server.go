package core

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"io"
	"io/fs"
	"net"
	"sync/atomic"

	"github.com/gliderlabs/ssh"
	"github.com/josephlewis42/minish/commands"
	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/logger"
	"github.com/josephlewis42/minish/core/vos"
	"github.com/juju/ratelimit"
	"go.uber.org/zap"
	gossh "golang.org/x/crypto/ssh"
)

// ErrNoPassword is returned when serving is requested without a password.
var ErrNoPassword = errors.New("server.password must be set to serve the shell")

// Server exposes the shell to SSH clients, one independent shell per
// session.
type Server struct {
	configuration *config.Configuration
	logger        *logger.Logger
	diag          *zap.SugaredLogger
	sshServer     *ssh.Server

	// Env provides PATH for every session.
	Env vos.VEnv
	// Checker decides which files on PATH are executable.
	Checker vos.ExecChecker
	// Runner spawns external commands.
	Runner vos.Runner
}

func NewServer(configuration *config.Configuration, eventLog *logger.Logger, diag *zap.SugaredLogger) (*Server, error) {
	if configuration.Server.Password == "" {
		return nil, ErrNoPassword
	}

	server := &Server{
		configuration: configuration,
		logger:        eventLog,
		diag:          diag,
		Env:           vos.OSEnv{},
		Checker:       vos.NewHostChecker(),
		Runner:        &vos.ExecRunner{},
	}

	password := []byte(configuration.Server.Password)
	server.sshServer = &ssh.Server{
		Addr: configuration.Server.Address,
		Handler: func(s ssh.Session) {
			server.HandleSession(s)
		},
		PasswordHandler: func(ctx ssh.Context, attempt string) bool {
			return subtle.ConstantTimeCompare([]byte(attempt), password) == 1
		},
	}

	signer, err := hostSigner(configuration, diag)
	if err != nil {
		return nil, err
	}
	server.sshServer.AddHostKey(signer)

	return server, nil
}

// hostSigner loads the configured host key, falling back to a fresh
// ed25519 key if none exists.
func hostSigner(configuration *config.Configuration, diag *zap.SugaredLogger) (gossh.Signer, error) {
	keyPem, err := configuration.PrivateKeyPem()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		diag.Warn("no host key found, generating a temporary one")
		_, key, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, err
		}
		return gossh.NewSignerFromKey(key)
	case err != nil:
		return nil, err
	}

	return gossh.ParsePrivateKey(keyPem)
}

// HandleSession runs a shell for a single SSH session. If the client sent a
// command, only that line is run.
func (s *Server) HandleSession(sess ssh.Session) {
	sessionLogger := s.logger.NewSession()
	sessionLogger.SessionStart(sess.User(), sess.RemoteAddr().String())
	defer sessionLogger.SessionEnd()

	ptyInfo, winch, isPTY := sess.Pty()

	var stdout io.Writer = sess
	if isPTY {
		stdout = crlfWriter{stdout}
	}
	if rate := s.configuration.Server.OutputRate; rate > 0 {
		stdout = ratelimit.Writer(stdout, ratelimit.NewBucketWithRate(float64(rate), rate))
	}
	vio := vos.NewVIOAdapter(sess, stdout, sess.Stderr())

	registry := commands.NewRegistry(vos.NewPathResolver(s.Env, s.Checker), s.Runner)
	registry.Events = sessionLogger

	if raw := sess.RawCommand(); raw != "" {
		sh := commands.NewShell(vio, registry, nil)
		sh.RunLine(sess.Context(), raw)
		sess.Exit(0)
		return
	}

	var lines commands.LineReader
	if isPTY {
		width := int64(ptyInfo.Window.Width)
		go func() {
			for window := range winch {
				atomic.StoreInt64(&width, int64(window.Width))
			}
		}()

		var err error
		lines, err = commands.NewReadlineReader(vio, commands.ReadlineOptions{
			IsTerminal: func() bool { return true },
			Width:      func() int { return int(atomic.LoadInt64(&width)) },
			Remote:     true,
		})
		if err != nil {
			s.diag.Errorf("session %s: starting readline: %v", sessionLogger.ID(), err)
			sess.Exit(1)
			return
		}
	} else {
		lines = commands.NewScannerReader(vio.Stdin(), vio.Stdout())
	}
	defer lines.Close()

	sh := commands.NewShell(vio, registry, lines)
	sh.Prompt = commands.ColorizePrompt(s.configuration.Prompt, s.configuration.PromptColor, isPTY)
	sh.Log = s.diag.With("session", sessionLogger.ID())

	sess.Exit(sh.Run(sess.Context()))
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.sshServer.Addr
}

func (s *Server) ListenAndServe() error {
	s.diag.Infof("starting SSH server on %s", s.sshServer.Addr)
	return s.sshServer.ListenAndServe()
}

// Serve accepts connections on l.
func (s *Server) Serve(l net.Listener) error {
	s.diag.Infof("starting SSH server on %s", l.Addr())
	return s.sshServer.Serve(l)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.sshServer.Shutdown(ctx)
}

// crlfWriter translates newlines for terminals in raw mode.
type crlfWriter struct {
	io.Writer
}

func (w crlfWriter) Write(b []byte) (int, error) {
	if _, err := w.Writer.Write(bytes.ReplaceAll(b, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(b), nil
}
