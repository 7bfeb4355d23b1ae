package core

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net"
	"strings"
	"time"

	"github.com/bs-community/blessing-skin-shell/commands"
	"github.com/bs-community/blessing-skin-shell/core/config"
	"github.com/bs-community/blessing-skin-shell/core/shell"
	"github.com/bs-community/blessing-skin-shell/core/ttylog"
	"github.com/bs-community/blessing-skin-shell/core/vos"
	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"
)

type sshContextKey struct {
	name string
}

var (
	// ContextAuthPassword holds the password the client sent to the server.
	ContextAuthPassword = sshContextKey{"auth-password"}
)

// Server runs one shell per SSH session.
type Server struct {
	configuration *config.Configuration
	logger        *log.Logger
	sshServer     *ssh.Server
}

// NewServer sets up an SSH server for the configuration. Sessions are logged
// to logger.
func NewServer(configuration *config.Configuration, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	server := &Server{
		configuration: configuration,
		logger:        logger,
	}

	server.sshServer = &ssh.Server{
		Addr: fmt.Sprintf(":%d", configuration.SSHPort),
		Handler: func(s ssh.Session) {
			if err := server.HandleConnection(s); err != nil {
				logger.Printf("%s@%s: %v", s.User(), s.RemoteAddr(), err)
			}
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			ctx.SetValue(ContextAuthPassword, password)
			if configuration.SSHPassword == "" {
				return true
			}
			return subtle.ConstantTimeCompare([]byte(password), []byte(configuration.SSHPassword)) == 1
		},
	}

	keyPem, err := configuration.PrivateKeyPem()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Println("No host key found, using a temporary one")
	case err != nil:
		return nil, err
	default:
		signer, err := gossh.ParsePrivateKey(keyPem)
		if err != nil {
			return nil, fmt.Errorf("couldn't parse %s: %w", config.PrivateKeyName, err)
		}
		server.sshServer.AddHostKey(signer)
	}

	return server, nil
}

// HandleConnection runs a shell until the user exits or disconnects.
func (s *Server) HandleConnection(sess ssh.Session) error {
	_, winch, isPTY := sess.Pty()
	if !isPTY {
		io.WriteString(sess, "A PTY is required, try ssh -t.\r\n")
		return sess.Exit(1)
	}
	go func() {
		// Nothing is sized to the window but gliderlabs blocks until it's read.
		for range winch {
		}
	}()

	s.logger.Printf("%s@%s: session started", sess.User(), sess.RemoteAddr())
	defer s.logger.Printf("%s@%s: session ended", sess.User(), sess.RemoteAddr())

	var term vos.Terminal = vos.NewWriterTerminal(sess)
	var recorder *ttylog.Recorder
	if s.configuration.RecordSessions {
		fd, err := s.configuration.CreateSessionLog(sessionLogName(sess.User(), time.Now()))
		if err != nil {
			return err
		}
		defer fd.Close()

		title := fmt.Sprintf("%s@%s", sess.User(), s.configuration.Hostname)
		recorder = ttylog.NewRecorder(term, ttylog.NewAsciicastLogSink(fd, title), s.logger)
		defer recorder.Close()
		term = recorder
	}

	programs, err := commands.NewRegistry(commands.Options{
		Hostname:         s.configuration.Hostname,
		ExternalCommands: s.configuration.ExternalCommands,
	})
	if err != nil {
		return err
	}

	sessionLogger := log.New(s.logger.Writer(), fmt.Sprintf("%s[%s] ", s.logger.Prefix(), sess.RemoteAddr()), s.logger.Flags())
	sh := shell.New(term, programs,
		shell.WithPrompt(s.configuration.Prompt),
		shell.WithGreeting(s.configuration.Greeting),
		shell.WithTimeout(s.configuration.ProgramTimeout()),
		shell.WithLogger(sessionLogger),
	)

	ctx, cancel := context.WithCancel(sess.Context())
	defer cancel()

	events := ReadEvents(ctx, sess, func(data string) {
		if recorder != nil {
			recorder.RecordInput(data)
		}
	})
	if err := sh.Run(ctx, events); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return sess.Exit(sh.Status())
}

// sessionLogName names the recording of a session. The user name comes from
// the client, so anything other than letters, digits, '-' and '_' becomes '_'.
func sessionLogName(user string, now time.Time) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, user)
	return fmt.Sprintf("%s-%s.%s", now.UTC().Format("20060102T150405Z"), safe, ttylog.AsciicastFileExt)
}

// ReadEvents reads r in the background and splits what arrives into input
// events. The channel is closed when r fails or ctx is done. If onRead is
// non-nil it sees every chunk before it's split.
func ReadEvents(ctx context.Context, r io.Reader, onRead func(data string)) <-chan string {
	events := make(chan string)
	go func() {
		defer close(events)

		buf := make([]byte, 1024)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				data := string(buf[:n])
				if onRead != nil {
					onRead(data)
				}
				for _, key := range shell.SplitKeys(data) {
					select {
					case events <- key:
					case <-ctx.Done():
						return
					}
				}
			}
			if err != nil {
				return
			}
		}
	}()
	return events
}

// ListenAndServe listens on the configured port.
func (s *Server) ListenAndServe() error {
	s.logger.Printf("- Starting SSH server on %s\n", s.sshServer.Addr)
	return s.sshServer.ListenAndServe()
}

// Serve accepts connections on l.
func (s *Server) Serve(l net.Listener) error {
	return s.sshServer.Serve(l)
}

// Shutdown stops accepting connections and waits for open ones to close.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.sshServer.Shutdown(ctx)
}
