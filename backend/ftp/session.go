package ftp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"syscall"
	"time"

	_ftp "github.com/jlaffaye/ftp"
	"go.uber.org/zap"
	"golang.org/x/net/proxy"

	"github.com/c2fo/ftpvfs/retry"
	"github.com/c2fo/ftpvfs/utils/authority"
)

// Dialer opens network connections. *net.Dialer and the golang.org/x/net/proxy dialers satisfy it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// newDialer returns a plain dialer, or a SOCKS5 one when opts.SOCKSProxy is set.
func newDialer(opts Options) (Dialer, error) {
	base := &net.Dialer{Timeout: opts.DialTimeout}
	if opts.SOCKSProxy == "" {
		return base, nil
	}
	d, err := proxy.SOCKS5("tcp", opts.SOCKSProxy, nil, base)
	if err != nil {
		return nil, err
	}
	cd, ok := d.(proxy.ContextDialer)
	if !ok {
		return nil, fmt.Errorf("socks dialer for %s does not support contexts", opts.SOCKSProxy)
	}
	return cd, nil
}

type transferType int

const (
	typeUnknown transferType = iota
	typeASCII
	typeBinary
)

type listingMode int

const (
	listAutodetect listingMode = iota
	listUnix
	listStrict
)

func (m listingMode) String() string {
	switch m {
	case listUnix:
		return "unix"
	case listStrict:
		return "strict"
	}
	return "autodetect"
}

type connState int

const (
	stateConnected connState = iota
	stateReconnecting
	stateClosed
)

// sessionKey identifies one logical server connection.
type sessionKey struct {
	host string
	port uint16
	user string
}

func (k sessionKey) String() string {
	return k.user + "@" + joinHostPort(k.host, k.port)
}

type sessionConfig struct {
	opts   Options
	log    *zap.Logger
	creds  CredentialResolver
	dialer Dialer
	now    func() time.Time
}

// Session is one authenticated control connection and the state remembered about it. Exactly one command is
// outstanding at a time; a transfer in flight marks the session busy until its data connection is closed.
type Session struct {
	key    sessionKey
	auth   authority.Authority
	opts   Options
	log    *zap.Logger
	creds  CredentialResolver
	dialer Dialer
	now    func() time.Time

	mu    sync.Mutex
	ctl   *controlConn
	state connState
	login *Credentials

	proxied       bool
	usePassive    bool
	xferType      transferType
	remoteIsAmiga bool
	listing       listingMode
	home          string
	cwd           string
	cwdDeferred   bool
	busy          bool
	lastUsed      time.Time

	// guarded by the owning pool's mutex
	handedOut time.Time

	dirs   *dirCache
	parser *listParser
}

// openSession resolves credentials, connects and logs in. Login failures are retried up to opts.LoginAttempts
// times, RetryDelay apart; connection failures are not.
func openSession(ctx context.Context, auth authority.Authority, cfg sessionConfig) (*Session, error) {
	host := auth.Host()
	s := &Session{
		auth:    auth,
		opts:    cfg.opts,
		creds:   cfg.creds,
		dialer:  cfg.dialer,
		now:     cfg.now,
		proxied: useProxy(host, cfg.opts),
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.usePassive = s.defaultPassive()
	if s.opts.DisableUnixListOptions {
		s.listing = listStrict
	}
	s.dirs = newDirCache(s.opts.DirectoryTimeout, s.now)
	s.parser = newListParser(s.opts.Location, s.now)

	login, err := s.creds.Resolve(ctx, auth)
	if err != nil {
		return nil, err
	}
	s.login = login
	s.key = sessionKey{host: strings.TrimPrefix(host, "!"), port: auth.PortOr(defaultPort), user: login.User}
	s.log = cfg.log.With(zap.String("host", s.key.host), zap.Int("port", int(s.key.port)),
		zap.String("user", s.key.user))

	s.mu.Lock()
	defer s.mu.Unlock()

	attempt := 0
	err = retry.Do(ctx, retry.Config{
		MaxAttempts: s.opts.LoginAttempts,
		Delay:       s.opts.RetryDelay,
		OnRetry: func(attempt int, err error, wait time.Duration) {
			s.log.Warn("login failed, waiting to retry", zap.Int("attempt", attempt), zap.Duration("wait", wait),
				zap.Error(err))
		},
	}, func() error {
		attempt++
		if attempt > 1 {
			if err := s.refreshCredentials(ctx); err != nil {
				return err
			}
		}
		err := s.connect(ctx)
		if errors.Is(err, ErrAuth) {
			return retry.Retryable(err)
		}
		return err
	})
	if err != nil {
		s.login.Wipe()
		if ctx.Err() != nil && !errors.Is(err, ErrCanceled) {
			err = newError(ErrCanceled, "login", err)
		}
		return nil, err
	}

	s.home = s.pwd(ctx)
	s.cwd = s.home
	s.lastUsed = s.now()
	sessionsOpen.Inc()
	s.log.Info("ftp session opened", zap.String("home", s.home), zap.Bool("amiga", s.remoteIsAmiga),
		zap.Bool("proxied", s.proxied))
	return s, nil
}

func (s *Session) defaultPassive() bool {
	if s.proxied {
		return s.opts.PassiveOverProxy
	}
	return !s.opts.DisablePassive
}

// refreshCredentials drops the rejected login and asks the resolver again.
func (s *Session) refreshCredentials(ctx context.Context) error {
	s.creds.Forget(s.key.host, s.login.User)
	s.login.Wipe()
	login, err := s.creds.Resolve(ctx, s.auth)
	if err != nil {
		return err
	}
	s.login = login
	return nil
}

// connect dials the server (or the FTP gateway) and logs in, replacing any previous control connection.
func (s *Session) connect(ctx context.Context) error {
	ctl, err := s.dial(ctx)
	if err != nil {
		return err
	}
	if err := s.loginOn(ctx, ctl); err != nil {
		_ = ctl.close()
		return err
	}
	if s.ctl != nil {
		_ = s.ctl.close()
	}
	s.ctl = ctl
	s.state = stateConnected
	s.xferType = typeUnknown
	return nil
}

func (s *Session) dial(ctx context.Context) (*controlConn, error) {
	addr := fetchHostPortString(s.auth)
	if s.proxied {
		var err error
		if addr, err = proxyAddress(s.opts); err != nil {
			return nil, newError(ErrConnectivity, "dial", err)
		}
	}
	dctx, cancel := context.WithTimeout(ctx, s.opts.DialTimeout)
	defer cancel()
	conn, err := s.dialer.DialContext(dctx, "tcp", addr)
	if err != nil {
		if ctx.Err() != nil {
			return nil, newError(ErrCanceled, "dial", ctx.Err())
		}
		return nil, newError(ErrConnectivity, "dial", err)
	}
	return newControlConn(conn, s.log), nil
}

// loginOn reads the banner and runs USER, PASS and ACCT on ctl. Any reply that is not accepted is an ErrAuth
// failure; a banner that is not a 2xx reply is not.
func (s *Session) loginOn(ctx context.Context, ctl *controlConn) error {
	banner, err := ctl.readReply(ctx)
	if err != nil {
		return err
	}
	if banner.class() != classComplete {
		return replyError("connect", banner)
	}
	text := strings.ToUpper(strings.Join(banner.lines, "\n"))
	s.remoteIsAmiga = strings.Contains(text, "AMIGA")
	if strings.Contains(text, " SPFTP/1.0.0000 SERVER ") {
		s.listing = listStrict
	}

	name := s.login.User
	if s.proxied {
		name += "@" + s.key.host
	}
	pass := make([]byte, 0, len(s.login.password)+1)
	if s.login.Anonymous && !s.opts.DisableAnonymousDashPrefix {
		pass = append(pass, '-')
	}
	pass = append(pass, s.login.password...)
	defer wipe(pass)

	rep, err := ctl.cmd(ctx, "USER %s", name)
	if err != nil {
		return err
	}
	if rep.class() == classContinue && rep.code != _ftp.StatusLoginNeedAccount {
		if rep, err = ctl.sendPassword(ctx, pass); err != nil {
			return err
		}
	}
	if rep.class() == classContinue {
		if rep, err = ctl.cmd(ctx, "ACCT %s", s.login.Account); err != nil {
			return err
		}
	}
	if rep.class() != classComplete {
		e := replyError(ctl.lastVerb, rep)
		if e.Kind != ErrConnectivity {
			e.Kind = ErrAuth
		}
		return e
	}
	return nil
}

// pwd returns the working directory reported by the server, "/" when it cannot be parsed.
func (s *Session) pwd(ctx context.Context) string {
	rep, err := s.ctl.cmd(ctx, "PWD")
	if err != nil || rep.class() != classComplete {
		return "/"
	}
	return parsePWD(rep.final())
}

// parsePWD extracts the quoted directory of a 257 reply. Amiga servers may omit the leading slash.
func parsePWD(line string) string {
	_, rest, ok := strings.Cut(line, `"`)
	if !ok {
		return "/"
	}
	dir, _, ok := strings.Cut(rest, `"`)
	if !ok || dir == "" {
		return "/"
	}
	return dirKey(dir)
}

// isConnectionLost reports errors that mean the control connection is gone.
func isConnectionLost(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrConnectivity) || errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ECONNRESET) || errors.Is(err, net.ErrClosed) || errors.Is(err, io.EOF)
}

// supervise runs op and, if the control connection was lost, reconnects and runs op once more. A failure while
// already reconnecting is returned as is.
func (s *Session) supervise(ctx context.Context, op func() error) error {
	err := op()
	if !isConnectionLost(err) || s.state == stateReconnecting || ctx.Err() != nil {
		return err
	}
	s.log.Info("ftp connection lost, reconnecting", zap.Error(err))
	if rerr := s.reconnect(ctx); rerr != nil {
		return rerr
	}
	return op()
}

// reconnect replaces the control connection with a freshly logged in one and restores the working directory.
// A directory that can no longer be entered is forgotten rather than failing the reconnect.
func (s *Session) reconnect(ctx context.Context) error {
	if s.state == stateReconnecting {
		return newError(ErrConnectivity, "reconnect", errors.New("reconnect already in progress"))
	}
	s.state = stateReconnecting
	cwd := s.cwd

	ctl, err := s.dial(ctx)
	if err != nil {
		s.state = stateConnected
		reconnectsTotal.WithLabelValues("failure").Inc()
		return err
	}
	if s.ctl != nil {
		_ = s.ctl.close()
	}
	s.ctl = ctl
	s.cwd = ""
	s.xferType = typeUnknown

	if err := s.loginOn(ctx, ctl); err != nil {
		_ = ctl.close()
		s.ctl = nil
		s.state = stateConnected
		reconnectsTotal.WithLabelValues("failure").Inc()
		return err
	}
	s.state = stateConnected

	if cwd != "" {
		if err := s.chdir(ctx, cwd); err != nil {
			s.log.Warn("could not restore working directory after reconnect", zap.String("dir", cwd),
				zap.Error(err))
		}
	}
	reconnectsTotal.WithLabelValues("success").Inc()
	return nil
}

// ready checks that the control channel can take a command, reconnecting a session whose last reconnect failed.
func (s *Session) ready(ctx context.Context, op string) error {
	if s.state == stateClosed {
		return newError(ErrConnectivity, op, net.ErrClosed)
	}
	if s.busy {
		return newError(ErrBusy, op, nil)
	}
	s.lastUsed = s.now()
	if s.ctl == nil || s.ctl.broken {
		return s.reconnect(ctx)
	}
	return nil
}

// chdir changes the server's working directory unless it is already there.
func (s *Session) chdir(ctx context.Context, dir string) error {
	dir = dirKey(dir)
	if !s.cwdDeferred && s.cwd == dir {
		return nil
	}
	rep, err := s.ctl.cmd(ctx, "CWD %s", toRemote(dir, s.remoteIsAmiga))
	if err != nil {
		s.cwdDeferred = true
		return err
	}
	if rep.class() != classComplete {
		return replyError("CWD", rep)
	}
	s.cwd = dir
	s.cwdDeferred = false
	return nil
}

// setType sends TYPE only when the requested type differs from the current one.
func (s *Session) setType(ctx context.Context, t transferType) error {
	if s.xferType == t {
		return nil
	}
	code := "A"
	if t == typeBinary {
		code = "I"
	}
	if _, err := s.ctl.expect(ctx, classComplete, "TYPE %s", code); err != nil {
		return err
	}
	s.xferType = t
	return nil
}

// Home returns the directory the server put the session in after login.
func (s *Session) Home() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.home
}

// idleSince reports whether the session can be reaped: not busy and unused since before t.
func (s *Session) idleSince(t time.Time) bool {
	if !s.mu.TryLock() {
		return false
	}
	defer s.mu.Unlock()
	return !s.busy && s.lastUsed.Before(t)
}

// Close sends QUIT, closes the control connection and wipes the password.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == stateClosed {
		return nil
	}
	s.state = stateClosed
	s.dirs.flush()
	if s.login != nil {
		s.login.Wipe()
	}
	sessionsOpen.Dec()
	if s.ctl == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.DialTimeout)
	defer cancel()
	_ = s.ctl.send(ctx, "QUIT")
	err := s.ctl.close()
	s.ctl = nil
	s.log.Info("ftp session closed")
	return err
}
