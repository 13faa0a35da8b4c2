package ftp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"path"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/c2fo/ftpvfs/logging"
	"github.com/c2fo/ftpvfs/utils/authority"
)

// fakeServer is a scripted FTP server on loopback. Every control connection shares the same files, directories and
// listings; handlers registered with on() run before the built-in behavior of a verb.
type fakeServer struct {
	t  *testing.T
	ln net.Listener

	mu       sync.Mutex
	banner   string
	user     string
	pass     string
	home     string
	files    map[string][]byte
	dirs     map[string]bool
	listings map[string][]string
	handlers map[string]serverHandler
	cmds     []string
	conns    int
	holdRETR bool
}

// serverHandler answers a command. Returning false falls through to the built-in behavior.
type serverHandler func(c *serverConn, arg string) bool

type serverConn struct {
	srv  *fakeServer
	conn net.Conn
	r    *bufio.Reader
	id   int

	cwd    string
	pasv   net.Listener
	active string
	rest   int64
	held   net.Conn
	rnfr   string
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := &fakeServer{
		t:        t,
		ln:       ln,
		banner:   "220 fake ftp server ready",
		user:     "bob",
		pass:     "secret",
		home:     "/home/bob",
		files:    map[string][]byte{},
		dirs:     map[string]bool{"/": true, "/home": true, "/home/bob": true},
		listings: map[string][]string{},
		handlers: map[string]serverHandler{},
	}
	go s.acceptLoop()
	t.Cleanup(func() { _ = ln.Close() })
	return s
}

func (s *fakeServer) port() uint16 {
	return uint16(s.ln.Addr().(*net.TCPAddr).Port)
}

func portString(s *fakeServer) string {
	return strconv.Itoa(int(s.port()))
}

// authority returns "bob@127.0.0.1:port".
func (s *fakeServer) authority() string {
	return fmt.Sprintf("%s@127.0.0.1:%d", s.user, s.port())
}

func (s *fakeServer) auth() authority.Authority {
	a, err := authority.NewAuthority(s.authority())
	require.NoError(s.t, err)
	return a
}

// set changes server settings under its lock.
func (s *fakeServer) set(f func(*fakeServer)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s)
}

func (s *fakeServer) on(verb string, h serverHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[verb] = h
}

func (s *fakeServer) addFile(p string, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[p] = []byte(content)
	s.dirs[path.Dir(p)] = true
}

func (s *fakeServer) file(p string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.files[p]
	return string(b), ok
}

func (s *fakeServer) addListing(dir string, lines ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dir = path.Clean(dir)
	s.dirs[dir] = true
	s.listings[dir] = lines
}

// commands returns the commands received so far, in order, prefixed by connection number: "1 USER bob".
func (s *fakeServer) commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.cmds...)
}

// count returns how many commands started with prefix, e.g. "LIST" or "CWD /pub".
func (s *fakeServer) count(prefix string) int {
	n := 0
	for _, c := range s.commands() {
		_, cmd, _ := strings.Cut(c, " ")
		if strings.HasPrefix(cmd, prefix) {
			n++
		}
	}
	return n
}

// commandsOn returns the commands received on connection id, without the prefix.
func (s *fakeServer) commandsOn(id int) []string {
	var out []string
	prefix := strconv.Itoa(id) + " "
	for _, c := range s.commands() {
		if strings.HasPrefix(c, prefix) {
			out = append(out, strings.TrimPrefix(c, prefix))
		}
	}
	return out
}

func (s *fakeServer) connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conns
}

func (s *fakeServer) acceptLoop() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conns++
		c := &serverConn{srv: s, conn: conn, r: bufio.NewReader(conn), id: s.conns, cwd: s.home}
		banner := s.banner
		s.mu.Unlock()
		go c.serve(banner)
	}
}

func (c *serverConn) reply(format string, args ...any) {
	_, _ = fmt.Fprintf(c.conn, format+"\r\n", args...)
}

// hangUp drops the control connection without a reply.
func (c *serverConn) hangUp() {
	_ = c.conn.Close()
}

func (c *serverConn) abs(arg string) string {
	if arg == "" {
		return c.cwd
	}
	if !strings.HasPrefix(arg, "/") {
		arg = path.Join(c.cwd, arg)
	}
	return path.Clean(arg)
}

func (c *serverConn) serve(banner string) {
	defer func() {
		_ = c.conn.Close()
		if c.pasv != nil {
			_ = c.pasv.Close()
		}
		if c.held != nil {
			_ = c.held.Close()
		}
	}()
	c.reply("%s", banner)
	for {
		line, err := c.r.ReadString('\n')
		if err != nil {
			return
		}
		// telnet IP/DM bytes precede an ABOR
		line = strings.TrimLeftFunc(strings.TrimRight(line, "\r\n"), func(r rune) bool {
			return r >= 0x80 || r == 0xFFFD
		})
		verb, arg, _ := strings.Cut(line, " ")
		verb = strings.ToUpper(verb)

		c.srv.mu.Lock()
		c.srv.cmds = append(c.srv.cmds, fmt.Sprintf("%d %s", c.id, line))
		h := c.srv.handlers[verb]
		c.srv.mu.Unlock()

		if h != nil && h(c, arg) {
			if verb == "QUIT" {
				return
			}
			continue
		}
		if !c.builtin(verb, arg) {
			return
		}
	}
}

// builtin runs the default behavior of verb and reports whether the connection stays open.
func (c *serverConn) builtin(verb, arg string) bool {
	s := c.srv
	switch verb {
	case "USER":
		c.reply("331 Please specify the password.")
	case "PASS":
		s.mu.Lock()
		ok := s.pass == "" || arg == s.pass
		s.mu.Unlock()
		if ok {
			c.reply("230 Login successful.")
		} else {
			c.reply("530 Login incorrect.")
		}
	case "ACCT":
		c.reply("230 Account accepted.")
	case "PWD":
		c.reply(`257 "%s" is the current directory`, c.cwd)
	case "CWD":
		p := c.abs(arg)
		s.mu.Lock()
		ok := s.dirs[p]
		s.mu.Unlock()
		if !ok {
			c.reply("550 Failed to change directory.")
			break
		}
		c.cwd = p
		c.reply("250 Directory successfully changed.")
	case "TYPE":
		c.reply("200 Switching to %s mode.", arg)
	case "PASV", "EPSV":
		l, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			c.reply("425 Cannot open passive connection.")
			break
		}
		c.pasv = l
		port := l.Addr().(*net.TCPAddr).Port
		if verb == "PASV" {
			c.reply("227 Entering Passive Mode (127,0,0,1,%d,%d).", port/256, port%256)
		} else {
			c.reply("229 Entering Extended Passive Mode (|||%d|)", port)
		}
	case "PORT":
		parts := strings.Split(arg, ",")
		if len(parts) != 6 {
			c.reply("501 Illegal PORT command.")
			break
		}
		hi, _ := strconv.Atoi(parts[4])
		lo, _ := strconv.Atoi(parts[5])
		c.active = net.JoinHostPort(strings.Join(parts[:4], "."), strconv.Itoa(hi*256+lo))
		c.reply("200 PORT command successful.")
	case "EPRT":
		parts := strings.Split(arg, "|")
		if len(parts) != 5 {
			c.reply("501 Illegal EPRT command.")
			break
		}
		c.active = net.JoinHostPort(parts[2], parts[3])
		c.reply("200 EPRT command successful.")
	case "REST":
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			c.reply("501 Bad REST.")
			break
		}
		c.rest = n
		c.reply("350 Restart position accepted (%d).", n)
	case "LIST":
		c.list(arg)
	case "RETR":
		c.retrieve(arg)
	case "STOR", "APPE":
		c.store(verb, arg)
	case "DELE":
		p := c.abs(arg)
		s.mu.Lock()
		_, ok := s.files[p]
		delete(s.files, p)
		s.mu.Unlock()
		if !ok {
			c.reply("550 Delete operation failed.")
			break
		}
		c.reply("250 Delete operation successful.")
	case "MKD":
		p := c.abs(arg)
		s.mu.Lock()
		s.dirs[p] = true
		s.mu.Unlock()
		c.reply(`257 "%s" created`, p)
	case "RMD":
		p := c.abs(arg)
		s.mu.Lock()
		ok := s.dirs[p]
		delete(s.dirs, p)
		s.mu.Unlock()
		if !ok {
			c.reply("550 Remove directory operation failed.")
			break
		}
		c.reply("250 Remove directory operation successful.")
	case "RNFR":
		p := c.abs(arg)
		s.mu.Lock()
		_, ok := s.files[p]
		ok = ok || s.dirs[p]
		s.mu.Unlock()
		if !ok {
			c.reply("550 RNFR command failed.")
			break
		}
		c.rnfr = p
		c.reply("350 Ready for RNTO.")
	case "RNTO":
		p := c.abs(arg)
		s.mu.Lock()
		if b, ok := s.files[c.rnfr]; ok {
			delete(s.files, c.rnfr)
			s.files[p] = b
		}
		s.mu.Unlock()
		c.reply("250 Rename successful.")
	case "SITE":
		c.reply("200 SITE CHMOD command ok.")
	case "ABOR":
		if c.held != nil {
			_ = c.held.Close()
			c.held = nil
			c.reply("426 Connection closed; transfer aborted.")
			c.reply("226 Closing data connection.")
			break
		}
		c.reply("225 No transfer to ABOR.")
	case "QUIT":
		c.reply("221 Goodbye.")
		return false
	default:
		c.reply("502 Command not implemented.")
	}
	return true
}

// openData accepts the passive connection or dials the active address.
func (c *serverConn) openData() (net.Conn, error) {
	if c.pasv != nil {
		l := c.pasv
		c.pasv = nil
		defer l.Close()
		_ = l.(*net.TCPListener).SetDeadline(time.Now().Add(5 * time.Second))
		return l.Accept()
	}
	if c.active != "" {
		addr := c.active
		c.active = ""
		return net.DialTimeout("tcp", addr, 5*time.Second)
	}
	return nil, io.ErrClosedPipe
}

func (c *serverConn) list(arg string) {
	var target string
	for _, f := range strings.Fields(arg) {
		if !strings.HasPrefix(f, "-") {
			target = f
		}
	}
	dir := c.abs(target)
	c.srv.mu.Lock()
	lines, ok := c.srv.listings[dir]
	if !ok && c.srv.dirs[dir] {
		ok = true
	}
	c.srv.mu.Unlock()
	if !ok {
		c.reply("550 No such directory.")
		return
	}
	c.reply("150 Here comes the directory listing.")
	dc, err := c.openData()
	if err != nil {
		c.reply("425 Cannot open data connection.")
		return
	}
	for _, l := range lines {
		_, _ = io.WriteString(dc, l+"\r\n")
	}
	_ = dc.Close()
	c.reply("226 Directory send OK.")
}

func (c *serverConn) retrieve(arg string) {
	p := c.abs(arg)
	c.srv.mu.Lock()
	b, ok := c.srv.files[p]
	hold := c.srv.holdRETR
	c.srv.mu.Unlock()
	if !ok {
		c.reply("550 Failed to open file.")
		return
	}
	rest := c.rest
	c.rest = 0
	if rest > int64(len(b)) {
		rest = int64(len(b))
	}
	c.reply("150 Opening BINARY mode data connection for %s (%d bytes).", p, len(b))
	dc, err := c.openData()
	if err != nil {
		c.reply("425 Cannot open data connection.")
		return
	}
	_, _ = dc.Write(b[rest:])
	if hold {
		// left open until ABOR
		c.held = dc
		return
	}
	_ = dc.Close()
	c.reply("226 Transfer complete.")
}

func (c *serverConn) store(verb, arg string) {
	p := c.abs(arg)
	rest := c.rest
	c.rest = 0
	c.reply("150 Ok to send data.")
	dc, err := c.openData()
	if err != nil {
		c.reply("425 Cannot open data connection.")
		return
	}
	data, _ := io.ReadAll(dc)
	_ = dc.Close()

	c.srv.mu.Lock()
	old := c.srv.files[p]
	switch {
	case verb == "APPE":
		data = append(append([]byte(nil), old...), data...)
	case rest > 0:
		if rest > int64(len(old)) {
			rest = int64(len(old))
		}
		data = append(append([]byte(nil), old[:rest]...), data...)
	}
	c.srv.files[p] = data
	c.srv.dirs[path.Dir(p)] = true
	c.srv.mu.Unlock()
	c.reply("226 Transfer complete.")
}

// testOptions are fast options for talking to a fakeServer.
func testOptions() Options {
	return Options{
		Password:          "secret",
		DisableNetrc:      true,
		RetryDelay:        -1,
		DialTimeout:       5 * time.Second,
		AbortDrainTimeout: time.Second,
		Location:          time.UTC,
	}
}

// testConfig builds a session config for opts, with defaults applied.
func testConfig(opts Options, now func() time.Time) sessionConfig {
	opts = opts.withDefaults()
	log := logging.Nop()
	return sessionConfig{
		opts:   opts,
		log:    log,
		creds:  NewCredentialResolver(opts, log, nil),
		dialer: &net.Dialer{Timeout: opts.DialTimeout},
		now:    now,
	}
}

// dialSession opens a session on srv.
func dialSession(t *testing.T, srv *fakeServer, opts Options, now func() time.Time) *Session {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s, err := openSession(ctx, srv.auth(), testConfig(opts, now))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// clock is a settable time source.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *clock {
	return &clock{t: time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
