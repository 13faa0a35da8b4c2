package ftp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Reply classes: the first digit of a reply code.
const (
	classPreliminary = 1
	classComplete    = 2
	classContinue    = 3
	classTransient   = 4
	classError       = 5
)

// aLongTimeAgo is a deadline that unblocks pending I/O immediately.
var aLongTimeAgo = time.Unix(1, 0)

// reply is a complete, possibly multi-line, server reply.
type reply struct {
	code  int
	lines []string
}

func (r *reply) class() int {
	return r.code / 100
}

// final returns the line that terminated the reply, e.g. "226 Transfer complete".
func (r *reply) final() string {
	if len(r.lines) == 0 {
		return ""
	}
	return r.lines[len(r.lines)-1]
}

// message returns the text of the final line without the code.
func (r *reply) message() string {
	l := r.final()
	if len(l) >= 4 && isCode(l[:3]) {
		return l[4:]
	}
	return l
}

func isCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// readReply reads one reply. Continuation lines start with "DDD-"; the reply ends at the first line starting with
// the same code followed by a space, whatever lines came in between. A line without a leading code is returned as
// a 500 reply. EOF before the reply is complete means the server closed the connection.
func readReply(r *bufio.Reader) (*reply, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, err
	}

	if len(line) < 3 || !isCode(line[:3]) {
		return &reply{code: 500, lines: []string{line}}, nil
	}
	code, _ := strconv.Atoi(line[:3])
	rep := &reply{code: code, lines: []string{line}}
	if len(line) < 4 || line[3] != '-' {
		return rep, nil
	}

	for {
		line, err = readLine(r)
		if err != nil {
			return nil, err
		}
		rep.lines = append(rep.lines, line)
		if len(line) >= 4 && line[:3] == rep.lines[0][:3] && line[3] == ' ' {
			return rep, nil
		}
	}
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			err = io.ErrUnexpectedEOF
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// controlConn is the command/reply channel of one session. It is not safe for concurrent use; the owning session
// serializes access.
type controlConn struct {
	conn     net.Conn
	reader   *bufio.Reader
	log      *zap.Logger
	lastVerb string
	broken   bool // an I/O error left the reply stream in an unknown state
}

func newControlConn(conn net.Conn, log *zap.Logger) *controlConn {
	return &controlConn{
		conn:   conn,
		reader: bufio.NewReader(conn),
		log:    log,
	}
}

// redact hides the argument of PASS.
func redact(line string) string {
	if len(line) >= 5 && strings.EqualFold(line[:5], "PASS ") {
		return "PASS <Password not logged>"
	}
	return line
}

// verbOf returns the command verb, skipping Telnet bytes sent ahead of it.
func verbOf(line string) string {
	line = strings.TrimLeftFunc(line, func(r rune) bool { return r == utf8.RuneError || r > unicode.MaxASCII })
	verb, _, _ := strings.Cut(line, " ")
	return strings.ToUpper(verb)
}

// watch makes pending I/O on the connection fail once ctx is done.
func (c *controlConn) watch(ctx context.Context) (stop func() bool) {
	return context.AfterFunc(ctx, func() {
		_ = c.conn.SetDeadline(aLongTimeAgo)
	})
}

// send writes one command line. Write failures are connectivity errors.
func (c *controlConn) send(ctx context.Context, format string, args ...any) error {
	line := fmt.Sprintf(format, args...)
	c.lastVerb = verbOf(line)
	c.log.Debug("ftp command", zap.String("cmd", redact(line)))

	stop := c.watch(ctx)
	defer stop()
	if _, err := io.WriteString(c.conn, line+"\r\n"); err != nil {
		return c.ioError(ctx, c.lastVerb, err)
	}
	return nil
}

// sendPassword sends PASS with the argument taken from pass and waits for the reply. pass and the line built from it
// are zeroed once written.
func (c *controlConn) sendPassword(ctx context.Context, pass []byte) (*reply, error) {
	line := make([]byte, 0, len("PASS ")+len(pass)+2)
	line = append(line, "PASS "...)
	line = append(line, pass...)
	line = append(line, '\r', '\n')
	wipe(pass)
	c.lastVerb = "PASS"
	c.log.Debug("ftp command", zap.String("cmd", redact("PASS ")))

	stop := c.watch(ctx)
	_, err := c.conn.Write(line)
	stop()
	wipe(line)
	if err != nil {
		return nil, c.ioError(ctx, c.lastVerb, err)
	}
	return c.readReply(ctx)
}

// readReply reads the reply to the last command sent.
func (c *controlConn) readReply(ctx context.Context) (*reply, error) {
	stop := c.watch(ctx)
	defer stop()

	rep, err := readReply(c.reader)
	if err != nil {
		return nil, c.ioError(ctx, c.lastVerb, err)
	}
	c.log.Debug("ftp reply", zap.Int("code", rep.code), zap.String("line", rep.final()))
	commandsTotal.WithLabelValues(c.lastVerb, strconv.Itoa(rep.class())).Inc()
	return rep, nil
}

// cmd sends a command and waits for its reply.
func (c *controlConn) cmd(ctx context.Context, format string, args ...any) (*reply, error) {
	if err := c.send(ctx, format, args...); err != nil {
		return nil, err
	}
	return c.readReply(ctx)
}

// expect runs cmd and turns a reply outside class into an *Error.
func (c *controlConn) expect(ctx context.Context, class int, format string, args ...any) (*reply, error) {
	rep, err := c.cmd(ctx, format, args...)
	if err != nil {
		return nil, err
	}
	if rep.class() != class {
		return rep, replyError(c.lastVerb, rep)
	}
	return rep, nil
}

// ioError marks the connection broken. A canceled command may still get its reply later, so the connection is
// closed rather than reused.
func (c *controlConn) ioError(ctx context.Context, op string, err error) error {
	c.broken = true
	if ctxErr := ctx.Err(); ctxErr != nil {
		_ = c.conn.Close()
		return newError(ErrCanceled, op, ctxErr)
	}
	return newError(ErrConnectivity, op, err)
}

// replyPending waits up to wait for the server to start another reply, without consuming it.
func (c *controlConn) replyPending(wait time.Duration) (bool, error) {
	if c.reader.Buffered() > 0 {
		return true, nil
	}
	_ = c.conn.SetReadDeadline(time.Now().Add(wait))
	_, err := c.reader.Peek(1)
	_ = c.conn.SetReadDeadline(time.Time{})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrDeadlineExceeded):
		return false, nil
	default:
		return false, c.ioError(context.Background(), c.lastVerb, err)
	}
}

func (c *controlConn) close() error {
	return c.conn.Close()
}
