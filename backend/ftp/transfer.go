package ftp

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"time"

	_ftp "github.com/jlaffaye/ftp"
	"go.uber.org/zap"

	"github.com/c2fo/ftpvfs/backend/ftp/types"
	"github.com/c2fo/ftpvfs/utils"
)

// Telnet bytes sent ahead of ABOR.
const (
	telnetIAC = 255
	telnetIP  = 244
	telnetDM  = 242
)

// abortReplyWait bounds the wait for the reply to ABOR after a transfer that completed on its own.
const abortReplyWait = 250 * time.Millisecond

// startTransfer sets the type, negotiates a data connection, sends REST when offset > 0 and then cmd. The
// returned connection is open and the server has answered cmd with a 1xx reply; the final reply is still pending.
func (s *Session) startTransfer(ctx context.Context, t transferType, offset uint64, cmd string) (net.Conn, error) {
	if err := s.setType(ctx, t); err != nil {
		return nil, err
	}
	pd, err := s.openDataChannel(ctx)
	if err != nil {
		return nil, err
	}
	fail := func(err error) (net.Conn, error) {
		_ = pd.close()
		return nil, err
	}

	if offset > 0 {
		if _, err := s.ctl.expect(ctx, classContinue, "REST %d", offset); err != nil {
			return fail(err)
		}
	}
	rep, err := s.ctl.cmd(ctx, "%s", cmd)
	if err != nil {
		return fail(err)
	}
	if rep.class() != classPreliminary {
		return fail(replyError(verbOf(cmd), rep))
	}

	conn, err := pd.establish(ctx)
	if err != nil {
		// the server still owes a reply for cmd
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.AbortDrainTimeout)
		_, _ = s.ctl.readReply(rctx)
		cancel()
		return nil, err
	}
	return conn, nil
}

// Retrieve implements types.Client. Reading the returned connection to EOF completes the transfer.
func (s *Session) Retrieve(ctx context.Context, p string, offset uint64) (types.DataConn, error) {
	d, err := s.transfer(ctx, types.OpenRead, p, offset, "RETR")
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Store implements types.Client. Closing the returned connection completes the transfer.
func (s *Session) Store(ctx context.Context, p string, offset uint64, appendMode bool) (types.DataConn, error) {
	verb := "STOR"
	if appendMode {
		verb = "APPE"
	}
	d, err := s.transfer(ctx, types.OpenWrite, p, offset, verb)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Session) transfer(ctx context.Context, mode types.OpenType, p string, offset uint64,
	verb string) (*dataConn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(ctx, verb); err != nil {
		return nil, err
	}

	var conn net.Conn
	err := s.supervise(ctx, func() error {
		var err error
		conn, err = s.startTransfer(ctx, typeBinary, offset, verb+" "+toRemote(p, s.remoteIsAmiga))
		return err
	})
	if err != nil {
		if mode == types.OpenRead {
			return nil, missing(err)
		}
		return nil, err
	}

	s.busy = true
	if mode == types.OpenWrite {
		s.dirs.invalidate(utils.ParentDir(p))
	}
	d := &dataConn{
		s:    s,
		ctx:  ctx,
		conn: conn,
		mode: mode,
		path: p,
		verb: verb,
	}
	d.stop = context.AfterFunc(ctx, func() { _ = conn.SetDeadline(aLongTimeAgo) })
	return d, nil
}

// dataConn is an in-flight RETR, STOR or APPE. The owning session stays busy until the transfer completes or is
// aborted.
type dataConn struct {
	s    *Session
	ctx  context.Context
	conn net.Conn
	mode types.OpenType
	path string
	verb string
	stop func() bool
	done bool
}

// Mode returns the OpenType the connection was opened with.
func (d *dataConn) Mode() types.OpenType {
	return d.mode
}

func (d *dataConn) Read(buf []byte) (int, error) {
	if d.mode != types.OpenRead {
		return 0, readInvalidDataconnType
	}
	if d.done {
		return 0, dataconnClosed
	}
	n, err := d.conn.Read(buf)
	transferBytesTotal.WithLabelValues("download").Add(float64(n))
	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.EOF):
		if ferr := d.finish(); ferr != nil {
			return n, ferr
		}
		return n, io.EOF
	default:
		return n, d.failed(err)
	}
}

func (d *dataConn) Write(buf []byte) (int, error) {
	if d.mode != types.OpenWrite {
		return 0, writeInvalidDataconnType
	}
	if d.done {
		return 0, dataconnClosed
	}
	n, err := d.conn.Write(buf)
	transferBytesTotal.WithLabelValues("upload").Add(float64(n))
	if err != nil {
		return n, d.failed(err)
	}
	return n, nil
}

// Close completes an upload, or aborts a download that was not read to the end.
func (d *dataConn) Close() error {
	if d.done {
		return nil
	}
	if d.mode == types.OpenRead || d.ctx.Err() != nil {
		return d.Abort()
	}
	return d.finish()
}

// failed aborts after a data connection error and reports the error.
func (d *dataConn) failed(err error) error {
	_ = d.Abort()
	if d.ctx.Err() != nil {
		return newError(ErrCanceled, d.verb, d.ctx.Err())
	}
	return newError(ErrConnectivity, d.verb, err)
}

// finish closes the data connection and checks the final reply.
func (d *dataConn) finish() error {
	d.done = true
	d.stop()
	s := d.s
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.busy = false }()

	_ = d.conn.Close()
	if s.ctl == nil {
		return newError(ErrConnectivity, d.verb, net.ErrClosed)
	}
	rep, err := s.ctl.readReply(context.WithoutCancel(d.ctx))
	if err != nil {
		return err
	}
	if d.mode == types.OpenWrite {
		s.dirs.invalidate(utils.ParentDir(d.path))
	}
	if rep.class() != classComplete {
		return replyError(d.verb, rep)
	}
	return nil
}

// Abort interrupts the transfer: Telnet IAC IP IAC as urgent data, then ABOR, then the data connection is drained
// for at most AbortDrainTimeout before it is closed. A server that keeps sending past that window gets a fresh
// control connection. The ABOR reply is read, plus the reply after it when the first one is 426.
func (d *dataConn) Abort() error {
	if d.done {
		return nil
	}
	d.done = true
	d.stop()
	s := d.s
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.busy = false }()

	abortsTotal.Inc()
	s.log.Info("aborting transfer", zap.String("path", d.path), zap.String("verb", d.verb))
	ctx := context.WithoutCancel(d.ctx)

	if s.ctl == nil {
		_ = d.conn.Close()
		return newError(ErrConnectivity, "ABOR", net.ErrClosed)
	}
	if err := sendUrgent(s.ctl.conn, []byte{telnetIAC, telnetIP, telnetIAC}); err != nil {
		_ = d.conn.Close()
		s.log.Warn("abort error", zap.Error(err))
		return newError(ErrConnectivity, "ABOR", err)
	}
	if err := s.ctl.send(ctx, "%sABOR", string([]byte{telnetDM})); err != nil {
		_ = d.conn.Close()
		return err
	}

	if d.mode == types.OpenRead {
		_ = d.conn.SetDeadline(time.Now().Add(s.opts.AbortDrainTimeout))
		_, err := io.Copy(io.Discard, d.conn)
		if errors.Is(err, os.ErrDeadlineExceeded) {
			_ = d.conn.Close()
			s.log.Warn("server kept sending after ABOR, reconnecting")
			return s.reconnect(ctx)
		}
	}
	_ = d.conn.Close()

	rctx, cancel := context.WithTimeout(ctx, s.opts.AbortDrainTimeout)
	defer cancel()
	rep, err := s.ctl.readReply(rctx)
	if err != nil {
		return err
	}
	if rep.code == _ftp.StatusTransfertAborted {
		_, err := s.ctl.readReply(rctx)
		return err
	}
	// a transfer that had already finished answers with its own final reply, and ABOR gets one more
	pending, err := s.ctl.replyPending(abortReplyWait)
	if err != nil || !pending {
		return err
	}
	_, err = s.ctl.readReply(rctx)
	return err
}
