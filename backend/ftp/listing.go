package ftp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	_ftp "github.com/jlaffaye/ftp"
	"go.uber.org/zap"

	"github.com/c2fo/ftpvfs/backend/ftp/types"
	"github.com/c2fo/ftpvfs/utils"
)

// errListingInterrupted marks a listing whose data connection broke mid-read. It is not a dialect mismatch.
var errListingInterrupted = errors.New("listing interrupted")

// List implements types.Client. A fresh cached listing is returned without touching the network, even while a
// transfer is in flight. The "." and ".." entries are not returned.
func (s *Session) List(ctx context.Context, dir string) ([]*types.Entry, error) {
	dir = dirKey(dir)
	if entries, ok := s.dirs.get(dir); ok {
		return entries, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(ctx, "LIST"); err != nil {
		return nil, err
	}

	var entries []*types.Entry
	err := s.supervise(ctx, func() error {
		var err error
		entries, err = s.loadDir(ctx, dir)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.dirs.put(dir, entries)
	return entries, nil
}

// loadDir picks the listing command for the session's dialect. In autodetect mode a failed "LIST -la" moves the
// session to strict mode for good and a successful one pins it to unix mode. An empty listing that was not taken
// from inside the directory is repeated after a CWD; if it is still empty the directory is empty.
func (s *Session) loadDir(ctx context.Context, dir string) ([]*types.Entry, error) {
	cdFirst := s.opts.FirstCDThenLS || s.listing == listStrict || strings.Contains(dir, " ")
	for {
		s.log.Debug("reading ftp directory", zap.String("dir", dir), zap.Stringer("mode", s.listing),
			zap.Bool("cdFirst", cdFirst))

		entries, count, err := s.listOnce(ctx, dir, cdFirst)
		if err == nil {
			if count == 0 && !cdFirst {
				cdFirst = true
				continue
			}
			if s.listing == listAutodetect {
				s.listing = listUnix
				s.log.Debug("server accepts unix listing options")
			}
			return entries, nil
		}

		if isConnectionLost(err) || errors.Is(err, ErrCanceled) || errors.Is(err, fs.ErrNotExist) ||
			errors.Is(err, errListingInterrupted) {
			return nil, err
		}
		if s.listing == listAutodetect {
			s.listing = listStrict
			cdFirst = true
			listingFallbacksTotal.WithLabelValues(listStrict.String()).Inc()
			s.log.Info("server rejected unix listing, falling back to strict rfc959 listing", zap.Error(err))
			continue
		}
		return nil, missing(err)
	}
}

// listOnce runs one listing attempt. count includes the "." and ".." entries that are dropped from the result.
func (s *Session) listOnce(ctx context.Context, dir string, cdFirst bool) ([]*types.Entry, int, error) {
	if cdFirst {
		if err := s.chdir(ctx, dir); err != nil {
			return nil, 0, notExist(err)
		}
	}

	var cmd string
	switch {
	case s.listing == listStrict:
		cmd = "LIST"
	case cdFirst:
		cmd = "LIST -la"
	default:
		// the trailing "/." lists the target of a symlinked directory
		cmd = "LIST -la " + toRemote(dir+".", s.remoteIsAmiga)
	}

	conn, err := s.startTransfer(ctx, typeASCII, 0, cmd)
	if err != nil {
		return nil, 0, err
	}

	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(aLongTimeAgo) })
	var (
		entries []*types.Entry
		count   int
	)
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 8*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		entry, ok := s.parser.parse(line)
		if !ok {
			s.log.Debug("cannot parse listing line", zap.String("line", line))
			continue
		}
		count++
		if entry.Name == "." || entry.Name == ".." {
			continue
		}
		entries = append(entries, entry)
	}
	stop()
	scanErr := scanner.Err()
	_ = conn.Close()

	rep, err := s.ctl.readReply(ctx)
	if err != nil {
		return nil, 0, err
	}
	if scanErr != nil {
		if ctx.Err() != nil {
			return nil, 0, newError(ErrCanceled, "LIST", ctx.Err())
		}
		return nil, 0, newError(ErrProtocol, "LIST", fmt.Errorf("%w: %w", errListingInterrupted, scanErr))
	}
	if rep.class() != classComplete {
		return nil, 0, replyError("LIST", rep)
	}
	return entries, count, nil
}

// notExist marks a rejected CWD as a missing directory.
func notExist(err error) error {
	var e *Error
	if errors.As(err, &e) && e.Code != 0 && e.Kind != ErrConnectivity {
		e.Err = fs.ErrNotExist
	}
	return err
}

// missing marks a 550 or 450 reply as a missing file or directory.
func missing(err error) error {
	var e *Error
	if errors.As(err, &e) && (e.Code == _ftp.StatusFileUnavailable || e.Code == _ftp.StatusFileActionIgnored) {
		e.Err = fs.ErrNotExist
	}
	return err
}

// Stat implements types.Client by looking the entry up in its parent's listing.
func (s *Session) Stat(ctx context.Context, p string) (*types.Entry, error) {
	p = utils.RemoveTrailingSlash(utils.EnsureLeadingSlash(p))
	if p == "" || p == "/" {
		return &types.Entry{Entry: _ftp.Entry{Name: "/", Type: _ftp.EntryTypeFolder}, Mode: fs.ModeDir | 0o755}, nil
	}
	entries, err := s.List(ctx, utils.ParentDir(p))
	if err != nil {
		return nil, err
	}
	name := path.Base(p)
	for _, e := range entries {
		if e.Name == name {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", p, fs.ErrNotExist)
}
