package ftp

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/c2fo/ftpvfs/utils"
)

type mutationKind int

const (
	mutMakeDir mutationKind = iota + 1
	mutRemoveDir
	mutDelete
	mutRename
	mutChmod
)

func (k mutationKind) String() string {
	switch k {
	case mutMakeDir:
		return "MKD"
	case mutRemoveDir:
		return "RMD"
	case mutDelete:
		return "DELE"
	case mutRename:
		return "RNFR"
	case mutChmod:
		return "SITE CHMOD"
	}
	return fmt.Sprintf("mutation(%d)", int(k))
}

// mutation is one change to the remote tree. to is only used by mutRename, mode only by mutChmod.
type mutation struct {
	kind mutationKind
	path string
	to   string
	mode fs.FileMode
}

// MakeDir implements types.Client.
func (s *Session) MakeDir(ctx context.Context, p string) error {
	return s.mutate(ctx, mutation{kind: mutMakeDir, path: p})
}

// RemoveDir implements types.Client.
func (s *Session) RemoveDir(ctx context.Context, p string) error {
	return s.mutate(ctx, mutation{kind: mutRemoveDir, path: p})
}

// Delete implements types.Client.
func (s *Session) Delete(ctx context.Context, p string) error {
	return s.mutate(ctx, mutation{kind: mutDelete, path: p})
}

// Rename implements types.Client.
func (s *Session) Rename(ctx context.Context, from, to string) error {
	return s.mutate(ctx, mutation{kind: mutRename, path: from, to: to})
}

// Chmod implements types.Client. Servers without SITE CHMOD are not an error.
func (s *Session) Chmod(ctx context.Context, p string, mode fs.FileMode) error {
	return s.mutate(ctx, mutation{kind: mutChmod, path: p, mode: mode})
}

// Chown implements types.Client. FTP has no way to change ownership, so it succeeds without doing anything.
func (s *Session) Chown(context.Context, string, int, int) error {
	return nil
}

// mutate runs m and drops the listings it made stale.
func (s *Session) mutate(ctx context.Context, m mutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(ctx, m.kind.String()); err != nil {
		return err
	}
	err := s.supervise(ctx, func() error {
		return s.runMutation(ctx, m)
	})
	if err != nil {
		if m.kind == mutDelete || m.kind == mutRemoveDir || m.kind == mutRename {
			return missing(err)
		}
		return err
	}
	s.invalidateFor(m)
	return nil
}

func (s *Session) runMutation(ctx context.Context, m mutation) error {
	remote := toRemote(m.path, s.remoteIsAmiga)
	switch m.kind {
	case mutMakeDir:
		_, err := s.ctl.expect(ctx, classComplete, "MKD %s", remote)
		return err
	case mutRemoveDir:
		_, err := s.ctl.expect(ctx, classComplete, "RMD %s", remote)
		return err
	case mutDelete:
		_, err := s.ctl.expect(ctx, classComplete, "DELE %s", remote)
		return err
	case mutRename:
		if _, err := s.ctl.expect(ctx, classContinue, "RNFR %s", remote); err != nil {
			return err
		}
		_, err := s.ctl.expect(ctx, classComplete, "RNTO %s", toRemote(m.to, s.remoteIsAmiga))
		return err
	case mutChmod:
		if _, err := s.ctl.cmd(ctx, "SITE CHMOD %04o %s", unixMode(m.mode), remote); isConnectionLost(err) {
			return err
		}
		return nil
	}
	return fmt.Errorf("unknown mutation %d", int(m.kind))
}

func (s *Session) invalidateFor(m mutation) {
	s.dirs.invalidate(utils.ParentDir(m.path))
	switch m.kind {
	case mutRemoveDir:
		s.dirs.invalidateTree(m.path)
	case mutRename:
		s.dirs.invalidateTree(m.path)
		s.dirs.invalidate(utils.ParentDir(m.to))
	}
}

// unixMode converts the permission and special bits of mode to their chmod octal value.
func unixMode(mode fs.FileMode) uint32 {
	m := uint32(mode.Perm())
	if mode&fs.ModeSetuid != 0 {
		m |= 0o4000
	}
	if mode&fs.ModeSetgid != 0 {
		m |= 0o2000
	}
	if mode&fs.ModeSticky != 0 {
		m |= 0o1000
	}
	return m
}
