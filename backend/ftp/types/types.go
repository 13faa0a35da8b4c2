package types

import (
	"context"
	"io"
	"io/fs"

	_ftp "github.com/jlaffaye/ftp"
)

// OpenType represents the mode(read or write) that we open a file for.
type OpenType int

const (
	_ OpenType = iota
	// OpenRead denotes Read mode
	OpenRead
	// OpenWrite denotes Write mode
	OpenWrite
)

// Entry is one parsed line of a remote directory listing.
type Entry struct {
	_ftp.Entry // Name, Target (symlinks), Type, Size, Time

	Mode  fs.FileMode
	Links int
	Owner string
	Group string
}

// IsDir reports whether the entry is a directory.
func (e *Entry) IsDir() bool {
	return e.Type == _ftp.EntryTypeFolder
}

// DataConn represents an in-flight transfer over an FTP data connection. Close completes the transfer and reads the
// final control reply; Abort interrupts it.
type DataConn interface {
	Mode() OpenType
	Abort() error
	io.ReadWriteCloser
}

// Client is the set of remote operations the filesystem needs from an FTP session.
// Paths are absolute remote paths as seen by the vfs (leading slash).
type Client interface {
	List(ctx context.Context, dir string) ([]*Entry, error)
	Stat(ctx context.Context, p string) (*Entry, error)
	MakeDir(ctx context.Context, p string) error
	RemoveDir(ctx context.Context, p string) error
	Delete(ctx context.Context, p string) error
	Rename(ctx context.Context, from, to string) error
	Chmod(ctx context.Context, p string, mode fs.FileMode) error
	Chown(ctx context.Context, p string, uid, gid int) error
	Retrieve(ctx context.Context, p string, offset uint64) (DataConn, error)
	Store(ctx context.Context, p string, offset uint64, appendMode bool) (DataConn, error)
	Home() string
	Close() error
}
