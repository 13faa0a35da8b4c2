package ftp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"time"

	vfs "github.com/c2fo/ftpvfs"
	"github.com/c2fo/ftpvfs/backend"
	"github.com/c2fo/ftpvfs/backend/ftp/types"
	"github.com/c2fo/ftpvfs/options"
	"github.com/c2fo/ftpvfs/options/delete"
	"github.com/c2fo/ftpvfs/utils"
)

// File implements vfs.File interface for FTP fs. Reads and writes stream over a single RETR or STOR (APPE for
// files created with newfile.WithAppend) that is opened on first use and restarted with REST after a Seek.
type File struct {
	location   *Location
	path       string
	ctx        context.Context
	appendMode bool

	dataconn types.DataConn
	offset   int64
}

func (f *File) client() (types.Client, error) {
	return f.location.fileSystem.Client(f.ctx, f.location.authority)
}

// Info Functions

// LastModified returns the LastModified property of ftp file.
func (f *File) LastModified() (*time.Time, error) {
	entry, err := f.stat()
	if err != nil {
		return nil, utils.WrapLastModifiedError(err)
	}
	t := entry.Time
	return &t, nil
}

func (f *File) stat() (*types.Entry, error) {
	client, err := f.client()
	if err != nil {
		return nil, err
	}
	entry, err := client.Stat(f.ctx, f.Path())
	if err != nil {
		return nil, err
	}
	if entry.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", f.Path(), vfs.ErrNotExist)
	}
	return entry, nil
}

// Name returns the base name of the file. IE: "file.txt" of "ftp://someuser@host.com/some/path/to/file.txt
func (f *File) Name() string {
	return path.Base(f.path)
}

// Path returns the absolute path of the file. IE: "/some/path/to/file.txt" of
// "ftp://someuser@host.com/some/path/to/file.txt
func (f *File) Path() string {
	return utils.EnsureLeadingSlash(f.path)
}

// Exists returns a boolean of whether or not the file exists on the ftp server
func (f *File) Exists() (bool, error) {
	_, err := f.stat()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, vfs.ErrNotExist) {
			// file does not exist
			return false, nil
		}
		// error calling stat
		return false, utils.WrapExistsError(err)
	}

	// file exists
	return true, nil
}

// Touch creates a zero-length file on the vfs.File if no File exists.  Update File's last modified timestamp.
// Returns error if unable to touch File.
func (f *File) Touch() error {
	exists, err := f.Exists()
	if err != nil {
		return utils.WrapTouchError(err)
	}

	if !exists {
		if _, err := f.Write([]byte{}); err != nil {
			return utils.WrapTouchError(err)
		}
		return utils.WrapTouchError(f.Close())
	}

	// FTP has no portable way to set a modification time, so rewrite the content
	return utils.WrapTouchError(utils.UpdateLastModifiedByMoving(f))
}

// Size returns the size of the remote file.
func (f *File) Size() (uint64, error) {
	entry, err := f.stat()
	if err != nil {
		return 0, utils.WrapSizeError(err)
	}
	return entry.Size, nil
}

// Location returns a vfs.Location at the location of the file. IE: if file is at
// ftp://someuser@host.com/here/is/the/file.txt the location points to ftp://someuser@host.com/here/is/the/
func (f *File) Location() vfs.Location {
	return &Location{
		fileSystem: f.location.fileSystem,
		path:       utils.EnsureTrailingSlash(path.Dir(f.path)),
		authority:  f.location.authority,
		ctx:        f.location.ctx,
	}
}

// Chmod sets the permission bits of the remote file with SITE CHMOD. Servers that do not support it are ignored.
func (f *File) Chmod(mode fs.FileMode) error {
	client, err := f.client()
	if err != nil {
		return err
	}
	return client.Chmod(f.ctx, f.Path(), mode)
}

// Move/Copy Operations

// sameSession reports whether t is reached through the same login as f, so a server-side rename can move it.
func (f *File) sameSession(t vfs.File) (*File, bool) {
	tf, ok := t.(*File)
	if !ok || tf.location.fileSystem != f.location.fileSystem {
		return nil, false
	}
	a, b := f.location.authority, tf.location.authority
	return tf, a.UserInfo().Username() == b.UserInfo().Username() &&
		strings.EqualFold(strings.TrimPrefix(a.Host(), "!"), strings.TrimPrefix(b.Host(), "!")) &&
		a.PortOr(defaultPort) == b.PortOr(defaultPort)
}

// MoveToFile puts the contents of File into the targetFile passed using File.CopyToFile.
// If the copy succeeds, the source file is deleted. Any errors from the copy or delete are
// returned.
// If the target is on the same ftp session (user, host and port), RNFR/RNTO is used instead, creating the target
// directory when it is missing.
func (f *File) MoveToFile(t vfs.File) error {
	return utils.WrapMoveToFileError(f.moveToFile(t))
}

func (f *File) moveToFile(t vfs.File) error {
	if tf, ok := f.sameSession(t); ok {
		if err := f.closeConn(); err != nil {
			return err
		}
		client, err := f.client()
		if err != nil {
			return err
		}

		// ensure destination exists before moving
		exists, err := t.Location().Exists()
		if err != nil {
			return err
		}
		if !exists {
			if err := client.MakeDir(f.ctx, t.Location().Path()); err != nil {
				return err
			}
		}
		return client.Rename(f.ctx, f.Path(), tf.Path())
	}

	// otherwise do copy-delete
	if err := f.CopyToFile(t); err != nil {
		return err
	}
	return f.Delete()
}

// MoveToLocation works by creating a new file on the target location then calling MoveToFile() on it.
func (f *File) MoveToLocation(location vfs.Location) (vfs.File, error) {
	newFile, err := location.NewFile(f.Name())
	if err != nil {
		return nil, utils.WrapMoveToLocationError(err)
	}

	err = f.MoveToFile(newFile)
	if err != nil {
		return nil, utils.WrapMoveToLocationError(err)
	}
	return newFile, nil
}

// CopyToFile puts the contents of File into the targetFile passed. The file's cursor must be at 0.
// A target on the same session is written from a local copy, as a session carries one transfer at a time.
func (f *File) CopyToFile(file vfs.File) error {
	return utils.WrapCopyToFileError(f.copyToFile(file))
}

func (f *File) copyToFile(file vfs.File) error {
	if err := backend.ValidateCopySeekPosition(f); err != nil {
		return err
	}

	var src io.Reader = f
	if _, ok := f.sameSession(file); ok {
		spooled, err := f.spool()
		if err != nil {
			_ = f.Close()
			return err
		}
		defer func() {
			_ = spooled.Close()
			_ = os.Remove(spooled.Name())
		}()
		src = spooled
	}

	if err := utils.TouchCopyBuffered(file, src, 0); err != nil {
		_ = f.Close()
		return err
	}
	// Close target to flush and ensure that cursor isn't at the end of the file when the caller reopens for read
	if cerr := file.Close(); cerr != nil {
		_ = f.Close()
		return cerr
	}
	// Close file (f) reader
	return f.Close()
}

// spool downloads the file into a local temporary file, completing the RETR before returning.
func (f *File) spool() (*os.File, error) {
	tmp, err := os.CreateTemp("", "ftpvfs-*")
	if err != nil {
		return nil, err
	}
	fail := func(err error) (*os.File, error) {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, err
	}
	if _, err := io.Copy(tmp, f); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		return fail(err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return fail(err)
	}
	return tmp, nil
}

// CopyToLocation creates a copy of *File, using the file's current path as the new file's
// path at the given location.
func (f *File) CopyToLocation(location vfs.Location) (vfs.File, error) {
	newFile, err := location.NewFile(f.Name())
	if err != nil {
		return nil, utils.WrapCopyToLocationError(err)
	}

	if err := f.CopyToFile(newFile); err != nil {
		return nil, utils.WrapCopyToLocationError(err)
	}
	return newFile, nil
}

// CRUD Operations

// Delete removes the remote file.  Error is returned, if any. With delete.WithIgnoreMissing a file that is already
// gone is not an error.
func (f *File) Delete(opts ...options.DeleteOption) error {
	if err := f.closeConn(); err != nil {
		return utils.WrapDeleteError(err)
	}
	client, err := f.client()
	if err != nil {
		return utils.WrapDeleteError(err)
	}
	err = client.Delete(f.ctx, f.Path())
	if err != nil && delete.HasIgnoreMissing(opts) && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return utils.WrapDeleteError(err)
}

// Close completes any transfer in progress and resets the cursor. A write is committed when the server confirms
// it; an unfinished read is aborted.
func (f *File) Close() error {
	err := f.closeConn()
	// no op for unopened file
	f.offset = 0
	if err != nil {
		return utils.WrapCloseError(err)
	}
	return nil
}

func (f *File) closeConn() error {
	if f.dataconn == nil {
		return nil
	}
	dc := f.dataconn
	f.dataconn = nil
	return dc.Close()
}

// conn returns a data connection in the given mode at the current offset, replacing one open in the other mode.
func (f *File) conn(mode types.OpenType) (types.DataConn, error) {
	if f.dataconn != nil {
		if f.dataconn.Mode() == mode {
			return f.dataconn, nil
		}
		if err := f.closeConn(); err != nil {
			return nil, err
		}
	}

	client, err := f.client()
	if err != nil {
		return nil, err
	}
	var dc types.DataConn
	if mode == types.OpenRead {
		dc, err = client.Retrieve(f.ctx, f.Path(), uint64(f.offset))
	} else {
		offset := uint64(f.offset)
		if f.appendMode {
			offset = 0
		}
		dc, err = client.Store(f.ctx, f.Path(), offset, f.appendMode)
	}
	if err != nil {
		return nil, err
	}
	f.dataconn = dc
	return dc, nil
}

// Read reads from the file's RETR stream, starting it at the current offset when necessary.
func (f *File) Read(p []byte) (n int, err error) {
	dc, err := f.conn(types.OpenRead)
	if err != nil {
		return 0, utils.WrapReadError(err)
	}

	n, err = dc.Read(p)
	f.offset += int64(n)
	if err != nil {
		// the transfer is complete (EOF) or aborted either way
		f.dataconn = nil
		if errors.Is(err, io.EOF) {
			return n, io.EOF
		}
		return n, utils.WrapReadError(err)
	}
	return n, nil
}

// Seek moves the cursor. An open transfer is closed when the position changes; the next Read or Write restarts it
// from the new offset with REST.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	var length int64
	if whence == io.SeekEnd {
		sz, err := f.Size()
		switch {
		case err == nil:
			length = int64(sz)
		case !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, vfs.ErrNotExist):
			return 0, utils.WrapSeekError(err)
		}
	}

	pos, err := utils.SeekTo(length, f.offset, offset, whence)
	if err != nil {
		return 0, utils.WrapSeekError(err)
	}
	if pos != f.offset {
		if err := f.closeConn(); err != nil {
			return 0, utils.WrapSeekError(err)
		}
		f.offset = pos
	}

	return f.offset, nil
}

// Write writes to the file's STOR (or APPE) stream, starting it at the current offset when necessary.
func (f *File) Write(data []byte) (res int, err error) {
	dc, err := f.conn(types.OpenWrite)
	if err != nil {
		return 0, utils.WrapWriteError(err)
	}

	b, err := dc.Write(data)
	f.offset += int64(b)
	if err != nil {
		f.dataconn = nil
		return b, utils.WrapWriteError(err)
	}

	return b, nil
}

// URI returns the File's URI as a string.
func (f *File) URI() string {
	a := f.location.authority
	return utils.EncodeURI(Scheme, a.UserInfo().Username(), a.HostPortStr(), f.Path())
}

// String implement fmt.Stringer, returning the file's URI as the default string.
func (f *File) String() string {
	return f.URI()
}
