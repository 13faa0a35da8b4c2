package vfs

import (
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/c2fo/ftpvfs/options"
	"github.com/c2fo/ftpvfs/utils/authority"
)

// FileSystem represents a filesystem with any authentication accounted for.
type FileSystem interface {
	// NewFile initializes a File on the specified authority at path 'absFilePath'. On error, nil is returned
	// for the file.
	NewFile(authority string, absFilePath string, opts ...options.NewFileOption) (File, error)

	// NewLocation initializes a Location on the specified authority with the given path. On error, nil is returned
	// for the location.
	NewLocation(authority string, absLocPath string, opts ...options.NewLocationOption) (Location, error)

	// Name returns the name of the FileSystem ie: File Transfer Protocol
	Name() string

	// Scheme, related to Name, is the uri scheme used by the FileSystem: ftp
	Scheme() string
}

// Location represents a filesystem path which serves as a start point for directory-like functionality.  A location may
// or may not actually exist on the filesystem.
type Location interface {
	fmt.Stringer

	// List returns a slice of strings representing the base names of the files found at the Location. All implementations
	// are expected to return ([]string{}, nil) in the case of a non-existent directory/prefix/location. If the user
	// cares about the distinction between an empty location and a non-existent one, Location.Exists() should be checked
	// first.
	List() ([]string, error)

	// ListByPrefix returns a slice of strings representing the base names of the files found in Location whose
	// filenames match the given prefix. An empty slice will be returned even for locations that don't exist.
	ListByPrefix(prefix string) ([]string, error)

	// ListByRegex returns a slice of strings representing the base names of the files found in Location that
	// matched the given regular expression. An empty slice will be returned even for locations that don't exist.
	ListByRegex(regex *regexp.Regexp) ([]string, error)

	// Authority returns the authority (user@host:port) the location lives on.
	Authority() authority.Authority

	// Path returns absolute path to the Location with leading and trailing slashes, ie /some/path/to/
	Path() string

	// Exists returns boolean if the location exists on the file system. Also returns an error if any.
	Exists() (bool, error)

	// NewLocation is an initializer for a new Location relative to the existing one. For instance, for location:
	// ftp://host/some/path/to/, calling NewLocation("../../") would return a new vfs.Location representing
	// ftp://host/some/.
	NewLocation(relLocPath string) (Location, error)

	// ChangeDir updates the existing Location's path to the provided relative path.
	//
	// Deprecated: use NewLocation instead.
	ChangeDir(relLocPath string) error

	// FileSystem returns the underlying vfs.FileSystem struct for Location.
	FileSystem() FileSystem

	// NewFile will instantiate a vfs.File instance at or relative to the current location's path. In the case of an
	// error, nil will be returned.
	NewFile(relFilePath string, opts ...options.NewFileOption) (File, error)

	// DeleteFile deletes the file of the given name at the location.
	DeleteFile(relFilePath string, opts ...options.DeleteOption) error

	// URI returns the fully qualified URI for the Location.  IE, ftp://user@host/some/path/
	URI() string
}

// File represents a file on a filesystem.  A File may or may not actually exist on the filesystem.
type File interface {
	io.Closer
	io.Reader
	io.Seeker
	io.Writer
	fmt.Stringer

	// Exists returns boolean if the file exists on the file system.  Also returns an error if any.
	Exists() (bool, error)

	// Location returns the vfs.Location for the File.
	Location() Location

	// CopyToLocation will copy the current file to the provided location. If the file already exists at the location,
	// the contents will be overwritten with the current file's contents.
	CopyToLocation(location Location) (File, error)

	// CopyToFile will copy the current file to the provided file instance. If the file already exists,
	// the contents will be overwritten with the current file's contents.
	CopyToFile(file File) error

	// MoveToLocation will move the current file to the provided location. If the file already exists at the location,
	// the contents will be overwritten with the current file's contents.
	MoveToLocation(location Location) (File, error)

	// MoveToFile will move the current file to the provided file instance. The current instance of the file will be
	// removed.
	MoveToFile(file File) error

	// Delete unlinks the File on the filesystem.
	Delete(opts ...options.DeleteOption) error

	// LastModified returns the timestamp the file was last modified (as *time.Time).
	LastModified() (*time.Time, error)

	// Size returns the size of the file in bytes.
	Size() (uint64, error)

	// Path returns absolute path (with leading slash) including filename, ie /some/path/to/file.txt
	Path() string

	// Name returns the base name of the file path.  For ftp://host/some/path/to/file.txt, it would return file.txt
	Name() string

	// Touch creates a zero-length file on the vfs.File if no File exists.  Update File's last modified timestamp.
	Touch() error

	// URI returns the fully qualified URI for the File.  IE, ftp://user@host/some/path/to/file.txt
	URI() string
}
