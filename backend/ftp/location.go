package ftp

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"regexp"
	"strings"

	_ftp "github.com/jlaffaye/ftp"

	vfs "github.com/c2fo/ftpvfs"
	"github.com/c2fo/ftpvfs/backend/ftp/types"
	"github.com/c2fo/ftpvfs/options"
	"github.com/c2fo/ftpvfs/options/newfile"
	"github.com/c2fo/ftpvfs/utils"
	"github.com/c2fo/ftpvfs/utils/authority"
)

// Location implements the vfs.Location interface specific to ftp fs.
type Location struct {
	fileSystem *FileSystem
	path       string
	authority  authority.Authority
	ctx        context.Context
}

func (l *Location) context() context.Context {
	if l.ctx == nil {
		return context.Background()
	}
	return l.ctx
}

func (l *Location) client() (types.Client, error) {
	return l.fileSystem.Client(l.context(), l.authority)
}

// entries lists dir, treating a missing directory as empty.
func (l *Location) entries(dir string) ([]*types.Entry, error) {
	client, err := l.client()
	if err != nil {
		return nil, err
	}
	entries, err := client.List(l.context(), dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return entries, nil
}

// List returns the names of the files (not directories) at the location. Listings are served from the session's
// directory cache while fresh.
func (l *Location) List() ([]string, error) {
	entries, err := l.entries(l.Path())
	if err != nil {
		return []string{}, utils.WrapListError(err)
	}
	filenames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if isFileEntry(entry) {
			filenames = append(filenames, entry.Name)
		}
	}
	return filenames, nil
}

func isFileEntry(e *types.Entry) bool {
	return e.Type == _ftp.EntryTypeFile || e.Type == _ftp.EntryTypeLink
}

// ListByPrefix lists the location's files whose names start with prefix.
//   - Returns ([]string{}, nil) in the case of a non-existent directory/prefix/location.
//   - "relative" prefixes are allowed, ie, listByPrefix from "/some/path/" with prefix "to/somepattern" is the same as
//     location "/some/path/to/" with prefix of "somepattern"
//   - If the user cares about the distinction between an empty location and a non-existent one, Location.Exists() should
//     be checked first.
func (l *Location) ListByPrefix(prefix string) ([]string, error) {
	filenames := make([]string, 0)

	if err := utils.ValidatePrefix(prefix); err != nil {
		return filenames, err
	}

	// get absolute prefix path (in case prefix contains relative prefix, ie, some/path/to/myprefix)
	fullpath := path.Join(l.Path(), prefix)

	// For example, given:
	//   loc, _ := fs.NewLocation("user@host:21", "/some/path/")
	//   loc.ListByPrefix("subdir/prefix")
	// the directory resolves to "/some/path/subdir/" while the prefix is "prefix".
	var baseprefix string
	if prefix == "." {
		// path.Join treats "." as a directory
		baseprefix = prefix
		fullpath = utils.EnsureTrailingSlash(fullpath)
	} else {
		baseprefix = path.Base(fullpath)
		fullpath = utils.EnsureTrailingSlash(path.Dir(fullpath))
	}

	entries, err := l.entries(fullpath)
	if err != nil {
		return filenames, utils.WrapListByPrefixError(err)
	}

	for _, entry := range entries {
		if isFileEntry(entry) && strings.HasPrefix(entry.Name, baseprefix) {
			filenames = append(filenames, entry.Name)
		}
	}

	return filenames, nil
}

// ListByRegex retrieves the filenames of all the files at the location's current path, then filters out all those
// that don't match the given regex. The resource considerations of List() apply here as well.
func (l *Location) ListByRegex(regex *regexp.Regexp) ([]string, error) {
	filenames, err := l.List()
	if err != nil {
		return []string{}, utils.WrapListByRegexError(err)
	}

	filteredFilenames := make([]string, 0)
	for _, filename := range filenames {
		if regex.MatchString(filename) {
			filteredFilenames = append(filteredFilenames, filename)
		}
	}
	return filteredFilenames, nil
}

// Entries returns the full parsed listing of the location, directories included.
func (l *Location) Entries() ([]*types.Entry, error) {
	entries, err := l.entries(l.Path())
	if err != nil {
		return nil, utils.WrapListError(err)
	}
	return entries, nil
}

// Authority returns the Authority the location is contained in.
func (l *Location) Authority() authority.Authority {
	return l.authority
}

// Path returns the path the location references in most FTP calls.
func (l *Location) Path() string {
	return utils.EnsureLeadingSlash(utils.EnsureTrailingSlash(l.path))
}

// Exists returns true if the remote FTP directory exists.
func (l *Location) Exists() (bool, error) {
	client, err := l.client()
	if err != nil {
		return false, utils.WrapExistsError(err)
	}
	entry, err := client.Stat(l.context(), l.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, utils.WrapExistsError(err)
	}
	return entry.IsDir() || entry.Type == _ftp.EntryTypeLink, nil
}

// MakeDir creates the location's directory on the server. Parents are not created.
func (l *Location) MakeDir() error {
	client, err := l.client()
	if err != nil {
		return err
	}
	return client.MakeDir(l.context(), l.Path())
}

// RemoveDir removes the location's directory, which must be empty.
func (l *Location) RemoveDir() error {
	client, err := l.client()
	if err != nil {
		return err
	}
	return client.RemoveDir(l.context(), l.Path())
}

// NewLocation makes a copy of the underlying Location, then modifies its path by calling ChangeDir with the
// relativePath argument, returning the resulting location. The only possible errors come from the call to
// ChangeDir.
func (l *Location) NewLocation(relativePath string) (vfs.Location, error) {
	// make a copy of the original location first, then ChangeDir, leaving the original location as-is
	newLocation := &Location{}
	*newLocation = *l
	err := newLocation.ChangeDir(relativePath)
	if err != nil {
		return nil, err
	}
	return newLocation, nil
}

// ChangeDir takes a relative path, and modifies the underlying Location's path.
//
// Deprecated: use NewLocation instead.
func (l *Location) ChangeDir(relativePath string) error {
	err := utils.ValidateRelativeLocationPath(relativePath)
	if err != nil {
		return err
	}
	l.path = utils.EnsureLeadingSlash(utils.EnsureTrailingSlash(path.Join(l.path, relativePath)))
	return nil
}

// NewFile uses the properties of the calling location to generate a vfs.File (backed by an ftp.File). The filePath
// argument is expected to be a relative path to the location's current path.
func (l *Location) NewFile(filePath string, opts ...options.NewFileOption) (vfs.File, error) {
	err := utils.ValidateRelativeFilePath(filePath)
	if err != nil {
		return nil, err
	}
	newFile := &File{
		location: l,
		path:     utils.EnsureLeadingSlash(path.Join(l.path, filePath)),
		ctx:      l.context(),
	}
	for _, o := range opts {
		switch o := o.(type) {
		case *newfile.Context:
			if o.Context != nil {
				newFile.ctx = o.Context
			}
		case *newfile.Append:
			newFile.appendMode = true
		}
	}
	return newFile, nil
}

// DeleteFile removes the file at fileName path.
func (l *Location) DeleteFile(fileName string, opts ...options.DeleteOption) error {
	file, err := l.NewFile(fileName)
	if err != nil {
		return err
	}

	return file.Delete(opts...)
}

// FileSystem returns a vfs.fileSystem interface of the location's underlying fileSystem.
func (l *Location) FileSystem() vfs.FileSystem {
	return l.fileSystem
}

// URI returns the Location's URI as a string.
func (l *Location) URI() string {
	return utils.EncodeURI(l.FileSystem().Scheme(), l.authority.UserInfo().Username(), l.authority.HostPortStr(), l.Path())
}

// String implement fmt.Stringer, returning the location's URI as the default string.
func (l *Location) String() string {
	return l.URI()
}
