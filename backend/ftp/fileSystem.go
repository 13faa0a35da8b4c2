package ftp

import (
	"context"
	"errors"
	"path"
	"sync"
	"time"

	"go.uber.org/zap"

	vfs "github.com/c2fo/ftpvfs"
	"github.com/c2fo/ftpvfs/backend"
	"github.com/c2fo/ftpvfs/backend/ftp/types"
	"github.com/c2fo/ftpvfs/logging"
	"github.com/c2fo/ftpvfs/options"
	"github.com/c2fo/ftpvfs/options/newlocation"
	"github.com/c2fo/ftpvfs/utils"
	"github.com/c2fo/ftpvfs/utils/authority"
)

// Scheme defines the filesystem type.
const Scheme = "ftp"
const name = "File Transfer Protocol"

var (
	errFileSystemRequired       = errors.New("non-nil ftp.FileSystem pointer is required")
	errAuthorityAndPathRequired = errors.New("non-empty string for authority and path is required")
)

// FileSystem implements vfs.FileSystem for the FTP filesystem.
type FileSystem struct {
	options  Options
	client   types.Client
	log      *zap.Logger
	dialer   Dialer
	prompter Prompter
	resolver CredentialResolver
	now      func() time.Time

	once    sync.Once
	pool    *pool
	poolErr error
}

// NewFileSystem initializer for fileSystem struct.
func NewFileSystem(opts ...options.NewFileSystemOption[FileSystem]) *FileSystem {
	fs := &FileSystem{
		options: Options{},
	}

	// apply options
	options.ApplyOptions(fs, opts...)

	return fs
}

// NewFile function returns the FTP implementation of vfs.File.
func (fs *FileSystem) NewFile(authorityStr, filePath string, opts ...options.NewFileOption) (vfs.File, error) {
	if fs == nil {
		return nil, errFileSystemRequired
	}

	if authorityStr == "" || filePath == "" {
		return nil, errAuthorityAndPathRequired
	}

	if err := utils.ValidateAbsoluteFilePath(filePath); err != nil {
		return nil, err
	}

	// get location path
	absLocPath := utils.EnsureTrailingSlash(path.Dir(filePath))
	loc, err := fs.NewLocation(authorityStr, absLocPath)
	if err != nil {
		return nil, err
	}
	filename := path.Base(filePath)
	return loc.NewFile(filename, opts...)
}

// NewLocation function returns the FTP implementation of vfs.Location.
// A newlocation.WithContext option bounds every remote call made through the location and the files created from it.
func (fs *FileSystem) NewLocation(authorityStr, locPath string, opts ...options.NewLocationOption) (vfs.Location, error) {
	if fs == nil {
		return nil, errFileSystemRequired
	}

	if authorityStr == "" || locPath == "" {
		return nil, errAuthorityAndPathRequired
	}

	if err := utils.ValidateAbsoluteLocationPath(locPath); err != nil {
		return nil, err
	}

	auth, err := authority.NewAuthority(authorityStr)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	for _, o := range opts {
		if c, ok := o.(*newlocation.Context); ok && c.Context != nil {
			ctx = c.Context
		}
	}

	return &Location{
		fileSystem: fs,
		path:       utils.EnsureTrailingSlash(path.Clean(locPath)),
		authority:  auth,
		ctx:        ctx,
	}, nil
}

// Name returns "File Transfer Protocol"
func (fs *FileSystem) Name() string {
	return name
}

// Scheme return "ftp" as the initial part of a file URI ie: ftp://
func (fs *FileSystem) Scheme() string {
	return Scheme
}

// Client returns the session for the authority, opening it if necessary. A client set with WithClient is returned
// as-is for every authority.
// See Overview for authentication resolution
func (fs *FileSystem) Client(ctx context.Context, auth authority.Authority) (types.Client, error) {
	if fs.client != nil {
		return fs.client, nil
	}
	p, err := fs.sessions()
	if err != nil {
		return nil, err
	}
	return p.get(ctx, auth)
}

// sessions builds the session pool on first use.
func (fs *FileSystem) sessions() (*pool, error) {
	fs.once.Do(func() {
		opts := fs.options.withDefaults()
		log := fs.log
		if log == nil {
			log = logging.L().Named("ftp")
		}
		dialer := fs.dialer
		if dialer == nil {
			dialer, fs.poolErr = newDialer(opts)
			if fs.poolErr != nil {
				return
			}
		}
		resolver := fs.resolver
		if resolver == nil {
			resolver = NewCredentialResolver(opts, log, fs.prompter)
		}
		fs.pool = newPool(sessionConfig{
			opts:   opts,
			log:    log,
			creds:  resolver,
			dialer: dialer,
			now:    fs.now,
		})
	})
	return fs.pool, fs.poolErr
}

// Close closes every open session, sending QUIT to each server. The FileSystem may be used again afterwards; new
// sessions are opened on demand.
func (fs *FileSystem) Close() error {
	if fs.client != nil {
		return fs.client.Close()
	}
	if fs.pool == nil {
		return nil
	}
	return fs.pool.Close()
}

func init() {
	// registers a default FileSystem
	backend.Register(Scheme, NewFileSystem())
}
