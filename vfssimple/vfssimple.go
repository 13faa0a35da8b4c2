package vfssimple

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	vfs "github.com/c2fo/ftpvfs"
	"github.com/c2fo/ftpvfs/backend"
	_ "github.com/c2fo/ftpvfs/backend/all" // register all backends
)

// Errors returned while resolving a uri to a registered filesystem.
var (
	ErrMissingAuthority = errors.New("unable to determine uri authority ([user@]host[:port])")
	ErrMissingScheme    = errors.New("unable to determine uri scheme")
	ErrRegFsNotFound    = errors.New("no matching registered filesystem found")
	ErrBlankURI         = errors.New("uri is blank")
)

// NewLocation is a convenience function that allows for instantiating a location based on a uri string. Any
// registered backend is supported. Credentials not present in the uri are resolved by the backend (see the
// ftp package docs).
func NewLocation(uri string) (vfs.Location, error) {
	fs, host, path, err := parseSupportedURI(uri)
	if err != nil {
		return nil, fmt.Errorf("unable to create vfs.Location for uri %q: %w", uri, err)
	}

	return fs.NewLocation(host, path)
}

// NewFile is a convenience function that allows for instantiating a file based on a uri string. Any
// registered backend is supported.
func NewFile(uri string) (vfs.File, error) {
	fs, host, path, err := parseSupportedURI(uri)
	if err != nil {
		return nil, fmt.Errorf("unable to create vfs.File for uri %q: %w", uri, err)
	}

	return fs.NewFile(host, path)
}

// parseURI attempts to parse a URI and validate that it returns required results
func parseURI(uri string) (scheme, authority, path string, err error) {
	// return early if blank uri
	if uri == "" {
		err = ErrBlankURI
		return
	}

	// parse URI
	var u *url.URL
	u, err = url.Parse(uri)
	if err != nil {
		err = fmt.Errorf("unknown url.Parse error: %w", err)
		return
	}

	// validate schema
	scheme = u.Scheme
	if u.Scheme == "" {
		err = ErrMissingScheme
		return
	}

	// validate authority
	authority = u.Host
	path = u.Path
	if path == "" {
		path = "/"
	}

	if u.User.String() != "" {
		authority = fmt.Sprintf("%s@%s", u.User, u.Host)
	}
	if u.Host == "" {
		return "", "", "", ErrMissingAuthority
	}

	return
}

// parseSupportedURI checks if URI matches any backend name as prefix, capturing the longest(most specific) match found.
// For instance, given registered backends with the names:
//
// 'ftp'                             - registered by default
// 'ftp://mirror.example.com/'       - perhaps registered with passive mode disabled
// 'ftp://mirror.example.com/pub/'   - and this one with a longer directory cache timeout
// 'ftp://bob@files.example.com/'    - registered with a prompter for bob's password
//
// See the expected registered filesystem for each:
//
// 'ftp://mirror.example.com/pub/'   - URI: 'ftp://mirror.example.com/pub/file.txt' (most specific match)
// 'ftp://mirror.example.com/pub/'   - URI: 'ftp://mirror.example.com/pub/'         (exact path-level match)
// 'ftp://mirror.example.com/'       - URI: 'ftp://mirror.example.com/incoming/'    (host-level match only)
// 'ftp://bob@files.example.com/'    - URI: 'ftp://bob@files.example.com/a.txt'     (user and host match)
// 'ftp'                             - URI: 'ftp://alice@files.example.com/a.txt'   (scheme-level match, only)
// 'ftp'                             - URI: 'ftp://other/path/to/nowhere/'          (scheme-level match, only)
func parseSupportedURI(uri string) (vfs.FileSystem, string, string, error) {
	_, authority, path, err := parseURI(uri)
	if err != nil {
		return nil, "", "", err
	}

	var longest string
	backends := backend.RegisteredBackends()
	for _, backendName := range backends {
		if strings.HasPrefix(uri, backendName) {
			// The first match always becomes the longest
			if longest == "" {
				longest = backendName
				continue
			}

			// we found a longer (more specific) backend prefix matching URI
			if len(backendName) > len(longest) {
				longest = backendName
			}
		}
	}

	if longest == "" {
		err = ErrRegFsNotFound
	}

	return backend.Backend(longest), authority, path, err
}
