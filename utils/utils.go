package utils

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	vfs "github.com/c2fo/ftpvfs"
)

const (
	// ErrBadAbsFilePath constant is returned when a file path is not absolute
	ErrBadAbsFilePath = "absolute file path is invalid - must include leading slash and may not include trailing slash"
	// ErrBadRelFilePath constant is returned when a file path is not relative
	ErrBadRelFilePath = "relative file path is invalid - may not include leading or trailing slashes"
	// ErrBadAbsLocationPath constant is returned when a file path is not absolute
	ErrBadAbsLocationPath = "absolute location path is invalid - must include leading and trailing slashes"
	// ErrBadRelLocationPath constant is returned when a file path is not relative
	ErrBadRelLocationPath = "relative location path is invalid - may not include leading slash but must include trailing slash"
	// ErrBadPrefix constant is returned when a prefix is not relative or ends in / or is empty
	ErrBadPrefix = "prefix is invalid - may not include leading or trailing slashes and may not be empty"
	// TouchCopyMinBufferSize min buffer size used in TouchCopyBuffered in bytes
	TouchCopyMinBufferSize = 262144
)

// regex to test whether the last character is a '/'
var hasTrailingSlash = regexp.MustCompile("/$")

// regex to test whether the first character is a '/'
var hasLeadingSlash = regexp.MustCompile("^/")

// RemoveTrailingSlash removes trailing slash, if any
func RemoveTrailingSlash(path string) string {
	return strings.TrimRight(path, "/")
}

// RemoveLeadingSlash removes leading slash, if any
func RemoveLeadingSlash(path string) string {
	return strings.TrimLeft(path, "/")
}

// ValidateAbsoluteFilePath ensures that a file path has a leading slash but not a trailing slash
func ValidateAbsoluteFilePath(name string) error {
	if !strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return errors.New(ErrBadAbsFilePath)
	}
	return nil
}

// ValidateRelativeFilePath ensures that a file path has neither leading nor trailing slashes
func ValidateRelativeFilePath(name string) error {
	if name == "" || name == "." || strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return errors.New(ErrBadRelFilePath)
	}
	return nil
}

// ValidateAbsoluteLocationPath ensure that a file path has both leading and trailing slashes
func ValidateAbsoluteLocationPath(name string) error {
	if !strings.HasPrefix(name, "/") || !strings.HasSuffix(name, "/") {
		return errors.New(ErrBadAbsLocationPath)
	}
	return nil
}

// ValidateRelativeLocationPath ensure that a file path has no leading slash but has a trailing slash
func ValidateRelativeLocationPath(name string) error {
	if strings.HasPrefix(name, "/") || !strings.HasSuffix(name, "/") {
		return errors.New(ErrBadRelLocationPath)
	}
	return nil
}

// ValidatePrefix ensures that a prefix path has neither leading nor trailing slashes
// may not be empty but unlike relative file path, *may* be simply "."
func ValidatePrefix(prefix string) error {
	if prefix == "" || strings.HasPrefix(prefix, "/") || strings.HasSuffix(prefix, "/") {
		return errors.New(ErrBadPrefix)
	}
	return nil
}

// EnsureTrailingSlash adds a trailing slash to dir unless it already has one.
func EnsureTrailingSlash(dir string) string {
	if hasTrailingSlash.MatchString(dir) {
		return dir
	}
	return dir + "/"
}

// EnsureLeadingSlash is like EnsureTrailingSlash except that it adds the leading slash if needed.
func EnsureLeadingSlash(dir string) string {
	if hasLeadingSlash.MatchString(dir) {
		return dir
	}
	return "/" + dir
}

// TouchCopyBuffered is a wrapper around io.CopyBuffer which ensures that even empty source files (reader) will get written as an
// empty file. It guarantees a Write() call on the target file.
// bufferSize is in bytes and is raised to TouchCopyMinBufferSize when smaller.
func TouchCopyBuffered(writer io.Writer, reader io.Reader, bufferSize int) error {
	if bufferSize < TouchCopyMinBufferSize {
		bufferSize = TouchCopyMinBufferSize
	}
	size, err := io.CopyBuffer(writer, reader, make([]byte, bufferSize))
	if err != nil {
		return err
	}
	if size == 0 {
		_, err = writer.Write([]byte{})
		if err != nil {
			return err
		}
	}
	return nil
}

// UpdateLastModifiedByMoving is used by some backends' Touch() method when a file already exists.
func UpdateLastModifiedByMoving(file vfs.File) error {
	// setup a tempfile
	tempfile, err := file.Location().
		NewFile(fmt.Sprintf("%s.%d", file.Name(), time.Now().UnixNano()))
	if err != nil {
		return err
	}

	// copy file to tempfile
	err = file.CopyToFile(tempfile)
	if err != nil {
		return err
	}

	// move tempfile back to file
	err = tempfile.MoveToFile(file)
	if err != nil {
		return err
	}
	return nil
}

// SeekTo is a helper function for Seek. It takes the current position, offset, whence, and length of the file
// and returns the new position. It also checks for invalid offsets and returns an error if one is found.
func SeekTo(length, position, offset int64, whence int) (int64, error) {
	switch whence {
	default:
		return 0, vfs.ErrSeekInvalidWhence
	case io.SeekStart:
		// this actually does nothing since the new position just becomes the offset but is here for completeness
	case io.SeekCurrent:
		offset += position
	case io.SeekEnd:
		offset += length
	}
	if offset < 0 {
		return 0, vfs.ErrSeekInvalidOffset
	}

	return offset, nil
}

// EncodeURI ensure that a uri is properly percent-encoded. The user is omitted when empty.
func EncodeURI(scheme, username, hostport, p string) string {
	u := &url.URL{
		Scheme: scheme,
		Host:   hostport,
		Path:   p,
	}
	if username != "" {
		u.User = url.User(username)
	}

	return u.String()
}

// ParentDir returns the absolute location path (with trailing slash) containing the given absolute path.
// The parent of "/" is "/".
func ParentDir(p string) string {
	return EnsureTrailingSlash(path.Dir(RemoveTrailingSlash(EnsureLeadingSlash(p))))
}
