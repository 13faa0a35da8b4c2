package ftp

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"testing"
	"time"

	_ftp "github.com/jlaffaye/ftp"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/c2fo/ftpvfs/backend/ftp/mocks"
	"github.com/c2fo/ftpvfs/backend/ftp/types"
	"github.com/c2fo/ftpvfs/options/delete"
	"github.com/c2fo/ftpvfs/utils"
)

type locationTestSuite struct {
	suite.Suite
	ftpfs  *FileSystem
	client *mocks.Client
}

func (lt *locationTestSuite) SetupTest() {
	lt.client = mocks.NewClient(lt.T())
	lt.ftpfs = NewFileSystem(WithClient(lt.client))
}

func entryOf(name string, typ _ftp.EntryType) *types.Entry {
	return &types.Entry{Entry: _ftp.Entry{Name: name, Type: typ, Time: time.Now().UTC()}}
}

func (lt *locationTestSuite) dirEntries() []*types.Entry {
	return []*types.Entry{
		entryOf("file1.txt", _ftp.EntryTypeFile),
		entryOf("file2.txt", _ftp.EntryTypeFile),
		entryOf("file.go", _ftp.EntryTypeFile),
		entryOf("latest", _ftp.EntryTypeLink),
		entryOf("subdir", _ftp.EntryTypeFolder),
	}
}

func (lt *locationTestSuite) TestList() {
	locPath := "/dir1/"
	lt.client.EXPECT().List(mock.Anything, locPath).Return(lt.dirEntries(), nil).Once()

	loc, err := lt.ftpfs.NewLocation("host.com", locPath)
	lt.Require().NoError(err)
	fileList, err := loc.List()
	lt.Require().NoError(err, "Shouldn't return an error when successfully returning list.")
	lt.Equal([]string{"file1.txt", "file2.txt", "file.go", "latest"}, fileList, "directories are left out")

	// listing failure
	lt.client.EXPECT().List(mock.Anything, locPath).Return(nil, errors.New("some error")).Once()
	fileList, err = loc.List()
	lt.Error(err, "should return error")
	lt.Empty(fileList, "Should return no files on error")

	// location doesn't exist
	lt.client.EXPECT().List(mock.Anything, locPath).
		Return(nil, fmt.Errorf("LIST: %w", fs.ErrNotExist)).Once()
	fileList, err = loc.List()
	lt.NoError(err, "Shouldn't return an error on file not found.")
	lt.Empty(fileList, "Should return no files on file not found")
}

func (lt *locationTestSuite) TestListByPrefix() {
	lt.client.EXPECT().List(mock.Anything, "/dir1/").Return(lt.dirEntries(), nil).Once()
	loc, err := lt.ftpfs.NewLocation("host.com", "/dir1/")
	lt.Require().NoError(err)

	fileList, err := loc.ListByPrefix("file")
	lt.Require().NoError(err)
	lt.Equal([]string{"file1.txt", "file2.txt", "file.go"}, fileList)

	// relative prefix lists the subdirectory
	lt.client.EXPECT().List(mock.Anything, "/dir1/subdir/").
		Return([]*types.Entry{entryOf("report.csv", _ftp.EntryTypeFile), entryOf("other", _ftp.EntryTypeFile)}, nil).
		Once()
	fileList, err = loc.ListByPrefix("subdir/rep")
	lt.Require().NoError(err)
	lt.Equal([]string{"report.csv"}, fileList)

	// "." lists the location itself
	lt.client.EXPECT().List(mock.Anything, "/dir1/").Return(lt.dirEntries(), nil).Once()
	fileList, err = loc.ListByPrefix(".")
	lt.Require().NoError(err)
	lt.Empty(fileList)

	_, err = loc.ListByPrefix("/bad/")
	lt.EqualError(err, utils.ErrBadPrefix)

	lt.client.EXPECT().List(mock.Anything, "/dir1/").Return(nil, errors.New("boom")).Once()
	fileList, err = loc.ListByPrefix("file")
	lt.ErrorContains(err, "boom")
	lt.Empty(fileList)
}

func (lt *locationTestSuite) TestListByRegex() {
	lt.client.EXPECT().List(mock.Anything, "/dir1/").Return(lt.dirEntries(), nil).Once()
	loc, err := lt.ftpfs.NewLocation("host.com", "/dir1/")
	lt.Require().NoError(err)

	fileList, err := loc.ListByRegex(regexp.MustCompile(`\.txt$`))
	lt.Require().NoError(err)
	lt.Equal([]string{"file1.txt", "file2.txt"}, fileList)

	lt.client.EXPECT().List(mock.Anything, "/dir1/").Return(nil, errors.New("boom")).Once()
	fileList, err = loc.ListByRegex(regexp.MustCompile(`.*`))
	lt.Error(err)
	lt.Empty(fileList)
}

func (lt *locationTestSuite) TestEntries() {
	lt.client.EXPECT().List(mock.Anything, "/dir1/").Return(lt.dirEntries(), nil).Once()
	loc, err := lt.ftpfs.NewLocation("host.com", "/dir1/")
	lt.Require().NoError(err)
	entries, err := loc.(*Location).Entries()
	lt.Require().NoError(err)
	lt.Len(entries, 5, "directories are included")
}

func (lt *locationTestSuite) TestURI() {
	loc, err := lt.ftpfs.NewLocation("user@host.com:21", "/blah/")
	lt.Require().NoError(err)
	lt.Equal("ftp://user@host.com:21/blah/", loc.URI(), "location uri with user, host, port")

	loc, err = lt.ftpfs.NewLocation("host.com", "/some dir/")
	lt.Require().NoError(err)
	lt.Equal("ftp://host.com/some%20dir/", loc.URI(), "spaces are escaped")
}

func (lt *locationTestSuite) TestString() {
	loc, err := lt.ftpfs.NewLocation("user@host.com:21", "/blah/")
	lt.Require().NoError(err)
	lt.Equal("ftp://user@host.com:21/blah/", loc.String())
}

func (lt *locationTestSuite) TestPath() {
	loc, err := lt.ftpfs.NewLocation("host.com", "/path/")
	lt.Require().NoError(err)
	lt.Equal("/path/", loc.Path(), "Path() should return the location path.")

	loc, err = lt.ftpfs.NewLocation("host.com", "/path/./to/")
	lt.Require().NoError(err)
	lt.Equal("/path/to/", loc.Path())

	loc, err = lt.ftpfs.NewLocation("host.com", "/")
	lt.Require().NoError(err)
	lt.Equal("/", loc.Path(), "root location")
}

func (lt *locationTestSuite) TestNewFile() {
	loc, err := lt.ftpfs.NewLocation("host.com", "/some/path/to/")
	lt.Require().NoError(err)

	newfile, err := loc.NewFile("a/b/c/d.txt")
	lt.Require().NoError(err)
	lt.Equal("/some/path/to/a/b/c/d.txt", newfile.Path())

	newfile, err = loc.NewFile("../d.txt")
	lt.Require().NoError(err)
	lt.Equal("/some/path/d.txt", newfile.Path())

	_, err = loc.NewFile("/abs/file.txt")
	lt.EqualError(err, utils.ErrBadRelFilePath)
}

func (lt *locationTestSuite) TestExists() {
	loc, err := lt.ftpfs.NewLocation("host.com", "/dir/")
	lt.Require().NoError(err)

	lt.client.EXPECT().Stat(mock.Anything, "/dir/").Return(entryOf("dir", _ftp.EntryTypeFolder), nil).Once()
	exists, err := loc.Exists()
	lt.Require().NoError(err)
	lt.True(exists)

	// a symlink to a directory counts
	lt.client.EXPECT().Stat(mock.Anything, "/dir/").Return(entryOf("dir", _ftp.EntryTypeLink), nil).Once()
	exists, err = loc.Exists()
	lt.Require().NoError(err)
	lt.True(exists)

	// a plain file of the same name does not
	lt.client.EXPECT().Stat(mock.Anything, "/dir/").Return(entryOf("dir", _ftp.EntryTypeFile), nil).Once()
	exists, err = loc.Exists()
	lt.Require().NoError(err)
	lt.False(exists)

	lt.client.EXPECT().Stat(mock.Anything, "/dir/").Return(nil, fmt.Errorf("/dir: %w", fs.ErrNotExist)).Once()
	exists, err = loc.Exists()
	lt.Require().NoError(err)
	lt.False(exists)

	lt.client.EXPECT().Stat(mock.Anything, "/dir/").Return(nil, newError(ErrConnectivity, "LIST", nil)).Once()
	exists, err = loc.Exists()
	lt.ErrorIs(err, ErrConnectivity)
	lt.False(exists)
}

func (lt *locationTestSuite) TestMakeDir() {
	loc, err := lt.ftpfs.NewLocation("host.com", "/new/")
	lt.Require().NoError(err)
	lt.client.EXPECT().MakeDir(mock.Anything, "/new/").Return(nil).Once()
	lt.NoError(loc.(*Location).MakeDir())

	lt.client.EXPECT().MakeDir(mock.Anything, "/new/").Return(newError(ErrPermission, "MKD", nil)).Once()
	lt.ErrorIs(loc.(*Location).MakeDir(), ErrPermission)
}

func (lt *locationTestSuite) TestRemoveDir() {
	loc, err := lt.ftpfs.NewLocation("host.com", "/old/")
	lt.Require().NoError(err)
	lt.client.EXPECT().RemoveDir(mock.Anything, "/old/").Return(nil).Once()
	lt.NoError(loc.(*Location).RemoveDir())
}

func (lt *locationTestSuite) TestChangeDir() {
	l, err := lt.ftpfs.NewLocation("host.com", "/")
	lt.Require().NoError(err)
	loc := l.(*Location)

	lt.NoError(loc.ChangeDir("a/b/"))
	lt.Equal("/a/b/", loc.Path())

	lt.NoError(loc.ChangeDir("../c/"))
	lt.Equal("/a/c/", loc.Path())

	lt.EqualError(loc.ChangeDir("/abs/"), utils.ErrBadRelLocationPath)
	lt.EqualError(loc.ChangeDir("noslash"), utils.ErrBadRelLocationPath)
}

func (lt *locationTestSuite) TestNewLocation() {
	loc, err := lt.ftpfs.NewLocation("bob@host.com", "/old/")
	lt.Require().NoError(err)

	newLoc, err := loc.NewLocation("../new/")
	lt.Require().NoError(err)
	lt.Equal("/new/", newLoc.Path())
	lt.Equal("/old/", loc.Path(), "original location is unchanged")
	lt.Equal("bob", newLoc.Authority().UserInfo().Username())
	lt.Same(lt.ftpfs, newLoc.FileSystem())

	_, err = loc.NewLocation("/abs/")
	lt.EqualError(err, utils.ErrBadRelLocationPath)
}

func (lt *locationTestSuite) TestDeleteFile() {
	loc, err := lt.ftpfs.NewLocation("host.com", "/old/")
	lt.Require().NoError(err)

	lt.client.EXPECT().Delete(mock.Anything, "/old/filename.txt").Return(nil).Once()
	lt.NoError(loc.DeleteFile("filename.txt"), "Successful delete should not return an error.")

	missingErr := fmt.Errorf("DELE: %w", fs.ErrNotExist)
	lt.client.EXPECT().Delete(mock.Anything, "/old/gone.txt").Return(missingErr).Twice()
	lt.ErrorIs(loc.DeleteFile("gone.txt"), fs.ErrNotExist)
	lt.NoError(loc.DeleteFile("gone.txt", delete.WithIgnoreMissing()), "missing file ignored")

	lt.EqualError(loc.DeleteFile("/abs.txt"), utils.ErrBadRelFilePath)
}

func TestLocation(t *testing.T) {
	suite.Run(t, new(locationTestSuite))
}
