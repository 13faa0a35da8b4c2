package ftp

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	vfs "github.com/c2fo/ftpvfs"
	"github.com/c2fo/ftpvfs/backend"
	"github.com/c2fo/ftpvfs/backend/ftp/mocks"
	"github.com/c2fo/ftpvfs/logging"
	"github.com/c2fo/ftpvfs/options/newfile"
	"github.com/c2fo/ftpvfs/options/newlocation"
	"github.com/c2fo/ftpvfs/utils"
	"github.com/c2fo/ftpvfs/utils/authority"
)

type fileSystemTestSuite struct {
	suite.Suite
	client *mocks.Client
	ftpfs  *FileSystem
}

func (ts *fileSystemTestSuite) SetupTest() {
	ts.client = mocks.NewClient(ts.T())
	ts.ftpfs = NewFileSystem(WithClient(ts.client))
}

func (ts *fileSystemTestSuite) TestNewFileSystem() {
	newFS := NewFileSystem()
	ts.NotNil(newFS, "Should return a new fileSystem for ftp")
	ts.Nil(newFS.client)

	newFS = NewFileSystem(WithOptions(Options{DisablePassive: true}))
	ts.True(newFS.options.DisablePassive, "Should set options")

	ts.Equal(ts.client, ts.ftpfs.client, "Should set client to mockClient")
}

func (ts *fileSystemTestSuite) TestRegistered() {
	ts.IsType(&FileSystem{}, backend.Backend(Scheme))
}

func (ts *fileSystemTestSuite) TestNewFile() {
	filePath := "/path/to/file.txt"
	file, err := ts.ftpfs.NewFile("host.com", filePath)
	ts.Require().NoError(err, "No errors returned by NewFile(%s)", filePath)
	ts.Equal("file.txt", file.Name())
	ts.Equal("/path/to/", file.Location().Path())
	ts.Equal("ftp://host.com/path/to/file.txt", file.URI())
}

func (ts *fileSystemTestSuite) TestNewFileOptions() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	file, err := ts.ftpfs.NewFile("host.com", "/log.txt", newfile.WithContext(ctx), newfile.WithAppend())
	ts.Require().NoError(err)
	f := file.(*File)
	ts.Equal(ctx, f.ctx)
	ts.True(f.appendMode)
}

func (ts *fileSystemTestSuite) TestNewFile_Error() {
	// test nil pointer
	var nilftpfs *FileSystem
	_, err := nilftpfs.NewFile("host.com", "/path/to/file.txt")
	ts.Require().ErrorIs(err, errFileSystemRequired, "errors returned by NewFile")

	// test validation error
	file, err := ts.ftpfs.NewFile("host.com", "relative/path/to/file.txt")
	ts.Require().EqualError(err, utils.ErrBadAbsFilePath, "errors returned by NewFile")
	ts.Nil(file, "NewFile shouldn't return a file")

	file, err = ts.ftpfs.NewFile("host.com", "")
	ts.Require().ErrorIs(err, errAuthorityAndPathRequired)
	ts.Nil(file)

	file, err = ts.ftpfs.NewFile("", "/some/file.txt")
	ts.Require().ErrorIs(err, errAuthorityAndPathRequired, "bad authority")
	ts.Nil(file)

	file, err = ts.ftpfs.NewFile("host.com", "/some/dir/")
	ts.Require().EqualError(err, utils.ErrBadAbsFilePath, "trailing slash")
	ts.Nil(file)
}

func (ts *fileSystemTestSuite) TestNewLocation() {
	loc, err := ts.ftpfs.NewLocation("bob@host.com:2121", "/path/to/../from/")
	ts.Require().NoError(err)
	ts.Equal("/path/from/", loc.Path(), "path is cleaned")
	ts.Equal("bob", loc.Authority().UserInfo().Username())
	ts.Equal("ftp://bob@host.com:2121/path/from/", loc.URI())
}

func (ts *fileSystemTestSuite) TestNewLocationContext() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loc, err := ts.ftpfs.NewLocation("host.com", "/", newlocation.WithContext(ctx))
	ts.Require().NoError(err)
	ts.Equal(ctx, loc.(*Location).ctx)

	loc, err = ts.ftpfs.NewLocation("host.com", "/")
	ts.Require().NoError(err)
	ts.Equal(context.Background(), loc.(*Location).context())
}

func (ts *fileSystemTestSuite) TestNewLocation_Error() {
	// test nil pointer
	var nilftpfs *FileSystem
	_, err := nilftpfs.NewLocation("somehost.com", "/path/to/")
	ts.Require().ErrorIs(err, errFileSystemRequired, "errors returned by NewLocation")

	// test validation error
	loc, err := ts.ftpfs.NewLocation("host.com", "relative/path/to/")
	ts.Require().EqualError(err, utils.ErrBadAbsLocationPath, "errors returned by NewLocation")
	ts.Nil(loc)

	loc, err = ts.ftpfs.NewLocation("host.com", "")
	ts.Require().ErrorIs(err, errAuthorityAndPathRequired)
	ts.Nil(loc)

	loc, err = ts.ftpfs.NewLocation("", "/path/")
	ts.Require().ErrorIs(err, errAuthorityAndPathRequired)
	ts.Nil(loc)
}

func (ts *fileSystemTestSuite) TestName() {
	ts.Equal("File Transfer Protocol", ts.ftpfs.Name(), "Name() is ftp.name const")
}

func (ts *fileSystemTestSuite) TestScheme() {
	ts.Equal("ftp", ts.ftpfs.Scheme(), "expected scheme found")
}

func (ts *fileSystemTestSuite) TestClient() {
	// client already set
	loc, err := ts.ftpfs.NewLocation("host.com", "/")
	ts.Require().NoError(err)
	client, err := ts.ftpfs.Client(context.Background(), loc.Authority())
	ts.Require().NoError(err, "no error")
	ts.Equal(ts.client, client, "client was already set")
}

func (ts *fileSystemTestSuite) TestClose() {
	ts.client.EXPECT().Close().Return(nil).Once()
	ts.NoError(ts.ftpfs.Close())

	ts.NoError(NewFileSystem().Close(), "no sessions yet")
}

func (ts *fileSystemTestSuite) TestClientOpensPooledSessions() {
	srv := newFakeServer(ts.T())
	clk := newClock()
	ftpfs := NewFileSystem(
		WithOptions(testOptions()),
		WithLogger(logging.Nop()),
		WithDialer(&net.Dialer{Timeout: 5 * time.Second}),
		withClock(clk.now),
	)
	ts.T().Cleanup(func() { _ = ftpfs.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c1, err := ftpfs.Client(ctx, srv.auth())
	ts.Require().NoError(err)
	c2, err := ftpfs.Client(ctx, srv.auth())
	ts.Require().NoError(err)
	ts.Same(c1, c2)
	ts.Equal("/home/bob/", c1.Home())
	ts.Equal(1, srv.connections())

	ts.Require().NoError(ftpfs.Close())
	ts.Eventually(func() bool { return srv.count("QUIT") == 1 }, time.Second, 10*time.Millisecond)
}

func (ts *fileSystemTestSuite) TestClientUsesResolver() {
	srv := newFakeServer(ts.T())
	resolver := &failingResolver{}
	ftpfs := NewFileSystem(WithOptions(testOptions()), WithCredentialResolver(resolver))

	_, err := ftpfs.Client(context.Background(), srv.auth())
	ts.ErrorIs(err, ErrAuth)
	ts.Equal(1, resolver.calls)
	ts.Equal(0, srv.connections(), "nothing dialed without credentials")
}

func (ts *fileSystemTestSuite) TestNewDialer() {
	d, err := newDialer(Options{DialTimeout: time.Second})
	ts.Require().NoError(err)
	ts.IsType(&net.Dialer{}, d)

	d, err = newDialer(Options{SOCKSProxy: "127.0.0.1:1080"})
	ts.Require().NoError(err)
	ts.NotNil(d)
	_, plain := d.(*net.Dialer)
	ts.False(plain, "socks proxy wraps the dialer")
}

type failingResolver struct {
	calls int
}

func (r *failingResolver) Resolve(context.Context, authority.Authority) (*Credentials, error) {
	r.calls++
	return nil, newError(ErrAuth, "resolve", errors.New("no credentials"))
}

func (r *failingResolver) Forget(string, string) {}

func TestFileSystem(t *testing.T) {
	suite.Run(t, new(fileSystemTestSuite))
}

var _ vfs.FileSystem = (*FileSystem)(nil)
