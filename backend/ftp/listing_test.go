package ftp

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"time"

	_ftp "github.com/jlaffaye/ftp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

var pubListing = []string{
	"total 12",
	"drwxr-xr-x   2 ftp ftp 4096 Mar  1 10:00 .",
	"drwxr-xr-x   3 ftp ftp 4096 Mar  1 10:00 ..",
	"-rw-r--r--   1 ftp ftp    3 Mar  1 10:00 old",
	"lrwxrwxrwx   1 ftp ftp   11 Jan 02  2023 latest -> releases/v2",
	"drwxr-xr-x   2 ftp ftp 4096 Mar  1 10:00 releases",
}

type listingTestSuite struct {
	suite.Suite
	srv   *fakeServer
	clock *clock
}

func (s *listingTestSuite) SetupTest() {
	s.srv = newFakeServer(s.T())
	s.clock = newClock()
	s.srv.addListing("/pub", pubListing...)
}

func (s *listingTestSuite) ctx() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	s.T().Cleanup(cancel)
	return ctx
}

func (s *listingTestSuite) session(opts Options) *Session {
	return dialSession(s.T(), s.srv, opts, s.clock.now)
}

func (s *listingTestSuite) TestListParsesAndCaches() {
	sess := s.session(testOptions())

	entries, err := sess.List(s.ctx(), "/pub")
	s.Require().NoError(err)
	s.Require().Len(entries, 3, "dot entries are dropped")

	s.Equal("old", entries[0].Name)
	s.Equal(_ftp.EntryTypeFile, entries[0].Type)
	s.Equal(uint64(3), entries[0].Size)
	s.Equal(time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC), entries[0].Time)

	s.Equal("latest", entries[1].Name)
	s.Equal(_ftp.EntryTypeLink, entries[1].Type)
	s.Equal("releases/v2", entries[1].Target)

	s.Equal("releases", entries[2].Name)
	s.True(entries[2].IsDir())

	s.Equal(1, s.srv.count("LIST -la /pub/."))
	s.Equal(listUnix, sess.listing)
	loaded, ok := sess.dirs.loadedAt("/pub")
	s.True(ok)
	s.Equal(s.clock.now(), loaded)

	// served from the cache
	_, err = sess.List(s.ctx(), "/pub/")
	s.Require().NoError(err)
	s.Equal(1, s.srv.count("LIST"))
}

func (s *listingTestSuite) TestMutationInvalidatesParent() {
	s.srv.addFile("/pub/old", "abc")
	sess := s.session(testOptions())

	_, err := sess.List(s.ctx(), "/pub")
	s.Require().NoError(err)
	_, err = sess.List(s.ctx(), "/home/bob")
	s.Require().NoError(err)

	s.Require().NoError(sess.Delete(s.ctx(), "/pub/old"))
	_, ok := sess.dirs.loadedAt("/pub")
	s.False(ok, "the deleted file's directory is reloaded")
	_, ok = sess.dirs.loadedAt("/home/bob")
	s.True(ok, "other directories stay cached")

	_, err = sess.List(s.ctx(), "/pub")
	s.Require().NoError(err)
	s.Equal(2, s.srv.count("LIST -la /pub/."))
}

func (s *listingTestSuite) TestCacheExpires() {
	opts := testOptions()
	opts.DirectoryTimeout = 10 * time.Second
	sess := s.session(opts)

	_, err := sess.List(s.ctx(), "/pub")
	s.Require().NoError(err)

	s.clock.advance(10 * time.Second)
	_, err = sess.List(s.ctx(), "/pub")
	s.Require().NoError(err)
	s.Equal(1, s.srv.count("LIST"), "a listing is fresh for exactly the timeout")

	s.clock.advance(time.Second)
	_, err = sess.List(s.ctx(), "/pub")
	s.Require().NoError(err)
	s.Equal(2, s.srv.count("LIST"))
}

func (s *listingTestSuite) TestStrictFallback() {
	s.srv.on("LIST", func(c *serverConn, arg string) bool {
		if strings.HasPrefix(arg, "-") {
			c.reply("500 Unknown option.")
			return true
		}
		return false
	})
	before := testutil.ToFloat64(listingFallbacksTotal.WithLabelValues("strict"))
	sess := s.session(testOptions())

	entries, err := sess.List(s.ctx(), "/pub")
	s.Require().NoError(err)
	s.Len(entries, 3)
	s.Equal(listStrict, sess.listing)
	s.Equal(1, s.srv.count("CWD /pub/"))
	s.Equal(before+1, testutil.ToFloat64(listingFallbacksTotal.WithLabelValues("strict")))

	// strict for the rest of the session
	_, err = sess.List(s.ctx(), "/home/bob")
	s.Require().NoError(err)
	s.Equal(1, s.srv.count("LIST -la"))
	s.Equal(1, s.srv.count("CWD /home/bob/"))
}

func (s *listingTestSuite) TestDisableUnixListOptions() {
	opts := testOptions()
	opts.DisableUnixListOptions = true
	sess := s.session(opts)

	_, err := sess.List(s.ctx(), "/pub")
	s.Require().NoError(err)
	s.Equal(0, s.srv.count("LIST -la"))
	s.Equal(1, s.srv.count("CWD /pub/"))
}

func (s *listingTestSuite) TestEmptyListingRetriedInside() {
	s.srv.addListing("/empty")
	sess := s.session(testOptions())

	entries, err := sess.List(s.ctx(), "/empty")
	s.Require().NoError(err)
	s.Empty(entries)
	s.Equal(1, s.srv.count("LIST -la /empty/."))
	s.Equal(1, s.srv.count("CWD /empty/"))
	s.Equal(2, s.srv.count("LIST"))
}

func (s *listingTestSuite) TestDirectoryWithSpaceListedInside() {
	s.srv.addListing("/my files", "-rw-r--r--   1 ftp ftp    3 Mar  1 10:00 a.txt")
	sess := s.session(testOptions())

	entries, err := sess.List(s.ctx(), "/my files")
	s.Require().NoError(err)
	s.Len(entries, 1)
	s.Equal(1, s.srv.count("CWD /my files/"))
}

func (s *listingTestSuite) TestMissingDirectory() {
	sess := s.session(testOptions())

	// probing mode: the failed LIST -la is retried with CWD
	_, err := sess.List(s.ctx(), "/nope")
	s.Require().Error(err)
	s.ErrorIs(err, fs.ErrNotExist)

	// unix mode
	sess2 := dialSession(s.T(), s.srv, testOptions(), s.clock.now)
	_, err = sess2.List(s.ctx(), "/pub")
	s.Require().NoError(err)
	_, err = sess2.List(s.ctx(), "/gone")
	s.Require().Error(err)
	s.ErrorIs(err, fs.ErrNotExist)
	s.Equal(listUnix, sess2.listing)
}

func (s *listingTestSuite) TestStat() {
	sess := s.session(testOptions())

	e, err := sess.Stat(s.ctx(), "/pub/old")
	s.Require().NoError(err)
	s.Equal(uint64(3), e.Size)
	s.Equal(fs.FileMode(0o644), e.Mode.Perm())

	e, err = sess.Stat(s.ctx(), "/pub/releases/")
	s.Require().NoError(err)
	s.True(e.IsDir())

	_, err = sess.Stat(s.ctx(), "/pub/none")
	s.ErrorIs(err, fs.ErrNotExist)

	e, err = sess.Stat(s.ctx(), "/")
	s.Require().NoError(err)
	s.True(e.IsDir())

	s.Equal(1, s.srv.count("LIST"), "stat reads the cached parent listing")
}

func TestListing(t *testing.T) {
	suite.Run(t, new(listingTestSuite))
}
