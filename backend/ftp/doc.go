/*
Package ftp - FTP VFS implementation.

# Usage

Rely on github.com/c2fo/ftpvfs/backend

	  import(
		  "github.com/c2fo/ftpvfs/backend"
		  "github.com/c2fo/ftpvfs/backend/ftp"
	  )

	  func UseFs() error {
		  fs := backend.Backend(ftp.Scheme)
		  ...
	  }

Or call directly:

	  import "github.com/c2fo/ftpvfs/backend/ftp"

	  func DoSomething() {
		  fs := ftp.NewFileSystem(
			  ftp.WithOptions(ftp.Options{
				  DisablePassive:   true,
				  DirectoryTimeout: 5 * time.Minute,
			  }),
			  ftp.WithLogger(logger),
		  )
		  defer fs.Close()

		  location, err := fs.NewLocation("myuser@server.com:21", "/some/path/")
		  if err != nil {
			 #handle error
		  }

		  file, err := location.NewFile("myfile.txt")
		  #handle error

		  _, err = file.Write([]byte("some text"))
		  #handle error

		  err = file.Close()
		  #handle error
	  }

# Sessions

One session (control connection) is kept per host, port and user, and reused by every Location and File of the
FileSystem. Sessions idle for longer than Options.IdleTimeout are closed. A session that loses its control connection
reconnects once, logs in again, returns to its working directory and replays the command that failed; a second
failure is returned to the caller.

A session runs one transfer at a time. While a File is reading or writing, other operations that need the same
session fail with ErrBusy, except directory listings that are still cached. Copy between two files on the same
server with CopyToFile, which reads and writes sequentially, rather than io.Copy.

	// can't read and write simultaneously over the same session - the second transfer fails with ftp.ErrBusy
	written, err := io.Copy(newFile, oldFile)

	// MoveToFile/MoveToLocation on the same session are a server-side RNFR/RNTO
	err := oldFile.MoveToFile(newFile)

# Directory cache

Listings are cached per session for Options.DirectoryTimeout (900 seconds by default) and dropped when a write,
delete, rename or mkdir touches the directory. The first listing of a session probes "LIST -la"; servers that reject
it are switched to plain RFC959 "CWD" plus "LIST" for the rest of the session.

# Authentication

The user comes from Options.Username, the env var VFS_FTP_USERNAME, or the URI authority, in that order, and defaults
to "anonymous":

	 scheme             host
	 __/             ___/____  port
	/  \            /        \ /\
	ftp://someuser@server.com:21/path/to/file.txt
	       \____________________/ \______________/
	       \______/       \               \
	           /     authority section    path
	     username

The password comes from Options.Password, VFS_FTP_PASSWORD, or the URI, then from the .netrc file (Options.NetrcPath,
VFS_FTP_NETRC, $NETRC or ~/.netrc; ignored with a warning when readable by group or others), then from the Prompter
set with WithPrompter. Anonymous logins use Options.AnonymousPassword (default "anonymous@"). Rejected logins are
retried Options.LoginAttempts times, Options.RetryDelay apart.

# Proxies

Options.ProxyHost names an FTP gateway that is logged into as "user@host". It is used for hosts written with a
leading "!" and, with Options.AlwaysUseProxy, for every dotted host not listed in Options.NoProxy. Options.SOCKSProxy
routes control and passive data connections through a SOCKS5 proxy.

# Errors

Session errors are *Error values that match one of ErrConnectivity, ErrProtocol, ErrAuth, ErrPermission, ErrBusy or
ErrCanceled with errors.Is. Missing files and directories also match fs.ErrNotExist.
*/
package ftp
