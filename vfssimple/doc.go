/*
Package vfssimple provides a basic and easy to use set of functions to any registered backend filesystem by using
full URI's:
  - FTP: ftp://user@host.com:21/some/path/to/file.txt

Usage

Just import vfssimple.

	package main

	import(
		"github.com/c2fo/ftpvfs/vfssimple"
	)

	...

	func DoSomething() error {
		incoming, err := vfssimple.NewLocation("ftp://bob@files.example.com/incoming/")
		if err != nil {
			return err
		}

		report, err := vfssimple.NewFile("ftp://mirror.example.com/pub/report.csv")
		if err != nil {
			return err
		}

		_, err = report.CopyToLocation(incoming)
		return err
	}

Authentication and Options

vfssimple only uses the default registration of each backend. Credentials missing from the uri come from the ftp
backend's resolution order (options, VFS_FTP_* environment variables, .netrc, anonymous login).

To do more, such as passing ftp.Options via ftp.WithOptions() or a mock client for testing via ftp.WithClient(),
register your own filesystem with backend.Register using a uri prefix. The longest registered prefix matching a
uri wins. See github.com/c2fo/ftpvfs/backend for more information.
*/
package vfssimple
