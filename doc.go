/*
Package vfs provides a platform-independent interface to a generalized set of filesystem functionality, with a
backend that makes a remote FTP server look like an ordinary directory tree.

# Philosophy

Code that moves files around should not care where they live. A File is a self-contained handle that can be passed
around, logged (it is a fmt.Stringer that prints its URI), read and written through the io interfaces, and copied or
moved to any other File without knowing what sits behind either one. A File or Location may or may not exist on the
remote side.

# Usage

vfssimple builds Files and Locations from complete URIs through the backend registry:

	file, err := vfssimple.NewFile("ftp://bob@files.example.com/reports/q1.csv")
	loc, err := vfssimple.NewLocation("ftp://mirror.example.com/pub/")

	other, err := loc.NewFile("README") // ftp://mirror.example.com/pub/README

Once created, they behave alike:

	exists, err := file.Exists()
	err = file.CopyToFile(other)
	moved, err := file.MoveToLocation(loc) // RNFR/RNTO when both sides share a login

	file.URI()  // ftp://bob@files.example.com/reports/q1.csv
	file.Name() // q1.csv
	file.Path() // /reports/q1.csv

A backend can be configured per host by registering it under that host's URI:

	backend.Register("ftp://files.example.com/", ftp.NewFileSystem(
	    ftp.WithOptions(ftp.Options{DisablePassive: true}),
	))

See package backend/ftp for the connection, credential and listing behavior, and the vfscp command for a command
line built on top of it.
*/
package vfs
