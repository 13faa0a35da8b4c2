/*
Package backend provides a means of allowing backend file systems to self-register on load via an init() call to
backend.Register("some name", vfs.FileSystem)

In this way, a caller of vfs backends can simply load the backend file system (and ONLY those needed) and begin using it:

	package main

	// import backend and each backend you intend to use
	import(
	    "github.com/c2fo/ftpvfs/backend"
	    "github.com/c2fo/ftpvfs/backend/ftp"
	)

	func main() {
	    file, err := backend.Backend(ftp.Scheme).NewFile("user@ftp.example.com", "/pub/README")
	    if err != nil {
	        panic(err)
	    }
	    ...
	}

Backends can also be registered under a more specific name, such as a full host URI, so that vfssimple picks a
FileSystem configured for that host:

	backend.Register("ftp://ftp.example.com/", ftp.NewFileSystem(ftp.WithOptions(ftp.Options{DisablePassive: true})))

# Development

To create your own backend, you must create a package that implements the interfaces vfs.FileSystem, vfs.Location and
vfs.File, then register it in an init() func.
*/
package backend
