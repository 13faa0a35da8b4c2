/*
Package delete consists of custom delete options

Currently, we have IgnoreMissing option that makes a delete of a file that does not exist succeed.

Usage

Delete file using file.delete():

	import(
	    "github.com/c2fo/ftpvfs/options/delete"
	)

	func DeleteFile() error {
	    file, err := fs.NewFile("user@ftp.example.com", "/outbox/report.csv")
	    ...
	    err = file.Delete(delete.WithIgnoreMissing())
	    ...
	}

OR

Delete file using location.delete():

	err = location.DeleteFile("filename.txt", delete.WithIgnoreMissing())
*/
package delete
