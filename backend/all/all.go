// Package all imports all VFS implementations.
package all

import (
	_ "github.com/c2fo/ftpvfs/backend/ftp" // register ftp backend
)
