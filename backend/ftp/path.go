package ftp

import "strings"

// toRemote converts an absolute vfs path into the argument sent after an FTP verb. Ordinary servers get the path
// unchanged. Amiga servers cannot take a leading slash, a ":/" volume separator or a trailing "/.".
func toRemote(p string, amiga bool) string {
	if !amiga {
		return p
	}

	p = strings.TrimLeft(p, "/")
	if p == "" {
		// "CWD " would be invalid
		return "."
	}
	p = strings.Replace(p, ":/", ":", 1)
	return strings.TrimSuffix(p, "/.")
}
