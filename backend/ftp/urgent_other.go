//go:build !unix

package ftp

import "net"

// sendUrgent writes b in-band; this platform has no portable MSG_OOB.
func sendUrgent(conn net.Conn, b []byte) error {
	_, err := conn.Write(b)
	return err
}
