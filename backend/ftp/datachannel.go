package ftp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strconv"

	"go.uber.org/zap"
)

var (
	// pasvRegex matches the address of a 227 reply: (h1,h2,h3,h4,p1,p2)
	pasvRegex = regexp.MustCompile(`(\d+),(\d+),(\d+),(\d+),(\d+),(\d+)`)

	// epsvRegex matches the port of a 229 reply: (|||port|)
	epsvRegex = regexp.MustCompile(`\|\|\|(\d+)\|`)

	errNoControlAddr = errors.New("control connection has no tcp address")
)

// parsePASV returns the address of a PASV reply line, e.g. "227 Entering Passive Mode (192,168,1,1,195,149)"
// gives 192.168.1.1 and 50069.
func parsePASV(line string) (net.IP, int, error) {
	m := pasvRegex.FindStringSubmatch(line)
	if m == nil {
		return nil, 0, fmt.Errorf("invalid PASV reply: %q", line)
	}
	var b [6]int
	for i := range b {
		v, err := strconv.Atoi(m[i+1])
		if err != nil || v > 255 {
			return nil, 0, fmt.Errorf("invalid PASV reply: %q", line)
		}
		b[i] = v
	}
	ip := net.IPv4(byte(b[0]), byte(b[1]), byte(b[2]), byte(b[3]))
	return ip, b[4]*256 + b[5], nil
}

// parseEPSV returns the port of an EPSV reply line, e.g. "229 Entering Extended Passive Mode (|||6446|)".
func parseEPSV(line string) (int, error) {
	m := epsvRegex.FindStringSubmatch(line)
	if m == nil {
		return 0, fmt.Errorf("invalid EPSV reply: %q", line)
	}
	port, err := strconv.Atoi(m[1])
	if err != nil || port < 0 || port > 65535 {
		return 0, fmt.Errorf("invalid EPSV port: %q", m[1])
	}
	return port, nil
}

// formatPORT renders an IPv4 address as h1,h2,h3,h4,p1,p2.
func formatPORT(ip net.IP, port int) (string, error) {
	v4 := ip.To4()
	if v4 == nil {
		return "", fmt.Errorf("PORT requires an IPv4 address, got %s", ip)
	}
	return fmt.Sprintf("%d,%d,%d,%d,%d,%d", v4[0], v4[1], v4[2], v4[3], port/256, port%256), nil
}

// formatEPRT renders |af|addr|port| with af 1 for IPv4 and 2 for IPv6.
func formatEPRT(ip net.IP, port int) string {
	af := 2
	if ip.To4() != nil {
		af = 1
	}
	return fmt.Sprintf("|%d|%s|%d|", af, ip.String(), port)
}

// pendingData is a data connection negotiated before the transfer command is sent. establish is called once the
// server accepted the command.
type pendingData interface {
	establish(ctx context.Context) (net.Conn, error)
	close() error
}

// passiveData was connected during negotiation.
type passiveData struct {
	conn net.Conn
}

func (p *passiveData) establish(context.Context) (net.Conn, error) {
	return p.conn, nil
}

func (p *passiveData) close() error {
	return p.conn.Close()
}

// activeData waits for the server to connect back.
type activeData struct {
	listener net.Listener
}

// establish accepts the server's connection; ctx cancellation unblocks the accept.
func (a *activeData) establish(ctx context.Context) (net.Conn, error) {
	stop := context.AfterFunc(ctx, func() {
		_ = a.listener.Close()
	})
	defer stop()
	conn, err := a.listener.Accept()
	_ = a.listener.Close()
	if err != nil {
		if ctx.Err() != nil {
			return nil, newError(ErrCanceled, "accept", ctx.Err())
		}
		return nil, newError(ErrConnectivity, "accept", err)
	}
	return conn, nil
}

func (a *activeData) close() error {
	return a.listener.Close()
}

func tcpAddr(a net.Addr) (*net.TCPAddr, error) {
	if t, ok := a.(*net.TCPAddr); ok {
		return t, nil
	}
	host, port, err := net.SplitHostPort(a.String())
	if err != nil {
		return nil, errNoControlAddr
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return nil, errNoControlAddr
	}
	p, _ := strconv.Atoi(port)
	return &net.TCPAddr{IP: ip, Port: p}, nil
}

// openDataChannel negotiates a data connection. Passive setup that fails switches the session to active mode;
// if active setup fails as well, the configured preference is restored for the next attempt.
func (s *Session) openDataChannel(ctx context.Context) (pendingData, error) {
	if s.usePassive {
		pd, err := s.setupPassive(ctx)
		if err == nil {
			return pd, nil
		}
		if isConnectionLost(err) || errors.Is(err, ErrCanceled) {
			return nil, err
		}
		s.log.Info("could not set up passive mode, falling back to active", zap.Error(err))
		s.usePassive = false
	}

	pd, err := s.setupActive(ctx)
	if err != nil {
		s.usePassive = s.defaultPassive()
		return nil, err
	}
	return pd, nil
}

// setupPassive tries PASV then EPSV on IPv4 and only EPSV on IPv6.
func (s *Session) setupPassive(ctx context.Context) (pendingData, error) {
	peer, err := tcpAddr(s.ctl.conn.RemoteAddr())
	if err != nil {
		return nil, newError(ErrProtocol, "PASV", err)
	}
	if peer.IP.To4() != nil {
		pd, err := s.passivePASV(ctx, peer)
		if err == nil || isConnectionLost(err) || errors.Is(err, ErrCanceled) {
			return pd, err
		}
		s.log.Debug("PASV failed, trying EPSV", zap.Error(err))
	}
	return s.passiveEPSV(ctx, peer)
}

func (s *Session) passivePASV(ctx context.Context, peer *net.TCPAddr) (pendingData, error) {
	rep, err := s.ctl.expect(ctx, classComplete, "PASV")
	if err != nil {
		return nil, err
	}
	ip, port, err := parsePASV(rep.final())
	if err != nil {
		return nil, newError(ErrProtocol, "PASV", err)
	}
	if ip.IsUnspecified() {
		ip = peer.IP
	}
	return s.dialData(ctx, "PASV", net.JoinHostPort(ip.String(), strconv.Itoa(port)))
}

func (s *Session) passiveEPSV(ctx context.Context, peer *net.TCPAddr) (pendingData, error) {
	rep, err := s.ctl.expect(ctx, classComplete, "EPSV")
	if err != nil {
		return nil, err
	}
	port, err := parseEPSV(rep.final())
	if err != nil {
		return nil, newError(ErrProtocol, "EPSV", err)
	}
	return s.dialData(ctx, "EPSV", net.JoinHostPort(peer.IP.String(), strconv.Itoa(port)))
}

// dialData connects to the address the server advertised.
func (s *Session) dialData(ctx context.Context, op, addr string) (pendingData, error) {
	dctx, cancel := context.WithTimeout(ctx, s.opts.DialTimeout)
	defer cancel()
	conn, err := s.dialer.DialContext(dctx, "tcp", addr)
	if err != nil {
		if ctx.Err() != nil {
			return nil, newError(ErrCanceled, op, ctx.Err())
		}
		return nil, newError(ErrProtocol, op, err)
	}
	return &passiveData{conn: conn}, nil
}

// setupActive listens on the control connection's local address and announces it with PORT, falling back to EPRT.
// IPv6 always uses EPRT.
func (s *Session) setupActive(ctx context.Context) (pendingData, error) {
	local, err := tcpAddr(s.ctl.conn.LocalAddr())
	if err != nil {
		return nil, newError(ErrProtocol, "PORT", err)
	}
	var lc net.ListenConfig
	l, err := lc.Listen(ctx, "tcp", net.JoinHostPort(local.IP.String(), "0"))
	if err != nil {
		return nil, newError(ErrProtocol, "listen", err)
	}
	port := l.Addr().(*net.TCPAddr).Port

	if local.IP.To4() != nil {
		arg, _ := formatPORT(local.IP, port)
		rep, err := s.ctl.cmd(ctx, "PORT %s", arg)
		if err != nil {
			_ = l.Close()
			return nil, err
		}
		if rep.class() == classComplete {
			return &activeData{listener: l}, nil
		}
	}

	if _, err := s.ctl.expect(ctx, classComplete, "EPRT %s", formatEPRT(local.IP, port)); err != nil {
		_ = l.Close()
		return nil, err
	}
	return &activeData{listener: l}, nil
}
