// Package netrc reads ~/.netrc style credential files.
//
// Tokens are separated by blanks, tabs, commas and newlines. A token may be double quoted and a backslash escapes
// the next character in both forms. Recognized keywords are machine, default, login, password (or passwd),
// account and macdef; a macdef body runs up to the next empty line and is skipped.
package netrc

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Machine is one machine or default entry.
type Machine struct {
	Name     string // empty for the default entry
	Login    string
	Password string
	Account  string
}

// IsDefault reports whether m is the default entry.
func (m *Machine) IsDefault() bool {
	return m.Name == ""
}

// Netrc is a parsed file. Entries keep file order; a default entry, when present, is last because anything after it
// is ignored.
type Netrc struct {
	Machines []*Machine
}

// Parse reads a netrc document.
func Parse(r io.Reader) (*Netrc, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	n := &Netrc{}
	t := &tokenizer{data: data}
	var current *Machine
	for {
		tok, ok := t.next()
		if !ok {
			return n, nil
		}
		if (tok == "machine" || tok == "default") && current != nil && current.IsDefault() {
			// nothing after default is considered
			return n, nil
		}
		switch tok {
		case "machine":
			name, ok := t.next()
			if !ok {
				return nil, fmt.Errorf("netrc: machine keyword without a name")
			}
			current = &Machine{Name: name}
			n.Machines = append(n.Machines, current)
		case "default":
			current = &Machine{}
			n.Machines = append(n.Machines, current)
		case "login", "password", "passwd", "account":
			val, ok := t.next()
			if !ok {
				return nil, fmt.Errorf("netrc: %s keyword without a value", tok)
			}
			if current == nil {
				continue
			}
			switch tok {
			case "login":
				current.Login = val
			case "account":
				current.Account = val
			default:
				current.Password = val
			}
		case "macdef":
			t.skipMacro()
		default:
			// unknown tokens are ignored
		}
	}
}

// ParseFile parses the file at path and returns its permission bits alongside.
func ParseFile(path string) (*Netrc, fs.FileMode, error) {
	f, err := os.Open(path) //nolint:gosec // path is the user's own netrc
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, 0, err
	}
	n, err := Parse(f)
	if err != nil {
		return nil, 0, err
	}
	return n, info.Mode().Perm(), nil
}

// Insecure reports whether mode lets group or others read the file.
func Insecure(mode fs.FileMode) bool {
	return mode.Perm()&0o077 != 0
}

// FindMachine returns the first entry for host, or the default entry, or nil. A machine name also matches the
// short name of host when host's domain (".example.com") equals localDomain.
func (n *Netrc) FindMachine(host, localDomain string) *Machine {
	return n.Lookup(host, "", localDomain)
}

// Lookup is FindMachine restricted to entries whose login is empty or equal to user. An empty user matches any
// login.
func (n *Netrc) Lookup(host, user, localDomain string) *Machine {
	for _, m := range n.Machines {
		if user != "" && m.Login != "" && m.Login != user {
			continue
		}
		if m.IsDefault() || matchHost(host, m.Name, localDomain) {
			return m
		}
	}
	return nil
}

func matchHost(host, name, localDomain string) bool {
	if strings.EqualFold(host, name) {
		return true
	}
	dot := strings.IndexByte(host, '.')
	if dot == -1 || localDomain == "" {
		return false
	}
	return strings.EqualFold(host[dot:], localDomain) && strings.EqualFold(host[:dot], name)
}

// LocalDomain returns the domain part of this machine's host name including the leading dot, or "".
func LocalDomain() string {
	name, err := os.Hostname()
	if err != nil {
		return ""
	}
	if dot := strings.IndexByte(name, '.'); dot != -1 {
		return name[dot:]
	}
	return ""
}

type tokenizer struct {
	data []byte
	pos  int
}

func isSeparator(c byte) bool {
	return c == ' ' || c == '\t' || c == ',' || c == '\n' || c == '\r'
}

func (t *tokenizer) next() (string, bool) {
	for t.pos < len(t.data) && isSeparator(t.data[t.pos]) {
		t.pos++
	}
	if t.pos >= len(t.data) {
		return "", false
	}

	var buf bytes.Buffer
	if t.data[t.pos] == '"' {
		t.pos++
		for t.pos < len(t.data) && t.data[t.pos] != '"' {
			if t.data[t.pos] == '\\' && t.pos+1 < len(t.data) {
				t.pos++
			}
			buf.WriteByte(t.data[t.pos])
			t.pos++
		}
		t.pos++ // closing quote
		return buf.String(), true
	}

	for t.pos < len(t.data) && !isSeparator(t.data[t.pos]) {
		if t.data[t.pos] == '\\' && t.pos+1 < len(t.data) {
			t.pos++
		}
		buf.WriteByte(t.data[t.pos])
		t.pos++
	}
	return buf.String(), true
}

// skipMacro skips the macro name line and its body, which ends at an empty line.
func (t *tokenizer) skipMacro() {
	for t.pos < len(t.data) {
		nl := bytes.IndexByte(t.data[t.pos:], '\n')
		if nl == -1 {
			t.pos = len(t.data)
			return
		}
		t.pos += nl + 1
		if t.pos >= len(t.data) || t.data[t.pos] == '\n' || bytes.HasPrefix(t.data[t.pos:], []byte("\r\n")) {
			return
		}
	}
}
