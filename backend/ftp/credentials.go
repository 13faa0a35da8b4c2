package ftp

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/c2fo/ftpvfs/backend/ftp/netrc"
	"github.com/c2fo/ftpvfs/utils/authority"
)

var errPasswordRequired = errors.New("password required")

// insecureNetrcWarning makes the group/world-readable .netrc warning a once-per-process event.
var insecureNetrcWarning sync.Once

// Prompter asks for a password when no other credential source has one.
type Prompter interface {
	Password(ctx context.Context, user, host string) (string, error)
}

// PrompterFunc adapts an ordinary function to Prompter.
type PrompterFunc func(ctx context.Context, user, host string) (string, error)

// Password calls f.
func (f PrompterFunc) Password(ctx context.Context, user, host string) (string, error) {
	return f(ctx, user, host)
}

// CredentialResolver produces the login for an authority.
type CredentialResolver interface {
	Resolve(ctx context.Context, auth authority.Authority) (*Credentials, error)
	// Forget drops anything cached for host and user, typically after the server rejected it.
	Forget(host, user string)
}

// Credentials is a resolved login. The password is kept in a private buffer that Wipe overwrites.
type Credentials struct {
	User      string
	Domain    string
	Account   string
	Anonymous bool
	password  []byte
}

// Password returns a copy of the password. Logging in never calls it; the PASS line is built from the private buffer.
func (c *Credentials) Password() string {
	return string(c.password)
}

// Wipe overwrites the password buffer and forgets it.
func (c *Credentials) Wipe() {
	wipe(c.password)
	c.password = nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

type cachedCredential struct {
	user     string
	account  string
	password []byte
}

type netrcLoader func(path string) (*netrc.Netrc, fs.FileMode, error)

type credentialResolver struct {
	opts        Options
	log         *zap.Logger
	prompter    Prompter
	localDomain string
	loadNetrc   netrcLoader

	mu    sync.Mutex
	cache map[string]*cachedCredential
}

// NewCredentialResolver returns the default resolver: explicit values, then the in-memory cache, then .netrc, then
// the anonymous password for anonymous users, then prompter. prompter may be nil.
func NewCredentialResolver(opts Options, log *zap.Logger, prompter Prompter) CredentialResolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &credentialResolver{
		opts:        opts,
		log:         log,
		prompter:    prompter,
		localDomain: netrc.LocalDomain(),
		loadNetrc:   netrc.ParseFile,
		cache:       make(map[string]*cachedCredential),
	}
}

func cacheKey(host, user string) string {
	return strings.ToLower(host) + "\x00" + user
}

func isAnonymousUser(user string) bool {
	return user == "anonymous" || user == "ftp"
}

// Resolve implements CredentialResolver.
func (r *credentialResolver) Resolve(ctx context.Context, auth authority.Authority) (*Credentials, error) {
	host := strings.TrimPrefix(auth.Host(), "!")
	creds := &Credentials{Account: r.opts.Account}

	user := explicitUsername(auth, r.opts)

	// explicit values always win
	if pass, ok := fetchPassword(auth, r.opts); ok {
		creds.User = orDefault(user, defaultUsername)
		creds.password = []byte(pass)
		r.remember(host, user, creds)
		return splitDomain(creds), nil
	}

	if c := r.cached(host, user); c != nil {
		creds.User = c.user
		creds.password = append([]byte(nil), c.password...)
		if c.account != "" {
			creds.Account = c.account
		}
		return splitDomain(creds), nil
	}

	if !r.opts.DisableNetrc {
		r.fromNetrc(host, user, creds)
	}
	if creds.User == "" {
		creds.User = orDefault(user, defaultUsername)
	}
	if creds.password != nil {
		r.remember(host, user, creds)
		return splitDomain(creds), nil
	}

	if isAnonymousUser(creds.User) {
		creds.Anonymous = true
		creds.password = []byte(fetchAnonymousPassword(r.opts))
		return splitDomain(creds), nil
	}

	if r.prompter == nil {
		return nil, &Error{Kind: ErrAuth, Op: "PASS", Err: errPasswordRequired}
	}
	pass, err := r.prompter.Password(ctx, creds.User, host)
	if err != nil {
		return nil, &Error{Kind: ErrAuth, Op: "PASS", Err: err}
	}
	creds.password = []byte(pass)
	return splitDomain(creds), nil
}

// fromNetrc fills user, password and account from the first matching .netrc entry.
func (r *credentialResolver) fromNetrc(host, user string, creds *Credentials) {
	p, err := fetchNetrcPath(r.opts)
	if err != nil {
		return
	}
	n, mode, err := r.loadNetrc(p)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.log.Warn("could not read netrc", zap.String("path", p), zap.Error(err))
		}
		return
	}
	m := n.Lookup(host, user, r.localDomain)
	if m == nil {
		return
	}

	creds.User = orDefault(user, m.Login)
	if m.Password == "" && m.Account == "" {
		return
	}
	if netrc.Insecure(mode) && !isAnonymousUser(orDefault(creds.User, defaultUsername)) {
		insecureNetrcWarning.Do(func() {
			r.log.Warn("netrc file is readable by others, ignoring its passwords", zap.String("path", p),
				zap.String("mode", mode.String()))
		})
		return
	}
	if m.Password != "" {
		creds.password = []byte(m.Password)
	}
	if m.Account != "" {
		creds.Account = m.Account
	}
}

// cached looks up host under the user that was asked for, "" when the caller named none.
func (r *credentialResolver) cached(host, requestedUser string) *cachedCredential {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache[cacheKey(host, requestedUser)]
}

func (r *credentialResolver) remember(host, requestedUser string, creds *Credentials) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := cacheKey(host, requestedUser)
	if old, ok := r.cache[key]; ok {
		wipe(old.password)
	}
	r.cache[key] = &cachedCredential{
		user:     creds.User,
		account:  creds.Account,
		password: append([]byte(nil), creds.password...),
	}
}

// Forget implements CredentialResolver.
func (r *credentialResolver) Forget(host, user string) {
	host = strings.TrimPrefix(host, "!")
	r.mu.Lock()
	defer r.mu.Unlock()
	prefix := cacheKey(host, "")
	for key, c := range r.cache {
		if strings.HasPrefix(key, prefix) && c.user == user {
			wipe(c.password)
			delete(r.cache, key)
		}
	}
}

// splitDomain separates a "DOMAIN;user" login.
func splitDomain(c *Credentials) *Credentials {
	if domain, user, ok := strings.Cut(c.User, ";"); ok && user != "" {
		c.Domain, c.User = domain, user
	}
	return c
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
