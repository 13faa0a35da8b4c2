package ftp

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/c2fo/ftpvfs/utils/authority"
)

const (
	envUsername          = "VFS_FTP_USERNAME"
	envPassword          = "VFS_FTP_PASSWORD"
	envProxy             = "VFS_FTP_PROXY"
	envSOCKSProxy        = "VFS_FTP_SOCKS_PROXY"
	envNetrc             = "VFS_FTP_NETRC"
	envDisablePassive    = "VFS_FTP_DISABLE_PASSIVE"
	envAnonymousPassword = "VFS_FTP_ANONYMOUS_PASSWORD"

	defaultPort              = 21
	defaultUsername          = "anonymous"
	defaultAnonymousPassword = "anonymous@"
	defaultDirectoryTimeout  = 900 * time.Second
	defaultRetryDelay        = 30 * time.Second
	defaultLoginAttempts     = 3
	defaultIdleTimeout       = 60 * time.Second
	defaultAbortDrain        = 5 * time.Second
	defaultDialTimeout       = 30 * time.Second
)

// Options holds ftp-specific options.  Zero values select the defaults noted on each field.
type Options struct {
	Username string // env var VFS_FTP_USERNAME, default "anonymous"
	Password string // env var VFS_FTP_PASSWORD
	Account  string // sent with ACCT when the server asks for one

	// AnonymousPassword is used for the anonymous and ftp users. env var VFS_FTP_ANONYMOUS_PASSWORD, default
	// "anonymous@"
	AnonymousPassword string
	// DisableAnonymousDashPrefix stops the "-" prefix normally sent in front of anonymous passwords, which asks
	// servers to skip their continuation messages.
	DisableAnonymousDashPrefix bool

	DisablePassive   bool // env var VFS_FTP_DISABLE_PASSIVE
	PassiveOverProxy bool // keep passive mode when connected through ProxyHost

	ProxyHost      string   // FTP gateway, [user@]host[:port]. env var VFS_FTP_PROXY
	AlwaysUseProxy bool     // use ProxyHost for every dotted host not matched by NoProxy
	NoProxy        []string // ".example.com" matches a domain suffix, anything else a whole host name
	SOCKSProxy     string   // host:port of a SOCKS5 proxy for control and passive data connections. env var VFS_FTP_SOCKS_PROXY

	DisableNetrc bool
	NetrcPath    string // env var VFS_FTP_NETRC, then $NETRC, then ~/.netrc

	// DisableUnixListOptions starts sessions in strict RFC959 listing mode instead of probing for LIST -la.
	DisableUnixListOptions bool
	// FirstCDThenLS always changes into a directory before listing it.
	FirstCDThenLS bool

	DirectoryTimeout  time.Duration  // directory cache TTL, default 900s
	LoginAttempts     int            // default 3
	RetryDelay        time.Duration  // wait between login attempts, default 30s, negative for none
	IdleTimeout       time.Duration  // idle sessions are closed after this, default 60s
	AbortDrainTimeout time.Duration  // bound on draining the data connection during abort, default 5s
	DialTimeout       time.Duration  // default 30s
	Location          *time.Location // zone of listing timestamps, default time.Local
}

func (o Options) withDefaults() Options {
	if o.DirectoryTimeout <= 0 {
		o.DirectoryTimeout = defaultDirectoryTimeout
	}
	if o.LoginAttempts <= 0 {
		o.LoginAttempts = defaultLoginAttempts
	}
	if o.RetryDelay < 0 {
		o.RetryDelay = 0
	} else if o.RetryDelay == 0 {
		o.RetryDelay = defaultRetryDelay
	}
	if o.IdleTimeout <= 0 {
		o.IdleTimeout = defaultIdleTimeout
	}
	if o.AbortDrainTimeout <= 0 {
		o.AbortDrainTimeout = defaultAbortDrain
	}
	if o.DialTimeout <= 0 {
		o.DialTimeout = defaultDialTimeout
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if !o.DisablePassive && envBool(envDisablePassive) {
		o.DisablePassive = true
	}
	if o.ProxyHost == "" {
		o.ProxyHost = os.Getenv(envProxy)
	}
	if o.SOCKSProxy == "" {
		o.SOCKSProxy = os.Getenv(envSOCKSProxy)
	}
	return o
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

// fetchUsername returns the user from the options, then the env var, then the authority, then "anonymous".
func fetchUsername(auth authority.Authority, opts Options) string {
	if u := explicitUsername(auth, opts); u != "" {
		return u
	}
	return defaultUsername
}

// explicitUsername is fetchUsername without the anonymous default.
func explicitUsername(auth authority.Authority, opts Options) string {
	if opts.Username != "" {
		return opts.Username
	}
	if val, ok := os.LookupEnv(envUsername); ok && val != "" {
		return val
	}
	return auth.UserInfo().Username()
}

// fetchPassword returns an explicit password: the options, then the env var, then the authority. ok is false when
// none is set so the credential resolver can continue with netrc and the anonymous default.
func fetchPassword(auth authority.Authority, opts Options) (string, bool) {
	if opts.Password != "" {
		return opts.Password, true
	}
	if val, ok := os.LookupEnv(envPassword); ok && val != "" {
		return val, true
	}
	if auth.UserInfo().HasPassword() {
		return auth.UserInfo().Password(), true
	}
	return "", false
}

func fetchAnonymousPassword(opts Options) string {
	if opts.AnonymousPassword != "" {
		return opts.AnonymousPassword
	}
	if val := os.Getenv(envAnonymousPassword); val != "" {
		return val
	}
	return defaultAnonymousPassword
}

// fetchNetrcPath resolves the .netrc location.
func fetchNetrcPath(opts Options) (string, error) {
	p := opts.NetrcPath
	if p == "" {
		p = os.Getenv(envNetrc)
	}
	if p == "" {
		p = os.Getenv("NETRC")
	}
	if p == "" {
		p = "~/.netrc"
	}
	return homedir.Expand(p)
}

// fetchHostPortString returns host:port for the authority, using the ftp default port when none is given. A leading
// "!" (force proxy) is not part of the host name.
func fetchHostPortString(auth authority.Authority) string {
	host := strings.TrimPrefix(auth.Host(), "!")
	return joinHostPort(host, auth.PortOr(defaultPort))
}

func joinHostPort(host string, port uint16) string {
	if strings.Contains(host, ":") {
		return "[" + host + "]:" + strconv.Itoa(int(port))
	}
	return host + ":" + strconv.Itoa(int(port))
}

// useProxy decides whether host is reached through opts.ProxyHost.
func useProxy(host string, opts Options) bool {
	if opts.ProxyHost == "" || host == "" {
		return false
	}
	if strings.HasPrefix(host, "!") {
		return true
	}
	if !opts.AlwaysUseProxy || !strings.Contains(host, ".") {
		return false
	}
	for _, domain := range opts.NoProxy {
		if strings.HasPrefix(domain, ".") {
			if strings.HasSuffix(strings.ToLower(host), strings.ToLower(domain)) {
				return false
			}
		} else if strings.EqualFold(host, domain) {
			return false
		}
	}
	return true
}

// proxyAddress returns host:port of the FTP gateway.
func proxyAddress(opts Options) (string, error) {
	auth, err := authority.NewAuthority(opts.ProxyHost)
	if err != nil {
		return "", err
	}
	return joinHostPort(auth.Host(), auth.PortOr(defaultPort)), nil
}
