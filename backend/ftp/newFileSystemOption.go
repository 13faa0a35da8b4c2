package ftp

import (
	"time"

	"go.uber.org/zap"

	"github.com/c2fo/ftpvfs/backend/ftp/types"
	"github.com/c2fo/ftpvfs/options"
)

const (
	optionNameFTPClient   = "ftpclient"
	optionNameOptions     = "options"
	optionNameLogger      = "logger"
	optionNameDialer      = "dialer"
	optionNamePrompter    = "prompter"
	optionNameCredentials = "credentialResolver"
	optionNameClock       = "clock"
)

// WithClient returns clientOpt implementation of NewFileSystemOption
//
// WithClient is used to explicitly specify a Client to use for the filesystem.
// The client is used for every authority instead of the session pool.
func WithClient(c types.Client) options.NewFileSystemOption[FileSystem] {
	return &clientOpt{
		client: c,
	}
}

type clientOpt struct {
	client types.Client
}

func (ct *clientOpt) Apply(fs *FileSystem) {
	fs.client = ct.client
}

func (ct *clientOpt) NewFileSystemOptionName() string {
	return optionNameFTPClient
}

// WithOptions returns optionsOpt implementation of NewFileSystemOption
//
// WithOptions is used to specify options for the filesystem.
// The options are used to configure the filesystem.
func WithOptions(options Options) options.NewFileSystemOption[FileSystem] {
	return &optionsOpt{
		options: options,
	}
}

type optionsOpt struct {
	options Options
}

func (o *optionsOpt) Apply(fs *FileSystem) {
	fs.options = o.options
}

func (o *optionsOpt) NewFileSystemOptionName() string {
	return optionNameOptions
}

// WithLogger sets the logger sessions write to. The default is the process logger named "ftp".
func WithLogger(log *zap.Logger) options.NewFileSystemOption[FileSystem] {
	return &loggerOpt{log: log}
}

type loggerOpt struct {
	log *zap.Logger
}

func (o *loggerOpt) Apply(fs *FileSystem) {
	fs.log = o.log
}

func (o *loggerOpt) NewFileSystemOptionName() string {
	return optionNameLogger
}

// WithDialer replaces the dialer used for control and passive data connections. It takes precedence over
// Options.SOCKSProxy.
func WithDialer(d Dialer) options.NewFileSystemOption[FileSystem] {
	return &dialerOpt{dialer: d}
}

type dialerOpt struct {
	dialer Dialer
}

func (o *dialerOpt) Apply(fs *FileSystem) {
	fs.dialer = o.dialer
}

func (o *dialerOpt) NewFileSystemOptionName() string {
	return optionNameDialer
}

// WithPrompter sets the interactive password source used when no password was configured.
func WithPrompter(p Prompter) options.NewFileSystemOption[FileSystem] {
	return &prompterOpt{prompter: p}
}

type prompterOpt struct {
	prompter Prompter
}

func (o *prompterOpt) Apply(fs *FileSystem) {
	fs.prompter = o.prompter
}

func (o *prompterOpt) NewFileSystemOptionName() string {
	return optionNamePrompter
}

// WithCredentialResolver replaces the default resolver (options, env, URL, .netrc, prompt).
func WithCredentialResolver(r CredentialResolver) options.NewFileSystemOption[FileSystem] {
	return &resolverOpt{resolver: r}
}

type resolverOpt struct {
	resolver CredentialResolver
}

func (o *resolverOpt) Apply(fs *FileSystem) {
	fs.resolver = o.resolver
}

func (o *resolverOpt) NewFileSystemOptionName() string {
	return optionNameCredentials
}

// withClock overrides time.Now for directory cache expiry and idle detection.
func withClock(now func() time.Time) options.NewFileSystemOption[FileSystem] {
	return &clockOpt{now: now}
}

type clockOpt struct {
	now func() time.Time
}

func (o *clockOpt) Apply(fs *FileSystem) {
	fs.now = o.now
}

func (o *clockOpt) NewFileSystemOptionName() string {
	return optionNameClock
}
