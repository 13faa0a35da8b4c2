package ftp

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/c2fo/ftpvfs/errors"
	"github.com/c2fo/ftpvfs/utils/authority"
)

// pool owns the open sessions of a FileSystem, one per host, port and user. Sessions idle for longer than
// IdleTimeout are closed by a background sweep, which also evicts expired directory listings.
type pool struct {
	cfg sessionConfig

	mu       sync.Mutex
	sessions map[sessionKey]*Session
	done     chan struct{}
	wg       sync.WaitGroup
}

func newPool(cfg sessionConfig) *pool {
	if cfg.now == nil {
		cfg.now = time.Now
	}
	return &pool{
		cfg:      cfg,
		sessions: make(map[sessionKey]*Session),
	}
}

func (p *pool) keyFor(auth authority.Authority) sessionKey {
	return sessionKey{
		host: strings.ToLower(strings.TrimPrefix(auth.Host(), "!")),
		port: auth.PortOr(defaultPort),
		user: fetchUsername(auth, p.cfg.opts),
	}
}

// get returns the session for auth, opening it on first use.
func (p *pool) get(ctx context.Context, auth authority.Authority) (*Session, error) {
	key := p.keyFor(auth)
	p.mu.Lock()
	if s, ok := p.sessions[key]; ok {
		s.handedOut = p.cfg.now()
		p.mu.Unlock()
		return s, nil
	}
	p.mu.Unlock()

	s, err := openSession(ctx, auth, p.cfg)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.sessions[key]; ok {
		// lost a race with another opener
		_ = s.Close()
		existing.handedOut = p.cfg.now()
		return existing, nil
	}
	s.handedOut = p.cfg.now()
	p.sessions[key] = s
	p.startSweeper()
	return s, nil
}

// startSweeper must be called with p.mu held.
func (p *pool) startSweeper() {
	if p.done != nil {
		return
	}
	p.done = make(chan struct{})
	interval := p.cfg.opts.IdleTimeout / 2
	if interval < time.Second {
		interval = time.Second
	}
	p.wg.Add(1)
	go func(done chan struct{}) {
		defer p.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p.sweep(p.cfg.now())
			}
		}
	}(p.done)
}

// sweep closes sessions that are idle and not busy, and evicts expired listings from the rest. A session handed
// out by get within the idle timeout is kept even before its caller sends a command.
func (p *pool) sweep(now time.Time) {
	cutoff := now.Add(-p.cfg.opts.IdleTimeout)
	var idle []*Session

	p.mu.Lock()
	for key, s := range p.sessions {
		if s.handedOut.Before(cutoff) && s.idleSince(cutoff) {
			idle = append(idle, s)
			delete(p.sessions, key)
			continue
		}
		if n := s.dirs.sweep(); n > 0 {
			s.log.Debug("evicted expired listings", zap.Int("count", n))
		}
	}
	p.mu.Unlock()

	for _, s := range idle {
		s.log.Debug("closing idle ftp session")
		if err := s.Close(); err != nil {
			s.log.Warn("error closing idle ftp session", zap.Error(err))
		}
	}
}

func (p *pool) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sessions)
}

// Close stops the sweeper and closes every session.
func (p *pool) Close() error {
	p.mu.Lock()
	sessions := p.sessions
	p.sessions = make(map[sessionKey]*Session)
	done := p.done
	p.done = nil
	p.mu.Unlock()

	if done != nil {
		close(done)
		p.wg.Wait()
	}

	merr := errors.NewMutliErr()
	for _, s := range sessions {
		_ = merr.Append(s.Close())
	}
	return merr.OrNil()
}
