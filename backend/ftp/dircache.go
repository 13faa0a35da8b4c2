package ftp

import (
	"strings"
	"sync"
	"time"

	"github.com/c2fo/ftpvfs/backend/ftp/types"
	"github.com/c2fo/ftpvfs/utils"
)

type cachedDir struct {
	entries []*types.Entry
	loaded  time.Time
}

// dirCache holds parsed listings keyed by remote directory path (with trailing slash). A listing is authoritative
// until ttl has passed since it was loaded.
type dirCache struct {
	ttl time.Duration
	now func() time.Time

	mu   sync.Mutex
	dirs map[string]*cachedDir
}

func newDirCache(ttl time.Duration, now func() time.Time) *dirCache {
	if now == nil {
		now = time.Now
	}
	return &dirCache{
		ttl:  ttl,
		now:  now,
		dirs: make(map[string]*cachedDir),
	}
}

func dirKey(dir string) string {
	return utils.EnsureTrailingSlash(utils.EnsureLeadingSlash(dir))
}

func (c *dirCache) fresh(d *cachedDir, now time.Time) bool {
	return !now.After(d.loaded.Add(c.ttl))
}

// get returns the entries of dir if a fresh listing is cached.
func (c *dirCache) get(dir string) ([]*types.Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, ok := c.dirs[dirKey(dir)]
	if ok && !c.fresh(d, c.now()) {
		delete(c.dirs, dirKey(dir))
		ok = false
	}
	if !ok {
		dirCacheRequestsTotal.WithLabelValues("miss").Inc()
		return nil, false
	}
	dirCacheRequestsTotal.WithLabelValues("hit").Inc()
	return d.entries, true
}

// loadedAt returns when dir was cached.
func (c *dirCache) loadedAt(dir string) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.dirs[dirKey(dir)]
	if !ok {
		return time.Time{}, false
	}
	return d.loaded, true
}

func (c *dirCache) put(dir string, entries []*types.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirs[dirKey(dir)] = &cachedDir{entries: entries, loaded: c.now()}
}

// invalidate drops the listing of dir.
func (c *dirCache) invalidate(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.dirs, dirKey(dir))
}

// invalidateTree drops dir and every directory below it.
func (c *dirCache) invalidateTree(dir string) {
	prefix := dirKey(dir)
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.dirs {
		if strings.HasPrefix(k, prefix) {
			delete(c.dirs, k)
		}
	}
}

func (c *dirCache) flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.dirs)
}

// sweep evicts expired listings and returns how many were dropped.
func (c *dirCache) sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	n := 0
	for k, d := range c.dirs {
		if !c.fresh(d, now) {
			delete(c.dirs, k)
			n++
		}
	}
	return n
}

func (c *dirCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.dirs)
}
