package server

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// inflightGuard allows at most one outstanding prediction per browser. Entries
// expire after the backend timeout so a lost release cannot lock a browser out.
type inflightGuard struct {
	entries *cache.Cache
}

func newInflightGuard(ttl time.Duration) *inflightGuard {
	return &inflightGuard{entries: cache.New(ttl, 2*ttl)}
}

// acquire reports false when key already holds a pending request.
func (g *inflightGuard) acquire(key string) bool {
	return g.entries.Add(key, struct{}{}, cache.DefaultExpiration) == nil
}

func (g *inflightGuard) release(key string) {
	g.entries.Delete(key)
}

func (g *inflightGuard) pending(key string) bool {
	_, found := g.entries.Get(key)
	return found
}
