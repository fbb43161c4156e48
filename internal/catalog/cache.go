package catalog

import (
	"context"
	"strings"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"

	applog "sppgmenu/internal/log"
	"sppgmenu/internal/nutrition"
)

// Cache stores resolved items keyed by tenant and reference.
type Cache interface {
	Get(key string) (nutrition.SelectableItem, bool)
	Set(key string, item nutrition.SelectableItem)
}

type cacheEntry struct {
	item    nutrition.SelectableItem
	expires time.Time
}

// MemoryCache is a process-local Cache whose entries expire after a fixed TTL.
type MemoryCache struct {
	ttl     time.Duration
	entries cmap.ConcurrentMap[string, cacheEntry]
	now     func() time.Time
}

// NewMemoryCache returns a cache that keeps entries for ttl. A non-positive
// ttl keeps entries until they are overwritten.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: cmap.New[cacheEntry](),
		now:     time.Now,
	}
}

// Get returns the live entry for key, evicting it when expired.
func (c *MemoryCache) Get(key string) (nutrition.SelectableItem, bool) {
	entry, ok := c.entries.Get(key)
	if !ok {
		return nutrition.SelectableItem{}, false
	}
	if !entry.expires.IsZero() && !c.now().Before(entry.expires) {
		c.entries.Remove(key)
		return nutrition.SelectableItem{}, false
	}
	return entry.item, true
}

// Set stores item under key.
func (c *MemoryCache) Set(key string, item nutrition.SelectableItem) {
	entry := cacheEntry{item: item}
	if c.ttl > 0 {
		entry.expires = c.now().Add(c.ttl)
	}
	c.entries.Set(key, entry)
}

// Len reports the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	return c.entries.Count()
}

// Purge drops every entry.
func (c *MemoryCache) Purge() {
	c.entries.Clear()
}

// CachedSource consults cache before delegating misses to next. A request
// served entirely from cache does not re-check the tenant, so items stay
// visible to a deactivated SPPG until their entries expire.
type CachedSource struct {
	next  Source
	cache Cache
}

// NewCachedSource decorates next with cache.
func NewCachedSource(next Source, cache Cache) *CachedSource {
	return &CachedSource{next: next, cache: cache}
}

func cacheKey(sppgCode string, ref Ref) string {
	return strings.TrimSpace(sppgCode) + "|" + ref.String()
}

// Load implements Source.
func (s *CachedSource) Load(ctx context.Context, sppgCode string, refs []Ref) ([]nutrition.SelectableItem, error) {
	sppgCode = strings.TrimSpace(sppgCode)
	resolved := make(map[Ref]nutrition.SelectableItem, len(refs))
	var misses []Ref
	for _, ref := range refs {
		if _, seen := resolved[ref]; seen {
			continue
		}
		if item, ok := s.cache.Get(cacheKey(sppgCode, ref)); ok {
			resolved[ref] = item
			continue
		}
		if !containsRef(misses, ref) {
			misses = append(misses, ref)
		}
	}

	if len(misses) > 0 {
		applog.Debug(ctx, "catalog cache miss", "sppg", sppgCode, "misses", len(misses), "requested", len(refs))
		loaded, err := s.next.Load(ctx, sppgCode, misses)
		if err != nil {
			return nil, err
		}
		for i, ref := range misses {
			resolved[ref] = loaded[i]
			s.cache.Set(cacheKey(sppgCode, ref), loaded[i])
		}
	}

	items := make([]nutrition.SelectableItem, 0, len(refs))
	for _, ref := range refs {
		items = append(items, resolved[ref])
	}
	return items, nil
}

func containsRef(refs []Ref, target Ref) bool {
	for _, ref := range refs {
		if ref == target {
			return true
		}
	}
	return false
}
