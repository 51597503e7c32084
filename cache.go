package portfolio

import (
	"sync"
	"time"
)

// PageCache is an in-memory copy of all page overrides with a TTL.
type PageCache struct {
	mu      sync.RWMutex
	pages   map[string]PageMeta
	list    []PageMeta
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewPageCache creates a PageCache backed by the given Store.
func NewPageCache(s *Store, ttl time.Duration) *PageCache {
	return &PageCache{store: s, ttl: ttl}
}

func (c *PageCache) valid() bool {
	return c.pages != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PageCache) Invalidate() {
	c.mu.Lock()
	c.pages = nil
	c.list = nil
	c.mu.Unlock()
}

func (c *PageCache) load() error {
	if c.valid() {
		return nil
	}
	list, err := c.store.ListPages()
	if err != nil {
		return err
	}
	pages := make(map[string]PageMeta, len(list))
	for _, p := range list {
		pages[p.Path] = p
	}
	c.pages = pages
	c.list = list
	c.fetched = time.Now()
	return nil
}

// ensureLoaded tries a read lock first and only takes the write lock when a
// reload is needed.
func (c *PageCache) ensureLoaded() (map[string]PageMeta, []PageMeta, error) {
	c.mu.RLock()
	if c.valid() {
		pages, list := c.pages, c.list
		c.mu.RUnlock()
		return pages, list, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.pages, c.list, nil
}

// GetPage returns the cached override for path, or ErrNotFound.
func (c *PageCache) GetPage(path string) (PageMeta, error) {
	pages, _, err := c.ensureLoaded()
	if err != nil {
		return PageMeta{}, err
	}
	p, ok := pages[path]
	if !ok {
		return PageMeta{}, ErrNotFound
	}
	return p, nil
}

// ListPages returns every cached override ordered by path.
func (c *PageCache) ListPages() ([]PageMeta, error) {
	_, list, err := c.ensureLoaded()
	return list, err
}
