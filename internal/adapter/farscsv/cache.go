package farscsv

import (
	"sync"

	"github.com/couchcryptid/fars-accidents/internal/domain"
)

// TableLoader is anything that loads an accident table by path.
type TableLoader interface {
	Load(path string) (domain.AccidentTable, error)
}

// CachedLoader wraps a TableLoader with an in-memory LRU of parsed tables,
// so a year requested twice is decompressed once.
type CachedLoader struct {
	inner TableLoader
	cache *lruCache
}

// NewCachedLoader creates a cache decorator holding at most maxEntries tables.
func NewCachedLoader(inner TableLoader, maxEntries int) *CachedLoader {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &CachedLoader{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

// Load returns the cached table for path or loads it. Failures are never
// cached, so a file that appears later is picked up.
func (c *CachedLoader) Load(path string) (domain.AccidentTable, error) {
	if t, ok := c.cache.get(path); ok {
		return t, nil
	}
	t, err := c.inner.Load(path)
	if err != nil {
		return t, err
	}
	c.cache.put(path, t)
	return t, nil
}

// lruCache is a thread-safe LRU of tables keyed by path.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.AccidentTable
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.AccidentTable, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.AccidentTable{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.AccidentTable) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
