package worldfile

import "sync"

type cached struct {
	buf []byte
	err error
}

// Cache memoizes raw reads by Key. Failed reads are memoized too, so a
// key is read from its Source at most once until invalidated.
type Cache struct {
	mu      sync.Mutex
	src     Source
	entries map[Key]cached
}

// NewCache creates a cache over src.
func NewCache(src Source) *Cache {
	return &Cache{
		src:     src,
		entries: make(map[Key]cached),
	}
}

// Source returns the underlying file access.
func (c *Cache) Source() Source {
	return c.src
}

// Read returns the bytes of key, reading them on the first call.
func (c *Cache) Read(key Key) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		return e.buf, e.err
	}
	buf, err := c.src.ReadAll(key.Path, key.Location)
	c.entries[key] = cached{buf: buf, err: err}
	return buf, err
}

// Invalidate drops the memoized result of key.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Reset drops every memoized result.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]cached)
}

// Len returns the number of memoized keys.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
