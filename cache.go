package qualname

import (
	"sync"
	"time"
)

// Cache provides a simple in-memory cache for scan results
type Cache struct {
	mu       sync.RWMutex
	scans    map[ScanCacheKey]cacheEntry
	packages map[PackageCacheKey]cacheEntry
	hits     int64
	ttl      time.Duration
}

type cacheEntry struct {
	result   *ScanResult
	storedAt time.Time
}

// ScanCacheKey is the key used for caching file scan results
type ScanCacheKey struct {
	Path    string
	ModTime time.Time
}

// PackageCacheKey is the key used for caching package analysis results
type PackageCacheKey struct {
	ImportPath string
}

// NewCache creates a new cache with the given TTL
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		scans:    make(map[ScanCacheKey]cacheEntry),
		packages: make(map[PackageCacheKey]cacheEntry),
		ttl:      ttl,
	}
}

// GetScan retrieves a file scan result from the cache
func (c *Cache) GetScan(key ScanCacheKey) (*ScanResult, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.scans[key]
	if !ok || time.Since(entry.storedAt) > c.ttl {
		return nil, false
	}
	c.hits++
	return entry.result, true
}

// SetScan stores a file scan result in the cache
func (c *Cache) SetScan(key ScanCacheKey, result *ScanResult) {
	if c == nil || c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.scans[key] = cacheEntry{result: result, storedAt: time.Now()}
}

// GetPackage retrieves a package analysis result from the cache
func (c *Cache) GetPackage(key PackageCacheKey) (*ScanResult, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.packages[key]
	if !ok || time.Since(entry.storedAt) > c.ttl {
		return nil, false
	}
	c.hits++
	return entry.result, true
}

// SetPackage stores a package analysis result in the cache
func (c *Cache) SetPackage(key PackageCacheKey, result *ScanResult) {
	if c == nil || c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.packages[key] = cacheEntry{result: result, storedAt: time.Now()}
}

// Stats returns cache statistics
func (c *Cache) Stats() map[string]interface{} {
	if c == nil {
		return map[string]interface{}{
			"hits":    int64(0),
			"entries": int64(0),
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return map[string]interface{}{
		"hits":    c.hits,
		"entries": int64(len(c.scans) + len(c.packages)),
	}
}
