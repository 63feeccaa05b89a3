package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"gemini-media-bot/types"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Entry is one cached media processing result.
type Entry struct {
	Key       string
	Value     types.ProcessingResult
	Timestamp time.Time
	TTL       time.Duration
	UseCount  int
}

// Cache is an in-memory LRU with per-entry TTL, used to avoid re-sending
// unchanged files to the remote model. It is safe for concurrent use.
type Cache struct {
	items      map[string]*list.Element
	evictList  *list.List
	mutex      sync.Mutex
	capacity   int
	ctx        context.Context
	cancel     context.CancelFunc
	cleanupTTL time.Duration
}

var (
	hits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "media_cache_hits_total",
		Help: "Total number of media cache hits",
	})
	misses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "media_cache_misses_total",
		Help: "Total number of media cache misses",
	})
	size = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "media_cache_size",
		Help: "Current number of cached media results",
	})
)

// NewCache creates a cache holding up to capacity entries. Expired entries
// are also swept in the background until Stop is called.
func NewCache(capacity int) *Cache {
	ctx, cancel := context.WithCancel(context.Background())

	c := &Cache{
		items:      make(map[string]*list.Element),
		evictList:  list.New(),
		capacity:   capacity,
		ctx:        ctx,
		cancel:     cancel,
		cleanupTTL: 5 * time.Minute,
	}
	go c.startCleanup()
	return c
}

// Get returns the cached result for key, refreshing its LRU position.
func (c *Cache) Get(key string) (types.ProcessingResult, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if element, exists := c.items[key]; exists {
		entry := element.Value.(*Entry)
		if entry.TTL > 0 && time.Since(entry.Timestamp) > entry.TTL {
			c.evictElement(element)
			misses.Inc()
			return types.ProcessingResult{}, false
		}
		c.evictList.MoveToFront(element)
		entry.UseCount++
		hits.Inc()
		return entry.Value, true
	}

	misses.Inc()
	return types.ProcessingResult{}, false
}

// Set stores a result under key. A ttl of zero means no expiry.
func (c *Cache) Set(key string, value types.ProcessingResult, ttl time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if element, exists := c.items[key]; exists {
		c.evictList.MoveToFront(element)
		entry := element.Value.(*Entry)
		entry.Value = value
		entry.Timestamp = time.Now()
		entry.TTL = ttl
		return
	}

	entry := &Entry{
		Key:       key,
		Value:     value,
		Timestamp: time.Now(),
		TTL:       ttl,
	}

	element := c.evictList.PushFront(entry)
	c.items[key] = element
	size.Inc()

	if c.evictList.Len() > c.capacity {
		c.evictLRU()
	}
}

func (c *Cache) evictLRU() {
	if element := c.evictList.Back(); element != nil {
		c.evictElement(element)
	}
}

func (c *Cache) evictElement(element *list.Element) {
	c.evictList.Remove(element)
	entry := element.Value.(*Entry)
	delete(c.items, entry.Key)
	size.Dec()
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items = make(map[string]*list.Element)
	c.evictList.Init()
	size.Set(0)
}

// Stop ends the background cleanup goroutine.
func (c *Cache) Stop() {
	c.cancel()
}

func (c *Cache) startCleanup() {
	ticker := time.NewTicker(c.cleanupTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanupExpired()
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Cache) cleanupExpired() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for _, element := range c.items {
		entry := element.Value.(*Entry)
		if entry.TTL > 0 && now.Sub(entry.Timestamp) > entry.TTL {
			c.evictElement(element)
		}
	}
}

// Size returns the current number of entries.
func (c *Cache) Size() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.evictList.Len()
}
