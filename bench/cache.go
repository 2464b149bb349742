package bench

import (
	"sync"

	"github.com/medieval-chess/medieval/board"
)

const DefaultCacheSize = 1 << 20 // number of entries

// Cache remembers the perft statistics of subtrees by position key and depth.
// Positions sharing a key have the same legal move tree, so a hit can stand in
// for a whole subtree walk. Cache is safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	table    []*entry
	maskHash uint64

	// stats
	hits   int
	misses int
	writes int
}

type entry struct {
	hash  uint64
	depth int
	stats Stats
}

// NewCache allocates a cache of size entries. size must be a power of two.
func NewCache(size uint64) *Cache {
	return &Cache{
		table:    make([]*entry, size),
		maskHash: size - 1,
	}
}

// Set stores the statistics of the subtree of depth d below b. Deeper subtrees
// are kept over shallower ones on collision.
func (c *Cache) Set(b *board.Board, d int, stats Stats) {
	hash := b.Hash()
	index := hash & c.maskHash

	c.mu.Lock()
	defer c.mu.Unlock()
	if e := c.table[index]; e == nil || e.depth <= d {
		c.writes++
		c.table[index] = &entry{
			hash:  hash,
			depth: d,
			stats: stats,
		}
	}
}

func (c *Cache) Get(b *board.Board, d int) (Stats, bool) {
	hash := b.Hash()
	index := hash & c.maskHash

	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.table[index]
	if e == nil || e.hash != hash || e.depth != d {
		c.misses++
		return Stats{}, false
	}
	c.hits++
	return e.stats, true
}

// Stats returns the hit, miss and write counts.
func (c *Cache) Stats() (int, int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, c.writes
}
