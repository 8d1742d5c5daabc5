package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/lk16/othengine/internal/othello"
)

// Key identifies a search: the board it started from, the search depth and the search variant.
type Key struct {
	Board   string
	Depth   int
	Variant string
}

// NewKey creates a Key for a search on board.
func NewKey(board *othello.Board, depth int, variant string) Key {
	return Key{
		Board:   board.String(),
		Depth:   depth,
		Variant: variant,
	}
}

// String returns the key as used in external stores.
func (k Key) String() string {
	return fmt.Sprintf("%s:%d:%s", k.Board, k.Depth, k.Variant)
}

// Entry is the outcome of a search.
type Entry struct {
	Move  othello.Point `json:"move"`
	Score int           `json:"score"`
	Nodes uint64        `json:"nodes"`
}

// Cache stores search results so identical searches are not repeated.
type Cache interface {
	Lookup(ctx context.Context, key Key) (Entry, bool, error)
	Store(ctx context.Context, key Key, entry Entry) error
}

// Memory implements a simple in-process cache.
type Memory struct {
	// data stores the underlying map
	data map[Key]Entry

	// dataMutex protects data
	dataMutex sync.Mutex
}

// NewMemory creates a new in-process cache.
func NewMemory() *Memory {
	return &Memory{
		data: make(map[Key]Entry),
	}
}

// Lookup looks up a search result.
func (c *Memory) Lookup(_ context.Context, key Key) (Entry, bool, error) {
	c.dataMutex.Lock()
	defer c.dataMutex.Unlock()

	entry, ok := c.data[key]
	return entry, ok, nil
}

// Store adds or replaces a search result.
func (c *Memory) Store(_ context.Context, key Key, entry Entry) error {
	c.dataMutex.Lock()
	defer c.dataMutex.Unlock()

	c.data[key] = entry
	return nil
}

// Len returns the number of items in the cache.
func (c *Memory) Len() int {
	c.dataMutex.Lock()
	defer c.dataMutex.Unlock()

	return len(c.data)
}
