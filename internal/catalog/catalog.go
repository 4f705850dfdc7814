// Package catalog holds the ordered labels a wheel selects from.
package catalog

import "github.com/san-kum/wheelspin/internal/wheel"

// MinItems is the smallest catalog that can fill a selection window.
const MinItems = 3

var defaultItems = []string{
	"about us",
	"e comm",
	"digital marketing",
	"creative",
	"outdoor marketing",
	"electronic media",
	"production studio",
	"print",
}

// Catalog is immutable after construction.
type Catalog struct {
	items []string
}

func New(items ...string) (*Catalog, error) {
	if len(items) < MinItems {
		return nil, wheel.Invalid("catalog", "need at least %d items, got %d", MinItems, len(items))
	}

	c := &Catalog{items: make([]string, len(items))}
	copy(c.items, items)
	return c, nil
}

// Default returns the stock eight-label catalog.
func Default() *Catalog {
	c, _ := New(defaultItems...)
	return c
}

func (c *Catalog) Len() int {
	return len(c.items)
}

// At returns the item at i modulo Len, so negative and oversized indices wrap.
func (c *Catalog) At(i int) string {
	n := len(c.items)
	i %= n
	if i < 0 {
		i += n
	}
	return c.items[i]
}

func (c *Catalog) Items() []string {
	out := make([]string, len(c.items))
	copy(out, c.items)
	return out
}
