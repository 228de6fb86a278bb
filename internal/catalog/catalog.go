// Package catalog holds the read-only list of items the storefront sells.
package catalog

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when an id does not match any catalog item.
var ErrNotFound = errors.New("catalog item not found")

// Item is a purchasable product. Items are values and never change after load.
type Item struct {
	ID        int
	Name      string
	UnitPrice decimal.Decimal
	ImageRef  string
}

// Catalog is an immutable, ordered list of items.
type Catalog struct {
	items []Item
	byID  map[int]int
}

// New builds a catalog from items, keeping their order.
// Duplicate ids and negative prices are rejected.
func New(items []Item) (*Catalog, error) {
	c := &Catalog{
		items: make([]Item, 0, len(items)),
		byID:  make(map[int]int, len(items)),
	}
	for _, it := range items {
		if _, dup := c.byID[it.ID]; dup {
			return nil, errors.Errorf("catalog: duplicate item id %d", it.ID)
		}
		if it.UnitPrice.IsNegative() {
			return nil, errors.Errorf("catalog: item %d has a negative price", it.ID)
		}
		c.byID[it.ID] = len(c.items)
		c.items = append(c.items, it)
	}
	return c, nil
}

// Items returns a copy of the catalog in display order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Lookup returns the item with the given id.
func (c *Catalog) Lookup(id int) (Item, error) {
	idx, ok := c.byID[id]
	if !ok {
		return Item{}, errors.Wrapf(ErrNotFound, "id %d", id)
	}
	return c.items[idx], nil
}

// Len reports the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// Default returns the storefront's built-in menu.
func Default() *Catalog {
	c, err := New([]Item{
		{ID: 1, Name: "Test 1", UnitPrice: decimal.RequireFromString("1.50")},
		{ID: 2, Name: "Test 2", UnitPrice: decimal.RequireFromString("2.50")},
		{ID: 3, Name: "Test 3", UnitPrice: decimal.RequireFromString("3.50")},
		{ID: 4, Name: "Test 4", UnitPrice: decimal.RequireFromString("4.50")},
		{ID: 5, Name: "Test 5", UnitPrice: decimal.RequireFromString("5.50")},
		{ID: 6, Name: "Test 6", UnitPrice: decimal.RequireFromString("6.50")},
		{ID: 7, Name: "Test 7", UnitPrice: decimal.RequireFromString("7.50")},
		{ID: 8, Name: "Test 8", UnitPrice: decimal.RequireFromString("8.50")},
	})
	if err != nil {
		// The list above is static; a failure here is a programming error.
		panic(err)
	}
	return c
}
