// Package cart implements the in-memory shopping cart.
//
// A Store is not safe for concurrent use; its owner serializes access.
package cart

import (
	"github.com/jcmexdev/storefront/internal/catalog"
)

// Line is one catalog item and how many of it the cart holds.
// Quantity is always at least 1 while the line is stored.
type Line struct {
	Item     catalog.Item
	Quantity int
}

// Store keeps one line per item id, in first-added order.
type Store struct {
	lines []Line
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{}
}

// AddItem increments the line for item, or appends a new line with quantity 1.
func (s *Store) AddItem(item catalog.Item) {
	if i := s.find(item.ID); i >= 0 {
		s.lines[i].Quantity++
		return
	}
	s.lines = append(s.lines, Line{Item: item, Quantity: 1})
}

// SetQuantity replaces the quantity of an existing line. A quantity of zero or
// less removes the line. Ids that are not in the cart are ignored.
func (s *Store) SetQuantity(id, quantity int) {
	i := s.find(id)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
		return
	}
	s.lines[i].Quantity = quantity
}

// quantity returns the quantity held for id, or 0.
func (s *Store) quantity(id int) int {
	if i := s.find(id); i >= 0 {
		return s.lines[i].Quantity
	}
	return 0
}

// Lines returns a copy of the lines in cart order.
func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len is the number of distinct items.
func (s *Store) Len() int { return len(s.lines) }

// isEmpty reports whether the cart has no lines.
func (s *Store) isEmpty() bool { return len(s.lines) == 0 }

// TotalCount is the sum of all quantities.
func (s *Store) TotalCount() int {
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// Clear removes every line.
func (s *Store) Clear() {
	s.lines = nil
}

// Totals computes subtotal, taxes and total for the current lines.
func (s *Store) Totals() Totals { return Summarize(s.lines) }

func (s *Store) find(id int) int {
	for i, l := range s.lines {
		if l.Item.ID == id {
			return i
		}
	}
	return -1
}
