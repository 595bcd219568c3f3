package domain

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	catalog "github.com/donutopia/storefront/internal/catalog/domain"
	"github.com/donutopia/storefront/pkg/money"
)

// LineKey identifies a cart line. The same flavor ordered as a traditional
// donut and as a mini are two distinct lines.
type LineKey struct {
	Flavor string
	Type   catalog.ProductType
}

type Line struct {
	Flavor    string
	Category  string
	UnitPrice money.Cents
	Type      catalog.ProductType
	Quantity  int
}

// Cart maps line keys to lines. Invariant: no stored line ever has a
// quantity below 1; operations that would produce one remove the line.
//
// A cart is shared by every request of one browser session; the mutex keeps
// concurrent requests on the same cookie from corrupting the map.
type Cart struct {
	mu    sync.RWMutex
	lines map[LineKey]Line
}

func New() *Cart {
	return &Cart{lines: make(map[LineKey]Line)}
}

// Adjust adds delta to the line's quantity, creating the line at zero first.
// A resulting quantity of zero or less removes the line, so re-clicking
// "minus" on an absent line is a no-op.
func (c *Cart) Adjust(flavor, category string, unitPrice money.Cents, delta int, t catalog.ProductType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := LineKey{Flavor: flavor, Type: t}
	line, ok := c.lines[key]
	if !ok {
		line = Line{Flavor: flavor, Category: category, UnitPrice: unitPrice, Type: t}
	}
	line.Quantity += delta
	if line.Quantity <= 0 {
		delete(c.lines, key)
		return
	}
	c.lines[key] = line
}

// Set parses raw as a non-negative integer and sets the quantity absolutely.
// Non-numeric or non-positive input removes the line.
func (c *Cart) Set(flavor, category string, unitPrice money.Cents, t catalog.ProductType, raw string) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		qty = 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := LineKey{Flavor: flavor, Type: t}
	if qty <= 0 {
		delete(c.lines, key)
		return
	}
	c.lines[key] = Line{
		Flavor:    flavor,
		Category:  category,
		UnitPrice: unitPrice,
		Type:      t,
		Quantity:  qty,
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = make(map[LineKey]Line)
}

func (c *Cart) Empty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines) == 0
}

// Quantity reports the stored quantity for a key, zero when absent.
func (c *Cart) Quantity(key LineKey) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lines[key].Quantity
}

// Lines returns a copy of every line, both product types included, in a
// stable order: traditional donuts before minis, flavors alphabetical.
func (c *Cart) Lines() []Line {
	c.mu.RLock()
	out := make([]Line, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, l)
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type == catalog.TypeTraditional
		}
		return out[i].Flavor < out[j].Flavor
	})
	return out
}

// Totals returns the summed quantity and monetary subtotal across both
// product types.
func (c *Cart) Totals() (int, money.Cents) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var qty int
	var subtotal money.Cents
	for _, l := range c.lines {
		qty += l.Quantity
		subtotal += money.Cents(l.Quantity) * l.UnitPrice
	}
	return qty, subtotal
}
