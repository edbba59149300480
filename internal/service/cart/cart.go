package cart

import (
	"sync"

	"fayclick/internal/domain"
)

// Cart holds the lines and discount of one sale in progress. All
// operations are total: out-of-range inputs are clamped, never rejected.
// A Cart performs no I/O.
type Cart struct {
	mu       sync.Mutex
	lines    []domain.CartLine
	discount int64
}

// AddLine puts a product in the cart. If the product is already present
// its quantity is incremented instead; quantity never exceeds the stock
// captured on the line.
func (c *Cart) AddLine(p domain.Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity = clampQty(c.lines[i].Quantity+qty, c.lines[i].Stock)
			c.clampDiscountLocked()
			return
		}
	}
	c.lines = append(c.lines, domain.CartLine{
		ProductID:   p.ID,
		ProductName: p.Name,
		UnitPrice:   p.Price,
		Quantity:    clampQty(qty, p.Stock),
		Stock:       p.Stock,
	})
}

// UpdateQuantity sets the quantity of a line, clamped to [1, stock].
// A requested quantity of zero or less removes the line.
func (c *Cart) UpdateQuantity(productID string, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if qty <= 0 {
		c.removeLocked(productID)
		c.clampDiscountLocked()
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = clampQty(qty, c.lines[i].Stock)
			break
		}
	}
	c.clampDiscountLocked()
}

// RemoveLine drops a line from the cart. Unknown ids are ignored.
func (c *Cart) RemoveLine(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(productID)
	c.clampDiscountLocked()
}

// SetDiscount stores the discount, clamped to [0, subtotal].
func (c *Cart) SetDiscount(amount int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.discount = clampDiscount(amount, c.subtotalLocked())
}

// Clear empties the cart and resets the discount.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.discount = 0
}

// Subtotal is the sum of all line totals.
func (c *Cart) Subtotal() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subtotalLocked()
}

// NetTotal is the subtotal minus discount, floored at zero.
func (c *Cart) NetTotal() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return netTotal(c.subtotalLocked(), c.discount)
}

// Discount returns the current discount amount.
func (c *Cart) Discount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.discount
}

// ItemCount is the total quantity across lines.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Snapshot freezes the cart for checkout.
func (c *Cart) Snapshot() domain.CartSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	lines := make([]domain.CartLine, len(c.lines))
	copy(lines, c.lines)
	subtotal := c.subtotalLocked()
	return domain.CartSnapshot{
		Lines:    lines,
		Discount: c.discount,
		Subtotal: subtotal,
		NetTotal: netTotal(subtotal, c.discount),
	}
}

func (c *Cart) subtotalLocked() int64 {
	var sum int64
	for _, l := range c.lines {
		sum += l.LineTotal()
	}
	return sum
}

func (c *Cart) removeLocked(productID string) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// A shrinking subtotal may leave the discount above it; re-clamp.
func (c *Cart) clampDiscountLocked() {
	c.discount = clampDiscount(c.discount, c.subtotalLocked())
}

func clampQty(qty, stock int) int {
	if stock > 0 && qty > stock {
		qty = stock
	}
	if qty < 1 {
		qty = 1
	}
	return qty
}

func clampDiscount(amount, subtotal int64) int64 {
	if amount < 0 {
		return 0
	}
	if amount > subtotal {
		return subtotal
	}
	return amount
}

func netTotal(subtotal, discount int64) int64 {
	net := subtotal - discount
	if net < 0 {
		return 0
	}
	return net
}
