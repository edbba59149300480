package domain

// CartLine is a selected product inside a cart. Quantity is kept within
// [1, Stock]; Stock is the availability captured when the line was added.
type CartLine struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	UnitPrice   int64  `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	Stock       int    `json:"stock"`
}

// LineTotal is the extended price of the line.
func (l CartLine) LineTotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// CartSnapshot is the immutable copy of a cart handed to checkout. Lines
// keep their insertion order.
type CartSnapshot struct {
	Lines    []CartLine `json:"lines"`
	Discount int64      `json:"discount"`
	Subtotal int64      `json:"subtotal"`
	NetTotal int64      `json:"netTotal"`
}
