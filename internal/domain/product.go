package domain

import "time"

type Product struct {
	ID          string    `json:"id"`
	StructureID string    `json:"-"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	// Price is expressed in XOF, which carries no minor unit.
	Price      int64     `json:"price"`
	Stock      int       `json:"stock"`
	CreatedAt  time.Time `json:"createdAt"`
}
