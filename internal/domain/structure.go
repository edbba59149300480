package domain

import "time"

// Structure is the merchant account everything else is scoped to:
// products, clients, carts, invoices and the subscription all belong
// to exactly one structure.
type Structure struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is a structure operator account. PasswordChanged stays false
// until the initial password has been replaced.
type User struct {
	ID              string    `json:"id"`
	StructureID     string    `json:"structureId"`
	StructureName   string    `json:"structureName,omitempty"`
	Login           string    `json:"login"`
	PasswordHash    string    `json:"-"`
	Role            string    `json:"role"`
	PasswordChanged bool      `json:"passwordChanged"`
	CreatedAt       time.Time `json:"createdAt"`
}
