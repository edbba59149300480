package domain

import "time"

// Client is a customer of a structure, as managed by the CRM screens.
type Client struct {
	ID          string    `json:"id"`
	StructureID string    `json:"-"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
