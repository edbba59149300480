package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	SKU         string
	Name        string
	Description string
	Price       int64
	Stock       int
}

type clientSeed struct {
	Name    string
	Phone   string
	Address string
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	structureID, err := ensureStructure(ctx, pool, "DEMO", "Boutique Demo", "771234567", "Marche Sandaga", "Dakar")
	if err != nil {
		return fmt.Errorf("ensure structure: %w", err)
	}

	// Default login: 771234567 / Fayclick1
	if err := ensureUser(ctx, pool, structureID, "771234567", "Fayclick1", "owner"); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}

	if err := ensureSubscription(ctx, pool, structureID, 30*24*time.Hour); err != nil {
		return fmt.Errorf("ensure subscription: %w", err)
	}

	products := []productSeed{
		{SKU: "SAV-01", Name: "Savon", Description: "Savon de menage 400g", Price: 1000, Stock: 50},
		{SKU: "HUI-01", Name: "Huile 1L", Description: "Huile vegetale", Price: 2500, Stock: 24},
		{SKU: "RIZ-05", Name: "Riz brise 5kg", Description: "Sac de riz parfume", Price: 4500, Stock: 12},
		{SKU: "THE-01", Name: "The vert", Description: "Boite 250g", Price: 1500, Stock: 30},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, structureID, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.SKU, err)
		}
	}

	clients := []clientSeed{
		{Name: "Awa Ndiaye", Phone: "770000001", Address: "Medina"},
		{Name: "Moussa Fall", Phone: "780000002", Address: "Pikine"},
	}
	for _, c := range clients {
		if err := ensureClient(ctx, pool, structureID, c); err != nil {
			return fmt.Errorf("ensure client %s: %w", c.Name, err)
		}
	}

	return nil
}

func ensureStructure(ctx context.Context, pool *pgxpool.Pool, code, name, phone, address, city string) (string, error) {
	const q = `
INSERT INTO structures (code, name, phone, address, city)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, code, name, phone, address, city).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, structureID, login, password, role string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (structure_id, login, password_hash, role)
VALUES ($1, $2, $3, $4)
ON CONFLICT (login) DO NOTHING
`
	_, err = pool.Exec(ctx, q, structureID, login, string(hashed), role)
	return err
}

func ensureSubscription(ctx context.Context, pool *pgxpool.Pool, structureID string, validity time.Duration) error {
	const q = `
INSERT INTO subscriptions (structure_id, plan, active, expires_at)
VALUES ($1, 'standard', TRUE, $2)
ON CONFLICT (structure_id) DO UPDATE SET active = TRUE, expires_at = EXCLUDED.expires_at
`
	_, err := pool.Exec(ctx, q, structureID, time.Now().Add(validity))
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, structureID string, p productSeed) error {
	const q = `
INSERT INTO products (structure_id, sku, name, description, price, stock)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (structure_id, sku) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    stock = EXCLUDED.stock
`
	_, err := pool.Exec(ctx, q, structureID, p.SKU, p.Name, p.Description, p.Price, p.Stock)
	return err
}

func ensureClient(ctx context.Context, pool *pgxpool.Pool, structureID string, c clientSeed) error {
	const q = `
INSERT INTO clients (structure_id, name, phone, address)
SELECT $1, $2, $3, $4
WHERE NOT EXISTS (
    SELECT 1 FROM clients WHERE structure_id = $1 AND name = $2
)
`
	_, err := pool.Exec(ctx, q, structureID, c.Name, c.Phone, c.Address)
	return err
}
