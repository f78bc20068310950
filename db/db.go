package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB holds the database connection
var DB *sql.DB

// InitDB initializes the database connection from environment variables
func InitDB() error {
	// Get database connection string from environment
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		// Build connection string from individual variables
		host := os.Getenv("DB_HOST")
		port := os.Getenv("DB_PORT")
		user := os.Getenv("DB_USER")
		password := os.Getenv("DB_PASSWORD")
		dbname := os.Getenv("DB_NAME")
		sslmode := os.Getenv("DB_SSLMODE")

		if host == "" || user == "" || dbname == "" {
			return fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
		}

		if port == "" {
			port = "5432"
		}
		if sslmode == "" {
			sslmode = "disable"
		}

		connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	var err error
	DB, err = sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	// Test the connection
	ctx := context.Background()
	if err := DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := ensureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	log.Printf("✓ Database connection established successfully")
	return nil
}

// ensureSchema creates the storefront tables if they don't exist yet
func ensureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS kv_store (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id          BIGSERIAL PRIMARY KEY,
			printify_id TEXT NOT NULL UNIQUE,
			name        TEXT NOT NULL,
			description TEXT,
			category    TEXT NOT NULL DEFAULT 'apparel',
			price       BIGINT NOT NULL DEFAULT 0,
			image_url   TEXT NOT NULL DEFAULT '',
			is_active   BOOLEAN NOT NULL DEFAULT TRUE,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS product_variants (
			id                  BIGSERIAL PRIMARY KEY,
			product_id          BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			printify_variant_id BIGINT NOT NULL,
			size                TEXT,
			color               TEXT,
			sku                 TEXT NOT NULL DEFAULT '',
			price               BIGINT NOT NULL DEFAULT 0,
			in_stock            BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id                BIGSERIAL PRIMARY KEY,
			reference         TEXT NOT NULL UNIQUE,
			cart_id           TEXT NOT NULL,
			stripe_session_id TEXT NOT NULL,
			printify_order_id TEXT,
			status            TEXT NOT NULL DEFAULT 'pending',
			customer_email    TEXT,
			amount_total      BIGINT NOT NULL DEFAULT 0,
			currency          TEXT NOT NULL DEFAULT 'usd',
			created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS order_lines (
			id         BIGSERIAL PRIMARY KEY,
			order_id   BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id TEXT NOT NULL,
			variant_id BIGINT,
			name       TEXT NOT NULL,
			size       TEXT,
			quantity   INT NOT NULL,
			unit_price BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id                BIGSERIAL PRIMARY KEY,
			stripe_session_id TEXT NOT NULL UNIQUE,
			payment_intent_id TEXT,
			amount_total      BIGINT NOT NULL DEFAULT 0,
			currency          TEXT NOT NULL DEFAULT 'usd',
			customer_email    TEXT,
			status            TEXT NOT NULL DEFAULT '',
			created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := DB.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
