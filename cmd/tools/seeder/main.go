package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/alexedwards/argon2id"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/Vexflip/skiset-reservation/internal/pricing"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close(ctx)

	seedAdmin(ctx, conn)
	seedProducts(ctx, conn)
	seedPromoCodes(ctx, conn)

	log.Println("Seeding completed successfully!")
}

func seedAdmin(ctx context.Context, conn *pgx.Conn) {
	fmt.Println("Seeding Admin...")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme-now"
	}
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	_, err = conn.Exec(ctx, `
		INSERT INTO admins (email, password_hash)
		VALUES ('admin@skiset.com', $1)
		ON CONFLICT (email) DO NOTHING;
	`, hash)
	if err != nil {
		log.Printf("Failed to seed admin: %v", err)
	}
}

func seedProducts(ctx context.Context, conn *pgx.Conn) {
	products := []struct {
		Name        string
		Description string
		Category    string
		Price       float64
		Level       string
	}{
		{"Pack Découverte", "Skis + bâtons + chaussures pour débuter en douceur", "ADULT_SKI", 121.60, "BEGINNER"},
		{"Pack Sensation", "Matériel polyvalent pour skieurs réguliers", "ADULT_SKI", 112.00, "INTERMEDIATE"},
		{"Pack Excellence", "Skis haut de gamme pour les pistes exigeantes", "ADULT_SKI", 194.65, "ADVANCED"},
		{"Snowboard Freestyle", "Board + boots pour le park et la poudreuse", "SNOWBOARD", 138.00, "INTERMEDIATE"},
		{"Pack Enfant", "Équipement complet adapté aux enfants", "KIDS_SKI", 74.50, "BEGINNER"},
		{"Casque", "Casque de ski toutes tailles", "HELMET", 24.00, ""},
	}

	fmt.Println("Seeding Products...")
	for _, p := range products {
		overrides := pricing.GenerateDefaultOverrides(p.Price, pricing.MaxRentalDays)
		dayPrices, err := json.Marshal(overrides)
		if err != nil {
			log.Printf("Failed to build day prices for %s: %v", p.Name, err)
			continue
		}
		_, err = conn.Exec(ctx, `
			INSERT INTO products (name, description, category, price, level, day_prices, active)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, true)
			ON CONFLICT (name) DO UPDATE SET
				price = EXCLUDED.price,
				day_prices = EXCLUDED.day_prices,
				active = true;
		`, p.Name, p.Description, p.Category, p.Price, p.Level, string(dayPrices))
		if err != nil {
			log.Printf("Failed to seed product %s: %v", p.Name, err)
		}
	}
}

func seedPromoCodes(ctx context.Context, conn *pgx.Conn) {
	promos := []struct {
		Code    string
		Type    string
		Value   float64
		MaxUses int
	}{
		{"WELCOME10", "PERCENTAGE", 10, 0},
		{"NEIGE25", "FIXED_AMOUNT", 25, 100},
	}

	fmt.Println("Seeding Promo Codes...")
	for _, p := range promos {
		_, err := conn.Exec(ctx, `
			INSERT INTO promo_codes (code, discount_type, discount_value, max_uses, is_active, expires_at)
			VALUES ($1, $2, $3, NULLIF($4, 0), true, NOW() + INTERVAL '1 year')
			ON CONFLICT (code) DO NOTHING;
		`, p.Code, p.Type, p.Value, p.MaxUses)
		if err != nil {
			log.Printf("Failed to seed promo code %s: %v", p.Code, err)
		}
	}
}
