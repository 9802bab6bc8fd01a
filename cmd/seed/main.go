package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"orderdesk-be/internal/apperr"
	"orderdesk-be/internal/config"
	"orderdesk-be/internal/customer"
	"orderdesk-be/internal/db"
	"orderdesk-be/internal/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type productFixture struct {
	ID            uuid.UUID       `json:"id"`
	Sku           string          `json:"sku"`
	InternalCode  string          `json:"internalCode"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	CurrentPrice  decimal.Decimal `json:"currentPrice"`
	StockQuantity int             `json:"stockQuantity"`
	IsActive      bool            `json:"isActive"`
}

func main() {
	dir := flag.String("dir", "./fixtures", "fixtures directory")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	database, err := db.InitDB(cfg)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer database.Close()

	ctx := context.Background()

	if err := seedCustomers(ctx, customer.NewRepository(database), filepath.Join(*dir, "customers.json")); err != nil {
		log.Fatal(err)
	}
	if err := seedProducts(ctx, product.NewRepository(database), filepath.Join(*dir, "products.json")); err != nil {
		log.Fatal(err)
	}

	fmt.Println("seeding complete")
}

func seedCustomers(ctx context.Context, repo customer.Repository, path string) error {
	var customers []customer.Customer
	if err := loadFixture(path, &customers); err != nil {
		return err
	}

	for i := range customers {
		if err := repo.Create(ctx, &customers[i]); err != nil {
			return fmt.Errorf("seed customer %s: %w", customers[i].Email, err)
		}
	}
	fmt.Printf("seeded %d customers\n", len(customers))
	return nil
}

func seedProducts(ctx context.Context, repo product.Repository, path string) error {
	var fixtures []productFixture
	if err := loadFixture(path, &fixtures); err != nil {
		return err
	}

	seeded := 0
	for _, f := range fixtures {
		p := product.Product{
			ID:            f.ID,
			Sku:           f.Sku,
			InternalCode:  f.InternalCode,
			Name:          f.Name,
			Description:   f.Description,
			CurrentPrice:  f.CurrentPrice,
			StockQuantity: f.StockQuantity,
			IsActive:      f.IsActive,
		}
		err := repo.Create(ctx, &p)
		if errors.Is(err, apperr.ErrDuplicate) {
			fmt.Printf("skipping existing product %s\n", f.Sku)
			continue
		}
		if err != nil {
			return fmt.Errorf("seed product %s: %w", f.Sku, err)
		}
		seeded++
	}
	fmt.Printf("seeded %d products\n", seeded)
	return nil
}

func loadFixture(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fixture %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return nil
}
