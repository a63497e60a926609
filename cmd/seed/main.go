// seed aplica el esquema inicial y carga artículos de ejemplo en la base.
//
// Uso: go run ./cmd/seed
// Lee la configuración de DB igual que la API (DATABASE_URL o DB_HOST, etc.).
// Borra los artículos existentes antes de insertar; el historial de auditoría
// no se toca (append-only).
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/inventario-lite/internal/application/dto"
	"github.com/tu-usuario/inventario-lite/internal/application/inventory"
	"github.com/tu-usuario/inventario-lite/internal/infrastructure/postgres"
	"github.com/tu-usuario/inventario-lite/pkg/config"
)

type seedItem struct {
	name             string
	category         string
	unit             string
	quantity         int64
	reorderThreshold int64
	costPrice        string
}

var sampleItems = []seedItem{
	{"Mozzarella Cheese", "Dairy", "kg", 25, 5, "12.50"},
	{"Pizza Dough", "Ingredients", "pieces", 50, 10, "1.25"},
	{"Tomato Sauce", "Ingredients", "liters", 15, 3, "4.50"},
	{"Pepperoni", "Meat", "kg", 8, 2, "18.75"},
	{"Bell Peppers", "Vegetables", "kg", 12, 3, "3.25"},
	{"Mushrooms", "Vegetables", "kg", 7, 2, "5.50"},
	{"Italian Sausage", "Meat", "kg", 10, 2, "16.25"},
	{"Parmesan Cheese", "Dairy", "kg", 3, 1, "22.50"},
	{"Olive Oil", "Ingredients", "liters", 5, 1, "8.75"},
	{"Pizza Boxes (Large)", "Packaging", "pieces", 100, 20, "0.75"},
	{"Oregano", "Spices", "g", 500, 100, "0.02"},
	{"Basil", "Spices", "g", 250, 50, "0.04"},
	{"Red Onions", "Vegetables", "kg", 8, 2, "2.25"},
	{"Black Olives", "Toppings", "kg", 4, 1, "7.50"},
	{"Coca Cola", "Beverages", "cans", 150, 30, "0.85"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := applyMigrations(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "aplicar migraciones: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Limpiando artículos existentes...")
	if _, err := pool.Exec(ctx, `DELETE FROM items`); err != nil {
		fmt.Fprintf(os.Stderr, "limpiar items: %v\n", err)
		os.Exit(1)
	}

	// Insertar vía el caso de uso para que cada artículo quede con su entrada
	// item_created en el historial, igual que una creación real.
	itemRepo := postgres.NewItemRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	uc := inventory.NewUseCase(postgres.NewTxRunner(pool), itemRepo, auditRepo)
	actor := inventory.Actor{UserID: "seed-script", Email: "seed@example.com"}

	for _, s := range sampleItems {
		qty, threshold := s.quantity, s.reorderThreshold
		cost, err := decimal.NewFromString(s.costPrice)
		if err != nil {
			fmt.Fprintf(os.Stderr, "costPrice inválido para %s: %v\n", s.name, err)
			os.Exit(1)
		}
		_, err = uc.CreateItem(ctx, dto.CreateItemRequest{
			Name:             s.name,
			Category:         s.category,
			Unit:             s.unit,
			Quantity:         &qty,
			ReorderThreshold: &threshold,
			CostPrice:        &cost,
		}, actor)
		if err != nil {
			fmt.Fprintf(os.Stderr, "crear %s: %v\n", s.name, err)
			os.Exit(1)
		}
		fmt.Printf("- %s (%s): %d %s\n", s.name, s.category, s.quantity, s.unit)
	}

	fmt.Printf("Se insertaron %d artículos de ejemplo\n", len(sampleItems))
}

// applyMigrations ejecuta los .sql de migrations en orden lexicográfico.
// Los scripts son idempotentes (CREATE ... IF NOT EXISTS).
func applyMigrations(ctx context.Context, q postgres.Querier) error {
	dir := filepath.Join("internal", "infrastructure", "postgres", "migrations")
	paths, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return err
	}
	sort.Strings(paths)
	for _, p := range paths {
		sql, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("leer %s: %w", p, err)
		}
		if _, err := q.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("ejecutar %s: %w", p, err)
		}
		fmt.Printf("migración aplicada: %s\n", filepath.Base(p))
	}
	return nil
}
