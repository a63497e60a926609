package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo de inventario. Quantity se modifica solo vía
// ajustes (nunca por Update); CostPrice es el costo unitario de compra.
type Item struct {
	ID               string
	Name             string // máx. 100 caracteres
	Category         string // texto libre, no es enum cerrado
	Unit             string // etiqueta de unidad (kg, unidad, caja...)
	Quantity         int64
	ReorderThreshold int64
	CostPrice        decimal.Decimal
	CreatedBy        string // UserID del actor creador
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// LowStock indica si el artículo está en o por debajo del umbral de reposición.
// Condición derivada; no se persiste.
func (i *Item) LowStock() bool {
	return i.Quantity <= i.ReorderThreshold
}

// InventoryStats agregados simples sobre el inventario completo.
type InventoryStats struct {
	TotalItems    int
	LowStockItems int
	TotalValue    decimal.Decimal // sum(quantity * cost_price)
}
