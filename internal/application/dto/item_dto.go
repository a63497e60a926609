package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un artículo.
// Los numéricos son punteros para distinguir "0 explícito" de campo ausente.
type CreateItemRequest struct {
	Name             string           `json:"name" validate:"required,max=100"`
	Category         string           `json:"category" validate:"required"`
	Unit             string           `json:"unit" validate:"required"`
	Quantity         *int64           `json:"quantity" validate:"required,min=0"`
	ReorderThreshold *int64           `json:"reorderThreshold" validate:"required,min=0"`
	CostPrice        *decimal.Decimal `json:"costPrice" validate:"required"`
}

// UpdateItemRequest entrada para actualización parcial: solo los campos
// presentes se modifican, los omitidos conservan su valor.
type UpdateItemRequest struct {
	Name             *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Category         *string          `json:"category" validate:"omitempty,min=1"`
	Unit             *string          `json:"unit" validate:"omitempty,min=1"`
	Quantity         *int64           `json:"quantity" validate:"omitempty,min=0"`
	ReorderThreshold *int64           `json:"reorderThreshold" validate:"omitempty,min=0"`
	CostPrice        *decimal.Decimal `json:"costPrice"`
}

// AdjustQuantityRequest body para POST /api/items/:id/adjust.
// Delta es entero con signo; Reason es texto libre opcional.
type AdjustQuantityRequest struct {
	Delta  *int64 `json:"delta" validate:"required"`
	Reason string `json:"reason"`
}

// ItemResponse salida de un artículo. LowStock se deriva en cada respuesta.
type ItemResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Unit             string          `json:"unit"`
	Quantity         int64           `json:"quantity"`
	ReorderThreshold int64           `json:"reorderThreshold"`
	CostPrice        decimal.Decimal `json:"costPrice"`
	LowStock         bool            `json:"lowStock"`
	CreatedBy        string          `json:"createdBy"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// ListItemsQuery parámetros de GET /api/items.
type ListItemsQuery struct {
	Search    string `query:"search"`
	Category  string `query:"category"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
}

// ListItemsResponse listado paginado más el catálogo de categorías para filtrar.
type ListItemsResponse struct {
	Items      []ItemResponse `json:"items"`
	Pagination Pagination     `json:"pagination"`
	Categories []string       `json:"categories"`
}

// AdjustmentResponse resultado de un ajuste de cantidad.
type AdjustmentResponse struct {
	Item       ItemResponse     `json:"item"`
	Adjustment AdjustmentDetail `json:"adjustment"`
}

// AdjustmentDetail detalle del ajuste aplicado.
type AdjustmentDetail struct {
	Delta            int64  `json:"delta"`
	PreviousQuantity int64  `json:"previousQuantity"`
	NewQuantity      int64  `json:"newQuantity"`
	Reason           string `json:"reason,omitempty"`
}

// StatsResponse agregados simples del inventario.
type StatsResponse struct {
	TotalItems    int             `json:"totalItems"`
	LowStockItems int             `json:"lowStockItems"`
	TotalValue    decimal.Decimal `json:"totalValue"`
}
