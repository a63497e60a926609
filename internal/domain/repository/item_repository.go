package repository

import (
	"time"

	"github.com/tu-usuario/inventario-lite/internal/domain/entity"
)

// ItemFilter filtro y ordenamiento para el listado de artículos.
// Search hace match por substring (case-insensitive) sobre nombre o categoría;
// Category es match exacto. SortBy usa los nombres de campo de la API
// (name, category, unit, quantity, reorderThreshold, costPrice, createdAt, updatedAt).
type ItemFilter struct {
	Search    string
	Category  string
	SortBy    string
	SortOrder string // asc | desc
	Limit     int
	Offset    int
}

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	// GetByIDForUpdate bloquea la fila del artículo; solo tiene sentido dentro de
	// una transacción (serializa el read-modify-write de los ajustes).
	GetByIDForUpdate(id string) (*entity.Item, error)
	Update(item *entity.Item) error
	UpdateQuantity(id string, quantity int64, updatedAt time.Time) error
	Delete(id string) error
	List(filter ItemFilter) ([]*entity.Item, int, error)
	DistinctCategories() ([]string, error)
	Stats() (*entity.InventoryStats, error)
}
