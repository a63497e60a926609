package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/inventario-lite/internal/domain/entity"
	"github.com/tu-usuario/inventario-lite/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = "id, name, category, unit, quantity, reorder_threshold, cost_price, created_by, created_at, updated_at"

// Columnas ordenables, por nombre de campo de la API. Lista blanca: cualquier
// otro valor cae al orden por defecto (name).
var sortColumns = map[string]string{
	"name":             "name",
	"category":         "category",
	"unit":             "unit",
	"quantity":         "quantity",
	"reorderThreshold": "reorder_threshold",
	"costPrice":        "cost_price",
	"createdAt":        "created_at",
	"updatedAt":        "updated_at",
}

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo artículo.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, name, category, unit, quantity, reorder_threshold, cost_price, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Category, item.Unit, item.Quantity,
		item.ReorderThreshold, item.CostPrice, item.CreatedBy, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID. (nil, nil) si no existe.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate obtiene el artículo y bloquea la fila (SELECT FOR UPDATE).
// Serializa el read-modify-write de ajustes concurrentes sobre el mismo artículo.
func (r *ItemRepo) GetByIDForUpdate(id string) (*entity.Item, error) {
	return r.getByID(id, true)
}

func (r *ItemRepo) getByID(id string, forUpdate bool) (*entity.Item, error) {
	query := "SELECT " + itemColumns + " FROM items WHERE id = $1"
	if forUpdate {
		query += " FOR UPDATE"
	}
	var it entity.Item
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.ID, &it.Name, &it.Category, &it.Unit, &it.Quantity,
		&it.ReorderThreshold, &it.CostPrice, &it.CreatedBy, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// Update actualiza todos los campos mutables de un artículo.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, category = $3, unit = $4, quantity = $5,
			reorder_threshold = $6, cost_price = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Category, item.Unit, item.Quantity,
		item.ReorderThreshold, item.CostPrice, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// UpdateQuantity actualiza solo la cantidad (usado por el ajuste dentro de su transacción).
func (r *ItemRepo) UpdateQuantity(id string, quantity int64, updatedAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE items SET quantity = $2, updated_at = $3 WHERE id = $1`,
		id, quantity, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	return nil
}

// Delete elimina un artículo por ID. El historial de auditoría no se toca.
func (r *ItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// List lista artículos con búsqueda por substring (nombre o categoría,
// case-insensitive), filtro exacto por categoría, orden por lista blanca y
// paginación. Devuelve también el total de coincidencias sin paginar.
func (r *ItemRepo) List(filter repository.ItemFilter) ([]*entity.Item, int, error) {
	where := ""
	args := []any{}
	pos := 1
	if filter.Search != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR category ILIKE $%d)", pos, pos)
		args = append(args, "%"+filter.Search+"%")
		pos++
	}
	if filter.Category != "" {
		where += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, filter.Category)
		pos++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM items WHERE 1=1" + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	col, ok := sortColumns[filter.SortBy]
	if !ok {
		col = "name"
	}
	dir := "ASC"
	if filter.SortOrder == "desc" {
		dir = "DESC"
	}
	// Desempate por orden de inserción para un listado estable
	query := fmt.Sprintf(
		"SELECT %s FROM items WHERE 1=1%s ORDER BY %s %s, created_at ASC, id ASC LIMIT $%d OFFSET $%d",
		itemColumns, where, col, dir, pos, pos+1,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Category, &it.Unit, &it.Quantity,
			&it.ReorderThreshold, &it.CostPrice, &it.CreatedBy, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, total, rows.Err()
}

// DistinctCategories devuelve las categorías en uso, ordenadas.
func (r *ItemRepo) DistinctCategories() ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT DISTINCT category FROM items ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}
	defer rows.Close()
	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Stats agregados simples: total de artículos, cuántos están en stock bajo y
// el valor total del inventario (sum quantity * cost_price).
func (r *ItemRepo) Stats() (*entity.InventoryStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE quantity <= reorder_threshold),
		       COALESCE(SUM(quantity * cost_price), 0)
		FROM items`
	var s entity.InventoryStats
	err := r.q.QueryRow(context.Background(), query).Scan(&s.TotalItems, &s.LowStockItems, &s.TotalValue)
	if err != nil {
		return nil, fmt.Errorf("inventory stats: %w", err)
	}
	return &s, nil
}
