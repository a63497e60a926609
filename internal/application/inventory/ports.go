package inventory

import (
	"context"

	"github.com/tu-usuario/inventario-lite/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que la mutación del artículo y su entrada de auditoría se confirmen juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.ItemRepository,
		audit repository.AuditRepository,
	) error) error
}

// Actor identidad atribuida a una mutación, para auditoría.
// La resolución real de identidad es un colaborador externo (middleware HTTP).
type Actor struct {
	UserID string
	Email  string
}
