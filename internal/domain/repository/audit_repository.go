package repository

import "github.com/tu-usuario/inventario-lite/internal/domain/entity"

// AuditRepository define el puerto de persistencia para el historial de auditoría.
// Es un log: solo inserta y lista, nunca actualiza ni borra.
type AuditRepository interface {
	Create(entry *entity.AuditEntry) error
	// ListByItem devuelve las entradas de un artículo en orden descendente por
	// timestamp (empates por orden de inserción inverso) y el total sin paginar.
	ListByItem(itemID string, limit, offset int) ([]*entity.AuditEntry, int, error)
}
