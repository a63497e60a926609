package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/inventario-lite/internal/domain/entity"
	"github.com/tu-usuario/inventario-lite/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

const auditColumns = "id, seq, item_id, item_name, action, delta, previous_quantity, new_quantity, reason, user_id, user_email, timestamp"

// AuditRepo implementación de AuditRepository sobre PostgreSQL (usable con pool o tx).
// La tabla es append-only: sin UPDATE ni DELETE.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create persiste una entrada de auditoría. Asigna ID y timestamp si vienen vacíos;
// no aplica validación de negocio (es un log).
func (r *AuditRepo) Create(entry *entity.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	reason := (*string)(nil)
	if entry.Reason != "" {
		reason = &entry.Reason
	}
	query := `
		INSERT INTO audit_log (id, item_id, item_name, action, delta, previous_quantity, new_quantity, reason, user_id, user_email, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING seq`
	err := r.q.QueryRow(context.Background(), query,
		entry.ID, entry.ItemID, entry.ItemName, entry.Action,
		entry.Delta, entry.PreviousQuantity, entry.NewQuantity, reason,
		entry.UserID, entry.UserEmail, entry.Timestamp,
	).Scan(&entry.Seq)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListByItem lista el historial de un artículo, más reciente primero
// (timestamp DESC, empates por orden de inserción inverso vía seq).
// Devuelve también el total de entradas del artículo.
func (r *AuditRepo) ListByItem(itemID string, limit, offset int) ([]*entity.AuditEntry, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM audit_log WHERE item_id = $1`, itemID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count audit entries: %w", err)
	}

	query := "SELECT " + auditColumns + ` FROM audit_log
		WHERE item_id = $1
		ORDER BY timestamp DESC, seq DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditEntry
	for rows.Next() {
		var e entity.AuditEntry
		var reason *string
		if err := rows.Scan(&e.ID, &e.Seq, &e.ItemID, &e.ItemName, &e.Action,
			&e.Delta, &e.PreviousQuantity, &e.NewQuantity, &reason,
			&e.UserID, &e.UserEmail, &e.Timestamp); err != nil {
			return nil, 0, fmt.Errorf("scan audit entry: %w", err)
		}
		if reason != nil {
			e.Reason = *reason
		}
		list = append(list, &e)
	}
	return list, total, rows.Err()
}
