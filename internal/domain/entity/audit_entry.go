package entity

import "time"

// Acciones auditables sobre un artículo.
const (
	ActionQuantityAdjustment = "quantity_adjustment"
	ActionItemCreated        = "item_created"
	ActionItemUpdated        = "item_updated"
	ActionItemDeleted        = "item_deleted"
)

// AuditEntry registro inmutable de una mutación sobre un artículo (append-only).
// ItemID es referencia débil: la entrada sobrevive al borrado del artículo, por eso
// ItemName guarda el nombre al momento de la acción.
// Delta, PreviousQuantity y NewQuantity solo aplican a quantity_adjustment.
type AuditEntry struct {
	ID               string
	Seq              int64 // orden de inserción, desempate del listado descendente
	ItemID           string
	ItemName         string
	Action           string
	Delta            *int64
	PreviousQuantity *int64
	NewQuantity      *int64
	Reason           string
	UserID           string
	UserEmail        string
	Timestamp        time.Time
}
