package dto

import "time"

// AuditEntryResponse salida de una entrada del historial de auditoría.
// Delta, PreviousQuantity y NewQuantity solo aparecen en quantity_adjustment.
type AuditEntryResponse struct {
	ID               string    `json:"id"`
	ItemID           string    `json:"itemId"`
	ItemName         string    `json:"itemName"`
	Action           string    `json:"action"`
	Delta            *int64    `json:"delta,omitempty"`
	PreviousQuantity *int64    `json:"previousQuantity,omitempty"`
	NewQuantity      *int64    `json:"newQuantity,omitempty"`
	Reason           string    `json:"reason,omitempty"`
	UserID           string    `json:"userId"`
	UserEmail        string    `json:"userEmail"`
	Timestamp        time.Time `json:"timestamp"`
}

// AuditListResponse historial paginado de un artículo.
type AuditListResponse struct {
	AuditLogs  []AuditEntryResponse `json:"auditLogs"`
	Pagination Pagination           `json:"pagination"`
}
