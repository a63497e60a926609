package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidID            = errors.New("identificador inválido")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrInsufficientQuantity = errors.New("cantidad insuficiente")
)
