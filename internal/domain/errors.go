package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrCycle        = errors.New("la categoría no puede ser ancestro de sí misma")
	ErrMaxDepth     = errors.New("profundidad máxima de categorías excedida")
	ErrConflict     = errors.New("conflicto con el estado actual")
)
