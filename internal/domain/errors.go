package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidNumber     = errors.New("valor numérico inválido")
	ErrEmptyFile         = errors.New("archivo vacío")
	ErrUnsupportedFormat = errors.New("formato de archivo no soportado")
	ErrFileTooLarge      = errors.New("archivo demasiado grande")
)
