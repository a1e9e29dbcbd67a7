package repository

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// ItemRepository puerto de lectura del catálogo de artículos (DIP).
type ItemRepository interface {
	// ListByCodes devuelve los artículos encontrados indexados por código. Los códigos
	// desconocidos simplemente no aparecen en el mapa.
	ListByCodes(ctx context.Context, codes []string) (map[string]*entity.Item, error)
}
