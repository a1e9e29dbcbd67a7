package entity

import "github.com/shopspring/decimal"

// Item artículo del catálogo (solo lectura) usado para enriquecer líneas.
type Item struct {
	Code         string
	Name         string
	UOM          string
	StandardRate decimal.Decimal
	MinOrderQty  *decimal.Decimal
	MaxOrderQty  *decimal.Decimal
	AvailableQty *decimal.Decimal
	TaxBreakup   []TaxComponent
}

// Limits devuelve los límites de cantidad del artículo.
func (i *Item) Limits() QuantityLimits {
	return QuantityLimits{
		MinOrderQty:  i.MinOrderQty,
		MaxOrderQty:  i.MaxOrderQty,
		AvailableQty: i.AvailableQty,
	}
}
