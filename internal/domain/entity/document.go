package entity

import "github.com/shopspring/decimal"

// DocumentDiscount descuento único a nivel de documento, aplicado después de sumar las líneas.
type DocumentDiscount struct {
	Type  string
	Value decimal.Decimal
}

// DocumentSummary totales agregados del documento (pie de cotización / entrada de stock).
type DocumentSummary struct {
	SubtotalAmount       decimal.Decimal
	SubtotalLineDiscount decimal.Decimal
	SubtotalTax          decimal.Decimal
	SubtotalTotal        decimal.Decimal
	DiscountAmount       decimal.Decimal
	GrandTotal           decimal.Decimal
}
