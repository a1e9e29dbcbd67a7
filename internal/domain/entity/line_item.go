package entity

import "github.com/shopspring/decimal"

// Tipos de descuento soportados por línea y por documento.
const (
	DiscountPercentage = "percentage"
	DiscountFlat       = "flat"
)

// TaxComponent un componente nombrado del desglose de impuestos (ej. CGST 9%).
type TaxComponent struct {
	RuleName string          `json:"rule_name"`
	Rate     decimal.Decimal `json:"rate"` // porcentaje (18 = 18%)
}

// LineItem línea de cotización, entrada de stock u orden de venta ya normalizada a decimal.
type LineItem struct {
	ItemCode      string
	Quantity      decimal.Decimal
	Rate          decimal.Decimal
	DiscountType  string
	DiscountValue decimal.Decimal
	TaxBreakup    []TaxComponent
}

// PricedLineItem línea con los importes calculados.
// TotalAmount = (Amount - DiscountAmount) + TaxAmount.
type PricedLineItem struct {
	LineItem
	Amount         decimal.Decimal
	DiscountAmount decimal.Decimal
	NetAmount      decimal.Decimal
	TaxRate        decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
}
