package entity

import "github.com/shopspring/decimal"

// Severidad de una observación de cantidad.
const (
	SeverityError   = "error"   // viola mínimo/máximo de pedido
	SeverityWarning = "warning" // supera el stock disponible; el llamador decide si bloquea
)

// QuantityLimits límites conocidos para una línea. Nil = sin límite configurado.
type QuantityLimits struct {
	MinOrderQty  *decimal.Decimal
	MaxOrderQty  *decimal.Decimal
	AvailableQty *decimal.Decimal
}

// QuantityIssue resultado de clasificar una cantidad.
type QuantityIssue struct {
	Severity string
	Message  string
}
