package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// Los campos numéricos de las peticiones son `any`: el formulario puede mandar
// números, strings o nada, y la coerción (lenient o strict) decide qué hacer.

// TaxComponentRequest componente de impuesto de una línea.
type TaxComponentRequest struct {
	RuleName string `json:"rule_name"`
	Rate     any    `json:"rate"`
}

// LineItemRequest body para POST /api/pricing/line-items (y cada línea de un documento).
type LineItemRequest struct {
	ItemCode      string                `json:"item_code,omitempty"`
	Qty           any                   `json:"qty"`
	Rate          any                   `json:"rate"`
	DiscountType  string                `json:"discount_type,omitempty"`
	DiscountValue any                   `json:"discount_value,omitempty"`
	TaxBreakup    []TaxComponentRequest `json:"tax_breakup,omitempty"`
}

// PricedLineResponse línea con importes calculados.
type PricedLineResponse struct {
	ItemCode       string                `json:"item_code,omitempty"`
	Qty            decimal.Decimal       `json:"qty"`
	Rate           decimal.Decimal       `json:"rate"`
	DiscountType   string                `json:"discount_type"`
	DiscountValue  decimal.Decimal       `json:"discount_value"`
	TaxBreakup     []entity.TaxComponent `json:"tax_breakup"`
	Amount         decimal.Decimal       `json:"amount"`
	DiscountAmount decimal.Decimal       `json:"discount_amount"`
	NetAmount      decimal.Decimal       `json:"net_amount"`
	TaxRate        decimal.Decimal       `json:"tax_rate"`
	TaxAmount      decimal.Decimal       `json:"tax_amount"`
	TotalAmount    decimal.Decimal       `json:"total_amount"`
}

// DocumentDiscountRequest descuento a nivel de documento.
type DocumentDiscountRequest struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// DocumentRequest body para POST /api/pricing/documents.
type DocumentRequest struct {
	Items    []LineItemRequest        `json:"items"`
	Discount *DocumentDiscountRequest `json:"discount,omitempty"`
}

// SummaryResponse totales del documento.
type SummaryResponse struct {
	SubtotalAmount       decimal.Decimal `json:"subtotal_amount"`
	SubtotalLineDiscount decimal.Decimal `json:"subtotal_line_discount"`
	SubtotalTax          decimal.Decimal `json:"subtotal_tax"`
	SubtotalTotal        decimal.Decimal `json:"subtotal_total"`
	DiscountAmount       decimal.Decimal `json:"discount_amount"`
	GrandTotal           decimal.Decimal `json:"grand_total"`
}

// DocumentResponse líneas cotizadas y resumen.
type DocumentResponse struct {
	Items   []PricedLineResponse `json:"items"`
	Summary SummaryResponse      `json:"summary"`
}

// QuantityCheckLine cantidad a validar. Los límites enviados sobrescriben los del catálogo.
type QuantityCheckLine struct {
	ItemCode     string `json:"item_code,omitempty"`
	Qty          any    `json:"qty"`
	MinOrderQty  any    `json:"min_order_qty,omitempty"`
	MaxOrderQty  any    `json:"max_order_qty,omitempty"`
	AvailableQty any    `json:"available_qty,omitempty"`
}

// QuantityCheckRequest body para POST /api/pricing/quantity-checks.
type QuantityCheckRequest struct {
	Lines []QuantityCheckLine `json:"lines"`
}

// QuantityIssueResponse observación sobre una cantidad.
type QuantityIssueResponse struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// QuantityCheckResult resultado por línea (Line 1-based). Issue nil = cantidad aceptable.
type QuantityCheckResult struct {
	Line     int                    `json:"line"`
	ItemCode string                 `json:"item_code,omitempty"`
	Qty      decimal.Decimal        `json:"qty"`
	Issue    *QuantityIssueResponse `json:"issue"`
}

// QuantityCheckResponse resultados en el orden de la petición.
type QuantityCheckResponse struct {
	Results []QuantityCheckResult `json:"results"`
}

// ToPricedLineResponse mapea una línea cotizada.
func ToPricedLineResponse(p entity.PricedLineItem) PricedLineResponse {
	breakup := p.TaxBreakup
	if breakup == nil {
		breakup = []entity.TaxComponent{}
	}
	return PricedLineResponse{
		ItemCode:       p.ItemCode,
		Qty:            p.Quantity,
		Rate:           p.Rate,
		DiscountType:   p.DiscountType,
		DiscountValue:  p.DiscountValue,
		TaxBreakup:     breakup,
		Amount:         p.Amount,
		DiscountAmount: p.DiscountAmount,
		NetAmount:      p.NetAmount,
		TaxRate:        p.TaxRate,
		TaxAmount:      p.TaxAmount,
		TotalAmount:    p.TotalAmount,
	}
}

// ToSummaryResponse mapea el resumen del documento.
func ToSummaryResponse(s entity.DocumentSummary) SummaryResponse {
	return SummaryResponse{
		SubtotalAmount:       s.SubtotalAmount,
		SubtotalLineDiscount: s.SubtotalLineDiscount,
		SubtotalTax:          s.SubtotalTax,
		SubtotalTotal:        s.SubtotalTotal,
		DiscountAmount:       s.DiscountAmount,
		GrandTotal:           s.GrandTotal,
	}
}
