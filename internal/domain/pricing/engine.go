// Package pricing calcula importes de línea (monto, descuento, impuesto, total) y los
// totales del documento. Es puro: sin I/O ni estado compartido, seguro para uso concurrente.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// Base sobre la que se calcula el descuento de documento.
const (
	DiscountBaseTotal = "total" // subtotal con impuestos (SubtotalTotal)
	DiscountBaseNet   = "net"   // subtotal neto de descuentos de línea, antes de impuestos
)

var hundred = decimal.NewFromInt(100)

// Engine motor de precios. El valor cero usa DiscountBaseTotal.
type Engine struct {
	DiscountBase string
}

// NewEngine construye el motor; bases desconocidas caen en DiscountBaseTotal.
func NewEngine(discountBase string) *Engine {
	if discountBase != DiscountBaseNet {
		discountBase = DiscountBaseTotal
	}
	return &Engine{DiscountBase: discountBase}
}

var defaultEngine = NewEngine(DiscountBaseTotal)

// Round2 redondea a 2 decimales (mitad hacia arriba para importes no negativos).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// PriceLineItem calcula los importes de una línea. Nunca falla.
//
//	Amount         = Quantity * Rate
//	DiscountAmount = round2(Amount * DiscountValue / 100) | min(DiscountValue, Amount)
//	TaxAmount      = round2((Amount - DiscountAmount) * TaxRate / 100)
//	TotalAmount    = round2(Amount - DiscountAmount + TaxAmount)
func PriceLineItem(item entity.LineItem) entity.PricedLineItem {
	return defaultEngine.PriceLineItem(item)
}

// PriceLineItem versión configurable de la función PriceLineItem del paquete (mismas fórmulas por línea).
func (e *Engine) PriceLineItem(item entity.LineItem) entity.PricedLineItem {
	amount := item.Quantity.Mul(item.Rate)
	discount := lineDiscount(amount, item.DiscountType, item.DiscountValue)
	net := amount.Sub(discount)
	taxRate := TaxRate(item.TaxBreakup)
	tax := Round2(net.Mul(taxRate).Div(hundred))

	return entity.PricedLineItem{
		LineItem:       item,
		Amount:         amount,
		DiscountAmount: discount,
		NetAmount:      net,
		TaxRate:        taxRate,
		TaxAmount:      tax,
		TotalAmount:    Round2(net.Add(tax)),
	}
}

// TaxRate suma las tasas del desglose (0 si no hay desglose).
func TaxRate(breakup []entity.TaxComponent) decimal.Decimal {
	rate := decimal.Zero
	for _, c := range breakup {
		rate = rate.Add(c.Rate)
	}
	return rate
}

// lineDiscount nunca supera el monto de la línea.
func lineDiscount(amount decimal.Decimal, discountType string, value decimal.Decimal) decimal.Decimal {
	if !value.IsPositive() {
		return decimal.Zero
	}
	var discount decimal.Decimal
	if discountType == entity.DiscountFlat {
		discount = Round2(value)
	} else {
		discount = Round2(amount.Mul(value).Div(hundred))
	}
	return decimal.Min(discount, amount)
}

// SummarizeDocument agrega las líneas y aplica el descuento de documento sobre SubtotalTotal.
func SummarizeDocument(items []entity.PricedLineItem, discount *entity.DocumentDiscount) entity.DocumentSummary {
	return defaultEngine.SummarizeDocument(items, discount)
}

// SummarizeDocument suma las líneas y después aplica el descuento de documento (una sola vez).
// El descuento de documento no altera las cifras por línea. Lista vacía = resumen en cero.
func (e *Engine) SummarizeDocument(items []entity.PricedLineItem, discount *entity.DocumentDiscount) entity.DocumentSummary {
	var s entity.DocumentSummary
	for _, it := range items {
		s.SubtotalAmount = s.SubtotalAmount.Add(it.Amount)
		s.SubtotalLineDiscount = s.SubtotalLineDiscount.Add(it.DiscountAmount)
		s.SubtotalTax = s.SubtotalTax.Add(it.TaxAmount)
		s.SubtotalTotal = s.SubtotalTotal.Add(it.TotalAmount)
	}

	base := s.SubtotalTotal
	if e.DiscountBase == DiscountBaseNet {
		base = s.SubtotalAmount.Sub(s.SubtotalLineDiscount)
	}
	s.DiscountAmount = documentDiscount(base, discount)
	s.GrandTotal = Round2(s.SubtotalTotal.Sub(s.DiscountAmount))
	return s
}

func documentDiscount(base decimal.Decimal, d *entity.DocumentDiscount) decimal.Decimal {
	if d == nil || !d.Value.IsPositive() {
		return decimal.Zero
	}
	if d.Type == entity.DiscountFlat {
		return decimal.Min(Round2(d.Value), base)
	}
	return Round2(base.Mul(d.Value).Div(hundred))
}
