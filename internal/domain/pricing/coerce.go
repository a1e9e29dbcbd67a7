package pricing

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// CoercionError valor no numérico o negativo en modo estricto.
type CoercionError struct {
	Field string
	Raw   string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("%s: valor inválido %q", e.Field, e.Raw)
}

func (e *CoercionError) Unwrap() error { return domain.ErrInvalidNumber }

// LineError errores de coerción de una línea (índice 1-based).
type LineError struct {
	Line int
	Err  error
}

// LineErrors agrupa los errores de todas las líneas de un documento.
type LineErrors []LineError

func (e LineErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, le := range e {
		parts = append(parts, fmt.Sprintf("línea %d: %v", le.Line, le.Err))
	}
	return strings.Join(parts, "; ")
}

func (e LineErrors) Unwrap() error { return domain.ErrInvalidInput }

// RawTaxComponent componente de impuesto tal como llega del formulario.
type RawTaxComponent struct {
	RuleName string
	Rate     any
}

// RawLineItem línea sin normalizar: los numéricos pueden ser nil, string, float64, json.Number...
type RawLineItem struct {
	ItemCode      string
	Quantity      any
	Rate          any
	DiscountType  string
	DiscountValue any
	TaxBreakup    []RawTaxComponent
}

// Coercer convierte valores crudos a decimal.
// Lenient (Strict=false): faltante, vacío, no numérico o negativo -> 0.
// Strict: faltante o vacío -> 0; no numérico o negativo -> *CoercionError.
type Coercer struct {
	Strict bool
}

// Decimal convierte un valor crudo a un decimal no negativo.
func (c Coercer) Decimal(field string, raw any) (decimal.Decimal, error) {
	d, ok, blank := parseRaw(raw)
	if blank {
		return decimal.Zero, nil
	}
	if !ok || d.IsNegative() {
		if c.Strict {
			return decimal.Zero, &CoercionError{Field: field, Raw: rawString(raw)}
		}
		return decimal.Zero, nil
	}
	return d, nil
}

// DiscountType normaliza el tipo de descuento. Vacío = percentage.
func (c Coercer) DiscountType(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", entity.DiscountPercentage:
		return entity.DiscountPercentage, nil
	case entity.DiscountFlat:
		return entity.DiscountFlat, nil
	}
	if c.Strict {
		return "", &CoercionError{Field: "discount_type", Raw: raw}
	}
	return entity.DiscountPercentage, nil
}

// LineItem normaliza una línea completa. En modo estricto acumula todos los campos inválidos.
func (c Coercer) LineItem(raw RawLineItem) (entity.LineItem, error) {
	var errs []error
	num := func(field string, v any) decimal.Decimal {
		d, err := c.Decimal(field, v)
		if err != nil {
			errs = append(errs, err)
		}
		return d
	}

	item := entity.LineItem{
		ItemCode:      strings.TrimSpace(raw.ItemCode),
		Quantity:      num("qty", raw.Quantity),
		Rate:          num("rate", raw.Rate),
		DiscountValue: num("discount_value", raw.DiscountValue),
	}
	dt, err := c.DiscountType(raw.DiscountType)
	if err != nil {
		errs = append(errs, err)
	}
	item.DiscountType = dt

	if len(raw.TaxBreakup) > 0 {
		item.TaxBreakup = make([]entity.TaxComponent, 0, len(raw.TaxBreakup))
		for i, tc := range raw.TaxBreakup {
			item.TaxBreakup = append(item.TaxBreakup, entity.TaxComponent{
				RuleName: tc.RuleName,
				Rate:     num(fmt.Sprintf("tax_breakup[%d].rate", i), tc.Rate),
			})
		}
	}
	return item, errors.Join(errs...)
}

// parseRaw devuelve (valor, parseable, vacío).
func parseRaw(raw any) (decimal.Decimal, bool, bool) {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero, false, true
	case decimal.Decimal:
		return v, true, false
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, false, true
		}
		return *v, true, false
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.Zero, false, true
		}
		d, err := decimal.NewFromString(s)
		return d, err == nil, false
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, err == nil, false
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, false, false
		}
		return decimal.NewFromFloat(v), true, false
	case float32:
		return parseRaw(float64(v))
	case int:
		return decimal.NewFromInt(int64(v)), true, false
	case int64:
		return decimal.NewFromInt(v), true, false
	}
	return decimal.Zero, false, false
}

func rawString(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprint(raw)
}
