package pricing_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
)

func TestCoercer_Lenient_ValoresInvalidosSonCero(t *testing.T) {
	c := pricing.Coercer{}
	for _, raw := range []any{nil, "", "  ", "abc", -3.0, "-1", true, math.NaN(), []int{1}} {
		d, err := c.Decimal("qty", raw)
		require.NoError(t, err, "lenient nunca falla (%v)", raw)
		assert.True(t, d.IsZero(), "%v debe convertirse en 0", raw)
	}
}

func TestCoercer_ConvierteTiposNumericos(t *testing.T) {
	c := pricing.Coercer{Strict: true}
	cases := map[string]any{
		"12.5": "12.5",
		"7":    7,
		"2.25": 2.25,
		"3.10": json.Number("3.10"),
		"9":    int64(9),
		"4":    dec("4"),
		"1.5":  " 1.5 ",
	}
	for expected, raw := range cases {
		d, err := c.Decimal("rate", raw)
		require.NoError(t, err)
		assertDec(t, expected, d, "conversión")
	}
}

func TestCoercer_Strict_NoNumericoEsError(t *testing.T) {
	c := pricing.Coercer{Strict: true}
	_, err := c.Decimal("rate", "diez")
	require.Error(t, err)

	var ce *pricing.CoercionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "rate", ce.Field)
	assert.Equal(t, "diez", ce.Raw)
	assert.ErrorIs(t, err, domain.ErrInvalidNumber)
}

func TestCoercer_Strict_NegativoEsError(t *testing.T) {
	_, err := pricing.Coercer{Strict: true}.Decimal("qty", -2.0)
	assert.ErrorIs(t, err, domain.ErrInvalidNumber)
}

func TestCoercer_Strict_VacioEsCero(t *testing.T) {
	d, err := pricing.Coercer{Strict: true}.Decimal("qty", nil)
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}

func TestCoercer_DiscountType(t *testing.T) {
	lenient := pricing.Coercer{}
	for raw, expected := range map[string]string{
		"":           entity.DiscountPercentage,
		"Percentage": entity.DiscountPercentage,
		" flat ":     entity.DiscountFlat,
		"amount":     entity.DiscountPercentage,
	} {
		got, err := lenient.DiscountType(raw)
		require.NoError(t, err)
		assert.Equal(t, expected, got, "tipo %q", raw)
	}

	_, err := pricing.Coercer{Strict: true}.DiscountType("amount")
	assert.Error(t, err, "en modo estricto un tipo desconocido es error")
}

func TestCoercer_LineItem_AcumulaErrores(t *testing.T) {
	c := pricing.Coercer{Strict: true}
	item, err := c.LineItem(pricing.RawLineItem{
		ItemCode:     " ITM-1 ",
		Quantity:     "x",
		Rate:         "10",
		DiscountType: "bogus",
		TaxBreakup:   []pricing.RawTaxComponent{{RuleName: "GST", Rate: "n/a"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "qty")
	assert.Contains(t, err.Error(), "discount_type")
	assert.Contains(t, err.Error(), "tax_breakup[0].rate")
	assert.Equal(t, "ITM-1", item.ItemCode)
	assertDec(t, "10", item.Rate, "los campos válidos se conservan")
}

func TestCoercer_LineItem_Lenient(t *testing.T) {
	item, err := pricing.Coercer{}.LineItem(pricing.RawLineItem{
		Quantity:      "5",
		Rate:          100.0,
		DiscountValue: "10",
		TaxBreakup:    []pricing.RawTaxComponent{{RuleName: "GST", Rate: 18.0}},
	})
	require.NoError(t, err)

	got := pricing.PriceLineItem(item)
	assertDec(t, "531", got.TotalAmount, "la línea coercionada se valora igual")
}

func TestLineErrors_Unwrap(t *testing.T) {
	err := pricing.LineErrors{{Line: 2, Err: errors.New("qty: valor inválido")}}
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "línea 2")
}
