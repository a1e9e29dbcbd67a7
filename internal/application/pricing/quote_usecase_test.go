package pricing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/pricing"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	domainpricing "github.com/jhoicas/Cotizador-api/internal/domain/pricing"
	"github.com/jhoicas/Cotizador-api/internal/mocks"
)

type countingObserver struct{ strict, lenient int }

func (o *countingObserver) ObserveDocument(strict bool) {
	if strict {
		o.strict++
		return
	}
	o.lenient++
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s: esperado %s, obtenido %s", msg, want, got)
}

func TestPriceLine_Lenient(t *testing.T) {
	uc := pricing.NewQuoteUseCase(nil, false, nil, nil, nil)

	resp, err := uc.PriceLine(context.Background(), dto.LineItemRequest{
		Qty:           "10",
		Rate:          100.0,
		DiscountType:  "percentage",
		DiscountValue: "10",
		TaxBreakup: []dto.TaxComponentRequest{
			{RuleName: "CGST", Rate: 9.0},
			{RuleName: "SGST", Rate: "9"},
		},
	})
	require.NoError(t, err)
	assertDec(t, "1000", resp.Amount, "amount")
	assertDec(t, "100", resp.DiscountAmount, "descuento")
	assertDec(t, "162", resp.TaxAmount, "impuesto")
	assertDec(t, "1062", resp.TotalAmount, "total")
}

func TestPriceLine_LenientValoresInvalidosSonCero(t *testing.T) {
	uc := pricing.NewQuoteUseCase(nil, false, nil, nil, nil)

	resp, err := uc.PriceLine(context.Background(), dto.LineItemRequest{Qty: "abc", Rate: 50.0})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.IsZero())
	assert.Equal(t, entity.DiscountPercentage, resp.DiscountType)
}

func TestPriceLine_StrictRechazaNoNumerico(t *testing.T) {
	uc := pricing.NewQuoteUseCase(nil, true, nil, nil, nil)

	_, err := uc.PriceLine(context.Background(), dto.LineItemRequest{Qty: "abc", Rate: "-1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "qty")
	assert.Contains(t, err.Error(), "rate")
}

func TestPriceLine_CompletaImpuestosDesdeCatalogo(t *testing.T) {
	repo := new(mocks.MockItemRepo)
	repo.On("ListByCodes", mock.Anything, []string{"SKU-1"}).Return(map[string]*entity.Item{
		"SKU-1": {Code: "SKU-1", TaxBreakup: []entity.TaxComponent{{RuleName: "IVA", Rate: dec("19")}}},
	}, nil)
	uc := pricing.NewQuoteUseCase(nil, false, repo, nil, nil)

	resp, err := uc.PriceLine(context.Background(), dto.LineItemRequest{ItemCode: "SKU-1", Qty: 2, Rate: 50})
	require.NoError(t, err)
	assertDec(t, "19", resp.TaxRate, "tasa del catálogo")
	assertDec(t, "119", resp.TotalAmount, "total")
	require.Len(t, resp.TaxBreakup, 1)
	assert.Equal(t, "IVA", resp.TaxBreakup[0].RuleName)
	repo.AssertExpectations(t)
}

func TestPriceLine_DesgloseExplicitoNoConsultaCatalogo(t *testing.T) {
	repo := new(mocks.MockItemRepo)
	uc := pricing.NewQuoteUseCase(nil, false, repo, nil, nil)

	resp, err := uc.PriceLine(context.Background(), dto.LineItemRequest{
		ItemCode:   "SKU-1",
		Qty:        1,
		Rate:       100,
		TaxBreakup: []dto.TaxComponentRequest{{RuleName: "IVA", Rate: 5}},
	})
	require.NoError(t, err)
	assertDec(t, "105", resp.TotalAmount, "total")
	repo.AssertNotCalled(t, "ListByCodes", mock.Anything, mock.Anything)
}

func TestPriceLine_ErrorDeCatalogo(t *testing.T) {
	repo := new(mocks.MockItemRepo)
	repo.On("ListByCodes", mock.Anything, mock.Anything).Return(nil, errors.New("conexión rechazada"))
	uc := pricing.NewQuoteUseCase(nil, false, repo, nil, nil)

	_, err := uc.PriceLine(context.Background(), dto.LineItemRequest{ItemCode: "SKU-1", Qty: 1, Rate: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catálogo")
}

func TestPriceDocument_ConDescuento(t *testing.T) {
	obs := &countingObserver{}
	uc := pricing.NewQuoteUseCase(nil, false, nil, obs, nil)

	resp, err := uc.PriceDocument(context.Background(), dto.DocumentRequest{
		Items: []dto.LineItemRequest{
			{Qty: 2, Rate: 100, TaxBreakup: []dto.TaxComponentRequest{{RuleName: "GST", Rate: 10}}},
			{Qty: 1, Rate: 50, DiscountType: "flat", DiscountValue: 10},
		},
		Discount: &dto.DocumentDiscountRequest{Type: "percentage", Value: "10"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assertDec(t, "250", resp.Summary.SubtotalAmount, "subtotal")
	assertDec(t, "10", resp.Summary.SubtotalLineDiscount, "descuento de líneas")
	assertDec(t, "20", resp.Summary.SubtotalTax, "impuestos")
	assertDec(t, "260", resp.Summary.SubtotalTotal, "subtotal total")
	assertDec(t, "26", resp.Summary.DiscountAmount, "descuento de documento")
	assertDec(t, "234", resp.Summary.GrandTotal, "gran total")
	assert.Equal(t, 1, obs.lenient)
}

func TestPriceDocument_BaseNeta(t *testing.T) {
	uc := pricing.NewQuoteUseCase(domainpricing.NewEngine(domainpricing.DiscountBaseNet), false, nil, nil, nil)

	resp, err := uc.PriceDocument(context.Background(), dto.DocumentRequest{
		Items:    []dto.LineItemRequest{{Qty: 1, Rate: 100, TaxBreakup: []dto.TaxComponentRequest{{RuleName: "GST", Rate: 10}}}},
		Discount: &dto.DocumentDiscountRequest{Type: "percentage", Value: 10},
	})
	require.NoError(t, err)
	assertDec(t, "10", resp.Summary.DiscountAmount, "10% sobre el neto")
	assertDec(t, "100", resp.Summary.GrandTotal, "110 - 10")
}

func TestPriceDocument_SinLineas(t *testing.T) {
	uc := pricing.NewQuoteUseCase(nil, false, nil, nil, nil)

	resp, err := uc.PriceDocument(context.Background(), dto.DocumentRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.Summary.GrandTotal.IsZero())
}

func TestPriceDocument_StrictReportaTodasLasLineas(t *testing.T) {
	obs := &countingObserver{}
	uc := pricing.NewQuoteUseCase(nil, true, nil, obs, nil)

	_, err := uc.PriceDocument(context.Background(), dto.DocumentRequest{
		Items: []dto.LineItemRequest{
			{Qty: "x", Rate: 1},
			{Qty: 1, Rate: 1},
			{Qty: 1, Rate: 1, DiscountType: "bogus"},
		},
	})
	var lineErrs domainpricing.LineErrors
	require.ErrorAs(t, err, &lineErrs)
	require.Len(t, lineErrs, 2)
	assert.Equal(t, 1, lineErrs[0].Line)
	assert.Equal(t, 3, lineErrs[1].Line)
	assert.Zero(t, obs.strict, "un documento rechazado no se cuenta")
}

func TestPriceDocument_StrictDescuentoInvalido(t *testing.T) {
	uc := pricing.NewQuoteUseCase(nil, true, nil, nil, nil)

	_, err := uc.PriceDocument(context.Background(), dto.DocumentRequest{
		Items:    []dto.LineItemRequest{{Qty: 1, Rate: 1}},
		Discount: &dto.DocumentDiscountRequest{Type: "flat", Value: "mucho"},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidNumber))
}

func TestValidateQuantities_CatalogoYSobrescrituras(t *testing.T) {
	repo := new(mocks.MockItemRepo)
	repo.On("ListByCodes", mock.Anything, []string{"A", "B", "C"}).Return(map[string]*entity.Item{
		"A": {Code: "A", MinOrderQty: decPtr("5")},
		"B": {Code: "B", MaxOrderQty: decPtr("10"), AvailableQty: decPtr("3")},
		"C": {Code: "C", AvailableQty: decPtr("100")},
	}, nil)
	uc := pricing.NewQuoteUseCase(nil, false, repo, nil, nil)

	resp, err := uc.ValidateQuantities(context.Background(), dto.QuantityCheckRequest{Lines: []dto.QuantityCheckLine{
		{ItemCode: "A", Qty: 2},
		{ItemCode: "B", Qty: "4"},
		{ItemCode: "C", Qty: 50, AvailableQty: "20"},
	}})
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)

	assert.Equal(t, &dto.QuantityIssueResponse{Severity: entity.SeverityError, Message: "Below min (5)"}, resp.Results[0].Issue)
	assert.Equal(t, &dto.QuantityIssueResponse{Severity: entity.SeverityWarning, Message: "Exceeds available (3)"}, resp.Results[1].Issue)
	assert.Equal(t, &dto.QuantityIssueResponse{Severity: entity.SeverityWarning, Message: "Exceeds available (20)"}, resp.Results[2].Issue)
	assert.Equal(t, 3, resp.Results[2].Line)
}

func TestValidateQuantities_SinCatalogo(t *testing.T) {
	uc := pricing.NewQuoteUseCase(nil, false, nil, nil, nil)

	resp, err := uc.ValidateQuantities(context.Background(), dto.QuantityCheckRequest{Lines: []dto.QuantityCheckLine{
		{Qty: 5},
		{Qty: 11, MaxOrderQty: 10},
		{Qty: 1, MinOrderQty: "no-num"},
	}})
	require.NoError(t, err)
	assert.Nil(t, resp.Results[0].Issue)
	assert.Equal(t, "Exceeds max (10)", resp.Results[1].Issue.Message)
	assert.Nil(t, resp.Results[2].Issue, "en modo lenient el límite inválido se ignora")
}

func TestValidateQuantities_StrictLimiteInvalido(t *testing.T) {
	uc := pricing.NewQuoteUseCase(nil, true, nil, nil, nil)

	_, err := uc.ValidateQuantities(context.Background(), dto.QuantityCheckRequest{Lines: []dto.QuantityCheckLine{
		{Qty: 1, MinOrderQty: "no-num"},
	}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
