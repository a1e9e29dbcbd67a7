// Package pricing casos de uso de cotización: líneas, documentos y validación de cantidades.
package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	domainpricing "github.com/jhoicas/Cotizador-api/internal/domain/pricing"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

// QuoteUseCase cotiza líneas y documentos. El catálogo es opcional (nil = sin enriquecimiento).
type QuoteUseCase struct {
	engine   *domainpricing.Engine
	coercer  domainpricing.Coercer
	items    repository.ItemRepository
	observer DocumentObserver
	log      *logger.Logger
}

// NewQuoteUseCase construye el caso de uso.
func NewQuoteUseCase(
	engine *domainpricing.Engine,
	strict bool,
	items repository.ItemRepository,
	observer DocumentObserver,
	log *logger.Logger,
) *QuoteUseCase {
	if engine == nil {
		engine = domainpricing.NewEngine(domainpricing.DiscountBaseTotal)
	}
	if observer == nil {
		observer = nopObserver{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &QuoteUseCase{
		engine:   engine,
		coercer:  domainpricing.Coercer{Strict: strict},
		items:    items,
		observer: observer,
		log:      log.Component("pricing"),
	}
}

// PriceLine cotiza una línea. En modo estricto un valor no numérico devuelve error (ErrInvalidNumber).
func (uc *QuoteUseCase) PriceLine(ctx context.Context, req dto.LineItemRequest) (*dto.PricedLineResponse, error) {
	item, err := uc.coercer.LineItem(toRawLine(req))
	if err != nil {
		return nil, domainpricing.LineErrors{{Line: 1, Err: err}}
	}
	lines := []entity.LineItem{item}
	if err := uc.fillTaxes(ctx, lines); err != nil {
		return nil, err
	}
	resp := dto.ToPricedLineResponse(uc.engine.PriceLineItem(lines[0]))
	return &resp, nil
}

// PriceDocument cotiza todas las líneas y calcula el resumen con el descuento de documento.
// En modo estricto se reportan los errores de todas las líneas a la vez.
func (uc *QuoteUseCase) PriceDocument(ctx context.Context, req dto.DocumentRequest) (*dto.DocumentResponse, error) {
	lines := make([]entity.LineItem, 0, len(req.Items))
	var lineErrs domainpricing.LineErrors
	for i, raw := range req.Items {
		item, err := uc.coercer.LineItem(toRawLine(raw))
		if err != nil {
			lineErrs = append(lineErrs, domainpricing.LineError{Line: i + 1, Err: err})
			continue
		}
		lines = append(lines, item)
	}
	if len(lineErrs) > 0 {
		return nil, lineErrs
	}

	discount, err := uc.documentDiscount(req.Discount)
	if err != nil {
		return nil, err
	}
	if err := uc.fillTaxes(ctx, lines); err != nil {
		return nil, err
	}

	priced := make([]entity.PricedLineItem, 0, len(lines))
	resp := &dto.DocumentResponse{Items: make([]dto.PricedLineResponse, 0, len(lines))}
	for _, l := range lines {
		p := uc.engine.PriceLineItem(l)
		priced = append(priced, p)
		resp.Items = append(resp.Items, dto.ToPricedLineResponse(p))
	}
	resp.Summary = dto.ToSummaryResponse(uc.engine.SummarizeDocument(priced, discount))

	uc.observer.ObserveDocument(uc.coercer.Strict)
	uc.log.Debug().Int("lines", len(lines)).Str("grand_total", resp.Summary.GrandTotal.String()).Msg("documento cotizado")
	return resp, nil
}

// ValidateQuantities clasifica cada cantidad contra los límites del catálogo y los enviados en la petición.
func (uc *QuoteUseCase) ValidateQuantities(ctx context.Context, req dto.QuantityCheckRequest) (*dto.QuantityCheckResponse, error) {
	codes := make([]string, 0, len(req.Lines))
	for _, l := range req.Lines {
		codes = append(codes, l.ItemCode)
	}
	catalog, err := uc.lookup(ctx, codes)
	if err != nil {
		return nil, err
	}

	resp := &dto.QuantityCheckResponse{Results: make([]dto.QuantityCheckResult, 0, len(req.Lines))}
	var lineErrs domainpricing.LineErrors
	for i, l := range req.Lines {
		qty, err := uc.coercer.Decimal("qty", l.Qty)
		if err != nil {
			lineErrs = append(lineErrs, domainpricing.LineError{Line: i + 1, Err: err})
			continue
		}

		var limits entity.QuantityLimits
		if item, ok := catalog[l.ItemCode]; ok {
			limits = item.Limits()
		}
		overrides := []struct {
			field string
			raw   any
			dst   **decimal.Decimal
		}{
			{"min_order_qty", l.MinOrderQty, &limits.MinOrderQty},
			{"max_order_qty", l.MaxOrderQty, &limits.MaxOrderQty},
			{"available_qty", l.AvailableQty, &limits.AvailableQty},
		}
		for _, o := range overrides {
			d, set, err := uc.optionalDecimal(o.field, o.raw)
			if err != nil {
				lineErrs = append(lineErrs, domainpricing.LineError{Line: i + 1, Err: err})
				continue
			}
			if set {
				*o.dst = d
			}
		}

		result := dto.QuantityCheckResult{Line: i + 1, ItemCode: l.ItemCode, Qty: qty}
		if issue := domainpricing.ValidateQuantity(qty, limits); issue != nil {
			result.Issue = &dto.QuantityIssueResponse{Severity: issue.Severity, Message: issue.Message}
		}
		resp.Results = append(resp.Results, result)
	}
	if len(lineErrs) > 0 {
		return nil, lineErrs
	}
	return resp, nil
}

// optionalDecimal nil o vacío = no enviado. En modo lenient un valor inválido también se ignora.
func (uc *QuoteUseCase) optionalDecimal(field string, raw any) (*decimal.Decimal, bool, error) {
	if raw == nil {
		return nil, false, nil
	}
	if s, ok := raw.(string); ok && s == "" {
		return nil, false, nil
	}
	d, err := domainpricing.Coercer{Strict: true}.Decimal(field, raw)
	if err != nil {
		if uc.coercer.Strict {
			return nil, false, err
		}
		return nil, false, nil
	}
	return &d, true, nil
}

func (uc *QuoteUseCase) documentDiscount(req *dto.DocumentDiscountRequest) (*entity.DocumentDiscount, error) {
	if req == nil {
		return nil, nil
	}
	typ, err := uc.coercer.DiscountType(req.Type)
	if err != nil {
		return nil, err
	}
	value, err := uc.coercer.Decimal("discount.value", req.Value)
	if err != nil {
		return nil, err
	}
	return &entity.DocumentDiscount{Type: typ, Value: value}, nil
}

// fillTaxes completa el desglose de impuestos desde el catálogo en las líneas con código y sin desglose.
func (uc *QuoteUseCase) fillTaxes(ctx context.Context, lines []entity.LineItem) error {
	var codes []string
	for _, l := range lines {
		if l.ItemCode != "" && len(l.TaxBreakup) == 0 {
			codes = append(codes, l.ItemCode)
		}
	}
	catalog, err := uc.lookup(ctx, codes)
	if err != nil {
		return err
	}
	for i := range lines {
		if len(lines[i].TaxBreakup) > 0 {
			continue
		}
		if item, ok := catalog[lines[i].ItemCode]; ok && len(item.TaxBreakup) > 0 {
			lines[i].TaxBreakup = append([]entity.TaxComponent(nil), item.TaxBreakup...)
		}
	}
	return nil
}

func (uc *QuoteUseCase) lookup(ctx context.Context, codes []string) (map[string]*entity.Item, error) {
	if uc.items == nil || len(codes) == 0 {
		return map[string]*entity.Item{}, nil
	}
	catalog, err := uc.items.ListByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("consultar catálogo: %w", err)
	}
	return catalog, nil
}

func toRawLine(req dto.LineItemRequest) domainpricing.RawLineItem {
	raw := domainpricing.RawLineItem{
		ItemCode:      req.ItemCode,
		Quantity:      req.Qty,
		Rate:          req.Rate,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
	}
	for _, tc := range req.TaxBreakup {
		raw.TaxBreakup = append(raw.TaxBreakup, domainpricing.RawTaxComponent{RuleName: tc.RuleName, Rate: tc.Rate})
	}
	return raw
}
