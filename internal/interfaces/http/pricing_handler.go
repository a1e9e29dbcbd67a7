package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/pricing"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

// PricingHandler cotización de líneas y documentos.
type PricingHandler struct {
	uc  *pricing.QuoteUseCase
	log *logger.Logger
}

// NewPricingHandler construye el handler.
func NewPricingHandler(uc *pricing.QuoteUseCase, log *logger.Logger) *PricingHandler {
	return &PricingHandler{uc: uc, log: log}
}

// PriceLine godoc
// @Summary      Cotizar una línea
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LineItemRequest  true  "qty, rate, discount_type, discount_value, tax_breakup"
// @Success      200   {object}  dto.PricedLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/pricing/line-items [post]
func (h *PricingHandler) PriceLine(c *fiber.Ctx) error {
	var in dto.LineItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.PriceLine(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// PriceDocument godoc
// @Summary      Cotizar un documento
// @Description  Calcula cada línea y el resumen (subtotales, descuento de documento y gran total).
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DocumentRequest  true  "items y descuento opcional"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/pricing/documents [post]
func (h *PricingHandler) PriceDocument(c *fiber.Ctx) error {
	var in dto.DocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.PriceDocument(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CheckQuantities godoc
// @Summary      Validar cantidades
// @Description  Clasifica cada cantidad contra mínimo/máximo de pedido (error) y stock disponible (warning).
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QuantityCheckRequest  true  "líneas con item_code, qty y límites opcionales"
// @Success      200   {object}  dto.QuantityCheckResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/pricing/quantity-checks [post]
func (h *PricingHandler) CheckQuantities(c *fiber.Ctx) error {
	var in dto.QuantityCheckRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ValidateQuantities(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
