package http

import (
	"bytes"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/stockentry"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

// StockEntryHandler importación de entradas de stock.
type StockEntryHandler struct {
	uc       *stockentry.ImportUseCase
	log      *logger.Logger
	maxBytes int64
}

// NewStockEntryHandler construye el handler. maxBytes <= 0 = sin límite propio (aplica el BodyLimit de fiber).
func NewStockEntryHandler(uc *stockentry.ImportUseCase, log *logger.Logger, maxBytes int64) *StockEntryHandler {
	return &StockEntryHandler{uc: uc, log: log, maxBytes: maxBytes}
}

// Import godoc
// @Summary      Importar entrada de stock
// @Description  Acepta multipart (campo file: .csv, .txt o .xlsx; campo sheet opcional) o un cuerpo text/csv.
// @Description  Devuelve las filas válidas, los errores por fila y las advertencias del catálogo.
// @Tags         stock-entries
// @Accept       mpfd
// @Accept       plain
// @Produce      json
// @Param        file      formData  file    false  "archivo a importar"
// @Param        sheet     formData  string  false  "hoja (xlsx); vacío = primera"
// @Param        filename  query     string  false  "nombre del archivo cuando el cuerpo es CSV plano"
// @Success      200  {object}  dto.StockImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Failure      415  {object}  dto.ErrorResponse
// @Router       /api/stock-entries/import [post]
func (h *StockEntryHandler) Import(c *fiber.Ctx) error {
	var in stockentry.ImportInput
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo file requerido"})
		}
		if h.maxBytes > 0 && fh.Size > h.maxBytes {
			return writeError(c, h.log, domain.ErrFileTooLarge)
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, h.log, err)
		}
		defer func() { _ = f.Close() }()

		var r io.Reader = f
		if h.maxBytes > 0 {
			r = io.LimitReader(f, h.maxBytes+1)
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return writeError(c, h.log, err)
		}
		in = stockentry.ImportInput{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Sheet:       c.FormValue("sheet"),
			Data:        data,
		}
	} else {
		in = stockentry.ImportInput{
			Filename:    c.Query("filename"),
			ContentType: c.Get(fiber.HeaderContentType),
			Sheet:       c.Query("sheet"),
			Data:        bytes.Clone(c.Body()),
		}
	}

	out, err := h.uc.Import(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
