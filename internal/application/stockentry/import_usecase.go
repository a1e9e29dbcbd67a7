// Package stockentry caso de uso de importación masiva de filas de entrada de stock.
package stockentry

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
	"github.com/jhoicas/Cotizador-api/internal/domain/stockcsv"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

// Formatos de archivo soportados.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Resultados de una importación (etiqueta de métrica).
const (
	ResultOK      = "ok"
	ResultPartial = "partial"
	ResultFailed  = "failed"
)

// MsgUnknownItem advertencia para filas cuyo código no existe en el catálogo.
const MsgUnknownItem = "Unknown item"

// ImportInput archivo recibido. Filename puede venir vacío cuando el cuerpo es CSV plano.
type ImportInput struct {
	Filename    string
	ContentType string
	Sheet       string
	Data        []byte
}

// ImportUseCase parsea el archivo y anota las filas con el catálogo (si está configurado).
type ImportUseCase struct {
	parser   *stockcsv.Parser
	sheets   SheetReader
	items    repository.ItemRepository
	observer ImportObserver
	log      *logger.Logger
	maxBytes int64
}

// NewImportUseCase construye el caso de uso. sheets e items pueden ser nil.
func NewImportUseCase(
	parser *stockcsv.Parser,
	sheets SheetReader,
	items repository.ItemRepository,
	observer ImportObserver,
	log *logger.Logger,
	maxBytes int64,
) *ImportUseCase {
	if parser == nil {
		parser = stockcsv.NewParser(stockcsv.Options{})
	}
	if observer == nil {
		observer = nopObserver{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ImportUseCase{
		parser:   parser,
		sheets:   sheets,
		items:    items,
		observer: observer,
		log:      log.Component("stockentry"),
		maxBytes: maxBytes,
	}
}

// Import valida el archivo, lo parsea y devuelve filas, errores y advertencias.
// Un archivo sin encabezado válido no es un error del caso de uso: se reporta como error de fila 0.
func (uc *ImportUseCase) Import(ctx context.Context, in ImportInput) (*dto.StockImportResponse, error) {
	if len(in.Data) == 0 {
		return nil, domain.ErrEmptyFile
	}
	if uc.maxBytes > 0 && int64(len(in.Data)) > uc.maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	format, err := DetectFormat(in.Filename, in.ContentType)
	if err != nil {
		return nil, err
	}

	var res stockcsv.Result
	switch format {
	case FormatXLSX:
		if uc.sheets == nil {
			return nil, domain.ErrUnsupportedFormat
		}
		records, err := uc.sheets(bytes.NewReader(in.Data), in.Sheet)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		res = uc.parser.ParseRecords(records)
	default:
		res = uc.parser.Parse(stockcsv.DecodeText(in.Data))
	}

	resp := &dto.StockImportResponse{
		ImportID: uuid.New().String(),
		Format:   format,
		Rows:     res.Rows,
		Errors:   res.Errors,
		Warnings: []dto.RowWarning{},
	}
	if len(res.Rows) > 0 {
		resp.Warnings = uc.annotate(ctx, res.Rows)
	}

	result := ResultOK
	switch {
	case res.Failed():
		result = ResultFailed
	case len(res.Errors) > 0:
		result = ResultPartial
	}
	uc.observer.ObserveImport(format, result, len(res.Rows), len(res.Errors))

	uc.log.Info().
		Str("import_id", resp.ImportID).
		Str("format", format).
		Str("result", result).
		Int("rows", len(res.Rows)).
		Int("errors", len(res.Errors)).
		Int("warnings", len(resp.Warnings)).
		Msg("importación de entrada de stock procesada")
	return resp, nil
}

// annotate agrega advertencias desde el catálogo y completa el nombre del artículo si viene vacío.
// Si el catálogo falla la importación sigue sin advertencias.
func (uc *ImportUseCase) annotate(ctx context.Context, rows []entity.StockRow) []dto.RowWarning {
	warnings := []dto.RowWarning{}
	if uc.items == nil {
		return warnings
	}
	codes := make([]string, 0, len(rows))
	for _, r := range rows {
		codes = append(codes, r.ItemCode)
	}
	catalog, err := uc.items.ListByCodes(ctx, codes)
	if err != nil {
		uc.log.Warn().Err(err).Msg("catálogo no disponible, importación sin anotaciones")
		return warnings
	}

	for i := range rows {
		row := &rows[i]
		item, ok := catalog[row.ItemCode]
		if !ok {
			warnings = append(warnings, dto.RowWarning{Row: row.RowNumber, ItemCode: row.ItemCode, Message: MsgUnknownItem})
			continue
		}
		if row.ItemName == "" {
			row.ItemName = item.Name
		}
		if issue := pricing.ValidateQuantity(row.Quantity, item.Limits()); issue != nil {
			warnings = append(warnings, dto.RowWarning{Row: row.RowNumber, ItemCode: row.ItemCode, Message: issue.Message})
		}
	}
	return warnings
}

// DetectFormat decide el formato por extensión; sin extensión usa el content type.
func DetectFormat(filename, contentType string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case "":
	default:
		return "", domain.ErrUnsupportedFormat
	}

	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch ct {
	case "", "text/csv", "text/plain", "application/csv":
		return FormatCSV, nil
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return FormatXLSX, nil
	}
	return "", domain.ErrUnsupportedFormat
}
