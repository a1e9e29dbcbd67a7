// Package stockcsv importa filas de entrada de stock desde CSV (o registros ya tokenizados).
// El parser nunca falla: devuelve las filas válidas junto a los errores por fila.
package stockcsv

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// Mensajes de error globales (fila 0).
const (
	MsgTooFewLines = "CSV must have a header row and at least one data row"
	MsgBadHeader   = "CSV header row could not be read"
	MsgMalformed   = "Malformed row"
)

// DefaultUOM unidad por defecto cuando la columna falta o viene vacía.
const DefaultUOM = "pcs"

// Options configuración del parser. El valor cero es válido.
type Options struct {
	DefaultUOM string
	MaxRows    int  // 0 = sin límite
	StrictRate bool // tarifa no numérica o negativa = error de fila en lugar de 0
	Aliases    map[Field][]string
}

// Record una línea ya tokenizada. Line es el número de línea (1-based) en el archivo de entrada.
type Record struct {
	Line   int
	Fields []string
	Err    error
}

// Result filas válidas (en orden de entrada) y errores. Una fila está en Rows o en Errors, nunca en ambos.
type Result struct {
	Rows   []entity.StockRow `json:"rows"`
	Errors []entity.RowError `json:"errors"`
}

// Failed indica un error estructural: ninguna fila fue procesada.
func (r Result) Failed() bool {
	return len(r.Rows) == 0 && len(r.Errors) == 1 && r.Errors[0].Row == 0
}

// Parser parser de filas de entrada de stock. Sin estado mutable: seguro para uso concurrente.
type Parser struct {
	opts    Options
	lookup  map[string]Field
	aliases map[Field][]string
}

// NewParser construye el parser con la tabla de alias indicada (o DefaultAliases).
func NewParser(opts Options) *Parser {
	if opts.DefaultUOM == "" {
		opts.DefaultUOM = DefaultUOM
	}
	aliases := opts.Aliases
	if aliases == nil {
		aliases = DefaultAliases
	}
	return &Parser{opts: opts, lookup: buildLookup(aliases), aliases: aliases}
}

// Parse interpreta texto CSV con fila de encabezado.
func Parse(text string) Result {
	return NewParser(Options{}).Parse(text)
}

// Parse tokeniza el texto (comillas y comas dentro de campos soportadas) y procesa los registros.
func (p *Parser) Parse(text string) Result {
	return p.ParseRecords(Tokenize(text))
}

// Tokenize separa el texto en registros, uno por línea física, con su número de línea.
// Las líneas vacías se omiten. Un campo entre comillas no puede abarcar varias líneas:
// una comilla sin cerrar deja esa línea como registro con Err y no afecta a las siguientes.
func Tokenize(text string) []Record {
	text = strings.TrimPrefix(text, "\ufeff")

	var records []Record
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		r := csv.NewReader(strings.NewReader(line))
		r.FieldsPerRecord = -1
		r.TrimLeadingSpace = true

		fields, err := r.Read()
		if err != nil {
			records = append(records, Record{Line: i + 1, Err: err})
			continue
		}
		records = append(records, Record{Line: i + 1, Fields: fields})
	}
	return records
}

// ParseRecords valida encabezado y filas.
// Start -> encabezado validado -> (fila válida | error de fila)* -> resultado.
func (p *Parser) ParseRecords(records []Record) Result {
	records = nonBlank(records)
	if len(records) < 2 {
		return globalError(MsgTooFewLines)
	}
	header := records[0]
	if header.Err != nil {
		return globalError(MsgBadHeader)
	}

	cols := resolveColumns(header.Fields, p.lookup)
	for _, f := range requiredFields {
		if _, ok := cols[f]; !ok {
			return globalError(requirementText(p.aliases))
		}
	}

	data := records[1:]
	if p.opts.MaxRows > 0 && len(data) > p.opts.MaxRows {
		return globalError(fmt.Sprintf("CSV exceeds the maximum of %d data rows", p.opts.MaxRows))
	}

	res := Result{Rows: []entity.StockRow{}, Errors: []entity.RowError{}}
	for _, rec := range data {
		row, msg := p.parseRow(rec, cols)
		if msg != "" {
			res.Errors = append(res.Errors, entity.RowError{Row: rec.Line, Message: msg})
			continue
		}
		row.SortOrder = len(res.Rows) + 1
		res.Rows = append(res.Rows, row)
	}
	return res
}

// parseRow devuelve la fila o el mensaje de error de la fila.
func (p *Parser) parseRow(rec Record, cols map[Field]column) (entity.StockRow, string) {
	if rec.Err != nil {
		return entity.StockRow{}, MsgMalformed
	}
	get := func(f Field) string {
		c, ok := cols[f]
		if !ok || c.index >= len(rec.Fields) {
			return ""
		}
		return strings.TrimSpace(rec.Fields[c.index])
	}

	itemCode := get(FieldItemCode)
	if itemCode == "" {
		return entity.StockRow{}, "Missing " + cols[FieldItemCode].label
	}

	rawQty := get(FieldQuantity)
	qty, err := decimal.NewFromString(rawQty)
	if err != nil || !qty.IsPositive() {
		return entity.StockRow{}, invalid(cols[FieldQuantity].label, rawQty)
	}

	rate := decimal.Zero
	if rawRate := get(FieldBasicRate); rawRate != "" {
		r, err := decimal.NewFromString(rawRate)
		switch {
		case err == nil && !r.IsNegative():
			rate = r
		case p.opts.StrictRate:
			return entity.StockRow{}, invalid(cols[FieldBasicRate].label, rawRate)
		}
	}

	uom := get(FieldUOM)
	if uom == "" {
		uom = p.opts.DefaultUOM
	}

	return entity.StockRow{
		ItemCode:        itemCode,
		ItemName:        get(FieldItemName),
		Description:     get(FieldDescription),
		Quantity:        qty,
		UOM:             uom,
		BasicRate:       rate,
		Amount:          qty.Mul(rate),
		SourceWarehouse: get(FieldSourceWarehouse),
		TargetWarehouse: get(FieldTargetWarehouse),
		BatchNo:         get(FieldBatchNo),
		RowNumber:       rec.Line,
	}, ""
}

func invalid(label, raw string) string {
	return fmt.Sprintf("Invalid %s %q", label, raw)
}

func globalError(msg string) Result {
	return Result{
		Rows:   []entity.StockRow{},
		Errors: []entity.RowError{{Row: 0, Message: msg}},
	}
}

// nonBlank descarta registros sin ningún valor (líneas en blanco o solo comas/espacios).
func nonBlank(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Err != nil {
			out = append(out, r)
			continue
		}
		for _, f := range r.Fields {
			if strings.TrimSpace(f) != "" {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
