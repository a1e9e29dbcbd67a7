// Package xlsx lee hojas de Excel como registros para el parser de entradas de stock.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Cotizador-api/internal/domain/stockcsv"
)

// ReadRecords lee la hoja indicada (vacío = primera hoja) y devuelve un registro por fila
// con su número de fila en la hoja. Las celdas se leen con su valor crudo, sin formato de número
// (1200 y no "1,200").
func ReadRecords(r io.Reader, sheet string) ([]stockcsv.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("xlsx sin hojas")
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", sheet, err)
	}
	defer func() { _ = rows.Close() }()

	var records []stockcsv.Record
	line := 0
	for rows.Next() {
		line++
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			records = append(records, stockcsv.Record{Line: line, Err: err})
			continue
		}
		records = append(records, stockcsv.Record{Line: line, Fields: cols})
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", sheet, err)
	}
	return records, nil
}
