package stockentry

import (
	"io"

	"github.com/jhoicas/Cotizador-api/internal/domain/stockcsv"
)

// SheetReader lee una hoja de cálculo como registros tokenizados (adaptador xlsx).
type SheetReader func(r io.Reader, sheet string) ([]stockcsv.Record, error)

// ImportObserver registra métricas de importación.
type ImportObserver interface {
	ObserveImport(format, result string, valid, failed int)
}

type nopObserver struct{}

func (nopObserver) ObserveImport(string, string, int, int) {}
