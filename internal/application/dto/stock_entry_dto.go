package dto

import "github.com/jhoicas/Cotizador-api/internal/domain/entity"

// RowWarning observación no bloqueante sobre una fila válida (artículo desconocido, cantidad fuera de límites).
type RowWarning struct {
	Row      int    `json:"row"`
	ItemCode string `json:"item_code"`
	Message  string `json:"message"`
}

// StockImportResponse resultado de POST /api/stock-entries/import.
// Cada fila de datos aparece en rows o en errors, nunca en ambos.
type StockImportResponse struct {
	ImportID string            `json:"import_id"`
	Format   string            `json:"format"`
	Rows     []entity.StockRow `json:"rows"`
	Errors   []entity.RowError `json:"errors"`
	Warnings []RowWarning      `json:"warnings"`
}
