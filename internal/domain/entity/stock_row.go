package entity

import "github.com/shopspring/decimal"

// StockRow fila válida de una importación de entrada de stock.
type StockRow struct {
	ItemCode        string          `json:"item_code"`
	ItemName        string          `json:"item_name,omitempty"`
	Description     string          `json:"description,omitempty"`
	Quantity        decimal.Decimal `json:"qty"`
	UOM             string          `json:"uom"`
	BasicRate       decimal.Decimal `json:"basic_rate"`
	Amount          decimal.Decimal `json:"amount"`
	SourceWarehouse string          `json:"s_warehouse,omitempty"`
	TargetWarehouse string          `json:"t_warehouse,omitempty"`
	BatchNo         string          `json:"batch_no,omitempty"`
	SortOrder       int             `json:"sort_order"`
	RowNumber       int             `json:"row"`
}

// RowError error de validación de una fila. Row 0 = error estructural del archivo.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}
