package stockcsv

import "strings"

// Field columna canónica de una fila de entrada de stock.
type Field string

const (
	FieldItemCode        Field = "item_code"
	FieldQuantity        Field = "qty"
	FieldUOM             Field = "uom"
	FieldBasicRate       Field = "basic_rate"
	FieldItemName        Field = "item_name"
	FieldDescription     Field = "description"
	FieldSourceWarehouse Field = "s_warehouse"
	FieldTargetWarehouse Field = "t_warehouse"
	FieldBatchNo         Field = "batch_no"
)

// DefaultAliases cubre las dos convenciones de encabezado conocidas
// (item_id/qty/basic_rate y Item Code/Quantity/Basic Rate) más columnas descriptivas opcionales.
// La comparación ignora mayúsculas, espacios repetidos, guiones y guiones bajos.
var DefaultAliases = map[Field][]string{
	FieldItemCode:        {"item_id", "Item Code", "item", "sku"},
	FieldQuantity:        {"qty", "Quantity"},
	FieldUOM:             {"uom", "Unit", "Stock UOM"},
	FieldBasicRate:       {"basic_rate", "Basic Rate", "rate", "Valuation Rate"},
	FieldItemName:        {"item_name", "Item Name"},
	FieldDescription:     {"description"},
	FieldSourceWarehouse: {"s_warehouse", "Source Warehouse", "From Warehouse"},
	FieldTargetWarehouse: {"t_warehouse", "Target Warehouse", "To Warehouse"},
	FieldBatchNo:         {"batch_no", "Batch No", "batch"},
}

var requiredFields = []Field{FieldItemCode, FieldQuantity}

// column posición y etiqueta (tal como viene en el archivo) de un campo resuelto.
type column struct {
	index int
	label string
}

// normalizeHeader "Item_Code " -> "item code".
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// buildLookup invierte la tabla de alias: encabezado normalizado -> campo.
func buildLookup(aliases map[Field][]string) map[string]Field {
	lookup := make(map[string]Field)
	for field, names := range aliases {
		for _, n := range names {
			lookup[normalizeHeader(n)] = field
		}
	}
	return lookup
}

// resolveColumns ubica cada campo en el encabezado. Si un campo aparece dos veces gana el primero.
func resolveColumns(header []string, lookup map[string]Field) map[Field]column {
	cols := make(map[Field]column)
	for i, h := range header {
		field, ok := lookup[normalizeHeader(h)]
		if !ok {
			continue
		}
		if _, dup := cols[field]; dup {
			continue
		}
		cols[field] = column{index: i, label: strings.TrimSpace(h)}
	}
	return cols
}

// requirementText mensaje del error global cuando falta una columna obligatoria.
func requirementText(aliases map[Field][]string) string {
	parts := make([]string, 0, len(requiredFields))
	for _, f := range requiredFields {
		names := aliases[f]
		switch len(names) {
		case 0:
			parts = append(parts, string(f))
		case 1:
			parts = append(parts, names[0])
		default:
			parts = append(parts, names[0]+" (or "+names[1]+")")
		}
	}
	return "CSV must have " + strings.Join(parts, " and ") + " columns"
}
