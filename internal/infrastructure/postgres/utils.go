package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// isUndefinedTable verifica si el error es una tabla inexistente (42P01): el catálogo no fue migrado.
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P01" // undefined_table
	}
	return false
}

func queryError(op string, err error) error {
	if isUndefinedTable(err) {
		return fmt.Errorf("%s: catálogo sin migrar (ver migrations/001_item_catalog.sql): %w", op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nullable(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

// uniqueCodes descarta vacíos y duplicados conservando el orden.
func uniqueCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
