package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueCodes(t *testing.T) {
	got := uniqueCodes([]string{"A", " B ", "", "A", "C", "B"})
	assert.Equal(t, []string{"A", "B", "C"}, got)
	assert.Empty(t, uniqueCodes(nil))
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(decimal.NullDecimal{}))

	v := nullable(decimal.NewNullDecimal(decimal.NewFromInt(5)))
	require.NotNil(t, v)
	assert.True(t, v.Equal(decimal.NewFromInt(5)))
}

func TestListByCodes_SinCodigosNoConsulta(t *testing.T) {
	repo := NewItemRepository(nil) // un Querier nil haría panic si se consultara
	items, err := repo.ListByCodes(testContext(t), []string{"", "  "})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestQueryError_TablaInexistente(t *testing.T) {
	err := queryError("list items", &pgconn.PgError{Code: "42P01", Message: `relation "items" does not exist`})
	assert.Contains(t, err.Error(), "catálogo sin migrar")

	var pgErr *pgconn.PgError
	assert.ErrorAs(t, err, &pgErr)

	plain := queryError("list items", errors.New("timeout"))
	assert.Equal(t, "list items: timeout", plain.Error())
}

// failingQuerier implementa solo Query, lo único que usa ItemRepo.
type failingQuerier struct {
	err   error
	calls int
}

func (q *failingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	q.calls++
	return nil, q.err
}

func TestListByCodes_ErrorDeConsulta(t *testing.T) {
	q := &failingQuerier{err: &pgconn.PgError{Code: "42P01"}}
	repo := NewItemRepository(q)

	_, err := repo.ListByCodes(testContext(t), []string{"A", "A", "B"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list items: catálogo sin migrar")
	assert.Equal(t, 1, q.calls)
}

// testContext reproduce testing.T.Context (Go 1.24) para toolchains anteriores.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
