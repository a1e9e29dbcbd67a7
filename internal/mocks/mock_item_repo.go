package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) ListByCodes(ctx context.Context, codes []string) (map[string]*entity.Item, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*entity.Item), args.Error(1)
}
