package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candle_dashboard/internal/feature/instruments/domain/entity"
	"candle_dashboard/internal/feature/instruments/usecase"
)

// mockInstrumentRepository はInstrumentRepositoryインターフェースのモック実装です。
type mockInstrumentRepository struct {
	ListFunc      func(ctx context.Context) ([]entity.Instrument, error)
	ListNamesFunc func(ctx context.Context) ([]string, error)
}

func (m *mockInstrumentRepository) List(ctx context.Context) ([]entity.Instrument, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockInstrumentRepository) ListNames(ctx context.Context) ([]string, error) {
	if m.ListNamesFunc != nil {
		return m.ListNamesFunc(ctx)
	}
	return nil, nil
}

// TestInstrumentUsecase_ListInstruments はListInstrumentsの各種シナリオをテーブル駆動テストで検証します。
func TestInstrumentUsecase_ListInstruments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		list     func(ctx context.Context) ([]entity.Instrument, error)
		expected []entity.Instrument
		wantErr  string
	}{
		{
			name: "success: sorted by SortKey",
			list: func(context.Context) ([]entity.Instrument, error) {
				return []entity.Instrument{
					{Name: "Apple", SortKey: 2},
					{Name: "Tesla", SortKey: 1, IsDefault: true},
				}, nil
			},
			expected: []entity.Instrument{
				{Name: "Tesla", SortKey: 1, IsDefault: true},
				{Name: "Apple", SortKey: 2},
			},
		},
		{
			name:     "success: empty",
			list:     func(context.Context) ([]entity.Instrument, error) { return []entity.Instrument{}, nil },
			expected: []entity.Instrument{},
		},
		{
			name:    "failure: repository error",
			list:    func(context.Context) ([]entity.Instrument, error) { return nil, errors.New("catalog unavailable") },
			wantErr: "catalog unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := usecase.NewInstrumentUsecase(&mockInstrumentRepository{ListFunc: tt.list})
			got, err := uc.ListInstruments(context.Background())

			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestInstrumentUsecase_ListNames(t *testing.T) {
	t.Parallel()

	uc := usecase.NewInstrumentUsecase(&mockInstrumentRepository{
		ListNamesFunc: func(context.Context) ([]string, error) { return []string{"Tesla", "Apple"}, nil },
	})
	names, err := uc.ListNames(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Tesla", "Apple"}, names)
}
