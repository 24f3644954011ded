// Package adapters exposes the generator's instrument catalog to the
// instruments feature.
package adapters

import (
	"context"
	"strings"

	"candle_dashboard/internal/feature/candles/domain/series"
	"candle_dashboard/internal/feature/instruments/domain/entity"
	"candle_dashboard/internal/feature/instruments/usecase"
)

type catalogRepository struct {
	catalog *series.Catalog
}

var _ usecase.InstrumentRepository = (*catalogRepository)(nil)

// NewCatalogRepository returns a read-only repository over catalog.
func NewCatalogRepository(catalog *series.Catalog) *catalogRepository {
	return &catalogRepository{catalog: catalog}
}

// List returns every instrument in catalog order.
func (r *catalogRepository) List(ctx context.Context) ([]entity.Instrument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	profiles := r.catalog.Profiles()
	out := make([]entity.Instrument, 0, len(profiles))
	for i, p := range profiles {
		out = append(out, entity.Instrument{
			Name:          p.Name,
			StartingPrice: p.StartingPrice,
			Volatility:    p.Volatility,
			IsDefault:     strings.EqualFold(p.Name, series.DefaultInstrument),
			SortKey:       i + 1,
		})
	}
	return out, nil
}

// ListNames returns the instrument names in catalog order.
func (r *catalogRepository) ListNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	profiles := r.catalog.Profiles()
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}
	return names, nil
}
