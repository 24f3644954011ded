// Package usecase implements the business logic for instrument listing.
package usecase

import (
	"context"
	"sort"

	"candle_dashboard/internal/feature/instruments/domain/entity"
)

// InstrumentRepository abstracts where instrument profiles come from.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type InstrumentRepository interface {
	List(ctx context.Context) ([]entity.Instrument, error)
	ListNames(ctx context.Context) ([]string, error)
}

// InstrumentUsecase provides business logic for instrument operations.
type InstrumentUsecase struct {
	repo InstrumentRepository
}

// NewInstrumentUsecase creates a new InstrumentUsecase with the given repository.
func NewInstrumentUsecase(r InstrumentRepository) *InstrumentUsecase {
	return &InstrumentUsecase{repo: r}
}

// ListInstruments returns every instrument ordered by SortKey.
func (u *InstrumentUsecase) ListInstruments(ctx context.Context) ([]entity.Instrument, error) {
	ins, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(ins, func(i, j int) bool { return ins[i].SortKey < ins[j].SortKey })
	return ins, nil
}

// ListNames returns the instrument names, used by the ingest job.
func (u *InstrumentUsecase) ListNames(ctx context.Context) ([]string, error) {
	return u.repo.ListNames(ctx)
}
