package series

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"candle_dashboard/internal/feature/candles/domain/entity"
)

func TestNewCatalog_Defaults(t *testing.T) {
	t.Parallel()

	c := NewCatalog()
	names := make([]string, 0)
	for _, p := range c.Profiles() {
		names = append(names, p.Name)
	}

	assert.Equal(t, []string{"Tesla", "Apple", "NVIDIA", "Microsoft", "Google", "Amazon"}, names)
}

func TestNewCatalog_Overrides(t *testing.T) {
	t.Parallel()

	c := NewCatalog(
		entity.InstrumentProfile{Name: "apple", StartingPrice: 175, Volatility: 0.01},
		entity.InstrumentProfile{Name: "Netflix", StartingPrice: 350, Volatility: 0.03},
		entity.InstrumentProfile{Name: "", StartingPrice: 1, Volatility: 0.01},
		entity.InstrumentProfile{Name: "Broken", StartingPrice: 0, Volatility: 0.01},
	)

	p, ok := c.Lookup("Apple")
	assert.True(t, ok)
	assert.Equal(t, 175.0, p.StartingPrice)

	_, ok = c.Lookup("Broken")
	assert.False(t, ok)

	profiles := c.Profiles()
	assert.Len(t, profiles, 7)
	assert.Equal(t, "apple", profiles[1].Name)
	assert.Equal(t, "Netflix", profiles[6].Name)
}

func TestCatalog_Resolve(t *testing.T) {
	t.Parallel()

	c := NewCatalog()

	assert.Equal(t, "Amazon", c.Resolve(" amazon ").Name)
	assert.Equal(t, DefaultInstrument, c.Resolve("Unknown").Name)
	assert.Equal(t, DefaultInstrument, c.Resolve("").Name)
}
