// Package series generates synthetic daily OHLCV series and rolls them up
// into coarser timeframes.
package series

import (
	"strings"

	"candle_dashboard/internal/feature/candles/domain/entity"
)

// DefaultInstrument is the profile used when a name is not in the catalog.
const DefaultInstrument = "Tesla"

var defaultProfiles = []entity.InstrumentProfile{
	{Name: "Tesla", StartingPrice: 200.0, Volatility: 0.025},
	{Name: "Apple", StartingPrice: 150.0, Volatility: 0.020},
	{Name: "NVIDIA", StartingPrice: 400.0, Volatility: 0.030},
	{Name: "Microsoft", StartingPrice: 300.0, Volatility: 0.018},
	{Name: "Google", StartingPrice: 2500.0, Volatility: 0.022},
	{Name: "Amazon", StartingPrice: 120.0, Volatility: 0.024},
}

// Catalog is the immutable instrument -> profile table.
// It is built once at startup and only read afterwards, so it is safe for
// concurrent use.
type Catalog struct {
	profiles map[string]entity.InstrumentProfile
	order    []string
}

// NewCatalog returns the built-in profiles with overrides applied.
// An override with a known name (case-insensitive) replaces the built-in
// entry in place; new names are appended in the given order. Overrides with
// an empty name or a non-positive price or volatility are ignored.
func NewCatalog(overrides ...entity.InstrumentProfile) *Catalog {
	c := &Catalog{profiles: make(map[string]entity.InstrumentProfile, len(defaultProfiles)+len(overrides))}
	for _, p := range defaultProfiles {
		c.put(p)
	}
	for _, p := range overrides {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" || p.StartingPrice <= 0 || p.Volatility <= 0 {
			continue
		}
		c.put(p)
	}
	return c
}

func (c *Catalog) put(p entity.InstrumentProfile) {
	key := strings.ToLower(p.Name)
	if _, ok := c.profiles[key]; !ok {
		c.order = append(c.order, key)
	}
	c.profiles[key] = p
}

// Lookup returns the profile registered under name.
func (c *Catalog) Lookup(name string) (entity.InstrumentProfile, bool) {
	p, ok := c.profiles[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Resolve returns the profile for name, falling back to DefaultInstrument.
func (c *Catalog) Resolve(name string) entity.InstrumentProfile {
	if p, ok := c.Lookup(name); ok {
		return p
	}
	return c.profiles[strings.ToLower(DefaultInstrument)]
}

// Profiles returns every profile in registration order.
func (c *Catalog) Profiles() []entity.InstrumentProfile {
	out := make([]entity.InstrumentProfile, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.profiles[k])
	}
	return out
}
