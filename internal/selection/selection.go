// Package selection maps a spin's strength to a window of catalog items.
package selection

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/wheelspin/internal/catalog"
	"github.com/san-kum/wheelspin/internal/wheel"
)

// Size is the number of items in a window.
const Size = 3

const (
	// DefaultInertiaScale multiplies |impulse| into the inertia metric.
	DefaultInertiaScale = 10.0

	// DefaultSpreadFactor spreads the metric across catalog indices.
	DefaultSpreadFactor = 3.0
)

// Window is a contiguous run of catalog items starting at Start, wrapping
// past the end of the catalog.
type Window struct {
	Start int
	Items [Size]string
}

func (w Window) String() string {
	return fmt.Sprintf("#%d [%s]", w.Start, strings.Join(w.Items[:], ", "))
}

// InertiaMetric derives the selection scalar from the impulse applied at
// gesture end.
func InertiaMetric(impulse, scale float64) float64 {
	return wheel.Sanitize(math.Abs(impulse) * scale)
}

// StartIndex returns floor(metric·spread) mod n. Negative or non-finite
// products select index 0.
func StartIndex(metric, spread float64, n int) int {
	if n <= 0 {
		return 0
	}
	v := math.Floor(metric * spread)
	if !wheel.Finite(v) || v < 0 {
		return 0
	}
	idx := int(math.Mod(v, float64(n)))
	if idx < 0 || idx >= n {
		return 0
	}
	return idx
}

// Select builds the window for the given metric.
func Select(c *catalog.Catalog, metric, spread float64) Window {
	return At(c, StartIndex(metric, spread, c.Len()))
}

// At builds the window starting at start, reduced into [0, N).
func At(c *catalog.Catalog, start int) Window {
	n := c.Len()
	start = ((start % n) + n) % n
	w := Window{Start: start}
	for k := 0; k < Size; k++ {
		w.Items[k] = c.At(start + k)
	}
	return w
}

// Rule bundles the two scale factors applied at gesture end.
type Rule struct {
	InertiaScale float64
	SpreadFactor float64
}

func DefaultRule() Rule {
	return Rule{InertiaScale: DefaultInertiaScale, SpreadFactor: DefaultSpreadFactor}
}

func (r Rule) Validate() error {
	if !wheel.Finite(r.InertiaScale) || r.InertiaScale <= 0 {
		return wheel.Invalid("inertia_scale", "must be positive, got %v", r.InertiaScale)
	}
	if !wheel.Finite(r.SpreadFactor) || r.SpreadFactor <= 0 {
		return wheel.Invalid("spread_factor", "must be positive, got %v", r.SpreadFactor)
	}
	return nil
}

// Apply selects the window for an impulse.
func (r Rule) Apply(c *catalog.Catalog, impulse float64) Window {
	return Select(c, InertiaMetric(impulse, r.InertiaScale), r.SpreadFactor)
}
