package selection

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/wheelspin/internal/catalog"
)

func mustCatalog(t *testing.T, items ...string) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(items...)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

func TestWindowWrapsAround(t *testing.T) {
	g := NewWithT(t)
	c := mustCatalog(t, "a", "b", "c", "d", "e")

	w := At(c, 4)
	g.Expect(w.Start).To(Equal(4))
	g.Expect(w.Items).To(Equal([Size]string{"e", "a", "b"}))
}

func TestWindowStartIsReduced(t *testing.T) {
	g := NewWithT(t)
	c := mustCatalog(t, "a", "b", "c", "d", "e")

	tests := []struct {
		start, want int
	}{
		{9, 4},
		{5, 0},
		{-1, 4},
		{-6, 4},
		{-10, 0},
	}
	for _, tt := range tests {
		w := At(c, tt.start)
		g.Expect(w.Start).To(Equal(tt.want), "start %d", tt.start)
		g.Expect(w).To(Equal(At(c, tt.want)))
	}
}

func TestSelectIsTotal(t *testing.T) {
	g := NewWithT(t)
	metrics := []float64{
		0, 0.1, 0.99, 1, 2.5, 7, 8, 1e6, 1e18, 1e300, math.MaxFloat64,
		math.Inf(1), math.NaN(), -1,
	}

	for n := catalog.MinItems; n <= 12; n++ {
		items := make([]string, n)
		for i := range items {
			items[i] = string(rune('a' + i))
		}
		c := mustCatalog(t, items...)

		for _, m := range metrics {
			w := Select(c, m, 1)
			g.Expect(w.Start).To(BeNumerically(">=", 0), "n=%d metric=%v", n, m)
			g.Expect(w.Start).To(BeNumerically("<", n), "n=%d metric=%v", n, m)
			for k, item := range w.Items {
				g.Expect(item).To(Equal(c.At(w.Start+k)))
			}
		}
	}
}

func TestSelectIsPure(t *testing.T) {
	g := NewWithT(t)
	c := catalog.Default()

	for _, m := range []float64{0, 3.3, 10, 123.456} {
		g.Expect(Select(c, m, DefaultSpreadFactor)).To(Equal(Select(c, m, DefaultSpreadFactor)))
	}
}

func TestSelectLargeValuesUseModulo(t *testing.T) {
	g := NewWithT(t)
	c := mustCatalog(t, "a", "b", "c", "d", "e", "f", "g", "h")

	// 2^60 is exactly representable and divisible by 8.
	g.Expect(StartIndex(math.Ldexp(1, 60), 1, 8)).To(Equal(0))
	g.Expect(StartIndex(math.Ldexp(1, 60)+8, 1, 8)).To(Equal(0))
	g.Expect(Select(c, 1e9+3, 1).Start).To(Equal(3))
}

func TestEndToEndScenario(t *testing.T) {
	g := NewWithT(t)
	c := mustCatalog(t, "i0", "i1", "i2", "i3", "i4", "i5", "i6", "i7")

	impulse := 50 * 1 * 0.2
	metric := InertiaMetric(impulse, 1)
	g.Expect(metric).To(BeNumerically("~", 10, 1e-12))

	w := Select(c, metric, 1)
	g.Expect(w.Start).To(Equal(2))
	g.Expect(w.Items).To(Equal([Size]string{"i2", "i3", "i4"}))
}

func TestZeroImpulseSelectsFirstItems(t *testing.T) {
	g := NewWithT(t)
	c := catalog.Default()

	w := DefaultRule().Apply(c, 0)
	g.Expect(w.Start).To(Equal(0))
	g.Expect(w.Items).To(Equal([Size]string{"about us", "e comm", "digital marketing"}))
}

func TestRuleUsesMagnitude(t *testing.T) {
	g := NewWithT(t)
	c := catalog.Default()
	r := DefaultRule()

	// |0.25| * 10 * 3 = 7.5 -> 7
	g.Expect(r.Apply(c, 0.25).Start).To(Equal(7))
	g.Expect(r.Apply(c, -0.25)).To(Equal(r.Apply(c, 0.25)))
}

func TestRuleValidate(t *testing.T) {
	g := NewWithT(t)
	g.Expect(DefaultRule().Validate()).To(Succeed())
	g.Expect(Rule{InertiaScale: 0, SpreadFactor: 1}.Validate()).NotTo(Succeed())
	g.Expect(Rule{InertiaScale: 1, SpreadFactor: math.NaN()}.Validate()).NotTo(Succeed())
}
