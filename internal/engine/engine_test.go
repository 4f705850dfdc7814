package engine_test

import (
	"context"
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wheelspin/internal/catalog"
	"github.com/san-kum/wheelspin/internal/clock"
	"github.com/san-kum/wheelspin/internal/engine"
	"github.com/san-kum/wheelspin/internal/selection"
	"github.com/san-kum/wheelspin/internal/wheel"
)

type recorder struct {
	mu      sync.Mutex
	frames  []float64
	starts  int
	ends    []selection.Window
	settles int
	drags   []drag
}

type drag struct {
	velocity  float64
	direction wheel.Direction
	offset    float64
}

func (r *recorder) OnGestureUpdate(v float64, dir wheel.Direction, offset float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drags = append(r.drags, drag{v, dir, offset})
}

func (r *recorder) OnFrame(deg float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, deg)
}

func (r *recorder) OnGestureStart() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts++
}

func (r *recorder) OnGestureEnd(w selection.Window) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ends = append(r.ends, w)
}

func (r *recorder) OnSettle(float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settles++
}

func (r *recorder) frameCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return base.Add(time.Duration(ms) * time.Millisecond)
}

var _ = Describe("Engine", func() {
	var (
		cfg engine.Config
		rec *recorder
		eng *engine.Engine
	)

	BeforeEach(func() {
		cat, err := catalog.New("i0", "i1", "i2", "i3", "i4", "i5", "i6", "i7")
		Expect(err).NotTo(HaveOccurred())

		cfg = engine.DefaultConfig()
		cfg.Catalog = cat
		cfg.InertiaScale = 1
		cfg.SpreadFactor = 1

		rec = &recorder{}
		eng, err = engine.New(cfg, rec, engine.WithLogger(log.New(io.Discard)))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("configuration", func() {
		It("rejects a missing catalog", func() {
			cfg.Catalog = nil
			_, err := engine.New(cfg, nil)
			Expect(err).To(MatchError(wheel.ErrInvalidConfiguration))
		})

		It("rejects friction outside (0, 1)", func() {
			cfg.FrictionAir = 1.5
			_, err := engine.New(cfg, nil)
			Expect(err).To(MatchError(wheel.ErrInvalidConfiguration))
		})

		It("rejects a non-positive scale factor", func() {
			cfg.ScaleFactor = 0
			Expect(cfg.Validate()).To(MatchError(wheel.ErrInvalidConfiguration))
		})

		It("accepts the defaults", func() {
			Expect(engine.DefaultConfig().Validate()).To(Succeed())
		})
	})

	Describe("gesture end", func() {
		It("maps a 50 px/ms right drag to window 2", func() {
			Expect(eng.PointerDown(0, at(0))).To(Succeed())
			Expect(eng.PointerMove(500, at(10))).To(Succeed())
			Expect(eng.PointerUp(500, at(10))).To(Succeed())

			Expect(rec.starts).To(Equal(1))
			Expect(rec.ends).To(HaveLen(1))
			Expect(rec.ends[0].Start).To(Equal(2))
			Expect(rec.ends[0].Items).To(Equal([3]string{"i2", "i3", "i4"}))
			Expect(eng.State().AngularVelocity).To(BeNumerically("~", 10, 1e-9))
		})

		It("treats leaving the control as a release", func() {
			Expect(eng.PointerDown(0, at(0))).To(Succeed())
			Expect(eng.PointerMove(-100, at(10))).To(Succeed())
			Expect(eng.PointerLeave(-100, at(11))).To(Succeed())

			Expect(rec.ends).To(HaveLen(1))
			Expect(eng.State().AngularVelocity).To(BeNumerically("<", 0))
			Expect(eng.Dragging()).To(BeFalse())
		})

		It("does not spin while the drag is in progress", func() {
			Expect(eng.PointerDown(0, at(0))).To(Succeed())
			Expect(eng.PointerMove(300, at(10))).To(Succeed())

			Expect(eng.State().AngularVelocity).To(BeZero())
			Expect(rec.ends).To(BeEmpty())
		})

		It("reports drag progress without spinning", func() {
			Expect(eng.PointerDown(100, at(0))).To(Succeed())
			Expect(eng.PointerMove(80, at(10))).To(Succeed())
			Expect(eng.PointerMove(20, at(20))).To(Succeed())

			Expect(rec.drags).To(HaveLen(2))
			Expect(rec.drags[0]).To(Equal(drag{2, wheel.Left, -20}))
			Expect(rec.drags[1].velocity).To(BeNumerically("~", 6, 1e-12))
			Expect(rec.drags[1].offset).To(Equal(-80.0))
			Expect(eng.State().AngularVelocity).To(BeZero())
		})

		It("reports no drag progress without a pointer-down", func() {
			Expect(eng.PointerMove(50, at(10))).To(Succeed())
			Expect(rec.drags).To(BeEmpty())
		})

		It("selects the first three items for a still release", func() {
			Expect(eng.PointerDown(40, at(0))).To(Succeed())
			Expect(eng.PointerUp(40, at(5))).To(Succeed())

			Expect(rec.ends).To(HaveLen(1))
			Expect(rec.ends[0].Start).To(Equal(0))
			Expect(rec.ends[0].Items).To(Equal([3]string{"i0", "i1", "i2"}))
		})

		It("overwrites residual spin", func() {
			_, err := eng.Flick(25, wheel.Right)
			Expect(err).NotTo(HaveOccurred())
			_, err = eng.Flick(15, wheel.Left)
			Expect(err).NotTo(HaveOccurred())

			Expect(eng.State().AngularVelocity).To(BeNumerically("~", -3, 1e-12))
		})

		It("ignores releases without a gesture", func() {
			Expect(eng.PointerUp(10, at(0))).To(Succeed())
			Expect(rec.ends).To(BeEmpty())
		})
	})

	Describe("ticking", func() {
		It("reports the angle after integration", func() {
			_, err := eng.Flick(50, wheel.Right)
			Expect(err).NotTo(HaveOccurred())

			eng.Tick(1)
			Expect(rec.frames).To(HaveLen(1))
			Expect(rec.frames[0]).To(BeNumerically("~", 10*180/math.Pi, 1e-9))
		})

		It("keeps the selection fixed while the wheel decays", func() {
			rel, err := eng.Flick(50, wheel.Right)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 200; i++ {
				eng.Tick(1)
			}

			last, ok := eng.Last()
			Expect(ok).To(BeTrue())
			Expect(last.Window).To(Equal(rel.Window))
			Expect(rec.ends).To(HaveLen(1))
		})

		It("notifies settling once", func() {
			_, err := eng.Flick(1, wheel.Right)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 1000; i++ {
				eng.Tick(1)
			}
			Expect(eng.AtRest()).To(BeTrue())
			Expect(rec.settles).To(Equal(1))
		})
	})

	Describe("teardown", func() {
		It("discards an in-flight gesture", func() {
			Expect(eng.PointerDown(0, at(0))).To(Succeed())
			eng.Stop()

			Expect(eng.Dragging()).To(BeFalse())
			Expect(eng.PointerUp(100, at(10))).To(MatchError(wheel.ErrStopped))
			Expect(rec.ends).To(BeEmpty())
		})

		It("freezes the body", func() {
			_, err := eng.Flick(50, wheel.Right)
			Expect(err).NotTo(HaveOccurred())
			eng.Stop()
			eng.Stop()

			before := eng.State()
			eng.Tick(1)
			Expect(eng.State()).To(Equal(before))
			Expect(rec.frames).To(BeEmpty())

			_, err = eng.Flick(10, wheel.Left)
			Expect(err).To(MatchError(wheel.ErrStopped))
			Expect(eng.PointerDown(0, at(0))).To(MatchError(wheel.ErrStopped))
		})
	})

	Describe("Run", func() {
		It("ticks once per clock delivery and returns on Stop", func() {
			src := clock.NewManual()
			done := make(chan error, 1)
			go func() { done <- eng.Run(context.Background(), src) }()

			for i := 0; i < 5; i++ {
				Expect(src.Advance(clock.Period(cfg.TickRate))).To(BeTrue())
			}
			Eventually(rec.frameCount).Should(Equal(5))

			eng.Stop()
			Eventually(done).Should(Receive(BeNil()))
			Expect(src.Advance(time.Millisecond)).To(BeFalse())
		})

		It("returns the context error when cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- eng.Run(ctx, clock.NewManual()) }()

			cancel()
			Eventually(done).Should(Receive(MatchError(context.Canceled)))
		})
	})

	It("keeps engines independent", func() {
		other, err := engine.New(cfg, nil, engine.WithLogger(log.New(io.Discard)))
		Expect(err).NotTo(HaveOccurred())

		_, err = eng.Flick(50, wheel.Right)
		Expect(err).NotTo(HaveOccurred())
		eng.Tick(1)

		Expect(other.State().Angle).To(BeZero())
		Expect(other.State().AngularVelocity).To(BeZero())
	})
})
