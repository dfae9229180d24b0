package roots_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rootlab/internal/config"
	"github.com/san-kum/rootlab/internal/roots"
)

var _ = Describe("Engine.Compute", func() {
	var engine *roots.Engine

	BeforeEach(func() {
		engine = roots.NewEngine(config.DefaultSolver())
	})

	Context("with a = 1, b = 1", func() {
		var res *roots.Result

		BeforeEach(func() {
			var err error
			res, err = engine.Compute("1.0", "1.0")
			Expect(err).NotTo(HaveOccurred())
		})

		It("searches [0, 10π]", func() {
			Expect(res.Domain.Min).To(Equal(0.0))
			Expect(res.Domain.Max).To(BeNumerically("~", 10*math.Pi, 1e-9))
		})

		It("brackets the single root inside (0, 1)", func() {
			Expect(res.Brackets).To(HaveLen(1))
			Expect(res.Brackets[0].Lo).To(BeNumerically(">=", 0))
			Expect(res.Brackets[0].Hi).To(BeNumerically("<=", 1))
		})

		It("converges with both methods near 0.642", func() {
			Expect(res.ChordRoots).To(HaveLen(1))
			Expect(res.NewtonRoots).To(HaveLen(1))
			Expect(res.ChordRoots[0]).To(BeNumerically("~", 0.6417, 1e-3))
			Expect(res.NewtonRoots[0]).To(BeNumerically("~", 0.6417, 1e-3))
			Expect(math.Abs(res.ChordResiduals[0])).To(BeNumerically("<", 1e-3))
			Expect(math.Abs(res.NewtonResiduals[0])).To(BeNumerically("<", 1e-3))
		})

		It("reports one distinct root and a close pair", func() {
			Expect(res.AllRoots).To(HaveLen(1))
			Expect(res.AllRoots[0]).To(BeNumerically("~", 0.6417, 1e-3))
			Expect(res.RootsTooClose).To(Equal([]bool{true}))
			Expect(res.RootDifferences[0]).To(BeNumerically("<", 1e-3))
			Expect(res.Warning).To(BeEmpty())
		})

		It("keeps method lists aligned", func() {
			Expect(res.ChordIterations).To(HaveLen(len(res.ChordRoots)))
			Expect(res.ChordIntervals).To(HaveLen(len(res.ChordRoots)))
			Expect(res.NewtonIterations).To(HaveLen(len(res.NewtonRoots)))
			Expect(res.NewtonInitials).To(HaveLen(len(res.NewtonRoots)))
		})
	})

	Context("with negative a", func() {
		It("mirrors the search domain to x ≤ 0", func() {
			res, err := engine.Compute("-1.0", "1.0")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Domain.Min).To(BeNumerically("~", -10*math.Pi, 1e-9))
			Expect(res.Domain.Max).To(Equal(0.0))
			Expect(res.AllRoots).To(HaveLen(1))
			Expect(res.AllRoots[0]).To(BeNumerically("~", -0.6417, 1e-3))
		})

		It("is rejected when a positive a is required", func() {
			cfg := config.DefaultSolver()
			cfg.RequirePositiveA = true
			_, err := roots.NewEngine(cfg).Compute("-1.0", "1.0")
			Expect(err).To(MatchError(roots.ErrInvalidParameter))
		})
	})

	Context("with a = 0", func() {
		var res *roots.Result

		BeforeEach(func() {
			var err error
			res, err = engine.Compute("0.0", "1.0")
			Expect(err).NotTo(HaveOccurred())
		})

		It("warns that the root count is unbounded", func() {
			Expect(res.Warning).To(ContainSubstring("infinitely many roots"))
			Expect(res.Warning).To(ContainSubstring("[0.00, 31.42]"))
		})

		It("returns only the roots of -cos(x) inside the window", func() {
			Expect(res.AllRoots).To(HaveLen(10))
			for k, r := range res.AllRoots {
				Expect(r).To(BeNumerically("~", math.Pi/2+float64(k)*math.Pi, 1e-3))
				Expect(r).To(BeNumerically("<=", res.Domain.Max))
			}
		})
	})

	Context("with non-numeric input", func() {
		It("returns no result and the parameter message", func() {
			res, err := engine.Compute("abc", "1.0")
			Expect(res).To(BeNil())
			Expect(err).To(MatchError("parameters must be numbers"))
			Expect(err).To(MatchError(roots.ErrInvalidNumber))
		})
	})

	Context("with decimal commas", func() {
		It("parses them as decimal points", func() {
			withComma, err := engine.Compute("0,5", "2,5")
			Expect(err).NotTo(HaveOccurred())
			withPoint, err := engine.Compute("0.5", "2.5")
			Expect(err).NotTo(HaveOccurred())
			Expect(withComma.AllRoots).To(Equal(withPoint.AllRoots))
		})
	})

	Context("with a = 1, b = 1000", func() {
		var res *roots.Result

		BeforeEach(func() {
			var err error
			res, err = engine.Compute("1.0", "1000.0")
			Expect(err).NotTo(HaveOccurred())
		})

		It("shrinks the search domain to 10π/1000", func() {
			Expect(res.Domain.Max).To(BeNumerically("~", 0.0314, 1e-4))
		})

		It("keeps chord roots inside the small window", func() {
			Expect(res.AllRoots).NotTo(BeEmpty())
			for _, r := range res.ChordRoots {
				Expect(res.Domain.Contains(r)).To(BeTrue())
			}
			for _, fx := range append(res.ChordResiduals, res.NewtonResiduals...) {
				Expect(math.Abs(fx)).To(BeNumerically("<", 1e-3))
			}
		})
	})

	Context("without a sign change", func() {
		It("reports the searched interval", func() {
			res, err := engine.Compute("0", "0")
			Expect(res).To(BeNil())
			var nr *roots.NoRootError
			Expect(err).To(BeAssignableToTypeOf(nr))
			Expect(err.Error()).To(Equal("no roots found on interval [0.00, 100.00]"))
		})
	})

	DescribeTable("is deterministic",
		func(a, b string) {
			first, err := engine.Compute(a, b)
			Expect(err).NotTo(HaveOccurred())
			second, err := engine.Compute(a, b)
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))
		},
		Entry("unit", "1", "1"),
		Entry("mirrored", "-2", "0.7"),
		Entry("cosine", "0", "2"),
		Entry("wide", "0.05", "0.5"),
	)
})
