package survey_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravmap/internal/gravity"
	"github.com/san-kum/gravmap/internal/grid"
	"github.com/san-kum/gravmap/internal/survey"
)

func labPlan() survey.Plan {
	return survey.Plan{
		Anomaly:  gravity.Anomaly{Location: gravity.Point3{X: 0, Y: 0, Z: -10}, Mass: 1.0e7},
		G:        gravity.DefaultG,
		Heights:  []float64{0, 10, 100},
		Spacings: []float64{5, 25},
		Extent:   survey.DefaultExtent(),
	}
}

var _ = Describe("Run", func() {
	var plan survey.Plan

	BeforeEach(func() {
		plan = labPlan()
	})

	It("samples one layer per spacing and height", func() {
		report, err := survey.Run(context.Background(), plan)
		Expect(err).NotTo(HaveOccurred())

		Expect(report.Sheets).To(HaveLen(2))
		Expect(report.LayerCount()).To(Equal(6))

		fine := report.Sheets[0]
		Expect(fine.Spacing).To(Equal(5.0))
		for _, l := range fine.Layers {
			rows, cols := l.Shape()
			Expect(rows).To(Equal(41))
			Expect(cols).To(Equal(41))
		}

		coarse := report.Sheets[1]
		rows, cols := coarse.Layers[2].Shape()
		Expect(rows).To(Equal(9))
		Expect(cols).To(Equal(9))
		Expect(coarse.Layers[2].Height).To(Equal(100.0))
		Expect(coarse.Layers[2].Z).To(Equal(100.0))
	})

	It("shares colour limits across the heights of a sheet", func() {
		report, err := survey.Run(context.Background(), plan)
		Expect(err).NotTo(HaveOccurred())

		for _, sheet := range report.Sheets {
			for _, l := range sheet.Layers {
				u, _ := l.Potential.Range()
				gz, _ := l.Effect.Range()
				Expect(u.Min).To(BeNumerically(">=", sheet.PotentialRange.Min))
				Expect(u.Max).To(BeNumerically("<=", sheet.PotentialRange.Max))
				Expect(gz.Min).To(BeNumerically(">=", sheet.EffectRange.Min))
				Expect(gz.Max).To(BeNumerically("<=", sheet.EffectRange.Max))
			}

			// The closest layer holds the peak.
			top, _ := sheet.Layers[0].Potential.Range()
			Expect(top.Max).To(Equal(sheet.PotentialRange.Max))
		}
	})

	It("gives identical layers when sampling in parallel", func() {
		seq, err := survey.Run(context.Background(), plan)
		Expect(err).NotTo(HaveOccurred())

		plan.Parallel = true
		plan.Workers = 3
		par, err := survey.Run(context.Background(), plan)
		Expect(err).NotTo(HaveOccurred())

		for si := range seq.Sheets {
			Expect(par.Sheets[si].PotentialRange).To(Equal(seq.Sheets[si].PotentialRange))
			for li := range seq.Sheets[si].Layers {
				Expect(par.Sheets[si].Layers[li].Effect.Values).
					To(Equal(seq.Sheets[si].Layers[li].Effect.Values))
			}
		}
	})

	It("attaches field metrics to every layer", func() {
		report, err := survey.Run(context.Background(), plan)
		Expect(err).NotTo(HaveOccurred())

		l := report.Sheets[0].Layers[0]
		Expect(l.Metrics).To(HaveKey("u_peak"))
		Expect(l.Metrics).To(HaveKey("gz_half_peak_radius"))
		Expect(l.Metrics["u_peak"]).To(BeNumerically("~", gravity.DefaultG*1.0e7/10, 1e-15))

		// the anomaly looks wider from further away
		far := report.Sheets[0].Layers[2]
		Expect(far.Metrics["gz_half_peak_radius"]).To(BeNumerically(">", l.Metrics["gz_half_peak_radius"]))
	})

	It("looks up layers by spacing and height", func() {
		report, err := survey.Run(context.Background(), plan)
		Expect(err).NotTo(HaveOccurred())

		sheet, layer, ok := report.Layer(25, 10)
		Expect(ok).To(BeTrue())
		Expect(sheet.Spacing).To(Equal(25.0))
		Expect(layer.Height).To(Equal(10.0))

		_, _, ok = report.Layer(25, 11)
		Expect(ok).To(BeFalse())
	})

	It("aborts on a node that coincides with the anomaly", func() {
		plan.Heights = []float64{0, -10}

		report, err := survey.Run(context.Background(), plan)
		Expect(report).To(BeNil())
		Expect(errors.Is(err, gravity.ErrDegenerateDistance)).To(BeTrue())

		var ne *grid.NodeError
		Expect(errors.As(err, &ne)).To(BeTrue())
		Expect(ne.Point).To(Equal(gravity.Point3{X: 0, Y: 0, Z: -10}))
		Expect(err.Error()).To(ContainSubstring("z=-10"))
	})

	It("stops when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := survey.Run(ctx, plan)
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("Plan.Validate", func() {
	It("rejects empty plans", func() {
		p := labPlan()
		p.Heights = nil
		Expect(p.Validate()).To(MatchError(survey.ErrEmptyPlan))

		p = labPlan()
		p.Spacings = []float64{}
		Expect(p.Validate()).To(MatchError(survey.ErrEmptyPlan))
	})

	It("rejects non-positive spacing", func() {
		p := labPlan()
		p.Spacings = []float64{5, 0}
		Expect(p.Validate()).To(MatchError(grid.ErrInvalidStep))
	})

	It("rejects an inverted extent", func() {
		p := labPlan()
		p.Extent.YMin, p.Extent.YMax = 10, -10
		Expect(p.Validate()).To(MatchError(grid.ErrInvalidRange))
	})

	It("accepts negative mass", func() {
		p := labPlan()
		p.Anomaly.Mass = -4e6
		Expect(p.Validate()).To(Succeed())
	})
})
