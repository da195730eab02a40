package storage_test

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bisect/internal/bisect"
	"github.com/san-kum/bisect/internal/metrics"
	"github.com/san-kum/bisect/internal/storage"
)

func solveSqrt2() (bisect.Config, *bisect.Result, error) {
	cfg := bisect.DefaultConfig()
	cfg.KeepSteps = true
	s := bisect.New()
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}
	res, err := s.Solve(func(x float64) float64 { return x*x - 2 }, 0, 2, cfg)
	return cfg, res, err
}

var _ = Describe("Store", func() {
	var (
		dir string
		st  *storage.Store
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		st = storage.New(filepath.Join(dir, "runs"))
		Expect(st.Init()).To(Succeed())
	})

	Context("saving a converged run", func() {
		var (
			runID string
			res   *bisect.Result
		)

		BeforeEach(func() {
			cfg, r, err := solveSqrt2()
			Expect(err).NotTo(HaveOccurred())
			res = r

			meta := storage.NewRunMetadata("sqrt2", "x^2 - 2", 0, 2, cfg, res, nil)
			runID, err = st.Save(meta, res.Steps)
			Expect(err).NotTo(HaveOccurred())
		})

		It("names the run after the function and an input hash", func() {
			Expect(runID).To(HavePrefix("sqrt2_"))
			Expect(runID).To(HaveLen(len("sqrt2_") + 12))
		})

		It("writes metadata.json and steps.csv", func() {
			Expect(filepath.Join(dir, "runs", runID, "metadata.json")).To(BeAnExistingFile())
			Expect(filepath.Join(dir, "runs", runID, "steps.csv")).To(BeAnExistingFile())
		})

		It("loads the metadata back", func() {
			meta, err := st.Load(runID)
			Expect(err).NotTo(HaveOccurred())
			Expect(meta.ID).To(Equal(runID))
			Expect(meta.Function).To(Equal("sqrt2"))
			Expect(meta.Root).To(Equal(res.Root))
			Expect(meta.Iterations).To(Equal(res.Iterations))
			Expect(meta.Converged).To(BeTrue())
			Expect(meta.Reason).To(Equal(res.Reason.String()))
			Expect(meta.Metrics).To(HaveKeyWithValue("contraction", BeNumerically("~", 0.5, 1e-12)))
		})

		It("loads the steps back without losing precision", func() {
			steps, err := st.LoadSteps(runID)
			Expect(err).NotTo(HaveOccurred())
			Expect(steps).To(Equal(res.Steps))
		})

		It("keeps one run per distinct problem", func() {
			cfg, again, err := solveSqrt2()
			Expect(err).NotTo(HaveOccurred())
			id, err := st.Save(storage.NewRunMetadata("sqrt2", "x^2 - 2", 0, 2, cfg, again, nil), again.Steps)
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal(runID))

			cfg.Tolerance = 1e-3
			other, err := st.Save(storage.NewRunMetadata("sqrt2", "x^2 - 2", 0, 2, cfg, again, nil), again.Steps)
			Expect(err).NotTo(HaveOccurred())
			Expect(other).NotTo(Equal(runID))

			runs, err := st.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(HaveLen(2))
			Expect(runs[0].ID).To(Equal(other))
		})

		It("exports JSON with metadata and steps", func() {
			var buf bytes.Buffer
			Expect(st.ExportJSON(&buf, runID)).To(Succeed())

			var doc map[string]any
			Expect(json.Unmarshal(buf.Bytes(), &doc)).To(Succeed())
			Expect(doc).To(HaveKeyWithValue("id", runID))
			Expect(doc["steps"]).To(HaveLen(res.Iterations))
		})

		It("exports the step table as CSV", func() {
			var buf bytes.Buffer
			Expect(st.ExportCSV(&buf, runID)).To(Succeed())
			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			Expect(lines[0]).To(Equal("iteration,low,high,mid,fmid"))
			Expect(lines).To(HaveLen(res.Iterations + 1))
		})
	})

	Context("saving a failed run", func() {
		It("stores the error and encodes non-finite values", func() {
			cfg := bisect.Config{Tolerance: 1e-9, MaxIterations: 50, KeepSteps: true}
			res, solveErr := bisect.Solve(func(x float64) float64 { return 1 / (x - 1) }, 0, 2, cfg)
			Expect(solveErr).To(MatchError(bisect.ErrNonFinite))
			Expect(math.IsInf(res.FRoot, 0)).To(BeTrue())

			meta := storage.NewRunMetadata("pole", "1/(x-1)", 0, 2, cfg, res, solveErr)
			id, err := st.Save(meta, res.Steps)
			Expect(err).NotTo(HaveOccurred())

			loaded, err := st.Load(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Error).To(ContainSubstring("non-finite"))
			Expect(loaded.Converged).To(BeFalse())

			var buf bytes.Buffer
			Expect(st.ExportJSON(&buf, id)).To(Succeed())
			Expect(buf.String()).To(ContainSubstring(`"fmid": null`))
		})
	})

	Context("listing", func() {
		It("returns an empty list for a missing directory", func() {
			runs, err := storage.New(filepath.Join(dir, "nowhere")).List()
			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(BeEmpty())
		})

		It("skips directories without metadata", func() {
			Expect(os.MkdirAll(filepath.Join(dir, "runs", "junk"), 0755)).To(Succeed())
			runs, err := st.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(BeEmpty())
		})

		It("orders runs newest first", func() {
			old := storage.RunMetadata{Function: "a", Tolerance: 1, Timestamp: time.Now().Add(-time.Hour)}
			recent := storage.RunMetadata{Function: "b", Tolerance: 1, Timestamp: time.Now()}
			_, err := st.Save(old, nil)
			Expect(err).NotTo(HaveOccurred())
			_, err = st.Save(recent, nil)
			Expect(err).NotTo(HaveOccurred())

			runs, err := st.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(HaveLen(2))
			Expect(runs[0].Function).To(Equal("b"))
		})
	})

	It("fails to load an unknown run", func() {
		_, err := st.Load("missing")
		Expect(err).To(HaveOccurred())
		_, err = st.LoadSteps("missing")
		Expect(err).To(HaveOccurred())
	})
})
