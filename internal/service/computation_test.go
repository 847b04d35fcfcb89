package service_test

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kubev2v/fracture-planner/internal/estimation"
	"github.com/kubev2v/fracture-planner/internal/estimation/solvers"
	"github.com/kubev2v/fracture-planner/internal/service"
	"github.com/kubev2v/fracture-planner/internal/store"
	"github.com/kubev2v/fracture-planner/internal/units"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("computation service", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		srv    *service.ComputationService
	)

	BeforeAll(func() {
		s, gormdb = newTestStore()
		srv = service.NewComputationService(s, solvers.NewEngine())
	})

	AfterAll(func() {
		s.Close()
	})

	countRuns := func() int {
		count := 0
		Expect(gormdb.Raw("SELECT COUNT(*) FROM runs;").Scan(&count).Error).To(BeNil())
		return count
	}

	Context("compute", func() {
		It("computes and stores a run", func() {
			run, err := srv.Compute(context.TODO(), service.ComputeForm{
				Name:       "stage 1",
				Model:      estimation.ModelPKN,
				UnitSystem: units.SI,
				Input:      illustrativeInput(),
				Persist:    true,
			})
			Expect(err).To(BeNil())
			Expect(run.Model).To(Equal("PKN"))
			Expect(run.UnitSystem).To(Equal("si"))
			Expect(run.Result.Data.Length).To(BeNumerically("~", 163.4, 0.5))
			Expect(run.Result.Data.History).To(HaveLen(estimation.HistoryPoints))
			Expect(run.Result.Data.Profile).To(HaveLen(estimation.ProfileSegments + 1))
			Expect(run.Sensitivity.Data).To(HaveLen(8))
			Expect(countRuns()).To(Equal(1))

			stored, err := srv.GetRun(context.TODO(), run.ID)
			Expect(err).To(BeNil())
			Expect(stored.Name).To(Equal("stage 1"))
			Expect(stored.Result.Data.Length).To(Equal(run.Result.Data.Length))
		})

		It("does not store a run unless asked", func() {
			run, err := srv.Compute(context.TODO(), service.ComputeForm{
				Model: estimation.ModelKGD,
				Input: illustrativeInput(),
			})
			Expect(err).To(BeNil())
			Expect(run.UnitSystem).To(Equal("si"))
			Expect(countRuns()).To(Equal(0))
		})

		It("converts field input to SI before computing", func() {
			fieldInput := units.Field.InputFromSI(illustrativeInput())

			run, err := srv.Compute(context.TODO(), service.ComputeForm{
				Model:      estimation.ModelPKN,
				UnitSystem: units.Field,
				Input:      fieldInput,
			})
			Expect(err).To(BeNil())
			Expect(run.UnitSystem).To(Equal("field"))
			Expect(run.Input.Data.Height).To(BeNumerically("~", 98.425, 1e-3))
			Expect(run.Result.Data.Length).To(BeNumerically("~", 163.4, 0.5))
		})

		It("rejects invalid input without storing", func() {
			in := illustrativeInput()
			in.PoissonRatio = 0.5

			_, err := srv.Compute(context.TODO(), service.ComputeForm{
				Model:   estimation.ModelPKN,
				Input:   in,
				Persist: true,
			})
			Expect(err).To(MatchError(estimation.ErrInvalidInput))

			var inputErr *estimation.InputError
			Expect(errors.As(err, &inputErr)).To(BeTrue())
			Expect(inputErr.Field).To(Equal("poissonRatio"))
			Expect(countRuns()).To(Equal(0))
		})

		It("stores the run inside the caller's transaction", func() {
			ctx, err := s.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			run, err := srv.Compute(ctx, service.ComputeForm{
				Model:   estimation.ModelKGD,
				Input:   illustrativeInput(),
				Persist: true,
			})
			Expect(err).To(BeNil())

			// visible inside the transaction, gone once the caller rolls back
			_, err = srv.GetRun(ctx, run.ID)
			Expect(err).To(BeNil())
			_, err = store.Rollback(ctx)
			Expect(err).To(BeNil())
			Expect(countRuns()).To(Equal(0))

			ctx, err = s.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())
			_, err = srv.Compute(ctx, service.ComputeForm{
				Model:   estimation.ModelKGD,
				Input:   illustrativeInput(),
				Persist: true,
			})
			Expect(err).To(BeNil())
			_, err = store.Commit(ctx)
			Expect(err).To(BeNil())
			Expect(countRuns()).To(Equal(1))
		})

		It("rejects an unsupported model", func() {
			_, err := srv.Compute(context.TODO(), service.ComputeForm{
				Model: estimation.Model("P3D"),
				Input: illustrativeInput(),
			})
			Expect(err).To(MatchError(estimation.ErrUnsupportedModel))
		})

		AfterEach(func() {
			gormdb.Exec("DELETE FROM runs;")
		})
	})

	Context("compare models", func() {
		It("returns one result per model", func() {
			comparisons, err := srv.CompareModels(context.TODO(), units.SI, illustrativeInput())
			Expect(err).To(BeNil())
			Expect(comparisons).To(HaveLen(3))

			for i, m := range estimation.Models {
				Expect(comparisons[i].Model).To(Equal(m))
				Expect(comparisons[i].Error).To(BeNil())
				Expect(comparisons[i].Result).NotTo(BeNil())
				Expect(comparisons[i].Result.Model).To(Equal(m))
			}
			Expect(comparisons[1].Result.Length).To(BeNumerically("~", 116.1, 0.5))
			Expect(countRuns()).To(Equal(0))
		})

		It("fails on invalid input", func() {
			in := illustrativeInput()
			in.Time = 0

			_, err := srv.CompareModels(context.TODO(), units.SI, in)
			Expect(err).To(MatchError(estimation.ErrInvalidInput))
		})

		It("reports a degenerate model without hiding the others", func() {
			in := illustrativeInput()
			in.YoungModulus = 1e300
			in.Rate = 1e120

			comparisons, err := srv.CompareModels(context.TODO(), units.SI, in)
			Expect(err).To(BeNil())
			Expect(comparisons).To(HaveLen(3))
			Expect(comparisons[0].Error).To(MatchError(estimation.ErrDegenerateResult))
			Expect(comparisons[0].Result).To(BeNil())
		})
	})

	Context("runs", func() {
		BeforeEach(func() {
			for _, m := range []estimation.Model{estimation.ModelPKN, estimation.ModelKGD, estimation.ModelRadial} {
				_, err := srv.Compute(context.TODO(), service.ComputeForm{Model: m, Input: illustrativeInput(), Persist: true})
				Expect(err).To(BeNil())
			}
		})

		It("lists all runs", func() {
			runs, err := srv.ListRuns(context.TODO(), service.RunFilter{})
			Expect(err).To(BeNil())
			Expect(runs).To(HaveLen(3))
		})

		It("lists runs of one model", func() {
			runs, err := srv.ListRuns(context.TODO(), service.RunFilter{Model: "KGD"})
			Expect(err).To(BeNil())
			Expect(runs).To(HaveLen(1))
			Expect(runs[0].Model).To(Equal("KGD"))
		})

		It("limits the listing", func() {
			runs, err := srv.ListRuns(context.TODO(), service.RunFilter{Limit: 2})
			Expect(err).To(BeNil())
			Expect(runs).To(HaveLen(2))
		})

		It("deletes a run", func() {
			runs, err := srv.ListRuns(context.TODO(), service.RunFilter{})
			Expect(err).To(BeNil())

			Expect(srv.DeleteRun(context.TODO(), runs[0].ID)).To(Succeed())
			Expect(countRuns()).To(Equal(2))
		})

		It("keeps a run deleted in a transaction that is rolled back", func() {
			runs, err := srv.ListRuns(context.TODO(), service.RunFilter{})
			Expect(err).To(BeNil())

			ctx, err := s.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())
			Expect(srv.DeleteRun(ctx, runs[0].ID)).To(Succeed())
			_, err = store.Rollback(ctx)
			Expect(err).To(BeNil())

			Expect(countRuns()).To(Equal(3))
			_, err = srv.GetRun(context.TODO(), runs[0].ID)
			Expect(err).To(BeNil())
		})

		It("returns not found for unknown runs", func() {
			id := uuid.New()

			_, err := srv.GetRun(context.TODO(), id)
			var notFound *service.ErrResourceNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())

			err = srv.DeleteRun(context.TODO(), id)
			Expect(errors.As(err, &notFound)).To(BeTrue())
		})

		AfterEach(func() {
			gormdb.Exec("DELETE FROM runs;")
		})
	})

	Context("without a store", func() {
		It("computes but refuses to persist", func() {
			calc := service.NewComputationService(nil, solvers.NewEngine())

			run, err := calc.Compute(context.TODO(), service.ComputeForm{Model: estimation.ModelRadial, Input: illustrativeInput()})
			Expect(err).To(BeNil())
			Expect(run.Model).To(Equal("Radial"))

			_, err = calc.Compute(context.TODO(), service.ComputeForm{Model: estimation.ModelRadial, Input: illustrativeInput(), Persist: true})
			var disabled *service.ErrPersistenceDisabled
			Expect(errors.As(err, &disabled)).To(BeTrue())

			_, err = calc.ListRuns(context.TODO(), service.RunFilter{})
			Expect(errors.As(err, &disabled)).To(BeTrue())
		})
	})
})
