package store_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kubev2v/fracture-planner/internal/estimation"
	"github.com/kubev2v/fracture-planner/internal/store"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("run store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		s, gormdb = newTestDB()
	})

	AfterAll(func() {
		s.Close()
	})

	Context("create and get", func() {
		It("round-trips the stored dump", func() {
			run := newRun(estimation.ModelPKN, estimation.RegimeViscosity, "PKN: fracture length is below twice the height")

			created, err := s.Run().Create(context.TODO(), run)
			Expect(err).To(BeNil())
			Expect(created.ID).To(Equal(run.ID))

			got, err := s.Run().Get(context.TODO(), run.ID)
			Expect(err).To(BeNil())
			Expect(got.Model).To(Equal("PKN"))
			Expect(got.UnitSystem).To(Equal("si"))
			Expect(got.Regime).To(Equal("Viscosity"))
			Expect(got.Warnings).To(Equal(1))
			Expect(got.Input.Data.YoungModulus).To(Equal(3e10))
			Expect(got.Result.Data.Length).To(Equal(150.0))
			Expect(got.Result.Data.History).To(HaveLen(1))
			Expect(got.Result.Data.Profile).To(HaveLen(1))
			Expect(got.Sensitivity.Data).To(HaveLen(1))
			Expect(got.Sensitivity.Data[0].Parameter).To(Equal(estimation.ParamRate))
			Expect(got.CreatedAt).To(BeTemporally("~", run.CreatedAt, time.Second))
		})

		It("assigns an id when missing", func() {
			run := newRun(estimation.ModelKGD, estimation.RegimeToughness)
			run.ID = uuid.Nil

			created, err := s.Run().Create(context.TODO(), run)
			Expect(err).To(BeNil())
			Expect(created.ID).NotTo(Equal(uuid.Nil))
		})

		It("rejects a duplicate id", func() {
			run := newRun(estimation.ModelKGD, estimation.RegimeToughness)

			_, err := s.Run().Create(context.TODO(), run)
			Expect(err).To(BeNil())

			_, err = s.Run().Create(context.TODO(), run)
			Expect(err).To(MatchError(store.ErrDuplicateKey))
		})

		It("returns not found for an unknown id", func() {
			_, err := s.Run().Get(context.TODO(), uuid.New())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})

		AfterEach(func() {
			gormdb.Exec("DELETE from runs;")
		})
	})

	Context("list", func() {
		BeforeEach(func() {
			for _, m := range []estimation.Model{estimation.ModelPKN, estimation.ModelKGD, estimation.ModelPKN} {
				run := newRun(m, estimation.RegimeViscosity)
				run.CreatedAt = time.Now().Add(-time.Duration(len(m)) * time.Minute)
				_, err := s.Run().Create(context.TODO(), run)
				Expect(err).To(BeNil())
			}
			run := newRun(estimation.ModelRadial, estimation.RegimeToughness, "warn")
			_, err := s.Run().Create(context.TODO(), run)
			Expect(err).To(BeNil())
		})

		It("lists everything newest first without filter and options", func() {
			runs, err := s.Run().List(context.TODO(), nil, nil)
			Expect(err).To(BeNil())
			Expect(runs).To(HaveLen(4))
			for i := 1; i < len(runs); i++ {
				Expect(runs[i-1].CreatedAt).To(BeTemporally(">=", runs[i].CreatedAt))
			}
		})

		It("filters by model", func() {
			runs, err := s.Run().List(context.TODO(), store.NewRunQueryFilter().ByModel("PKN"), nil)
			Expect(err).To(BeNil())
			Expect(runs).To(HaveLen(2))
			for _, r := range runs {
				Expect(r.Model).To(Equal("PKN"))
			}
		})

		It("filters by regime and warnings", func() {
			runs, err := s.Run().List(context.TODO(), store.NewRunQueryFilter().ByRegime("Toughness").WithWarnings(), nil)
			Expect(err).To(BeNil())
			Expect(runs).To(HaveLen(1))
			Expect(runs[0].Model).To(Equal("Radial"))
		})

		It("sorts and limits", func() {
			opts := store.NewRunQueryOptions().WithSortOrder(store.SortByModel).WithLimit(2)
			runs, err := s.Run().List(context.TODO(), nil, opts)
			Expect(err).To(BeNil())
			Expect(runs).To(HaveLen(2))
			Expect(runs[0].Model).To(Equal("KGD"))
			Expect(runs[1].Model).To(Equal("PKN"))
		})

		It("counts with a filter", func() {
			count, err := s.Run().Count(context.TODO(), store.NewRunQueryFilter().ByModel("KGD"))
			Expect(err).To(BeNil())
			Expect(count).To(Equal(int64(1)))
		})

		AfterEach(func() {
			gormdb.Exec("DELETE from runs;")
		})
	})

	Context("delete", func() {
		It("deletes an existing run", func() {
			run := newRun(estimation.ModelPKN, estimation.RegimeViscosity)
			_, err := s.Run().Create(context.TODO(), run)
			Expect(err).To(BeNil())

			Expect(s.Run().Delete(context.TODO(), run.ID)).To(Succeed())

			count := 0
			Expect(gormdb.Raw("SELECT COUNT(*) from runs;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(0))
		})

		It("returns not found for an unknown run", func() {
			err := s.Run().Delete(context.TODO(), uuid.New())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})
})
