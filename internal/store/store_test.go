package store_test

import (
	"context"

	st "github.com/kubev2v/fracture-planner/internal/store"
	"github.com/kubev2v/fracture-planner/internal/estimation"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("Store", Ordered, func() {
	var (
		store  st.Store
		gormDB *gorm.DB
	)

	BeforeAll(func() {
		store, gormDB = newTestDB()
		Expect(store).ToNot(BeNil())
	})

	AfterAll(func() {
		store.Close()
	})

	Context("transaction", func() {
		It("insert a run successfully", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			run, err := store.Run().Create(ctx, newRun(estimation.ModelPKN, estimation.RegimeViscosity))
			Expect(run).ToNot(BeNil())
			Expect(err).To(BeNil())

			// commit
			_, cerr := st.Commit(ctx)
			Expect(cerr).To(BeNil())

			count := 0
			err = gormDB.Raw("SELECT COUNT(*) from runs;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(1))
		})

		It("rollback a run successfully", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			run, err := store.Run().Create(ctx, newRun(estimation.ModelKGD, estimation.RegimeViscosity))
			Expect(run).ToNot(BeNil())
			Expect(err).To(BeNil())

			// count in the same transaction
			runs, err := store.Run().List(ctx, st.NewRunQueryFilter(), nil)
			Expect(err).To(BeNil())
			Expect(runs).To(HaveLen(1))

			// rollback
			_, cerr := st.Rollback(ctx)
			Expect(cerr).To(BeNil())

			count := 0
			err = gormDB.Raw("SELECT COUNT(*) from runs;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(0))
		})

		It("joins an existing transaction", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			nested, err := store.NewTransactionContext(ctx)
			Expect(err).To(BeNil())
			Expect(st.FromContext(nested)).To(BeIdenticalTo(st.FromContext(ctx)))

			_, err = store.Run().Create(nested, newRun(estimation.ModelRadial, estimation.RegimeToughness))
			Expect(err).To(BeNil())

			// the joined transaction leaves the decision to its owner
			_, err = st.Commit(nested)
			Expect(err).To(BeNil())
			_, err = st.Rollback(nested)
			Expect(err).To(BeNil())
			Expect(st.FromContext(ctx)).ToNot(BeNil())

			_, err = st.Rollback(ctx)
			Expect(err).To(BeNil())

			count := 0
			err = gormDB.Raw("SELECT COUNT(*) from runs;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(0))
		})

		It("commit without a transaction is a no-op", func() {
			ctx, err := st.Commit(context.TODO())
			Expect(err).To(BeNil())
			Expect(st.FromContext(ctx)).To(BeNil())
		})

		AfterEach(func() {
			gormDB.Exec("DELETE from runs;")
		})
	})

	Context("statistics", func() {
		It("aggregates runs by model and regime", func() {
			for _, r := range []struct {
				m        estimation.Model
				regime   estimation.Regime
				warnings []string
			}{
				{estimation.ModelPKN, estimation.RegimeViscosity, []string{"short"}},
				{estimation.ModelPKN, estimation.RegimeToughness, nil},
				{estimation.ModelRadial, estimation.RegimeViscosity, nil},
			} {
				_, err := store.Run().Create(context.TODO(), newRun(r.m, r.regime, r.warnings...))
				Expect(err).To(BeNil())
			}

			stats, err := store.Statistics(context.TODO())
			Expect(err).To(BeNil())
			Expect(stats.Total).To(Equal(3))
			Expect(stats.WithWarnings).To(Equal(1))
			Expect(stats.ByModel).To(HaveKeyWithValue("PKN", 2))
			Expect(stats.ByModel).To(HaveKeyWithValue("Radial", 1))
			Expect(stats.ByRegime).To(HaveKeyWithValue("Viscosity", 2))
		})

		It("is empty without runs", func() {
			stats, err := store.Statistics(context.TODO())
			Expect(err).To(BeNil())
			Expect(stats.Total).To(BeZero())
		})

		AfterEach(func() {
			gormDB.Exec("DELETE from runs;")
		})
	})
})
