package v1alpha1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/kubev2v/fracture-planner/api/v1alpha1"
	"github.com/kubev2v/fracture-planner/internal/config"
	"github.com/kubev2v/fracture-planner/internal/estimation"
	"github.com/kubev2v/fracture-planner/internal/estimation/solvers"
	handlers "github.com/kubev2v/fracture-planner/internal/handlers/v1alpha1"
	"github.com/kubev2v/fracture-planner/internal/service"
	"github.com/kubev2v/fracture-planner/internal/store"
	"github.com/kubev2v/fracture-planner/pkg/middleware"
	"github.com/kubev2v/fracture-planner/pkg/requestid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

const illustrativeBody = `{
	"model": "%s",
	"persist": %t,
	"input": {
		"youngModulus": 3.0e10,
		"poissonRatio": 0.25,
		"sigmaMin": 3.0e7,
		"leakoffCoefficient": 5e-5,
		"viscosity": 0.1,
		"rate": 0.05,
		"height": 30,
		"toughness": 1e6,
		"time": 1800
	}
}`

func computationBody(model string, persist bool) string {
	return fmt.Sprintf(illustrativeBody, model, persist)
}

var _ = Describe("v1alpha1 handlers", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		router chi.Router
	)

	BeforeAll(func() {
		cfg := config.NewDefault()
		cfg.Database.Type = "sqlite"
		cfg.Database.Name = ":memory:"

		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())
		s = store.NewStore(db)
		Expect(s.InitialMigration(context.Background())).To(Succeed())
		gormdb = db

		h := handlers.NewServiceHandler(
			service.NewComputationService(s, solvers.NewEngine()),
			service.NewReportService(s),
		)
		router = chi.NewRouter()
		router.Use(middleware.RequestID)
		h.RegisterRoutes(router)
	})

	AfterAll(func() {
		s.Close()
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set(requestid.Header, "test-request")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	decodeError := func(rec *httptest.ResponseRecorder) v1alpha1.Error {
		var body v1alpha1.Error
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body.RequestId).NotTo(BeNil())
		Expect(*body.RequestId).To(Equal("test-request"))
		return body
	}

	createRun := func(model string) v1alpha1.Run {
		rec := do(http.MethodPost, "/api/v1/computations", computationBody(model, true))
		Expect(rec.Code).To(Equal(http.StatusCreated))
		var run v1alpha1.Run
		Expect(json.Unmarshal(rec.Body.Bytes(), &run)).To(Succeed())
		return run
	}

	Context("health and info", func() {
		It("reports healthy", func() {
			rec := do(http.MethodGet, "/health", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`"status":"ok"`))
		})

		It("lists the models", func() {
			rec := do(http.MethodGet, "/api/v1/models", "")
			Expect(rec.Code).To(Equal(http.StatusOK))

			var list v1alpha1.ModelList
			Expect(json.Unmarshal(rec.Body.Bytes(), &list)).To(Succeed())
			Expect(list.Models).To(HaveLen(3))
			Expect(list.Models[0].Name).To(Equal("PKN"))
			Expect(list.Models[0].ProfileExponent).To(Equal(0.25))
			Expect(list.Models[1].ProfileExponent).To(Equal(0.5))
		})
	})

	Context("computations", func() {
		It("computes and stores a run", func() {
			run := createRun("pkn")

			Expect(run.Persisted).To(BeTrue())
			Expect(run.UnitSystem).To(Equal("si"))
			Expect(run.Result.Model).To(Equal(estimation.ModelPKN))
			Expect(run.Result.Length).To(BeNumerically("~", 163.4, 0.5))
			Expect(run.Result.History).To(HaveLen(50))
			Expect(run.Result.Profile).To(HaveLen(51))
			Expect(run.Sensitivity).To(HaveLen(8))

			count := 0
			Expect(gormdb.Raw("SELECT COUNT(*) FROM runs;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(1))
		})

		It("computes without storing", func() {
			rec := do(http.MethodPost, "/api/v1/computations", computationBody("radial", false))
			Expect(rec.Code).To(Equal(http.StatusOK))

			count := 0
			Expect(gormdb.Raw("SELECT COUNT(*) FROM runs;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(0))
		})

		It("returns results in field units when asked", func() {
			body := `{"model":"kgd","unitSystem":"field","persist":false,"input":{
				"youngModulus":4.35e6,"poissonRatio":0.25,"sigmaMin":4350,"leakoffCoefficient":0.0008,
				"viscosity":100,"rate":20,"height":100,"toughness":1000,"time":30}}`
			rec := do(http.MethodPost, "/api/v1/computations", body)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var run v1alpha1.Run
			Expect(json.Unmarshal(rec.Body.Bytes(), &run)).To(Succeed())
			Expect(run.UnitSystem).To(Equal("field"))
			Expect(run.Units.Length).To(Equal("ft"))
			Expect(run.Input.Height).To(Equal(100.0))
		})

		It("rejects a request with missing fields", func() {
			rec := do(http.MethodPost, "/api/v1/computations", `{"model":"pkn","input":{"youngModulus":3e10}}`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			body := decodeError(rec)
			Expect(body.Message).To(ContainSubstring("input.rate is required"))
		})

		It("rejects an unsupported model", func() {
			rec := do(http.MethodPost, "/api/v1/computations", computationBody("p3d", false))
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeError(rec).Message).To(ContainSubstring("not a supported model"))
		})

		It("rejects physically invalid input", func() {
			body := strings.Replace(computationBody("pkn", true), `"poissonRatio": 0.25`, `"poissonRatio": 0.5`, 1)
			rec := do(http.MethodPost, "/api/v1/computations", body)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeError(rec).Message).To(ContainSubstring("poissonRatio"))
		})

		It("reports a degenerate result as unprocessable", func() {
			body := strings.Replace(computationBody("pkn", false), `"youngModulus": 3.0e10`, `"youngModulus": 1e300`, 1)
			body = strings.Replace(body, `"rate": 0.05`, `"rate": 1e120`, 1)
			rec := do(http.MethodPost, "/api/v1/computations", body)
			Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
			decodeError(rec)
		})

		It("rejects a body that is not JSON", func() {
			rec := do(http.MethodPost, "/api/v1/computations", `{"model":`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			decodeError(rec)
		})

		It("compares every model", func() {
			body := strings.Replace(computationBody("pkn", false), `"model": "pkn",`, "", 1)
			rec := do(http.MethodPost, "/api/v1/computations/compare", body)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var cmp v1alpha1.Comparison
			Expect(json.Unmarshal(rec.Body.Bytes(), &cmp)).To(Succeed())
			Expect(cmp.Results).To(HaveLen(3))
			for _, r := range cmp.Results {
				Expect(r.Error).To(BeEmpty())
				Expect(r.Result).NotTo(BeNil())
			}
		})

		AfterEach(func() {
			gormdb.Exec("DELETE FROM runs;")
		})
	})

	Context("runs", func() {
		It("lists, fetches and deletes runs", func() {
			first := createRun("pkn")
			createRun("kgd")

			rec := do(http.MethodGet, "/api/v1/runs", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			var list v1alpha1.RunList
			Expect(json.Unmarshal(rec.Body.Bytes(), &list)).To(Succeed())
			Expect(list.Count).To(Equal(2))

			rec = do(http.MethodGet, "/api/v1/runs?model=kgd", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(json.Unmarshal(rec.Body.Bytes(), &list)).To(Succeed())
			Expect(list.Count).To(Equal(1))
			Expect(list.Runs[0].Model).To(Equal("KGD"))

			rec = do(http.MethodGet, "/api/v1/runs/"+first.ID, "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			var got v1alpha1.Run
			Expect(json.Unmarshal(rec.Body.Bytes(), &got)).To(Succeed())
			Expect(got.ID).To(Equal(first.ID))
			Expect(got.Result.Length).To(Equal(first.Result.Length))

			rec = do(http.MethodDelete, "/api/v1/runs/"+first.ID, "")
			Expect(rec.Code).To(Equal(http.StatusNoContent))

			rec = do(http.MethodGet, "/api/v1/runs/"+first.ID, "")
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			decodeError(rec)
		})

		It("rejects a bad id and a bad limit", func() {
			rec := do(http.MethodGet, "/api/v1/runs/not-a-uuid", "")
			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			rec = do(http.MethodGet, "/api/v1/runs?limit=-3", "")
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns not found for an unknown run", func() {
			rec := do(http.MethodDelete, "/api/v1/runs/"+uuid.NewString(), "")
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})

		It("renders a report", func() {
			run := createRun("radial")

			rec := do(http.MethodGet, "/api/v1/runs/"+run.ID+"/report?format=csv", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(Equal("text/csv"))
			Expect(rec.Header().Get("Content-Disposition")).To(ContainSubstring(".csv"))
			Expect(rec.Body.String()).To(ContainSubstring("HYDRAULIC FRACTURE GEOMETRY REPORT"))

			rec = do(http.MethodGet, "/api/v1/runs/"+run.ID+"/report?format=xlsx", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.Len()).To(BeNumerically(">", 0))
		})

		It("rejects an unknown report format", func() {
			run := createRun("radial")

			rec := do(http.MethodGet, "/api/v1/runs/"+run.ID+"/report?format=pdf", "")
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeError(rec).Message).To(ContainSubstring("report format"))
		})

		AfterEach(func() {
			gormdb.Exec("DELETE FROM runs;")
		})
	})
})
