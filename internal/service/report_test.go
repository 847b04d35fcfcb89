package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/kubev2v/fracture-planner/internal/estimation"
	"github.com/kubev2v/fracture-planner/internal/estimation/solvers"
	"github.com/kubev2v/fracture-planner/internal/service"
	"github.com/kubev2v/fracture-planner/internal/service/report/xlsx"
	"github.com/kubev2v/fracture-planner/internal/store"
	"github.com/kubev2v/fracture-planner/internal/store/model"
	"github.com/kubev2v/fracture-planner/internal/units"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"
)

var _ = Describe("report service", Ordered, func() {
	var (
		s      store.Store
		srv    *service.ReportService
		run    *model.Run
		stored *model.Run
	)

	BeforeAll(func() {
		s, _ = newTestStore()
		srv = service.NewReportService(s)

		calc := service.NewComputationService(s, solvers.NewEngine())
		var err error
		run, err = calc.Compute(context.TODO(), service.ComputeForm{
			Name:       "<script>alert(1)</script>",
			Model:      estimation.ModelPKN,
			UnitSystem: units.Field,
			Input:      units.Field.InputFromSI(illustrativeInput()),
		})
		Expect(err).To(BeNil())

		stored, err = calc.Compute(context.TODO(), service.ComputeForm{
			Model:   estimation.ModelKGD,
			Input:   illustrativeInput(),
			Persist: true,
		})
		Expect(err).To(BeNil())
	})

	AfterAll(func() {
		s.Close()
	})

	It("lists the supported formats", func() {
		Expect(srv.SupportedFormats()).To(Equal([]service.ReportFormat{
			service.ReportFormatCSV,
			service.ReportFormatHTML,
			service.ReportFormatXLSX,
		}))
	})

	Context("csv", func() {
		It("renders every section in display units", func() {
			rep, err := srv.Render(run, service.ReportOptions{Format: service.ReportFormatCSV, IncludeHistory: true, IncludeProfile: true})
			Expect(err).To(BeNil())
			Expect(rep.ContentType).To(Equal("text/csv"))
			Expect(rep.Filename).To(HaveSuffix(".csv"))

			content := string(rep.Content)
			Expect(content).To(ContainSubstring("HYDRAULIC FRACTURE GEOMETRY REPORT"))
			Expect(content).To(ContainSubstring("Unit System,field"))
			Expect(content).To(ContainSubstring("Fracture length,"))
			Expect(content).To(ContainSubstring(",ft"))
			Expect(content).To(ContainSubstring("SENSITIVITY"))
			Expect(content).To(ContainSubstring("rate,2,"))
			Expect(content).To(ContainSubstring("Time (min),Length (ft),Width (in),Net Pressure (psi)"))
			Expect(content).To(ContainSubstring("WIDTH PROFILE"))
		})

		It("leaves out history and profile unless asked", func() {
			rep, err := srv.Render(run, service.ReportOptions{Format: service.ReportFormatCSV})
			Expect(err).To(BeNil())
			Expect(string(rep.Content)).NotTo(ContainSubstring("TIME HISTORY"))
			Expect(string(rep.Content)).NotTo(ContainSubstring("WIDTH PROFILE"))
		})
	})

	Context("html", func() {
		It("escapes user supplied text", func() {
			rep, err := srv.Render(run, service.ReportOptions{Format: service.ReportFormatHTML})
			Expect(err).To(BeNil())
			Expect(rep.ContentType).To(HavePrefix("text/html"))

			content := string(rep.Content)
			Expect(content).To(ContainSubstring("Hydraulic fracture geometry: PKN"))
			Expect(content).NotTo(ContainSubstring("<script>alert(1)</script>"))
			Expect(content).To(ContainSubstring("&lt;script&gt;"))
			Expect(strings.Count(content, "<li class=\"warning\">")).To(Equal(len(run.Result.Data.Warnings)))
		})
	})

	Context("xlsx", func() {
		It("writes one sheet per table", func() {
			rep, err := srv.Render(run, service.ReportOptions{Format: service.ReportFormatXLSX, IncludeHistory: true, IncludeProfile: true})
			Expect(err).To(BeNil())

			f, err := excelize.OpenReader(bytes.NewReader(rep.Content))
			Expect(err).To(BeNil())
			defer f.Close()

			Expect(f.GetSheetList()).To(Equal([]string{xlsx.SheetSummary, xlsx.SheetSensitivity, xlsx.SheetHistory, xlsx.SheetProfile}))

			rows, err := f.GetRows(xlsx.SheetSensitivity)
			Expect(err).To(BeNil())
			Expect(rows).To(HaveLen(9))
			Expect(rows[0][0]).To(Equal("Parameter"))

			rows, err = f.GetRows(xlsx.SheetHistory)
			Expect(err).To(BeNil())
			Expect(rows).To(HaveLen(estimation.HistoryPoints + 1))

			rows, err = f.GetRows(xlsx.SheetProfile)
			Expect(err).To(BeNil())
			Expect(rows).To(HaveLen(estimation.ProfileSegments + 2))
		})
	})

	Context("errors", func() {
		It("rejects an unknown format", func() {
			_, err := srv.Render(run, service.ReportOptions{Format: "pdf"})
			var invalid *service.ErrInvalidRequest
			Expect(errors.As(err, &invalid)).To(BeTrue())
		})

		It("renders a stored run", func() {
			rep, err := srv.GenerateReport(context.TODO(), stored.ID, service.ReportOptions{Format: service.ReportFormatCSV})
			Expect(err).To(BeNil())
			Expect(string(rep.Content)).To(ContainSubstring("Model,KGD"))
		})

		It("returns not found for an unknown run", func() {
			_, err := srv.GenerateReport(context.TODO(), uuid.New(), service.ReportOptions{Format: service.ReportFormatCSV})
			var notFound *service.ErrResourceNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())
		})
	})
})
