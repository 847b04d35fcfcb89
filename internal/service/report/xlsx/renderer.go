package xlsx

import (
	"fmt"

	"github.com/kubev2v/fracture-planner/internal/service/report/types"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary     = "Summary"
	SheetSensitivity = "Sensitivity"
	SheetHistory     = "History"
	SheetProfile     = "Profile"

	defaultSheet = "Sheet1"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatXLSX
}

func (r *Renderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render writes one workbook with a summary sheet, the sensitivity table and,
// when requested, the time history and width profile as numeric columns.
func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(defaultSheet, SheetSummary); err != nil {
		return nil, errors.Wrap(err, "failed to rename default sheet")
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create header style")
	}
	w := &sheetWriter{f: f, header: header}

	w.summary(data)
	w.sensitivity(data)
	if data.Options.IncludeHistory {
		w.history(data)
	}
	if data.Options.IncludeProfile {
		w.profile(data)
	}
	if w.err != nil {
		return nil, w.err
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "failed to write workbook")
	}
	return buf.Bytes(), nil
}

// sheetWriter keeps the first error so the sheet builders stay linear.
type sheetWriter struct {
	f      *excelize.File
	header int
	err    error
}

func (w *sheetWriter) row(sheet string, n int, values ...interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		w.err = errors.Wrapf(err, "failed to write row %d of %s", n, sheet)
	}
}

func (w *sheetWriter) headerRow(sheet string, n int, values ...interface{}) {
	w.row(sheet, n, values...)
	if w.err != nil {
		return
	}
	first, _ := excelize.CoordinatesToCellName(1, n)
	last, _ := excelize.CoordinatesToCellName(len(values), n)
	if err := w.f.SetCellStyle(sheet, first, last, w.header); err != nil {
		w.err = errors.Wrapf(err, "failed to style header of %s", sheet)
	}
}

func (w *sheetWriter) newSheet(name string) {
	if w.err != nil {
		return
	}
	if _, err := w.f.NewSheet(name); err != nil {
		w.err = errors.Wrapf(err, "failed to create sheet %s", name)
	}
}

func (w *sheetWriter) summary(data *types.ReportData) {
	n := 1
	w.headerRow(SheetSummary, n, "Field", "Value")
	n++
	w.row(SheetSummary, n, "Run ID", data.Run.ID.String())
	n++
	w.row(SheetSummary, n, "Name", data.Run.Name)
	n++
	w.row(SheetSummary, n, "Created At", data.Timestamps.RunCreated)
	n++
	w.row(SheetSummary, n, "Model", string(data.Result.Model))
	n++
	w.row(SheetSummary, n, "Unit System", string(data.UnitSystem))
	n++
	w.row(SheetSummary, n, "Regime", string(data.Result.Regime))
	n += 2

	w.headerRow(SheetSummary, n, "Input", "Value", "Unit")
	for _, q := range data.Inputs {
		n++
		w.row(SheetSummary, n, q.Name, q.Value, q.Unit)
	}
	n += 2

	w.headerRow(SheetSummary, n, "Result", "Value", "Unit")
	for _, q := range data.Outputs {
		n++
		w.row(SheetSummary, n, q.Name, q.Value, q.Unit)
	}
	n += 2

	w.headerRow(SheetSummary, n, "Warnings")
	for _, msg := range data.Result.Warnings {
		n++
		w.row(SheetSummary, n, msg)
	}

	if w.err == nil {
		w.err = w.f.SetColWidth(SheetSummary, "A", "A", 30)
	}
}

func (w *sheetWriter) sensitivity(data *types.ReportData) {
	w.newSheet(SheetSensitivity)
	w.headerRow(SheetSensitivity, 1, "Parameter", "Factor", "Length Change (%)", "Width Change (%)", "Pressure Change (%)")
	for i, row := range data.Sensitivity {
		w.row(SheetSensitivity, i+2, row.Parameter, row.Factor, row.LengthChange, row.WidthChange, row.PressureChange)
	}
}

func (w *sheetWriter) history(data *types.ReportData) {
	l := data.Labels
	w.newSheet(SheetHistory)
	w.headerRow(SheetHistory, 1,
		fmt.Sprintf("Time (%s)", l.Time),
		fmt.Sprintf("Length (%s)", l.Length),
		fmt.Sprintf("Width (%s)", l.Width),
		fmt.Sprintf("Net Pressure (%s)", l.Pressure),
	)
	for i, h := range data.Result.History {
		w.row(SheetHistory, i+2, h.Time, h.Length, h.Width, h.NetPressure)
	}
}

func (w *sheetWriter) profile(data *types.ReportData) {
	l := data.Labels
	w.newSheet(SheetProfile)
	w.headerRow(SheetProfile, 1, fmt.Sprintf("Position (%s)", l.Length), fmt.Sprintf("Width (%s)", l.Width))
	for i, p := range data.Result.Profile {
		w.row(SheetProfile, i+2, p.Position, p.Width)
	}
}
