package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/kubev2v/fracture-planner/internal/service/report/types"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatCSV
}

func (r *Renderer) ContentType() string {
	return "text/csv"
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	var csvRows [][]string

	csvRows = append(csvRows, []string{"HYDRAULIC FRACTURE GEOMETRY REPORT"})
	csvRows = append(csvRows, []string{fmt.Sprintf("Generated: %s at %s",
		data.Timestamps.Generated, data.Timestamps.GeneratedTime)})
	csvRows = append(csvRows, []string{""})

	csvRows = r.addRunInformation(csvRows, data)
	csvRows = r.addQuantities(csvRows, "INPUT PARAMETERS", data.Inputs)
	csvRows = r.addQuantities(csvRows, "RESULTS", data.Outputs)
	csvRows = r.addWarnings(csvRows, data.Result.Warnings)
	csvRows = r.addSensitivity(csvRows, data)

	if data.Options.IncludeHistory {
		csvRows = r.addHistory(csvRows, data)
	}
	if data.Options.IncludeProfile {
		csvRows = r.addProfile(csvRows, data)
	}

	return r.convertRowsToCSV(csvRows)
}

func (r *Renderer) addRunInformation(csvRows [][]string, data *types.ReportData) [][]string {
	csvRows = append(csvRows, []string{"RUN"})
	csvRows = append(csvRows, []string{""})
	csvRows = append(csvRows, []string{"Field", "Value"})
	csvRows = append(csvRows, []string{"Run ID", data.Run.ID.String()})
	if data.Run.Name != "" {
		csvRows = append(csvRows, []string{"Name", data.Run.Name})
	}
	csvRows = append(csvRows, []string{"Created At", data.Timestamps.RunCreated})
	csvRows = append(csvRows, []string{"Model", string(data.Result.Model)})
	csvRows = append(csvRows, []string{"Unit System", string(data.UnitSystem)})
	csvRows = append(csvRows, []string{"Regime", string(data.Result.Regime)})
	csvRows = append(csvRows, []string{""})
	return csvRows
}

func (r *Renderer) addQuantities(csvRows [][]string, title string, quantities []types.Quantity) [][]string {
	csvRows = append(csvRows, []string{title})
	csvRows = append(csvRows, []string{""})
	csvRows = append(csvRows, []string{"Quantity", "Value", "Unit"})
	for _, q := range quantities {
		csvRows = append(csvRows, []string{q.Name, formatFloat(q.Value), q.Unit})
	}
	csvRows = append(csvRows, []string{""})
	return csvRows
}

func (r *Renderer) addWarnings(csvRows [][]string, warnings []string) [][]string {
	csvRows = append(csvRows, []string{"WARNINGS"})
	csvRows = append(csvRows, []string{""})
	if len(warnings) == 0 {
		csvRows = append(csvRows, []string{"None"})
	}
	for _, w := range warnings {
		csvRows = append(csvRows, []string{w})
	}
	csvRows = append(csvRows, []string{""})
	return csvRows
}

func (r *Renderer) addSensitivity(csvRows [][]string, data *types.ReportData) [][]string {
	csvRows = append(csvRows, []string{"SENSITIVITY"})
	csvRows = append(csvRows, []string{""})
	csvRows = append(csvRows, []string{"Parameter", "Factor", "Length Change (%)", "Width Change (%)", "Pressure Change (%)"})
	for _, row := range data.Sensitivity {
		csvRows = append(csvRows, []string{
			row.Parameter,
			formatFloat(row.Factor),
			fmt.Sprintf("%.2f", row.LengthChange),
			fmt.Sprintf("%.2f", row.WidthChange),
			fmt.Sprintf("%.2f", row.PressureChange),
		})
	}
	csvRows = append(csvRows, []string{""})
	return csvRows
}

func (r *Renderer) addHistory(csvRows [][]string, data *types.ReportData) [][]string {
	l := data.Labels
	csvRows = append(csvRows, []string{"TIME HISTORY"})
	csvRows = append(csvRows, []string{""})
	csvRows = append(csvRows, []string{
		fmt.Sprintf("Time (%s)", l.Time),
		fmt.Sprintf("Length (%s)", l.Length),
		fmt.Sprintf("Width (%s)", l.Width),
		fmt.Sprintf("Net Pressure (%s)", l.Pressure),
	})
	for _, h := range data.Result.History {
		csvRows = append(csvRows, []string{
			formatFloat(h.Time),
			formatFloat(h.Length),
			formatFloat(h.Width),
			formatFloat(h.NetPressure),
		})
	}
	csvRows = append(csvRows, []string{""})
	return csvRows
}

func (r *Renderer) addProfile(csvRows [][]string, data *types.ReportData) [][]string {
	l := data.Labels
	csvRows = append(csvRows, []string{"WIDTH PROFILE"})
	csvRows = append(csvRows, []string{""})
	csvRows = append(csvRows, []string{
		fmt.Sprintf("Position (%s)", l.Length),
		fmt.Sprintf("Width (%s)", l.Width),
	})
	for _, p := range data.Result.Profile {
		csvRows = append(csvRows, []string{formatFloat(p.Position), formatFloat(p.Width)})
	}
	return csvRows
}

func (r *Renderer) convertRowsToCSV(csvRows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	for _, row := range csvRows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
