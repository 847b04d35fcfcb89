package types

import (
	"github.com/kubev2v/fracture-planner/internal/estimation"
	"github.com/kubev2v/fracture-planner/internal/store/model"
	"github.com/kubev2v/fracture-planner/internal/units"
)

type ReportRenderer interface {
	Render(data *ReportData) ([]byte, error)
	SupportedFormat() ReportFormat
	ContentType() string
}

type RunProcessor interface {
	ProcessRun(run *model.Run) (*ReportData, error)
}

type ReportFormat string

const (
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatHTML ReportFormat = "html"
	ReportFormatXLSX ReportFormat = "xlsx"
)

type ReportOptions struct {
	Format         ReportFormat
	IncludeHistory bool
	IncludeProfile bool
}

// ReportData is a run prepared for display: quantities are expressed in the
// unit system the run was requested in.
type ReportData struct {
	Run         *model.Run
	UnitSystem  units.System
	Labels      units.Labels
	Result      estimation.Result
	Sensitivity []estimation.SensitivityRow
	Inputs      []Quantity
	Outputs     []Quantity
	Options     ReportOptions
	Timestamps  ReportTimestamps
}

// Quantity is one labelled value of the input or result summary.
type Quantity struct {
	Name  string
	Value float64
	Unit  string
}

type ReportTimestamps struct {
	Generated     string
	GeneratedTime string
	RunCreated    string
}
