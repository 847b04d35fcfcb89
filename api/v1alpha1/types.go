// Package v1alpha1 holds the JSON payloads of the planner HTTP API.
package v1alpha1

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/kubev2v/fracture-planner/internal/estimation"
	"github.com/kubev2v/fracture-planner/internal/units"
)

// Input is the parameter set of a request, in the request's unit system.
// Pointers distinguish a missing field from an explicit zero.
type Input struct {
	YoungModulus       *float64 `json:"youngModulus" validate:"required"`
	PoissonRatio       *float64 `json:"poissonRatio" validate:"required"`
	SigmaMin           *float64 `json:"sigmaMin" validate:"required"`
	LeakoffCoefficient *float64 `json:"leakoffCoefficient" validate:"required"`
	Viscosity          *float64 `json:"viscosity" validate:"required"`
	Rate               *float64 `json:"rate" validate:"required"`
	Height             *float64 `json:"height" validate:"required"`
	Toughness          *float64 `json:"toughness" validate:"required"`
	Time               *float64 `json:"time" validate:"required"`
	PressureLimit      *float64 `json:"pressureLimit,omitempty"`
	Depth              *float64 `json:"depth,omitempty"`
}

// ComputationRequest is the body of POST /api/v1/computations.
type ComputationRequest struct {
	Name       string `json:"name,omitempty" validate:"omitempty,max=255,run_name"`
	Model      string `json:"model" validate:"required,model"`
	UnitSystem string `json:"unitSystem,omitempty" validate:"omitempty,unit_system"`
	Persist    *bool  `json:"persist,omitempty"`
	Input      *Input `json:"input" validate:"required"`
}

func (c *ComputationRequest) Bind(r *http.Request) error {
	return nil
}

// CompareRequest is the body of POST /api/v1/computations/compare.
type CompareRequest struct {
	UnitSystem string `json:"unitSystem,omitempty" validate:"omitempty,unit_system"`
	Input      *Input `json:"input" validate:"required"`
}

func (c *CompareRequest) Bind(r *http.Request) error {
	return nil
}

// Run is a computation dump. Result quantities are in UnitSystem.
type Run struct {
	ID          string                      `json:"id"`
	Name        string                      `json:"name,omitempty"`
	CreatedAt   time.Time                   `json:"createdAt"`
	Persisted   bool                        `json:"persisted"`
	UnitSystem  string                      `json:"unitSystem"`
	Units       units.Labels                `json:"units"`
	Input       estimation.Input            `json:"input"`
	Result      estimation.Result           `json:"result"`
	Sensitivity []estimation.SensitivityRow `json:"sensitivity"`
}

func (Run) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type RunSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	Model      string    `json:"model"`
	UnitSystem string    `json:"unitSystem"`
	Regime     string    `json:"regime"`
	Warnings   int       `json:"warnings"`
}

type RunList struct {
	Runs  []RunSummary `json:"runs"`
	Count int          `json:"count"`
}

func (RunList) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// ModelResult is one entry of a comparison; Error is set instead of Result
// when the model could not produce a result.
type ModelResult struct {
	Model  string             `json:"model"`
	Result *estimation.Result `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

type Comparison struct {
	UnitSystem string        `json:"unitSystem"`
	Units      units.Labels  `json:"units"`
	Results    []ModelResult `json:"results"`
}

func (Comparison) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type ModelInfo struct {
	Name            string  `json:"name"`
	ProfileExponent float64 `json:"profileExponent"`
	Description     string  `json:"description"`
}

type ModelList struct {
	Models []ModelInfo `json:"models"`
}

func (ModelList) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type Info struct {
	GitCommit   string `json:"gitCommit"`
	VersionName string `json:"versionName"`
}

func (Info) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type Health struct {
	Status string `json:"status"`
}

func (Health) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// Error is the body of every non 2xx response.
type Error struct {
	Message   string  `json:"message"`
	RequestId *string `json:"requestId,omitempty"`

	StatusCode int `json:"-"`
}

func (e Error) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}
