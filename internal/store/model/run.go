package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/kubev2v/fracture-planner/internal/estimation"
)

// Run is the persisted dump of one computation: when it ran, the unit system
// the caller worked in, the input exactly as given, the SI result and the
// sensitivity rows.
type Run struct {
	ID          uuid.UUID                               `gorm:"primaryKey;column:id;type:VARCHAR(255);" json:"id"`
	CreatedAt   time.Time                               `gorm:"not null;index" json:"createdAt"`
	Name        string                                  `gorm:"type:VARCHAR(255)" json:"name,omitempty"`
	Model       string                                  `gorm:"not null;type:VARCHAR(32);index:runs_model_idx" json:"model"`
	UnitSystem  string                                  `gorm:"not null;type:VARCHAR(16)" json:"unitSystem"`
	Regime      string                                  `gorm:"type:VARCHAR(32);index:runs_regime_idx" json:"regime"`
	Warnings    int                                     `gorm:"not null;default:0" json:"-"`
	Input       *JSONField[estimation.Input]            `gorm:"type:jsonb;not null" json:"input"`
	Result      *JSONField[estimation.Result]           `gorm:"type:jsonb;not null" json:"result"`
	Sensitivity *JSONField[[]estimation.SensitivityRow] `gorm:"type:jsonb" json:"sensitivity"`
}

type RunList []Run

// NewRun assembles a run from a finished computation. The regime and warning
// count are denormalized so they can be filtered and aggregated in SQL.
func NewRun(name, unitSystem string, in estimation.Input, res estimation.Result, rows []estimation.SensitivityRow) Run {
	return Run{
		ID:          uuid.New(),
		CreatedAt:   time.Now().UTC(),
		Name:        name,
		Model:       string(res.Model),
		UnitSystem:  unitSystem,
		Regime:      string(res.Regime),
		Warnings:    len(res.Warnings),
		Input:       MakeJSONField(in),
		Result:      MakeJSONField(res),
		Sensitivity: MakeJSONField(rows),
	}
}

func (r Run) String() string {
	val, _ := json.Marshal(r)
	return string(val)
}
