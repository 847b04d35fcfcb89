package events

import "time"

// RunEvent describes a run that was computed or deleted.
type RunEvent struct {
	RunID      string    `json:"run_id"`
	Name       string    `json:"name,omitempty"`
	Model      string    `json:"model,omitempty"`
	Regime     string    `json:"regime,omitempty"`
	UnitSystem string    `json:"unit_system,omitempty"`
	Warnings   int       `json:"warnings"`
	Persisted  bool      `json:"persisted"`
	Timestamp  time.Time `json:"timestamp"`
}
