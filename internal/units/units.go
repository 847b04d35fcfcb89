// Package units converts computation inputs and results between the SI
// system the estimation core works in and oilfield (field) units.
package units

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/kubev2v/fracture-planner/internal/estimation"
)

var ErrUnknownSystem = errors.New("unknown unit system")

type System string

const (
	SI    System = "si"
	Field System = "field"
)

var Systems = []System{SI, Field}

func (s System) String() string { return string(s) }

// ParseSystem accepts "si"/"metric" and "field"/"imperial". An empty string is SI.
func ParseSystem(v string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "si", "metric":
		return SI, nil
	case "field", "imperial", "oilfield":
		return Field, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSystem, v)
	}
}

type quantity int

const (
	length quantity = iota
	width
	pressure
	volume
	duration
	rate
	viscosity
	leakoff
	toughness
)

const (
	footInMeters   = 0.3048
	inchInMeters   = 0.0254
	psiInPascals   = 6894.757293168361
	barrelInCubicM = 0.158987294928
	minuteInSecond = 60.0
	centipoiseInPa = 1e-3
)

// fieldToSI holds the multiplier taking a field value to SI.
var fieldToSI = map[quantity]float64{
	length:    footInMeters,
	width:     inchInMeters,
	pressure:  psiInPascals,
	volume:    barrelInCubicM,
	duration:  minuteInSecond,
	rate:      barrelInCubicM / minuteInSecond,
	viscosity: centipoiseInPa,
	leakoff:   footInMeters / math.Sqrt(minuteInSecond),
	toughness: psiInPascals * math.Sqrt(inchInMeters),
}

func (s System) toSI(q quantity, v float64) float64 {
	if s != Field {
		return v
	}
	return v * fieldToSI[q]
}

func (s System) fromSI(q quantity, v float64) float64 {
	if s != Field {
		return v
	}
	return v / fieldToSI[q]
}

// InputToSI converts an input expressed in s to SI.
func (s System) InputToSI(in estimation.Input) estimation.Input {
	return estimation.Input{
		YoungModulus:       s.toSI(pressure, in.YoungModulus),
		PoissonRatio:       in.PoissonRatio,
		SigmaMin:           s.toSI(pressure, in.SigmaMin),
		LeakoffCoefficient: s.toSI(leakoff, in.LeakoffCoefficient),
		Viscosity:          s.toSI(viscosity, in.Viscosity),
		Rate:               s.toSI(rate, in.Rate),
		Height:             s.toSI(length, in.Height),
		Toughness:          s.toSI(toughness, in.Toughness),
		Time:               s.toSI(duration, in.Time),
		PressureLimit:      s.toSI(pressure, in.PressureLimit),
		Depth:              s.toSI(length, in.Depth),
	}
}

// InputFromSI converts an SI input to s.
func (s System) InputFromSI(in estimation.Input) estimation.Input {
	return estimation.Input{
		YoungModulus:       s.fromSI(pressure, in.YoungModulus),
		PoissonRatio:       in.PoissonRatio,
		SigmaMin:           s.fromSI(pressure, in.SigmaMin),
		LeakoffCoefficient: s.fromSI(leakoff, in.LeakoffCoefficient),
		Viscosity:          s.fromSI(viscosity, in.Viscosity),
		Rate:               s.fromSI(rate, in.Rate),
		Height:             s.fromSI(length, in.Height),
		Toughness:          s.fromSI(toughness, in.Toughness),
		Time:               s.fromSI(duration, in.Time),
		PressureLimit:      s.fromSI(pressure, in.PressureLimit),
		Depth:              s.fromSI(length, in.Depth),
	}
}

// ResultFromSI returns a copy of res expressed in s. Efficiency, regime and
// warnings are unit free and copied as is.
func (s System) ResultFromSI(res estimation.Result) estimation.Result {
	out := res
	out.Length = s.fromSI(length, res.Length)
	out.NoLeakoffLength = s.fromSI(length, res.NoLeakoffLength)
	out.HighLeakoffLength = s.fromSI(length, res.HighLeakoffLength)
	out.AvgWidth = s.fromSI(width, res.AvgWidth)
	out.MaxWidth = s.fromSI(width, res.MaxWidth)
	out.NetPressure = s.fromSI(pressure, res.NetPressure)
	out.WellborePressure = s.fromSI(pressure, res.WellborePressure)
	out.InjectedVolume = s.fromSI(volume, res.InjectedVolume)
	out.ContainedVolume = s.fromSI(volume, res.ContainedVolume)
	out.LeakedVolume = s.fromSI(volume, res.LeakedVolume)
	out.Warnings = append([]string(nil), res.Warnings...)

	out.History = make([]estimation.TimeStep, len(res.History))
	for i, h := range res.History {
		out.History[i] = estimation.TimeStep{
			Time:        s.fromSI(duration, h.Time),
			Length:      s.fromSI(length, h.Length),
			Width:       s.fromSI(width, h.Width),
			NetPressure: s.fromSI(pressure, h.NetPressure),
		}
	}
	out.Profile = make([]estimation.ProfilePoint, len(res.Profile))
	for i, p := range res.Profile {
		out.Profile[i] = estimation.ProfilePoint{
			Position: s.fromSI(length, p.Position),
			Width:    s.fromSI(width, p.Width),
		}
	}
	return out
}

// Labels names the display unit of each quantity.
type Labels struct {
	Length    string `json:"length"`
	Width     string `json:"width"`
	Pressure  string `json:"pressure"`
	Volume    string `json:"volume"`
	Time      string `json:"time"`
	Rate      string `json:"rate"`
	Viscosity string `json:"viscosity"`
	Leakoff   string `json:"leakoff"`
	Toughness string `json:"toughness"`
}

func (s System) Labels() Labels {
	if s == Field {
		return Labels{
			Length:    "ft",
			Width:     "in",
			Pressure:  "psi",
			Volume:    "bbl",
			Time:      "min",
			Rate:      "bbl/min",
			Viscosity: "cp",
			Leakoff:   "ft/min^0.5",
			Toughness: "psi·in^0.5",
		}
	}
	return Labels{
		Length:    "m",
		Width:     "m",
		Pressure:  "Pa",
		Volume:    "m³",
		Time:      "s",
		Rate:      "m³/s",
		Viscosity: "Pa·s",
		Leakoff:   "m/s^0.5",
		Toughness: "Pa·m^0.5",
	}
}
