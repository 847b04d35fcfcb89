package solvers

import "github.com/kubev2v/fracture-planner/internal/estimation"

// NewEngine returns an estimation.Engine with the PKN, KGD and Radial solvers registered.
func NewEngine(opts ...estimation.EngineOption) *estimation.Engine {
	engine := estimation.NewEngine(opts...)
	engine.Register(NewPKN())
	engine.Register(NewKGD())
	engine.Register(NewRadial())
	return engine
}
