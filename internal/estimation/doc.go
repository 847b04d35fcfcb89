// Package estimation defines the analytical hydraulic-fracture propagation engine.
//
// Each propagation model (PKN, KGD, Radial) is encapsulated in one Solver, and solvers are
// registered once into the Engine, which dispatches Compute and Sensitivity requests by Model.
// All quantities flowing through this package are SI: Pa, m, s, m³/s, Pa·s, m/√s and Pa·√m.
package estimation
