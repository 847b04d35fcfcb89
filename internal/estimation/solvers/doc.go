// Package solvers provides the concrete propagation Solver implementations for the estimation engine.
//
// Each solver combines a viscosity-limited (no-leakoff) growth law and a leakoff-limited growth
// law by harmonic matching, then closes the net pressure and widths from the matched extent.
// The three models differ only by their Coefficients table and by which dimension (height,
// plane strain, radial symmetry) enters the closure.
//
// References:
//
//	Perkins TK, Kern LR (1961) Widths of hydraulic fractures. JPT 13(9) 937-949
//	Nordgren RP (1972) Propagation of a vertical hydraulic fracture. SPEJ 12(4) 306-314
//	Geertsma J, de Klerk F (1969) A rapid method of predicting width and extent of hydraulically induced fractures. JPT 21(12) 1571-1581
package solvers
