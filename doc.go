// Package gridpath finds shortest obstacle-avoiding paths on a 2D grid of
// unit-cost cells with orthogonal moves.
//
// It exposes these entry points:
//
//   - FindPath / Search: run A* to completion on a Grid.
//   - Stepper: iterate the same search one expansion at a time to drive UIs or debugging tools.
//   - Validate: confirm a returned Path stays in bounds and off blocked cells.
//   - NewScatterScenario / NewPolygonScenario: build populated grids with endpoints.
//   - SolveAll: solve many independent grids on a worker pool.
//
// Frontier ties on f = g + h are broken by insertion order, so a fixed grid
// always yields the same path even when several shortest paths exist.
// An unreachable goal is reported as an empty Path, never as an error.
package gridpath
