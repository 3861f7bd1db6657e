// Package planner owns the canonical folder layout of a run.
//
// Layout (types.go) resolves the base, common and per-scene folders under
// the root and maps an asset kind and classification to its destination.
// Planner (planner.go) creates folders on demand, parents first, and after
// relocation Reclaim (reclaim.go) deletes folders left empty, deepest first,
// in repeated passes until nothing changes or the pass ceiling is reached.
// Canonical folders are protected and never reclaimed.
package planner
