// Package relocate moves the assets drawn by the active scenes into the
// canonical layout and then verifies texture placement.
//
// The engine works on identifiers captured before the first move, so the
// path of every asset is looked up again right before it is touched. Moves
// never overwrite: a taken destination gets a " - dupN" name, and a move that
// still fails is logged and skipped. Relocation is idempotent; a second run
// over an organized tree performs no moves.
//
// Processing order is stable across runs (owners and materials are visited
// by identifier), and each material is handled once per run by the first
// owner that reaches it. A texture placed beside a local material is never
// pulled into the common pool by another material.
package relocate
