// Package pipeline orchestrates one organize run over a content store:
// preflight, per-run indexes, relocation, verification, and folder
// reclamation, followed by the summary log.
//
// The stages run strictly in order on a single goroutine. The context is
// consulted only before the first mutation; once relocation starts the run
// completes so the tree is never left half-verified.
package pipeline
