// Package index builds the read-only per-run views the relocation engine
// consumes: which assets are referenced by scenes outside the active set
// (membership.go), which meshes and templates the active scenes draw and with
// which materials (collector.go), and which textures are shared between
// materials (textures.go).
//
// Everything here is rebuilt from the content store on every run and never
// mutated once built.
package index
