package pipeline

import (
	"time"

	"github.com/backmassage/assetsort/internal/planner"
	"github.com/backmassage/assetsort/internal/relocate"
)

// Result aggregates the counters of one organize run. It only feeds the
// summary log; the organized tree is the actual output.
type Result struct {
	relocate.Result

	Root   string
	Scene  string // name of the per-scene folders
	Scenes int    // active scenes

	Meshes    int // meshes drawn by the active scenes
	Templates int // templates instantiated by the active scenes
	Materials int // distinct materials used by either

	FoldersCreated int
	Reclaim        planner.ReclaimStats
	Elapsed        time.Duration
}

// Moves returns every successful move, including verifier corrections.
func (r *Result) Moves() int {
	return r.Moved + r.Corrected
}
