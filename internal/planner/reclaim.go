package planner

import (
	"sort"
	"strings"
)

// DefaultMaxPasses bounds the reclaimer when no ceiling is configured.
const DefaultMaxPasses = 50

// ReclaimStats summarises a reclaim run.
type ReclaimStats struct {
	Deleted    int
	Passes     int
	HitCeiling bool
}

// Reclaim deletes every empty, unprotected folder under the layout root,
// deepest first, repeating until a pass deletes nothing or maxPasses is
// reached. Reaching the ceiling stops the loop; it is not an error.
func (p *Planner) Reclaim(maxPasses int) ReclaimStats {
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	var st ReclaimStats
	for st.Passes < maxPasses {
		st.Passes++
		deleted := p.reclaimPass()
		st.Deleted += deleted
		if deleted == 0 {
			return st
		}
	}
	st.HitCeiling = true
	p.log.Warn("Folder cleanup stopped after %d passes", maxPasses)
	return st
}

func (p *Planner) reclaimPass() int {
	folders := p.store.ListFolders(p.Layout.Root)
	sort.SliceStable(folders, func(i, j int) bool {
		di, dj := strings.Count(folders[i], "/"), strings.Count(folders[j], "/")
		if di != dj {
			return di > dj
		}
		return folders[i] < folders[j]
	})

	deleted := 0
	for _, f := range folders {
		if strings.EqualFold(f, p.Layout.Root) || p.IsProtected(f) {
			continue
		}
		if len(p.store.ItemsIn(f)) > 0 || len(p.store.SubFolders(f)) > 0 {
			continue
		}
		if err := p.store.DeleteFolder(f); err != nil {
			p.log.Warn("Cannot delete empty folder %s: %v", f, err)
			continue
		}
		p.log.Debug(p.verbose, "Deleted empty folder %s", f)
		deleted++
	}
	return deleted
}
