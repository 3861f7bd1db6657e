package pipeline

import (
	"strings"
)

// resolveTargets returns root and scenes spelled the way the store names
// them, dropping repeated scenes (case-insensitive) while keeping the order
// of first appearance: the first scene names the per-scene folders.
// Unknown paths are returned unchanged so preflight can report them.
func resolveTargets(store Store, root string, scenes []string) (string, []string) {
	if actual := store.FolderPath(root); actual != "" {
		root = actual
	}
	seen := make(map[string]bool, len(scenes))
	out := make([]string, 0, len(scenes))
	for _, s := range scenes {
		if p := store.IDToPath(store.PathToID(s)); p != "" {
			s = p
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return root, out
}
