package index

import (
	"sort"
	"strings"

	"github.com/backmassage/assetsort/internal/content"
)

// Source is the slice of the content store the indexers read from.
type Source interface {
	PathToID(p string) string
	IDToPath(id string) string
	KindOf(p string) content.Kind
	Dependencies(p string, transitive bool) []string
	FindAssets(k content.Kind, under string) []string
	ReadScene(p string) (*content.SceneDoc, error)
}

// Logger is the logging surface the indexers use.
type Logger interface {
	Debug(verbose bool, format string, args ...interface{})
}

// ExternalUsage maps an asset identifier to the set of scene paths outside
// the active set that depend on it. A key exists only when at least one
// external scene uses the asset.
type ExternalUsage map[string]map[string]bool

// BuildExternalUsage walks every scene in src that is not one of active and
// records each of its transitive dependencies.
func BuildExternalUsage(src Source, active []string) ExternalUsage {
	skip := make(map[string]bool, len(active))
	for _, a := range active {
		skip[strings.ToLower(a)] = true
	}

	usage := make(ExternalUsage)
	for _, scene := range src.FindAssets(content.KindScene, "") {
		if skip[strings.ToLower(scene)] {
			continue
		}
		for _, dep := range src.Dependencies(scene, true) {
			id := src.PathToID(dep)
			if id == "" {
				continue
			}
			scenes, ok := usage[id]
			if !ok {
				scenes = make(map[string]bool)
				usage[id] = scenes
			}
			scenes[scene] = true
		}
	}
	return usage
}

// IsCommon reports whether at least two external scenes use id. The empty
// identifier is never common.
func (u ExternalUsage) IsCommon(id string) bool {
	if id == "" {
		return false
	}
	return len(u[id]) >= 2
}

// Scenes returns the sorted external scenes using id.
func (u ExternalUsage) Scenes(id string) []string {
	out := make([]string, 0, len(u[id]))
	for s := range u[id] {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
