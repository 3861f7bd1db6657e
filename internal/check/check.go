// Package check provides project diagnostics (--check mode) and the
// pre-run validation of the root folder and active scenes (Preflight).
package check

import (
	"errors"
	"fmt"

	"github.com/backmassage/assetsort/internal/content"
)

// Sentinel errors returned by Preflight. Nothing has been mutated when one
// of them is returned.
var (
	ErrRootNotFound  = errors.New("root folder not found in project")
	ErrNoScenes      = errors.New("no active scenes given")
	ErrSceneNotFound = errors.New("scene not found")
	ErrNotAScene     = errors.New("not a scene")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Store is the read-only store surface used by the diagnostics.
type Store interface {
	FolderExists(p string) bool
	PathToID(p string) string
	KindOf(p string) content.Kind
	FindAssets(k content.Kind, under string) []string
	Dependencies(p string, transitive bool) []string
	KindCounts() map[content.Kind]int
	Minted() int
	Unresolved() int
	Skipped() []string
}

// Preflight verifies that root is a folder of the project and that every
// scene exists and is a scene document.
func Preflight(store Store, root string, scenes []string) error {
	if !store.FolderExists(root) {
		return fmt.Errorf("%s: %w", root, ErrRootNotFound)
	}
	if len(scenes) == 0 {
		return ErrNoScenes
	}
	for _, s := range scenes {
		if store.PathToID(s) == "" {
			return fmt.Errorf("%s: %w", s, ErrSceneNotFound)
		}
		if store.KindOf(s) != content.KindScene {
			return fmt.Errorf("%s: %w", s, ErrNotAScene)
		}
	}
	return nil
}

// Summary describes the assets under a root folder.
type Summary struct {
	Counts     map[content.Kind]int
	Scenes     []string
	Project    int      // assets in the whole project, root or not
	Minted     int      // identifiers created while opening the store
	Unresolved int      // dangling references seen while resolving scenes and templates
	Skipped    []string // assets shadowed by a case-colliding sibling
}

// summaryKinds is the order kinds are reported in.
var summaryKinds = []content.Kind{
	content.KindScene,
	content.KindTemplate,
	content.KindMesh,
	content.KindMaterial,
	content.KindTexture,
	content.KindIgnored,
	content.KindOther,
}

// Summarize counts the assets under root and resolves every scene and
// template there so dangling references are tallied.
func Summarize(store Store, root string) (Summary, error) {
	if !store.FolderExists(root) {
		return Summary{}, fmt.Errorf("%s: %w", root, ErrRootNotFound)
	}
	s := Summary{Counts: make(map[content.Kind]int)}
	for _, k := range summaryKinds {
		s.Counts[k] = len(store.FindAssets(k, root))
	}
	s.Scenes = store.FindAssets(content.KindScene, root)
	for _, p := range append(s.Scenes, store.FindAssets(content.KindTemplate, root)...) {
		store.Dependencies(p, true)
	}
	for _, n := range store.KindCounts() {
		s.Project += n
	}
	s.Minted = store.Minted()
	s.Unresolved = store.Unresolved()
	s.Skipped = store.Skipped()
	return s, nil
}

// RunCheck runs the --check flow: logs the per-kind counts, the scenes that
// can be organized, and identifier health. It never mutates the project.
func RunCheck(store Store, root string, log Logger) error {
	log.Info("=== Project Check: %s ===", root)

	s, err := Summarize(store, root)
	if err != nil {
		log.Error("%v", err)
		return err
	}
	under := 0
	for _, k := range summaryKinds {
		log.Info("  %-9s %d", k.String()+":", s.Counts[k])
		under += s.Counts[k]
	}
	log.Info("%d of %d project assets are under %s", under, s.Project, root)

	if len(s.Scenes) == 0 {
		log.Warn("No scenes under %s; nothing to organize", root)
	}
	for _, p := range s.Scenes {
		log.Info("Scene: %s (%d dependencies)", p, len(store.Dependencies(p, true)))
	}

	if s.Minted > 0 {
		log.Warn("Minted %d missing identifiers", s.Minted)
	} else {
		log.Success("Every asset has an identifier")
	}
	if s.Unresolved > 0 {
		log.Warn("%d unresolved references", s.Unresolved)
	} else {
		log.Success("All references resolve")
	}
	for _, p := range s.Skipped {
		log.Warn("Not indexed (name collides by case): %s", p)
	}
	return nil
}
