// Package unused finds models, textures and materials under a root folder
// that no scene or template there depends on, exports the list, and can
// move those assets into a quarantine folder for review.
package unused

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/backmassage/assetsort/internal/content"
)

// ErrRootNotFound is returned when the scanned root is not a folder.
var ErrRootNotFound = errors.New("root folder not found")

// Store is the content-store surface the scanner reads and mutates.
type Store interface {
	FolderExists(p string) bool
	CreateFolder(parent, name string) error
	FindAssets(k content.Kind, under string) []string
	Dependencies(p string, transitive bool) []string
	UniquePath(candidate string) string
	Move(src, dst string) (string, error)
}

// ignoredExtensions are never reported, in addition to fonts.
var ignoredExtensions = map[string]bool{
	".asset":         true,
	".shader":        true,
	".shadergraph":   true,
	".rendertexture": true,
}

// IsIgnored reports whether p is excluded from the report.
func IsIgnored(p string) bool {
	ext := content.Ext(p)
	return content.FontExtensions[ext] || ignoredExtensions[ext]
}

// Report lists unused assets by category, each sorted by path.
type Report struct {
	Root      string
	Scenes    []string // scenes analysed
	Models    []string
	Textures  []string
	Materials []string
}

// Scan analyses every scene and template under root and reports the
// models, textures and materials under root none of them depends on.
// Any resolved dependency counts as a use, whatever its kind.
func Scan(store Store, root string) (Report, error) {
	if !store.FolderExists(root) {
		return Report{}, fmt.Errorf("%s: %w", root, ErrRootNotFound)
	}
	r := Report{Root: root, Scenes: store.FindAssets(content.KindScene, root)}

	analyse := append(append([]string(nil), r.Scenes...), store.FindAssets(content.KindTemplate, root)...)
	used := make(map[string]bool)
	for _, p := range analyse {
		for _, dep := range store.Dependencies(p, true) {
			used[strings.ToLower(dep)] = true
		}
	}

	unusedOf := func(k content.Kind) []string {
		var out []string
		for _, p := range store.FindAssets(k, root) {
			if !used[strings.ToLower(p)] && !IsIgnored(p) {
				out = append(out, p)
			}
		}
		return out
	}
	r.Models = unusedOf(content.KindMesh)
	r.Textures = unusedOf(content.KindTexture)
	r.Materials = unusedOf(content.KindMaterial)
	return r, nil
}

// All returns every reported asset: models, then textures, then materials.
func (r Report) All() []string {
	out := make([]string, 0, r.Total())
	out = append(out, r.Models...)
	out = append(out, r.Textures...)
	return append(out, r.Materials...)
}

// Total returns the number of reported assets.
func (r Report) Total() int {
	return len(r.Models) + len(r.Textures) + len(r.Materials)
}

// Export writes the report as three titled sections separated by a blank
// line.
func (r Report) Export(w io.Writer) error {
	sections := []struct {
		title string
		paths []string
	}{
		{"Unused models", r.Models},
		{"Unused textures", r.Textures},
		{"Unused materials", r.Materials},
	}
	for i, s := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "=== %s ===\n", s.title); err != nil {
			return err
		}
		for _, p := range s.paths {
			if _, err := fmt.Fprintln(w, p); err != nil {
				return err
			}
		}
	}
	return nil
}

// ExportFile writes the report to the file at name, replacing it.
func (r Report) ExportFile(name string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("export: %w", cerr)
		}
	}()
	return r.Export(f)
}

// Quarantine moves every asset in list into destFolder, creating the folder
// (its parent must exist) when needed. Names already taken in destFolder get
// a " - dupN" suffix. Assets already inside destFolder and ignored assets
// are skipped. A failed move does not stop the others; all failures are
// returned joined, next to the number of assets moved.
func Quarantine(store Store, list []string, destFolder string) (int, error) {
	if !store.FolderExists(destFolder) {
		if err := store.CreateFolder(path.Dir(destFolder), path.Base(destFolder)); err != nil {
			return 0, fmt.Errorf("create %s: %w", destFolder, err)
		}
	}

	moved := 0
	var errs []error
	for _, p := range list {
		if IsIgnored(p) || strings.EqualFold(content.Dir(p), destFolder) {
			continue
		}
		dst := store.UniquePath(path.Join(destFolder, path.Base(p)))
		if _, err := store.Move(p, dst); err != nil {
			errs = append(errs, fmt.Errorf("move %s: %w", p, err))
			continue
		}
		moved++
	}
	return moved, errors.Join(errs...)
}
