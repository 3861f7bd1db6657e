package relocate

import (
	"strings"

	"github.com/backmassage/assetsort/internal/content"
)

// Verify re-derives where the textures of every touched material belong and
// moves back any that drifted while the passes ran:
//
//   - material directly in the common materials folder: textures go to the
//     common textures folder;
//   - material in a subfolder of it: shared textures go to the common
//     textures folder, the rest stay beside the material;
//   - any other material: textures stay beside the material.
//
// A texture kept by a local material is only checked against that material.
// The sharing counts are the ones computed for this run. It returns the
// number of corrections made.
func (e *Engine) Verify() int {
	e.verifying = true
	defer func() { e.verifying = false }()

	before := e.result.Corrected
	checked := make(map[string]bool)
	for _, matID := range e.touched {
		matPath := e.store.IDToPath(matID)
		if matPath == "" {
			continue
		}
		matDir := content.Dir(matPath)
		commonRoot := strings.EqualFold(matDir, e.layout.CommonMaterials)
		commonSub := !commonRoot && content.IsUnder(matDir, e.layout.CommonMaterials)

		for _, t := range e.textures(matPath) {
			if keeper, ok := e.owners[t]; ok && keeper != matID {
				continue
			}
			if checked[t] {
				continue
			}
			checked[t] = true

			want := matDir
			if commonRoot || (commonSub && e.sharing.IsShared(t)) {
				want = e.layout.CommonTextures
			}
			texPath := e.store.IDToPath(t)
			if texPath == "" || strings.EqualFold(content.Dir(texPath), want) {
				continue
			}
			e.log.Debug(e.opts.Verbose, "Texture %s misplaced for %s", texPath, matPath)
			e.move(texPath, want)
		}
	}
	return e.result.Corrected - before
}
