package relocate

import (
	"github.com/backmassage/assetsort/internal/content"
)

// processMaterial applies the material rule to matID. localDest is the
// folder of the object using it, used when the material is local.
func (e *Engine) processMaterial(matID, localDest string) {
	if e.processed[matID] {
		return
	}
	e.processed[matID] = true

	p := e.store.IDToPath(matID)
	if p == "" || content.IsIgnored(p) {
		return
	}
	texIDs := e.textures(p)
	name := ownerName(p)
	e.touched = append(e.touched, matID)

	if !e.usage.IsCommon(matID) {
		e.result.LocalMaterials++
		dir := e.layout.MaterialDir(localDest, name)
		e.move(p, dir)
		for _, t := range texIDs {
			e.placeTexture(t, dir, matID)
		}
		return
	}

	e.result.CommonMaterials++
	var shared, unique []string
	for _, t := range texIDs {
		if e.sharing.IsShared(t) {
			shared = append(shared, t)
		} else {
			unique = append(unique, t)
		}
	}

	if len(unique) == 0 {
		e.move(p, e.layout.CommonMaterials)
		for _, t := range texIDs {
			e.placeTexture(t, e.layout.CommonTextures, matID)
		}
		return
	}

	dir := e.layout.Target(content.KindMaterial, true, name)
	e.move(p, dir)
	for _, t := range unique {
		e.placeTexture(t, dir, matID)
	}
	for _, t := range shared {
		e.placeTexture(t, e.layout.CommonTextures, matID)
	}
}

// placeTexture moves texID into dir on behalf of matID, unless another
// local material keeps the texture.
func (e *Engine) placeTexture(texID, dir, matID string) {
	if keeper, ok := e.owners[texID]; ok && keeper != matID {
		e.log.Debug(e.opts.Verbose, "Texture %s stays with material %s", e.store.IDToPath(texID), e.store.IDToPath(keeper))
		return
	}
	p := e.store.IDToPath(texID)
	if p == "" {
		return
	}
	e.move(p, dir)
}
