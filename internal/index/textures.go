package index

import "github.com/backmassage/assetsort/internal/content"

// TextureSharing maps a texture identifier to the identifiers of the
// materials that use it.
type TextureSharing map[string]map[string]bool

// BuildTextureSharing records, for every material in materials, each
// texture in its transitive dependencies. Only recognised image extensions
// count as textures.
func BuildTextureSharing(src Source, materials []string) TextureSharing {
	ts := make(TextureSharing)
	for _, mat := range materials {
		matID := src.PathToID(mat)
		if matID == "" {
			continue
		}
		for _, dep := range src.Dependencies(mat, true) {
			if !content.IsTexture(dep) {
				continue
			}
			texID := src.PathToID(dep)
			if texID == "" {
				continue
			}
			users, ok := ts[texID]
			if !ok {
				users = make(map[string]bool)
				ts[texID] = users
			}
			users[matID] = true
		}
	}
	return ts
}

// IsShared reports whether two or more materials use texID.
func (ts TextureSharing) IsShared(texID string) bool {
	return len(ts[texID]) >= 2
}
