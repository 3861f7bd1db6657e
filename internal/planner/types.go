package planner

import (
	"path"
	"strings"

	"github.com/backmassage/assetsort/internal/content"
	"github.com/backmassage/assetsort/internal/naming"
)

// Names are the folder names used to build the canonical layout.
type Names struct {
	Base3D      string // e.g. "_3D"
	BasePrefabs string // e.g. "_Prefabs"
	Common      string // shared-resource folder inside both bases
	Objects     string // meshes, inside <Base3D>/<Common>
	Materials   string
	Textures    string
}

// DefaultNames returns the stock folder names.
func DefaultNames() Names {
	return Names{
		Base3D:      "_3D",
		BasePrefabs: "_Prefabs",
		Common:      "COMMON",
		Objects:     "Objects",
		Materials:   "Materials",
		Textures:    "Textures",
	}
}

// Layout is the resolved set of canonical folders for one run. All fields
// are store paths.
type Layout struct {
	Root  string
	Scene string // parent scene name; names the per-scene folders

	Base3D          string // <root>/_3D
	BasePrefabs     string // <root>/_Prefabs
	Common3D        string // <root>/_3D/COMMON
	CommonObjects   string // <root>/_3D/COMMON/Objects
	CommonMaterials string // <root>/_3D/COMMON/Materials
	CommonTextures  string // <root>/_3D/COMMON/Textures
	Scene3D         string // <root>/_3D/<scene>
	ScenePrefabs    string // <root>/_Prefabs/<scene>
	CommonPrefabs   string // <root>/_Prefabs/COMMON
}

// NewLayout resolves the folders of root for the parent scene named scene.
func NewLayout(root, scene string, n Names) Layout {
	root = strings.TrimSuffix(path.Clean(strings.ReplaceAll(root, `\`, "/")), "/")
	scene = naming.SafeName(scene)
	base3D := path.Join(root, n.Base3D)
	basePref := path.Join(root, n.BasePrefabs)
	common3D := path.Join(base3D, n.Common)
	return Layout{
		Root:            root,
		Scene:           scene,
		Base3D:          base3D,
		BasePrefabs:     basePref,
		Common3D:        common3D,
		CommonObjects:   path.Join(common3D, n.Objects),
		CommonMaterials: path.Join(common3D, n.Materials),
		CommonTextures:  path.Join(common3D, n.Textures),
		Scene3D:         path.Join(base3D, scene),
		ScenePrefabs:    path.Join(basePref, scene),
		CommonPrefabs:   path.Join(basePref, n.Common),
	}
}

// Protected returns the folders the reclaimer must never delete.
func (l Layout) Protected() []string {
	return []string{
		l.Root,
		l.Base3D, l.BasePrefabs,
		l.Common3D, l.CommonObjects, l.CommonMaterials, l.CommonTextures,
		l.Scene3D, l.ScenePrefabs, l.CommonPrefabs,
	}
}

// Target returns the destination folder for an asset of kind k. owner is
// the asset's own name for meshes and materials. Local materials and their
// textures live under the folder of the object using them, so for those
// Target returns "" and callers use [Layout.MaterialDir].
func (l Layout) Target(k content.Kind, common bool, owner string) string {
	switch k {
	case content.KindMesh:
		if common {
			return l.CommonObjects
		}
		return path.Join(l.Scene3D, naming.SafeName(owner))
	case content.KindTemplate:
		if common {
			return l.CommonPrefabs
		}
		return l.ScenePrefabs
	case content.KindMaterial:
		if common {
			return path.Join(l.CommonMaterials, naming.SafeName(owner))
		}
	case content.KindTexture:
		if common {
			return l.CommonTextures
		}
	}
	return ""
}

// MaterialDir returns the private folder of a local material whose object
// lives in localDest.
func (l Layout) MaterialDir(localDest, matName string) string {
	return path.Join(localDest, naming.SafeName(matName))
}
