package content

import (
	"path"
	"strings"
)

// Kind classifies an asset by its file extension.
type Kind int

const (
	KindOther Kind = iota // Known asset that is never classified or moved.
	KindMesh
	KindTemplate
	KindMaterial
	KindTexture
	KindScene
	KindIgnored // Font-like resources; bypass the whole pipeline.
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindTemplate:
		return "template"
	case KindMaterial:
		return "material"
	case KindTexture:
		return "texture"
	case KindScene:
		return "scene"
	case KindIgnored:
		return "ignored"
	default:
		return "other"
	}
}

// ImageExtensions is the closed set of suffixes treated as texture
// dependencies. Anything else is never a texture.
var ImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tga":  true,
	".psd":  true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
	".exr":  true,
	".hdr":  true,
	".dds":  true,
	".ktx":  true,
	".ktx2": true,
}

// FontExtensions lists the ignored kinds.
var FontExtensions = map[string]bool{
	".ttf": true,
	".otf": true,
	".fnt": true,
	".fon": true,
}

var meshExtensions = map[string]bool{
	".fbx":   true,
	".obj":   true,
	".dae":   true,
	".3ds":   true,
	".blend": true,
	".gltf":  true,
	".glb":   true,
}

// Ext returns the lowercase extension of p, including the leading dot.
func Ext(p string) string {
	return strings.ToLower(path.Ext(p))
}

// KindFromPath classifies p by extension alone.
func KindFromPath(p string) Kind {
	ext := Ext(p)
	switch {
	case FontExtensions[ext]:
		return KindIgnored
	case ImageExtensions[ext]:
		return KindTexture
	case meshExtensions[ext]:
		return KindMesh
	case ext == ".prefab":
		return KindTemplate
	case ext == ".mat":
		return KindMaterial
	case ext == ".scene", ext == ".unity":
		return KindScene
	default:
		return KindOther
	}
}

// IsIgnored reports whether p is a font-like asset.
func IsIgnored(p string) bool { return FontExtensions[Ext(p)] }

// IsTexture reports whether p has a recognised image extension.
func IsTexture(p string) bool { return ImageExtensions[Ext(p)] }

// hasDocument reports whether assets of kind k are YAML documents that may
// reference other assets.
func (k Kind) hasDocument() bool {
	return k == KindScene || k == KindTemplate || k == KindMaterial
}
