// Package contenttest builds in-memory projects for tests.
package contenttest

import (
	"fmt"
	"path"
	"strings"
	"testing"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/backmassage/assetsort/internal/content"
)

// Project is a throwaway project tree backed by an in-memory filesystem.
type Project struct {
	t  testing.TB
	FS hackpadfs.FS
}

// New returns an empty project.
func New(t testing.TB) *Project {
	t.Helper()
	fsys, err := mem.NewFS()
	require.NoError(t, err)
	return &Project{t: t, FS: fsys}
}

// Folder creates p and its parents.
func (p *Project) Folder(dir string) {
	p.t.Helper()
	if dir == "." || dir == "" {
		return
	}
	require.NoError(p.t, hackpadfs.MkdirAll(p.FS, dir, 0o755))
}

// File writes raw bytes at name with a sidecar holding id. An empty id skips
// the sidecar.
func (p *Project) File(name, id string, body []byte) {
	p.t.Helper()
	p.Folder(path.Dir(name))
	require.NoError(p.t, hackpadfs.WriteFullFile(p.FS, name, body, 0o644))
	if id == "" {
		return
	}
	meta := fmt.Sprintf("fileFormatVersion: 2\nguid: %s\n", id)
	require.NoError(p.t, hackpadfs.WriteFullFile(p.FS, name+content.MetaSuffix, []byte(meta), 0o644))
}

// Binary writes a placeholder mesh, texture or font.
func (p *Project) Binary(name, id string) {
	p.t.Helper()
	p.File(name, id, []byte("binary:"+id))
}

// Material writes a material document referencing the given textures.
func (p *Project) Material(name, id string, textureIDs ...string) {
	p.t.Helper()
	var b strings.Builder
	fmt.Fprintf(&b, "name: %s\n", path.Base(name))
	if len(textureIDs) == 0 {
		b.WriteString("textures: {}\n")
	} else {
		b.WriteString("textures:\n")
	}
	for i, tex := range textureIDs {
		fmt.Fprintf(&b, "  _Tex%d: {fileID: 2800000, guid: %s, type: 3}\n", i, tex)
	}
	p.File(name, id, []byte(b.String()))
}

// Scene writes a scene or template document with the given root nodes.
func (p *Project) Scene(name, id string, nodes ...content.Node) {
	p.t.Helper()
	b, err := yaml.Marshal(content.SceneDoc{Nodes: nodes})
	require.NoError(p.t, err)
	p.File(name, id, b)
}

// Open indexes the project.
func (p *Project) Open(opts content.Options) *content.Store {
	p.t.Helper()
	s, err := content.Open(p.FS, opts)
	require.NoError(p.t, err)
	return s
}

// OnDisk reports whether name exists in the backing filesystem.
func (p *Project) OnDisk(name string) bool {
	_, err := hackpadfs.Stat(p.FS, name)
	return err == nil
}

// Ref returns a reference to id.
func Ref(id string) *content.Ref { return &content.Ref{GUID: id} }

// Refs returns references to ids.
func Refs(ids ...string) []content.Ref {
	out := make([]content.Ref, len(ids))
	for i, id := range ids {
		out[i] = content.Ref{GUID: id}
	}
	return out
}

// MeshNode is a node drawing meshID with the given materials.
func MeshNode(name, meshID string, materialIDs ...string) content.Node {
	return content.Node{
		Name:     name,
		Mesh:     Ref(meshID),
		Renderer: &content.Renderer{Materials: Refs(materialIDs...)},
	}
}

// TemplateNode is the root of an instance of templateID.
func TemplateNode(name, templateID string, materialIDs ...string) content.Node {
	n := content.Node{Name: name, Template: Ref(templateID)}
	if len(materialIDs) > 0 {
		n.Renderer = &content.Renderer{Materials: Refs(materialIDs...)}
	}
	return n
}
