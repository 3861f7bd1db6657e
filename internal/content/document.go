package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"
)

// MetaSuffix is appended to an asset path to form its sidecar path.
const MetaSuffix = ".meta"

var errNoGUID = errors.New("sidecar has no guid")

// metaFile is the YAML sidecar stored next to every asset.
type metaFile struct {
	FileFormatVersion int    `yaml:"fileFormatVersion"`
	GUID              string `yaml:"guid"`
}

func parseMeta(b []byte) (string, error) {
	var m metaFile
	if err := yaml.Unmarshal(b, &m); err != nil {
		return "", err
	}
	id := strings.TrimSpace(m.GUID)
	if id == "" {
		return "", errNoGUID
	}
	return id, nil
}

// newID mints a fresh identifier for an asset that has no usable sidecar.
func newID() string {
	return strings.ToLower(ulid.Make().String())
}

func encodeMeta(id string) ([]byte, error) {
	return yaml.Marshal(metaFile{FileFormatVersion: 2, GUID: id})
}

// Ref is a reference to another asset inside a document. Extra keys such
// as fileID are ignored.
type Ref struct {
	GUID string `yaml:"guid"`
}

// Renderer lists the materials a node draws with.
type Renderer struct {
	Materials []Ref `yaml:"materials"`
}

// Skinned is a skinned mesh binding; its material list overrides the
// renderer's for the node that carries it.
type Skinned struct {
	Mesh      *Ref  `yaml:"mesh"`
	Materials []Ref `yaml:"materials"`
}

// Node is one object in a scene or template hierarchy.
type Node struct {
	Name     string    `yaml:"name"`
	Mesh     *Ref      `yaml:"mesh,omitempty"`
	Renderer *Renderer `yaml:"renderer,omitempty"`
	Skinned  *Skinned  `yaml:"skinned,omitempty"`
	Template *Ref      `yaml:"template,omitempty"`
	Children []Node    `yaml:"children,omitempty"`
}

// SceneDoc is the node schema shared by scenes and templates.
type SceneDoc struct {
	Nodes []Node `yaml:"nodes"`
}

// RendererMaterials returns the node's renderer material list, or nil.
func (n *Node) RendererMaterials() []Ref {
	if n.Renderer == nil {
		return nil
	}
	return n.Renderer.Materials
}

func parseSceneDoc(b []byte) (*SceneDoc, error) {
	var doc SceneDoc
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode scene document: %w", err)
	}
	return &doc, nil
}

// extractRefs returns every guid referenced anywhere in a YAML document, in
// document order, without duplicates.
func extractRefs(b []byte) ([]string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(b, &root); err != nil {
		return nil, err
	}
	var out []string
	seen := make(map[string]bool)
	stack := []*yaml.Node{&root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Kind == yaml.MappingNode {
			for i := 0; i+1 < len(n.Content); i += 2 {
				k, v := n.Content[i], n.Content[i+1]
				if k.Value == "guid" && v.Kind == yaml.ScalarNode {
					id := strings.TrimSpace(v.Value)
					if id != "" && !seen[id] {
						seen[id] = true
						out = append(out, id)
					}
				}
			}
		}
		// Push in reverse so children are visited in document order.
		for i := len(n.Content) - 1; i >= 0; i-- {
			stack = append(stack, n.Content[i])
		}
	}
	return out, nil
}
