package index

import (
	"sort"

	"github.com/backmassage/assetsort/internal/content"
)

// MaterialSets maps an asset path (mesh or template) to the set of material
// paths drawn with it.
type MaterialSets map[string]map[string]bool

// Keys returns the asset paths in sorted order.
func (m MaterialSets) Keys() []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Materials returns the sorted material paths recorded for key.
func (m MaterialSets) Materials(key string) []string {
	out := make([]string, 0, len(m[key]))
	for mat := range m[key] {
		out = append(out, mat)
	}
	sort.Strings(out)
	return out
}

// AllMaterials returns every material path in the set, deduplicated and
// sorted.
func (m MaterialSets) AllMaterials() []string {
	seen := make(map[string]bool)
	var out []string
	for _, mats := range m {
		for mat := range mats {
			if !seen[mat] {
				seen[mat] = true
				out = append(out, mat)
			}
		}
	}
	sort.Strings(out)
	return out
}

func (m MaterialSets) add(key string, mats []string) {
	if key == "" || content.IsIgnored(key) {
		return
	}
	set, ok := m[key]
	if !ok {
		set = make(map[string]bool)
		m[key] = set
	}
	for _, mat := range mats {
		if mat != "" && !content.IsIgnored(mat) {
			set[mat] = true
		}
	}
}

// Collection is what the active scenes draw.
type Collection struct {
	Meshes    MaterialSets
	Templates MaterialSets
}

type visit struct {
	node *content.Node
	// root is the path of the nearest enclosing template instance, if any.
	root string
	// chain holds the template identifiers being expanded above this node.
	chain map[string]bool
}

// Collect visits every node of the given scenes. Template instances are
// expanded in place so the meshes inside a template are collected too; a
// template that (indirectly) instantiates itself is expanded only once per
// chain. Scenes that cannot be read are skipped.
func Collect(src Source, scenes []string, log Logger, verbose bool) *Collection {
	c := &Collection{
		Meshes:    make(MaterialSets),
		Templates: make(MaterialSets),
	}
	for _, scene := range scenes {
		doc, err := src.ReadScene(scene)
		if err != nil {
			log.Debug(verbose, "Cannot read scene %s: %v", scene, err)
			continue
		}
		c.walk(src, doc.Nodes, log, verbose)
	}
	return c
}

func (c *Collection) walk(src Source, roots []content.Node, log Logger, verbose bool) {
	stack := pushNodes(nil, roots, "", map[string]bool{})
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := v.node
		root := v.root

		if n.Template != nil && n.Template.GUID != "" {
			id := n.Template.GUID
			tpl := src.IDToPath(id)
			switch {
			case tpl == "":
				log.Debug(verbose, "Node %q instantiates unknown template %s", n.Name, id)
			case src.KindOf(tpl) != content.KindTemplate:
				log.Debug(verbose, "Node %q instantiates %s, which is not a template", n.Name, tpl)
			default:
				root = tpl
				if !v.chain[id] {
					if doc, err := src.ReadScene(tpl); err == nil {
						chain := make(map[string]bool, len(v.chain)+1)
						for k := range v.chain {
							chain[k] = true
						}
						chain[id] = true
						stack = pushNodes(stack, doc.Nodes, tpl, chain)
					} else {
						log.Debug(verbose, "Cannot read template %s: %v", tpl, err)
					}
				}
			}
		}

		if n.Mesh != nil {
			c.Meshes.add(src.IDToPath(n.Mesh.GUID), resolve(src, n.RendererMaterials()))
		}
		if n.Skinned != nil && n.Skinned.Mesh != nil {
			c.Meshes.add(src.IDToPath(n.Skinned.Mesh.GUID), resolve(src, n.Skinned.Materials))
		}
		if root != "" {
			c.Templates.add(root, resolve(src, n.RendererMaterials()))
		}

		stack = pushNodes(stack, n.Children, root, v.chain)
	}
}

// pushNodes appends nodes in reverse so they pop in document order.
func pushNodes(stack []visit, nodes []content.Node, root string, chain map[string]bool) []visit {
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack, visit{node: &nodes[i], root: root, chain: chain})
	}
	return stack
}

func resolve(src Source, refs []content.Ref) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if p := src.IDToPath(r.GUID); p != "" {
			out = append(out, p)
		}
	}
	return out
}
