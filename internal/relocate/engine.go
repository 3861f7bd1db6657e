package relocate

import (
	"path"
	"sort"
	"strings"

	"github.com/backmassage/assetsort/internal/content"
	"github.com/backmassage/assetsort/internal/index"
	"github.com/backmassage/assetsort/internal/naming"
	"github.com/backmassage/assetsort/internal/planner"
)

// Store is the content-store surface the engine reads and mutates.
type Store interface {
	PathToID(p string) string
	IDToPath(id string) string
	Dependencies(p string, transitive bool) []string
	Size(p string) int64
	UniquePath(candidate string) string
	Move(src, dst string) (string, error)
}

// Folders creates destination folders on demand.
type Folders interface {
	Ensure(dir string) error
}

// Logger is the logging surface the engine uses.
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Debug(verbose bool, format string, args ...interface{})
}

// Options tunes logging; the store decides whether moves touch disk.
type Options struct {
	DryRun  bool
	Verbose bool
}

// Result counts what a run did.
type Result struct {
	Moved      int // successful moves during relocation
	Corrected  int // successful moves made by the verifier
	Unchanged  int // moves that were no-ops
	Failed     int // moves left undone after a warning
	BytesMoved int64

	CommonMeshes    int
	LocalMeshes     int
	CommonTemplates int
	LocalTemplates  int
	CommonMaterials int
	LocalMaterials  int
}

// Engine relocates one run's worth of assets. It is single-use.
type Engine struct {
	store   Store
	folders Folders
	layout  planner.Layout
	usage   index.ExternalUsage
	sharing index.TextureSharing
	log     Logger
	opts    Options

	processed map[string]bool   // material ids
	touched   []string          // material ids, in processing order
	owners    map[string]string // texture id → local material keeping it
	verifying bool
	result    Result
}

// New wires an engine from the run's indexes. The store and folder planner
// are injected so tests can substitute either.
func New(
	store Store,
	folders Folders,
	layout planner.Layout,
	usage index.ExternalUsage,
	sharing index.TextureSharing,
	log Logger,
	opts Options,
) *Engine {
	return &Engine{
		store:     store,
		folders:   folders,
		layout:    layout,
		usage:     usage,
		sharing:   sharing,
		log:       log,
		opts:      opts,
		processed: make(map[string]bool),
		owners:    make(map[string]string),
	}
}

// owner is a mesh or template with the materials it is drawn with, all by
// identifier.
type owner struct {
	id   string
	mats []string
}

func (e *Engine) snapshot(sets index.MaterialSets) []owner {
	var out []owner
	for _, key := range sets.Keys() {
		id := e.store.PathToID(key)
		if id == "" {
			e.log.Debug(e.opts.Verbose, "No identifier for %s, skipping", key)
			continue
		}
		o := owner{id: id}
		for _, m := range sets.Materials(key) {
			if mid := e.store.PathToID(m); mid != "" {
				o.mats = append(o.mats, mid)
			}
		}
		sort.Strings(o.mats)
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Relocate runs the mesh pass and then the template pass.
func (e *Engine) Relocate(c *index.Collection) Result {
	meshes := e.snapshot(c.Meshes)
	templates := e.snapshot(c.Templates)
	e.claimLocalTextures(meshes, templates)

	for _, o := range meshes {
		e.relocateMesh(o)
	}
	for _, o := range templates {
		e.relocateTemplate(o)
	}
	return e.result
}

// claimLocalTextures decides, before anything moves, which local material
// keeps each texture. Materials are visited in the same order the passes
// will process them, so the first local material to reach a texture wins.
func (e *Engine) claimLocalTextures(meshes, templates []owner) {
	seen := make(map[string]bool)
	for _, o := range append(append([]owner(nil), meshes...), templates...) {
		for _, m := range o.mats {
			if seen[m] {
				continue
			}
			seen[m] = true
			if e.usage.IsCommon(m) {
				continue
			}
			p := e.store.IDToPath(m)
			if p == "" || content.IsIgnored(p) {
				continue
			}
			for _, t := range e.textures(p) {
				if _, ok := e.owners[t]; !ok {
					e.owners[t] = m
				}
			}
		}
	}
}

func (e *Engine) relocateMesh(o owner) {
	p := e.store.IDToPath(o.id)
	if p == "" || content.IsIgnored(p) {
		return
	}
	common := e.usage.IsCommon(o.id)
	dir := e.layout.Target(content.KindMesh, common, ownerName(p))
	localDest := dir
	if common {
		e.result.CommonMeshes++
		localDest = e.layout.Scene3D
	} else {
		e.result.LocalMeshes++
	}
	e.move(p, dir)
	for _, m := range o.mats {
		e.processMaterial(m, localDest)
	}
}

func (e *Engine) relocateTemplate(o owner) {
	p := e.store.IDToPath(o.id)
	if p == "" || content.IsIgnored(p) {
		return
	}
	common := e.usage.IsCommon(o.id)
	if common {
		e.result.CommonTemplates++
	} else {
		e.result.LocalTemplates++
	}
	e.move(p, e.layout.Target(content.KindTemplate, common, ownerName(p)))
	for _, m := range o.mats {
		e.processMaterial(m, e.layout.Scene3D)
	}
}

// Touched returns the identifiers of every material processed so far.
func (e *Engine) Touched() []string {
	return append([]string(nil), e.touched...)
}

// Result returns the counters accumulated so far.
func (e *Engine) Result() Result { return e.result }

// textures returns the identifiers of the texture dependencies of the
// material at p.
func (e *Engine) textures(p string) []string {
	var out []string
	for _, dep := range e.store.Dependencies(p, true) {
		if !content.IsTexture(dep) {
			continue
		}
		if id := e.store.PathToID(dep); id != "" {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// move relocates the asset at p into dir, keeping its file name. It returns
// the asset's path afterwards and whether a move actually happened.
func (e *Engine) move(p, dir string) (string, bool) {
	dst := path.Join(dir, path.Base(p))
	if strings.EqualFold(dst, p) {
		e.result.Unchanged++
		return p, false
	}
	if err := e.folders.Ensure(dir); err != nil {
		e.log.Warn("Cannot prepare %s for %s: %v", dir, p, err)
		e.result.Failed++
		return p, false
	}
	dst = e.store.UniquePath(dst)
	size := e.store.Size(p)
	got, err := e.store.Move(p, dst)
	if err != nil {
		e.log.Warn("Cannot move %s -> %s: %v", p, dst, err)
		e.result.Failed++
		return p, false
	}
	e.result.BytesMoved += size
	if e.verifying {
		e.result.Corrected++
	} else {
		e.result.Moved++
	}
	if e.opts.DryRun {
		e.log.Info("[DRY] %s -> %s", p, got)
	} else {
		e.log.Debug(e.opts.Verbose, "Moved %s -> %s", p, got)
	}
	return got, true
}

// ownerName is the name an asset gives its private folder.
func ownerName(p string) string {
	return naming.TrimDup(naming.Stem(p))
}
