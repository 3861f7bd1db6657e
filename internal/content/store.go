package content

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/hack-pad/hackpadfs"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/backmassage/assetsort/internal/naming"
)

// Sentinel errors returned by Store mutations.
var (
	ErrNotFound       = errors.New("asset not found")
	ErrExists         = errors.New("destination already exists")
	ErrFolderNotFound = errors.New("folder not found")
	ErrFolderNotEmpty = errors.New("folder not empty")
	ErrInvalidName    = errors.New("invalid folder name")
)

// DefaultCacheSize bounds the parsed-dependency cache.
const DefaultCacheSize = 4096

// Logger is the minimal logging interface the store needs.
type Logger interface {
	Warn(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Options configures [Open].
type Options struct {
	// DryRun keeps every mutation in the index; the filesystem is only read.
	DryRun    bool
	Verbose   bool
	CacheSize int
	Log       Logger
}

type asset struct {
	id   string
	path string // current store path
	disk string // where the bytes live; differs from path only in dry-run
	size int64
}

// Store is an in-memory index over a project tree. It is not safe for
// concurrent use; the organizer is single-threaded.
type Store struct {
	fsys    hackpadfs.FS
	opts    Options
	assets  map[string]*asset // id → asset
	paths   map[string]string // folded path → id
	folders map[string]string // folded path → path
	deps    *lru.Cache[string, []string]

	minted     int
	unresolved map[string]bool   // "document id\x00reference"
	skipped    map[string]string // folded path → path of assets left out of the index
}

// Open walks fsys from its root and indexes every asset and folder. Assets
// without a readable sidecar get a freshly minted identifier, persisted
// unless opts.DryRun is set.
func Open(fsys hackpadfs.FS, opts Options) (*Store, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.Log == nil {
		opts.Log = nopLogger{}
	}
	cache, err := lru.New[string, []string](opts.CacheSize)
	if err != nil {
		return nil, err
	}
	s := &Store{
		fsys:    fsys,
		opts:    opts,
		assets:  make(map[string]*asset),
		paths:   make(map[string]string),
		folders: make(map[string]string),
		deps:    cache,

		unresolved: make(map[string]bool),
		skipped:    make(map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	stack := []string{"."}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := hackpadfs.ReadDir(s.fsys, dir)
		if err != nil {
			return fmt.Errorf("read %s: %w", dir, err)
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

		metas := make(map[string]bool)
		var files []hackpadfs.DirEntry
		for _, e := range entries {
			name := e.Name()
			if strings.HasPrefix(name, ".") {
				continue
			}
			p := join(dir, name)
			switch {
			case e.IsDir():
				s.folders[fold(p)] = p
				stack = append(stack, p)
			case strings.HasSuffix(strings.ToLower(name), MetaSuffix):
				metas[name] = true
			default:
				files = append(files, e)
			}
		}

		for _, e := range files {
			p := join(dir, e.Name())
			if taken, ok := s.paths[fold(p)]; ok {
				s.opts.Log.Warn("Skipping %s: its name differs only in case from %s", p, s.assets[taken].path)
				s.skipped[fold(p)] = p
				continue
			}
			var size int64
			if fi, err := e.Info(); err == nil {
				size = fi.Size()
			}
			id := s.readOrMintID(p, metas[e.Name()+MetaSuffix])
			s.assets[id] = &asset{id: id, path: p, disk: p, size: size}
			s.paths[fold(p)] = id
		}
	}
	return nil
}

func (s *Store) readOrMintID(p string, hasMeta bool) string {
	if hasMeta {
		b, err := hackpadfs.ReadFile(s.fsys, p+MetaSuffix)
		if err == nil {
			id, perr := parseMeta(b)
			if perr == nil {
				if _, dup := s.assets[id]; !dup {
					return id
				}
				s.opts.Log.Warn("Duplicate identifier %s on %s; assigning a new one", id, p)
			} else {
				s.opts.Log.Warn("Unreadable sidecar for %s: %v", p, perr)
			}
		}
	}
	id := newID()
	s.minted++
	if s.opts.DryRun {
		return id
	}
	b, err := encodeMeta(id)
	if err == nil {
		err = hackpadfs.WriteFullFile(s.fsys, p+MetaSuffix, b, 0o644)
	}
	if err != nil {
		s.opts.Log.Warn("Cannot write sidecar for %s: %v", p, err)
	}
	return id
}

// --- Queries ---

// PathToID returns the identifier of the asset at p, or "" if unknown.
func (s *Store) PathToID(p string) string {
	return s.paths[fold(clean(p))]
}

// IDToPath returns the current path of id, or "" if unknown.
func (s *Store) IDToPath(id string) string {
	if a, ok := s.assets[id]; ok {
		return a.path
	}
	return ""
}

// KindOf classifies the asset at p.
func (s *Store) KindOf(p string) Kind {
	return KindFromPath(p)
}

// Size returns the byte size recorded for the asset at p.
func (s *Store) Size(p string) int64 {
	if a, ok := s.assets[s.PathToID(p)]; ok {
		return a.size
	}
	return 0
}

// Exists reports whether an asset, a skipped file or a folder occupies p
// (case-insensitive).
func (s *Store) Exists(p string) bool {
	k := fold(clean(p))
	if _, ok := s.paths[k]; ok {
		return true
	}
	if _, ok := s.skipped[k]; ok {
		return true
	}
	_, ok := s.folders[k]
	return ok
}

// Dependencies returns the sorted paths p depends on. With transitive set,
// the full closure is returned. p itself is never included. Unresolvable
// references are skipped.
func (s *Store) Dependencies(p string, transitive bool) []string {
	id := s.PathToID(p)
	if id == "" {
		return nil
	}
	seen := map[string]bool{id: true}
	queue := []string{id}
	var out []string
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dep := range s.direct(cur) {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			out = append(out, s.assets[dep].path)
			if transitive {
				queue = append(queue, dep)
			}
		}
	}
	sort.Strings(out)
	return out
}

// direct returns the resolved direct dependency identifiers of id.
func (s *Store) direct(id string) []string {
	if deps, ok := s.deps.Get(id); ok {
		return deps
	}
	a, ok := s.assets[id]
	if !ok || !KindFromPath(a.path).hasDocument() {
		return nil
	}
	var deps []string
	b, err := hackpadfs.ReadFile(s.fsys, a.disk)
	if err == nil {
		var refs []string
		refs, err = extractRefs(b)
		for _, r := range refs {
			if r == id {
				continue
			}
			if _, known := s.assets[r]; !known {
				s.unresolved[id+"\x00"+r] = true
				s.opts.Log.Debug(s.opts.Verbose, "Unresolved reference %s in %s", r, a.path)
				continue
			}
			deps = append(deps, r)
		}
	}
	if err != nil {
		s.opts.Log.Debug(s.opts.Verbose, "Cannot parse %s: %v", a.path, err)
	}
	s.deps.Add(id, deps)
	return deps
}

// ReadScene decodes the node hierarchy of a scene or template document.
func (s *Store) ReadScene(p string) (*SceneDoc, error) {
	a, ok := s.assets[s.PathToID(p)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", p, ErrNotFound)
	}
	b, err := hackpadfs.ReadFile(s.fsys, a.disk)
	if err != nil {
		return nil, err
	}
	return parseSceneDoc(b)
}

// FindAssets returns the sorted paths of every asset of kind k located at or
// below under. An empty under searches the whole store.
func (s *Store) FindAssets(k Kind, under string) []string {
	under = clean(under)
	var out []string
	for _, a := range s.assets {
		if KindFromPath(a.path) != k {
			continue
		}
		if under != "." && !IsUnder(a.path, under) {
			continue
		}
		out = append(out, a.path)
	}
	sort.Strings(out)
	return out
}

// KindCounts tallies indexed assets per kind.
func (s *Store) KindCounts() map[Kind]int {
	counts := make(map[Kind]int)
	for _, a := range s.assets {
		counts[KindFromPath(a.path)]++
	}
	return counts
}

// Minted returns how many identifiers were created while opening.
func (s *Store) Minted() int { return s.minted }

// Unresolved returns how many distinct dangling references (per referencing
// document) have been seen so far.
func (s *Store) Unresolved() int { return len(s.unresolved) }

// Skipped returns the assets left out of the index because another asset
// in the same folder has the same name up to letter case. They are never
// queried or moved.
func (s *Store) Skipped() []string {
	out := make([]string, 0, len(s.skipped))
	for _, p := range s.skipped {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// FolderExists reports whether p is a known folder. The project root "."
// always exists.
func (s *Store) FolderExists(p string) bool {
	p = clean(p)
	if p == "." {
		return true
	}
	_, ok := s.folders[fold(p)]
	return ok
}

// FolderPath returns p spelled the way the folder is named on disk, or ""
// when there is no such folder.
func (s *Store) FolderPath(p string) string {
	p = clean(p)
	if p == "." {
		return p
	}
	return s.folders[fold(p)]
}

// ListFolders returns root and every folder below it, sorted.
func (s *Store) ListFolders(root string) []string {
	root = clean(root)
	if !s.FolderExists(root) {
		return nil
	}
	var out []string
	if root != "." {
		out = append(out, s.folders[fold(root)])
	}
	for _, f := range s.folders {
		if root == "." || (IsUnder(f, root) && !strings.EqualFold(f, root)) {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

// SubFolders returns the immediate child folders of p.
func (s *Store) SubFolders(p string) []string {
	p = clean(p)
	var out []string
	for _, f := range s.folders {
		if strings.EqualFold(path.Dir(f), p) {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

// ItemsIn returns the assets located directly in folder.
func (s *Store) ItemsIn(folder string) []string {
	folder = clean(folder)
	var out []string
	for _, a := range s.assets {
		if strings.EqualFold(path.Dir(a.path), folder) {
			out = append(out, a.path)
		}
	}
	sort.Strings(out)
	return out
}

// UniquePath returns candidate, or a " - dupN" variant of it when the name is
// already taken by an asset or folder.
func (s *Store) UniquePath(candidate string) string {
	return naming.UniquePath(clean(candidate), s.Exists)
}

// --- Mutations ---

// CreateFolder creates parent/name. The parent must exist; an existing
// folder is not an error.
func (s *Store) CreateFolder(parent, name string) error {
	parent = clean(parent)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	if !s.FolderExists(parent) {
		return fmt.Errorf("%s: %w", parent, ErrFolderNotFound)
	}
	p := join(parent, name)
	if s.FolderExists(p) {
		return nil
	}
	if s.Exists(p) {
		return fmt.Errorf("%s: %w", p, ErrExists)
	}
	if !s.opts.DryRun {
		if err := hackpadfs.Mkdir(s.fsys, p, 0o755); err != nil && !errors.Is(err, fs.ErrExist) {
			return err
		}
	}
	s.folders[fold(p)] = p
	return nil
}

// DeleteFolder removes an empty folder together with its own sidecar.
func (s *Store) DeleteFolder(p string) error {
	p = clean(p)
	if p == "." || !s.FolderExists(p) {
		return fmt.Errorf("%s: %w", p, ErrFolderNotFound)
	}
	if len(s.ItemsIn(p)) > 0 || len(s.SubFolders(p)) > 0 {
		return fmt.Errorf("%s: %w", p, ErrFolderNotEmpty)
	}
	actual := s.folders[fold(p)]
	if !s.opts.DryRun {
		if err := hackpadfs.RemoveAll(s.fsys, actual); err != nil {
			return err
		}
		if err := hackpadfs.Remove(s.fsys, actual+MetaSuffix); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.opts.Log.Warn("Cannot remove folder sidecar %s: %v", actual+MetaSuffix, err)
		}
	}
	delete(s.folders, fold(p))
	return nil
}

// Move relocates the asset at src (with its sidecar) to dst and returns the
// new path. dst's folder must exist and dst must be free.
func (s *Store) Move(src, dst string) (string, error) {
	src, dst = clean(src), clean(dst)
	id := s.PathToID(src)
	if id == "" {
		return src, fmt.Errorf("%s: %w", src, ErrNotFound)
	}
	a := s.assets[id]
	if fold(src) == fold(dst) {
		return a.path, nil
	}
	if s.Exists(dst) {
		return a.path, fmt.Errorf("%s: %w", dst, ErrExists)
	}
	if !s.FolderExists(path.Dir(dst)) {
		return a.path, fmt.Errorf("%s: %w", path.Dir(dst), ErrFolderNotFound)
	}
	if !s.opts.DryRun {
		if err := hackpadfs.Rename(s.fsys, a.disk, dst); err != nil {
			return a.path, err
		}
		err := hackpadfs.Rename(s.fsys, a.disk+MetaSuffix, dst+MetaSuffix)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			if rerr := hackpadfs.Rename(s.fsys, dst, a.disk); rerr != nil {
				s.opts.Log.Warn("Cannot restore %s after failed sidecar move: %v", a.disk, rerr)
			}
			return a.path, err
		}
		a.disk = dst
	}
	delete(s.paths, fold(a.path))
	a.path = dst
	s.paths[fold(dst)] = id
	return dst, nil
}

// --- Path helpers ---

// IsUnder reports whether p equals dir or lies below it (case-insensitive).
func IsUnder(p, dir string) bool {
	p, dir = fold(clean(p)), fold(clean(dir))
	if dir == "." {
		return true
	}
	return p == dir || strings.HasPrefix(p, dir+"/")
}

// Dir returns the folder of store path p.
func Dir(p string) string { return path.Dir(clean(p)) }

func clean(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), `\`, "/")
	if p == "" {
		return "."
	}
	p = strings.TrimPrefix(path.Clean(p), "/")
	if p == "" {
		return "."
	}
	return p
}

func join(dir, name string) string {
	if dir == "." || dir == "" {
		return name
	}
	return dir + "/" + name
}

func fold(p string) string { return strings.ToLower(p) }

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{})        {}
func (nopLogger) Debug(bool, string, ...interface{}) {}
