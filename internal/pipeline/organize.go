package pipeline

import (
	"context"
	"sort"
	"time"

	"github.com/backmassage/assetsort/internal/check"
	"github.com/backmassage/assetsort/internal/display"
	"github.com/backmassage/assetsort/internal/index"
	"github.com/backmassage/assetsort/internal/naming"
	"github.com/backmassage/assetsort/internal/planner"
	"github.com/backmassage/assetsort/internal/relocate"
)

// Store is everything an organize run needs from the content store.
type Store interface {
	check.Store
	index.Source
	planner.Store
	relocate.Store
	FolderPath(p string) string
}

// Logger is the logging surface of a run; *logging.Logger satisfies it.
type Logger interface {
	Info(format string, args ...interface{})
	Success(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	Debug(verbose bool, format string, args ...interface{})
}

// OrganizeOptions selects what a run organizes and how.
type OrganizeOptions struct {
	Root   string   // folder whose assets are organized
	Scenes []string // active scenes; the first names the per-scene folders

	Names            planner.Names // zero value means planner.DefaultNames()
	DryRun           bool          // log only; the store must also be opened in dry-run mode
	Verbose          bool
	MaxCleanupPasses int // zero means planner.DefaultMaxPasses
	Log              Logger
}

// Organize relocates the assets drawn by opts.Scenes into the canonical
// layout under opts.Root, verifies texture placement and removes folders
// left empty. Configuration problems are returned before anything is
// touched; failed moves are logged and counted in the result instead.
func Organize(ctx context.Context, store Store, opts OrganizeOptions) (Result, error) {
	var res Result
	if err := ctx.Err(); err != nil {
		return res, err
	}
	log := opts.Log
	if log == nil {
		log = nopLogger{}
	}
	if opts.Names == (planner.Names{}) {
		opts.Names = planner.DefaultNames()
	}
	if opts.MaxCleanupPasses <= 0 {
		opts.MaxCleanupPasses = planner.DefaultMaxPasses
	}

	root, scenes := resolveTargets(store, opts.Root, opts.Scenes)
	if err := check.Preflight(store, root, scenes); err != nil {
		return res, err
	}
	start := time.Now()

	layout := planner.NewLayout(root, naming.Stem(scenes[0]), opts.Names)
	res.Root, res.Scene, res.Scenes = layout.Root, layout.Scene, len(scenes)
	logRunHeader(log, opts, layout, scenes)

	usage := index.BuildExternalUsage(store, scenes)
	coll := index.Collect(store, scenes, log, opts.Verbose)
	materials := distinct(coll.Meshes.AllMaterials(), coll.Templates.AllMaterials())
	sharing := index.BuildTextureSharing(store, materials)
	res.Meshes = len(coll.Meshes.Keys())
	res.Templates = len(coll.Templates.Keys())
	res.Materials = len(materials)
	log.Debug(opts.Verbose, "Collected %s, %s, %s; %d assets used by other scenes",
		display.FormatCount(res.Meshes, "mesh"),
		display.FormatCount(res.Templates, "template"),
		display.FormatCount(res.Materials, "material"),
		len(usage))

	folders := planner.New(store, layout, log, opts.Verbose)
	engine := relocate.New(store, folders, layout, usage, sharing, log, relocate.Options{
		DryRun:  opts.DryRun,
		Verbose: opts.Verbose,
	})
	engine.Relocate(coll)
	if n := engine.Verify(); n > 0 {
		log.Info("Verifier corrected %s", display.FormatCount(n, "texture"))
	}
	res.Reclaim = folders.Reclaim(opts.MaxCleanupPasses)

	res.Result = engine.Result()
	res.FoldersCreated = folders.Created()
	res.Elapsed = time.Since(start)
	logSummary(log, opts, &res)
	return res, nil
}

// distinct merges path lists into one sorted list without repeats.
func distinct(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range lists {
		for _, p := range l {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	sort.Strings(out)
	return out
}

// --- Logging helpers ---

func logRunHeader(log Logger, opts OrganizeOptions, layout planner.Layout, scenes []string) {
	log.Info("Organizing %s under %s", display.FormatCount(len(scenes), "scene"), layout.Root)
	for _, s := range scenes {
		log.Info("  Scene: %s", s)
	}
	log.Info("Scene folders: %s, %s", layout.Scene3D, layout.ScenePrefabs)
	log.Info("Common folders: %s, %s", layout.Common3D, layout.CommonPrefabs)
	if opts.DryRun {
		log.Warn("Dry run: nothing will be moved or deleted")
	}
}

func logSummary(log Logger, opts OrganizeOptions, res *Result) {
	log.Info("==============================")
	log.Info("Done: %d moved, %d corrected, %d already in place, %d failed",
		res.Moved, res.Corrected, res.Unchanged, res.Failed)
	log.Info("Summary report:")
	log.Info("  Meshes:    %d common, %d local", res.CommonMeshes, res.LocalMeshes)
	log.Info("  Templates: %d common, %d local", res.CommonTemplates, res.LocalTemplates)
	log.Info("  Materials: %d common, %d local", res.CommonMaterials, res.LocalMaterials)
	log.Info("  Folders:   %d created, %d removed", res.FoldersCreated, res.Reclaim.Deleted)

	if opts.DryRun {
		log.Info("  Data moved: n/a (dry run)")
	} else {
		log.Info("  Data moved: %s", display.FormatBytes(res.BytesMoved))
	}
	log.Debug(opts.Verbose, "  Elapsed: %s", res.Elapsed.Round(time.Millisecond))

	switch {
	case res.Failed > 0:
		log.Warn("%s could not be moved; see warnings above", display.FormatCount(res.Failed, "asset"))
	case res.Moves() == 0:
		log.Success("Already organized")
	default:
		log.Success("Organized %s", display.FormatCount(res.Moves(), "asset"))
	}
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})        {}
func (nopLogger) Success(string, ...interface{})     {}
func (nopLogger) Warn(string, ...interface{})        {}
func (nopLogger) Error(string, ...interface{})       {}
func (nopLogger) Debug(bool, string, ...interface{}) {}
