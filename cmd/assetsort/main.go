// Command assetsort is the CLI entrypoint for the scene-driven asset
// organizer.
//
// It loads configuration, opens the project's content store, and then
// organizes the active scenes (default), reports unused assets (--unused),
// or summarises the project (--check).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"syscall"

	"github.com/hack-pad/hackpadfs"
	osfs "github.com/hack-pad/hackpadfs/os"

	"github.com/backmassage/assetsort/internal/check"
	"github.com/backmassage/assetsort/internal/config"
	"github.com/backmassage/assetsort/internal/content"
	"github.com/backmassage/assetsort/internal/display"
	"github.com/backmassage/assetsort/internal/logging"
	"github.com/backmassage/assetsort/internal/pipeline"
	"github.com/backmassage/assetsort/internal/planner"
	"github.com/backmassage/assetsort/internal/unused"
)

// commit is injected at build time via -ldflags "-X main.commit=...".
var commit = "unknown"

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr.
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "assetsort: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "assetsort: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "assetsort: %v\n", err)
		return 1
	}
	defer log.Close()
	if p := log.Path(); p != "" {
		log.Debug(cfg.Verbose, "Log file: %s", p)
	}

	// Phase 2: Logger available; all output goes through log from here on.
	display.PrintBanner()
	log.Info("=== assetsort v%s (%s) ===", config.Version(), commit)
	log.Info("Project: %s", cfg.ProjectDir)
	if cfg.ConfigFile != "" {
		log.Debug(cfg.Verbose, "Config file: %s", cfg.ConfigFile)
	}

	// Signal handling: an interrupt before relocation starts aborts the run
	// cleanly; once moving, the run completes.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping before the next stage…")
		cancel()
	}()

	fsys, err := projectFS(cfg.ProjectDir)
	if err != nil {
		log.Error("Cannot open project %s: %v", cfg.ProjectDir, err)
		return 1
	}
	opts := storeOptions(&cfg, log)
	store, err := content.Open(fsys, opts)
	if err != nil {
		log.Error("Cannot index project: %v", err)
		return 1
	}
	if n := store.Minted(); n > 0 && opts.DryRun {
		log.Info("Found %s without a sidecar; none written", display.FormatCount(n, "asset"))
	} else if n > 0 {
		log.Info("Assigned identifiers to %s without a sidecar", display.FormatCount(n, "asset"))
	}

	switch cfg.Mode {
	case config.ModeCheck:
		if err := check.RunCheck(store, cfg.RootFolder, log); err != nil {
			return 1
		}
		return 0
	case config.ModeUnused:
		return runUnused(&cfg, store, log)
	}

	// Phase 3: Organize.
	res, err := pipeline.Organize(ctx, store, pipeline.OrganizeOptions{
		Root:             cfg.RootFolder,
		Scenes:           cfg.Scenes,
		Names:            layoutNames(cfg.Folders),
		DryRun:           cfg.DryRun,
		Verbose:          cfg.Verbose,
		MaxCleanupPasses: cfg.MaxCleanupPasses,
		Log:              log,
	})
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	if res.Failed > 0 {
		return 1
	}
	return 0
}

// runUnused scans for unused assets, then optionally exports the list and
// moves the assets into the quarantine folder.
func runUnused(cfg *config.Config, store *content.Store, log *logging.Logger) int {
	report, err := unused.Scan(store, cfg.RootFolder)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	log.Info("Analysed %s under %s", display.FormatCount(len(report.Scenes), "scene"), report.Root)
	for _, section := range []struct {
		label string
		paths []string
	}{
		{"model", report.Models},
		{"texture", report.Textures},
		{"material", report.Materials},
	} {
		log.Info("Unused: %s", display.FormatCount(len(section.paths), section.label))
		for _, p := range section.paths {
			log.Debug(cfg.Verbose, "  %s", p)
		}
	}
	if report.Total() == 0 {
		log.Success("No unused assets found")
		return 0
	}

	if cfg.ExportPath != "" {
		if err := report.ExportFile(cfg.ExportPath); err != nil {
			log.Error("%v", err)
			return 1
		}
		log.Success("List saved to %s", cfg.ExportPath)
	}

	if !cfg.Quarantine {
		return 0
	}
	dest := path.Join(cfg.RootFolder, cfg.QuarantineFolder)
	if cfg.DryRun {
		log.Warn("Dry run: would move %s to %s", display.FormatCount(report.Total(), "asset"), dest)
		return 0
	}
	moved, err := unused.Quarantine(store, report.All(), dest)
	if err != nil {
		log.Warn("Some assets could not be moved: %v", err)
	}
	log.Success("Moved %s to %s", display.FormatCount(moved, "asset"), dest)
	if err != nil {
		return 1
	}
	return 0
}

// storeOptions derives the store options for a run. --check only reads the
// project, so it never writes minted sidecars.
func storeOptions(cfg *config.Config, log content.Logger) content.Options {
	return content.Options{
		DryRun:    cfg.DryRun || cfg.Mode == config.ModeCheck,
		Verbose:   cfg.Verbose,
		CacheSize: cfg.CacheSize,
		Log:       log,
	}
}

// projectFS returns the OS filesystem rooted at dir.
func projectFS(dir string) (hackpadfs.FS, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	fsys, err := osfs.NewFS()
	if err != nil {
		return nil, err
	}
	sub, err := fsys.FromOSPath(abs)
	if err != nil {
		return nil, err
	}
	return fsys.Sub(sub)
}

func layoutNames(f config.FolderNames) planner.Names {
	return planner.Names{
		Base3D:      f.Base3D,
		BasePrefabs: f.BasePrefabs,
		Common:      f.Common,
		Objects:     f.Objects,
		Materials:   f.Materials,
		Textures:    f.Textures,
	}
}
