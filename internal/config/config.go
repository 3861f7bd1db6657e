// Package config holds runtime configuration: defaults, an optional TOML
// file, .env and environment overrides, CLI flag parsing, and validation.
//
// Precedence, lowest first: [DefaultConfig], the config file, ASSETSORT_*
// environment variables (a .env file in the working directory is loaded
// into the environment first), then CLI flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Mode selects what the run does.
type Mode string

const (
	ModeOrganize Mode = "organize" // Relocate the active scenes' assets (default).
	ModeUnused   Mode = "unused"   // Report (and optionally quarantine) unreferenced assets.
	ModeCheck    Mode = "check"    // Summarise the project and exit.
)

// FolderNames are the names of the canonical folders created under the root.
type FolderNames struct {
	Base3D      string `toml:"base_3d"`
	BasePrefabs string `toml:"base_prefabs"`
	Common      string `toml:"common"`
	Objects     string `toml:"objects"`
	Materials   string `toml:"materials"`
	Textures    string `toml:"textures"`
}

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then by [LoadFile], [ApplyEnv] and [ParseFlags], before being passed (by
// pointer) to packages that need it.
type Config struct {
	// Paths. RootFolder and Scenes are store paths relative to ProjectDir.
	ProjectDir string   `toml:"project"`
	RootFolder string   `toml:"root"`
	Scenes     []string `toml:"scenes"`
	ConfigFile string   `toml:"-"`

	Mode Mode `toml:"-"`

	// Behavior.
	DryRun           bool `toml:"dry_run"`
	CacheSize        int  `toml:"cache_size"`         // Default: 4096 parsed documents.
	MaxCleanupPasses int  `toml:"max_cleanup_passes"` // Default: 50.

	Folders FolderNames `toml:"folders"`

	// Unused-resource scan.
	ExportPath       string `toml:"export"`
	Quarantine       bool   `toml:"quarantine"`
	QuarantineFolder string `toml:"quarantine_folder"` // Default: "_QUARANTINE".

	// Display and logging.
	Verbose   bool      `toml:"verbose"`
	ColorMode ColorMode `toml:"color"`
	LogFile   string    `toml:"log"`
}

// DefaultConfig returns a Config with every default set. Used as the base
// before the file, environment and flags apply overrides.
func DefaultConfig() Config {
	return Config{
		ProjectDir:       ".",
		Mode:             ModeOrganize,
		CacheSize:        4096,
		MaxCleanupPasses: 50,
		Folders: FolderNames{
			Base3D:      "_3D",
			BasePrefabs: "_Prefabs",
			Common:      "COMMON",
			Objects:     "Objects",
			Materials:   "Materials",
			Textures:    "Textures",
		},
		QuarantineFolder: "_QUARANTINE",
		ColorMode:        ColorAuto,
	}
}

// NormalizeStorePath converts a user-supplied store path to the store's
// slash-separated, relative form: backslashes become slashes and leading
// "./", leading and trailing slashes are removed.
func NormalizeStorePath(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), `\`, "/")
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	p = strings.Trim(p, "/")
	if p == "" {
		return "."
	}
	return p
}

// ExpandPaths resolves a leading "~" in the filesystem paths of c.
func (c *Config) ExpandPaths() error {
	for _, p := range []*string{&c.ProjectDir, &c.LogFile, &c.ExportPath} {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("expand %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// Validate checks enum fields and tunables, and that the positional
// arguments required by the selected mode are present.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}
	switch c.Mode {
	case ModeOrganize, ModeUnused, ModeCheck:
		// valid
	default:
		return fmt.Errorf("invalid mode %q", c.Mode)
	}
	if c.CacheSize <= 0 {
		return errors.New("cache size must be positive")
	}
	if c.MaxCleanupPasses <= 0 {
		return errors.New("max cleanup passes must be positive")
	}
	if err := c.Folders.validate(); err != nil {
		return err
	}
	if err := validateFolderName("quarantine folder", c.QuarantineFolder); err != nil {
		return err
	}
	if c.ProjectDir == "" {
		return errors.New("project directory must not be empty")
	}

	if c.RootFolder == "" || c.RootFolder == "." {
		return errors.New("need a root folder inside the project")
	}
	if c.Mode == ModeOrganize && len(c.Scenes) == 0 {
		return errors.New("need at least one scene to organize")
	}
	if c.Mode != ModeUnused && (c.ExportPath != "" || c.Quarantine) {
		return errors.New("--export and --quarantine only apply to --unused")
	}
	return nil
}

func (n FolderNames) validate() error {
	names := []struct{ label, v string }{
		{"3D base folder", n.Base3D},
		{"prefabs base folder", n.BasePrefabs},
		{"common folder", n.Common},
		{"objects folder", n.Objects},
		{"materials folder", n.Materials},
		{"textures folder", n.Textures},
	}
	for _, x := range names {
		if err := validateFolderName(x.label, x.v); err != nil {
			return err
		}
	}
	if strings.EqualFold(n.Base3D, n.BasePrefabs) {
		return errors.New("3D and prefabs base folders must differ")
	}
	return nil
}

func validateFolderName(label, v string) error {
	if strings.TrimSpace(v) == "" || v == "." || v == ".." || strings.ContainsAny(v, `/\`) {
		return fmt.Errorf("invalid %s name %q", label, v)
	}
	return nil
}
