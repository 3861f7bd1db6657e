package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into mode, behavior, layout, display, and utility.
// Negated flags (e.g. --no-color) are applied after Parse so earlier layers hold unless set.

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// version is shown in --version and help; override at build time with
// -ldflags "-X github.com/backmassage/assetsort/internal/config.version=...".
var version = "1.0.0-dev"

// Version returns the program version.
func Version() string { return version }

// ParseFlags parses args (without the program name) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (e.g. unknown
// flag, missing positional args).
func ParseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("assetsort", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	// Negated/override flags: we capture bools then apply to cfg after Parse,
	// so that earlier layers hold unless the user passes the flag.
	var negated negatedFlags

	defineModeFlags(fs, cfg, &negated)
	defineBehaviorFlags(fs, cfg)
	defineLayoutFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, cfg, &negated)

	if err := fs.Parse(args); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(fs)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "assetsort v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
type negatedFlags struct {
	unused      bool
	check       bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineModeFlags registers --unused, --check and the scan options.
func defineModeFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.unused, "unused", false, "Report assets no scene or template under the root uses")
	fs.BoolVar(&n.unused, "u", false, "Same as --unused")
	fs.StringVar(&cfg.ExportPath, "export", cfg.ExportPath, "Write the unused report to a file")
	fs.StringVar(&cfg.ExportPath, "e", cfg.ExportPath, "Same as --export")
	fs.BoolVar(&cfg.Quarantine, "quarantine", cfg.Quarantine, "Move unused assets into the quarantine folder")
	fs.StringVar(&cfg.QuarantineFolder, "quarantine-folder", cfg.QuarantineFolder, "Quarantine folder name under the root")
	fs.BoolVar(&n.check, "check", false, "Summarise the project and exit")
	fs.BoolVar(&n.check, "c", false, "Same as --check")
}

// defineBehaviorFlags registers project, config, dry-run and tuning flags.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.ProjectDir, "project", cfg.ProjectDir, "Project directory holding the content tree")
	fs.StringVar(&cfg.ProjectDir, "P", cfg.ProjectDir, "Same as --project")
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "TOML config file")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Preview only; do not move or delete anything")
	fs.BoolVar(&cfg.DryRun, "d", cfg.DryRun, "Same as --dry-run")
	fs.IntVar(&cfg.CacheSize, "cache-size", cfg.CacheSize, "Parsed documents kept in memory")
	fs.IntVar(&cfg.MaxCleanupPasses, "max-cleanup-passes", cfg.MaxCleanupPasses, "Ceiling for empty-folder cleanup passes")
}

// defineLayoutFlags registers the canonical folder names.
func defineLayoutFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Folders.Base3D, "folder-3d", cfg.Folders.Base3D, "3D base folder name")
	fs.StringVar(&cfg.Folders.BasePrefabs, "folder-prefabs", cfg.Folders.BasePrefabs, "Prefabs base folder name")
	fs.StringVar(&cfg.Folders.Common, "folder-common", cfg.Folders.Common, "Shared-resource folder name")
	fs.StringVar(&cfg.Folders.Objects, "folder-objects", cfg.Folders.Objects, "Common objects folder name")
	fs.StringVar(&cfg.Folders.Materials, "folder-materials", cfg.Folders.Materials, "Common materials folder name")
	fs.StringVar(&cfg.Folders.Textures, "folder-textures", cfg.Folders.Textures, "Common textures folder name")
}

// defineDisplayFlags registers --color, --no-color, verbose, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.Var(&colorModeValue{&cfg.ColorMode}, "color-mode", "Color mode: auto | always | never")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated and override flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	switch {
	case n.check:
		cfg.Mode = ModeCheck
	case n.unused:
		cfg.Mode = ModeUnused
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets RootFolder and Scenes from the positional args.
// Organize takes a root and one or more scenes; --unused and --check take
// only the root. Positional values replace those from earlier layers.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if len(args) == 0 {
		return nil
	}
	cfg.RootFolder = NormalizeStorePath(args[0])
	if cfg.Mode != ModeOrganize {
		if len(args) > 1 {
			return fmt.Errorf("--%s takes only the root folder", cfg.Mode)
		}
		return nil
	}
	if len(args) > 1 {
		cfg.Scenes = cfg.Scenes[:0]
		for _, s := range args[1:] {
			cfg.Scenes = append(cfg.Scenes, NormalizeStorePath(s))
		}
	}
	return nil
}

// parseInt parses a string as an integer; returns a clear error on failure.
func parseInt(s, name string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number (got %q)", name, s)
	}
	return n, nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet) {
	const col1 = 32 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "assetsort v" + version + " - scene-driven asset organizer"},
		{"", ""},
		{"  assetsort [OPTIONS] <root_folder> <scene>...", ""},
		{"  assetsort --unused [--export FILE] [--quarantine] <root_folder>", ""},
		{"  assetsort --check <root_folder>", ""},
		{"", ""},
		{"Modes", ""},
		{"  -u, --unused", "Report assets unused under the root"},
		{"  -e, --export <path>", "Write the unused report to a file"},
		{"  --quarantine", "Move unused assets to the quarantine folder"},
		{"  --quarantine-folder <name>", "Quarantine folder (default: _QUARANTINE)"},
		{"  -c, --check", "Summarise the project and exit"},
		{"", ""},
		{"Behavior", ""},
		{"  -P, --project <dir>", "Project directory (default: .)"},
		{"  --config <path>", "TOML config file"},
		{"  -d, --dry-run", "Preview only; do not move or delete anything"},
		{"  --cache-size <n>", "Parsed documents kept in memory (default: 4096)"},
		{"  --max-cleanup-passes <n>", "Empty-folder cleanup ceiling (default: 50)"},
		{"", ""},
		{"Layout", ""},
		{"  --folder-3d <name>", "3D base folder (default: _3D)"},
		{"  --folder-prefabs <name>", "Prefabs base folder (default: _Prefabs)"},
		{"  --folder-common <name>", "Shared-resource folder (default: COMMON)"},
		{"  --folder-objects <name>", "Common objects folder (default: Objects)"},
		{"  --folder-materials <name>", "Common materials folder (default: Materials)"},
		{"  --folder-textures <name>", "Common textures folder (default: Textures)"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  --color-mode <mode>", "auto | always | never (default: auto)"},
		{"  -v, --verbose", "Verbose output"},
		{"  -l, --log <path>", "Append logs to file"},
		{"", ""},
		{"Utility", ""},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
		{"", ""},
		{"", "Most options can also be set in the config file or with " + EnvPrefix + "* variables."},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapter so we can use the ColorMode enum with flag.Var.

type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string { return string(*c.p) }
func (c *colorModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*c.p = ColorAuto
	case "always":
		*c.p = ColorAlways
	case "never":
		*c.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}
