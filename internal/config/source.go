package config

// This file layers the config file and the environment over the defaults.

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment variable read by [ApplyEnv].
const EnvPrefix = "ASSETSORT_"

// Load builds the effective configuration for args (without the program
// name): defaults, then the config file, then the environment, then flags.
// A .env file in the working directory is loaded into the environment
// first; a missing one is not an error.
func Load(args []string) (Config, error) {
	cfg := DefaultConfig()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	file := configFlag(args)
	if file == "" {
		file = os.Getenv(EnvPrefix + "CONFIG")
	}
	if file != "" {
		if err := LoadFile(&cfg, file); err != nil {
			return cfg, err
		}
	}

	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := ParseFlags(&cfg, args); err != nil {
		return cfg, err
	}
	cfg.RootFolder = NormalizeStorePath(cfg.RootFolder)
	for i, s := range cfg.Scenes {
		cfg.Scenes[i] = NormalizeStorePath(s)
	}
	if err := cfg.ExpandPaths(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFile decodes the TOML file at path over cfg. Keys cfg does not know
// are rejected.
func LoadFile(cfg *Config, path string) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("expand %q: %w", path, err)
	}
	f, err := os.Open(expanded)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := decodeTOML(cfg, f); err != nil {
		return fmt.Errorf("config %s: %w", expanded, err)
	}
	cfg.ConfigFile = expanded
	return nil
}

func decodeTOML(cfg *Config, r io.Reader) error {
	return toml.NewDecoder(r).DisallowUnknownFields().Decode(cfg)
}

// ApplyEnv overrides cfg from ASSETSORT_* variables found through lookup
// (os.LookupEnv in production).
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return "", false
		}
		return strings.TrimSpace(v), true
	}

	strs := []struct {
		name string
		dst  *string
	}{
		{"PROJECT", &cfg.ProjectDir},
		{"ROOT", &cfg.RootFolder},
		{"LOG", &cfg.LogFile},
		{"EXPORT", &cfg.ExportPath},
		{"QUARANTINE_FOLDER", &cfg.QuarantineFolder},
		{"BASE_3D", &cfg.Folders.Base3D},
		{"BASE_PREFABS", &cfg.Folders.BasePrefabs},
		{"COMMON", &cfg.Folders.Common},
		{"OBJECTS", &cfg.Folders.Objects},
		{"MATERIALS", &cfg.Folders.Materials},
		{"TEXTURES", &cfg.Folders.Textures},
	}
	for _, s := range strs {
		if v, ok := get(s.name); ok && v != "" {
			*s.dst = v
		}
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"DRY_RUN", &cfg.DryRun},
		{"VERBOSE", &cfg.Verbose},
		{"QUARANTINE", &cfg.Quarantine},
	}
	for _, b := range bools {
		v, ok := get(b.name)
		if !ok || v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s must be a boolean (got %q)", EnvPrefix, b.name, v)
		}
		*b.dst = parsed
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"CACHE_SIZE", &cfg.CacheSize},
		{"MAX_CLEANUP_PASSES", &cfg.MaxCleanupPasses},
	}
	for _, n := range ints {
		v, ok := get(n.name)
		if !ok || v == "" {
			continue
		}
		parsed, err := parseInt(v, EnvPrefix+n.name)
		if err != nil {
			return err
		}
		*n.dst = parsed
	}

	if v, ok := get("COLOR"); ok && v != "" {
		var cv colorModeValue
		cv.p = &cfg.ColorMode
		if err := cv.Set(v); err != nil {
			return err
		}
	}
	if v, ok := get("SCENES"); ok && v != "" {
		cfg.Scenes = splitList(v)
	}
	return nil
}

// configFlag finds the value of --config / -config in args without
// parsing the rest, so the file can be applied before the flags.
func configFlag(args []string) string {
	for i, a := range args {
		if a == "--" {
			return ""
		}
		for _, name := range []string{"--config", "-config"} {
			if a == name && i+1 < len(args) {
				return args[i+1]
			}
			if strings.HasPrefix(a, name+"=") {
				return strings.TrimPrefix(a, name+"=")
			}
		}
	}
	return ""
}

// splitList splits a comma-separated list, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
