package jsonlit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	configDir           = ".jsonlit"
	configFileName      = "settings.toml"
	localConfigFileName = "settings.local.toml"
)

// DefaultSourceDir is where documents live when source_dir is unset.
const DefaultSourceDir = "source/json"

// Config is the effective configuration of a project directory.
type Config struct {
	// SourceDir is the absolute document root.
	SourceDir string
	Dialect   Dialect
	Indent    string
}

// LoadConfigResult holds the loaded configuration and any non-fatal problems.
type LoadConfigResult struct {
	Config   *Config
	Warnings []string
}

// fileConfig mirrors one settings file. Pointer fields distinguish an unset key
// from an explicitly empty value, so local settings can clear an indent.
type fileConfig struct {
	SourceDir *string `toml:"source_dir"`
	Dialect   *string `toml:"dialect"`
	Indent    *string `toml:"indent"`
}

// LoadConfig reads .jsonlit/settings.toml and .jsonlit/settings.local.toml
// under dir. Keys set in the local file override the project file.
func LoadConfig(dir string) (*LoadConfigResult, error) {
	var warnings []string

	projCfg, projWarnings, err := loadConfigFile(filepath.Join(dir, configDir, configFileName))
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, projWarnings...)

	localCfg, localWarnings, err := loadConfigFile(filepath.Join(dir, configDir, localConfigFileName))
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, localWarnings...)

	merged := fileConfig{}
	for _, fc := range []*fileConfig{projCfg, localCfg} {
		if fc == nil {
			continue
		}
		if fc.SourceDir != nil {
			merged.SourceDir = fc.SourceDir
		}
		if fc.Dialect != nil {
			merged.Dialect = fc.Dialect
		}
		if fc.Indent != nil {
			merged.Indent = fc.Indent
		}
	}

	cfg := &Config{
		SourceDir: filepath.Join(dir, DefaultSourceDir),
		Dialect:   DialectJSON,
	}
	if merged.SourceDir != nil && *merged.SourceDir != "" {
		sourceDir := *merged.SourceDir
		if !filepath.IsAbs(sourceDir) {
			sourceDir = filepath.Join(dir, sourceDir)
		}
		cfg.SourceDir = filepath.Clean(sourceDir)
	}
	if merged.Dialect != nil {
		d, err := ParseDialect(*merged.Dialect)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("dialect: %v, using %q", err, DialectJSON))
		} else {
			cfg.Dialect = d
		}
	}
	if merged.Indent != nil {
		if strings.Contains(*merged.Indent, "\n") {
			warnings = append(warnings, "indent: must not contain a newline, ignoring")
		} else {
			cfg.Indent = *merged.Indent
		}
	}

	return &LoadConfigResult{Config: cfg, Warnings: warnings}, nil
}

func loadConfigFile(path string) (*fileConfig, []string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil, nil
	}

	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	var warnings []string
	for _, key := range md.Undecoded() {
		warnings = append(warnings, fmt.Sprintf("%s: unknown key %q", filepath.Base(path), key.String()))
	}
	return &fc, warnings, nil
}
