package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/ironsheep/quickstitch/internal/detection"
	"github.com/ironsheep/quickstitch/internal/export"
	"github.com/ironsheep/quickstitch/internal/imaging"
)

// Input controls how source images are found and loaded.
type Input struct {
	Sort             string `toml:"sort"`
	Width            int    `toml:"width"` // 0 = smallest native width
	IgnoreUnloadable bool   `toml:"ignore_unloadable"`
}

// Split tunes the splitpoint scan.
type Split struct {
	MaxHeight    int `toml:"max_height"`
	MinHeight    int `toml:"min_height"`
	ScanInterval int `toml:"scan_interval"`
	Sensitivity  int `toml:"sensitivity"`
}

// Output controls page export.
type Output struct {
	Dir       string `toml:"dir"`
	Format    string `toml:"format"`
	Quality   int    `toml:"quality"`
	Debug     bool   `toml:"debug"`
	CutColor  string `toml:"cut_color"`
	SkipColor string `toml:"skip_color"`
	CreateDir bool   `toml:"create_dir"`
}

// Workers bounds the decode and encode pools.
type Workers struct {
	Count int `toml:"count"` // 0 = runtime.NumCPU()
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the full configuration file.
type Config struct {
	Input   Input   `toml:"input"`
	Split   Split   `toml:"split"`
	Output  Output  `toml:"output"`
	Workers Workers `toml:"workers"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns ~/.config/quickstitch/config.toml.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/quickstitch/config.toml")
}

// Load reads configuration from path, or from the default locations when
// path is empty. It returns the config, the path that was consulted and
// whether that file existed. A missing file yields defaults.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("quickstitch.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// SortMode returns the parsed input ordering.
func (c *Config) SortMode() imaging.SortMode {
	mode, err := imaging.ParseSortMode(c.Input.Sort)
	if err != nil {
		return imaging.SortNatural
	}
	return mode
}

// LoadOptions converts the input section for the loader.
func (c *Config) LoadOptions(logger *slog.Logger) imaging.LoadOptions {
	return imaging.LoadOptions{
		Width:            c.Input.Width,
		IgnoreUnloadable: c.Input.IgnoreUnloadable,
		Workers:          c.Workers.Count,
		Logger:           logger,
	}
}

// SplitOptions converts the split section for the splitpoint finder.
func (c *Config) SplitOptions() detection.Options {
	return detection.Options{
		MaxHeight:    c.Split.MaxHeight,
		MinHeight:    c.Split.MinHeight,
		ScanInterval: c.Split.ScanInterval,
		Sensitivity:  uint8(c.Split.Sensitivity),
	}
}

// ExportFormat returns the configured output format.
func (c *Config) ExportFormat() (export.Format, error) {
	return export.ParseFormat(c.Output.Format, c.Output.Quality)
}

// ExportOptions converts the output section for the exporter.
func (c *Config) ExportOptions(logger *slog.Logger) (export.Options, error) {
	cut, err := export.ParseColor(c.Output.CutColor)
	if err != nil {
		return export.Options{}, fmt.Errorf("output.cut_color: %w", err)
	}
	skip, err := export.ParseColor(c.Output.SkipColor)
	if err != nil {
		return export.Options{}, fmt.Errorf("output.skip_color: %w", err)
	}
	return export.Options{
		Debug:     c.Output.Debug,
		CutColor:  cut,
		SkipColor: skip,
		Workers:   c.Workers.Count,
		Logger:    logger,
	}, nil
}

// ExpandPath resolves a leading ~ and makes the path absolute.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}
