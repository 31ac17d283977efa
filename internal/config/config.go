package config

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/joho/godotenv"

	"github.com/goliatone/go-formbuilder/internal/loader"
	"github.com/goliatone/go-formbuilder/pkg/preview"
)

// Environment variables read by Load. They override flag values.
const (
	EnvAddr          = "FORMBUILDER_ADDR"
	EnvHistoryLimit  = "FORMBUILDER_HISTORY_LIMIT"
	EnvTheme         = "FORMBUILDER_THEME"
	EnvThemeVariant  = "FORMBUILDER_THEME_VARIANT"
	EnvPreviewCache  = "FORMBUILDER_PREVIEW_CACHE"
	EnvLogLevel      = "FORMBUILDER_LOG_LEVEL"
	EnvAllowDupNames = "FORMBUILDER_ALLOW_DUPLICATE_NAMES"
	EnvImportRoot    = "FORMBUILDER_IMPORT_ROOT"
	EnvImportURLs    = "FORMBUILDER_IMPORT_URLS"
	EnvEngine        = "FORMBUILDER_TEMPLATE_ENGINE"
)

// Config holds server settings.
type Config struct {
	Addr           string
	HistoryLimit   int
	ThemePath      string
	ThemeVariant   string
	PreviewCache   int
	LogLevel       slog.Level
	AllowDuplicate bool
	FetchTimeout   time.Duration
	EnvFile        string
	// ImportRoot is the directory POST /import may read schemaSource paths
	// from. Empty disables path imports.
	ImportRoot string
	// ImportURLs lets POST /import fetch http(s) locations.
	ImportURLs bool
	// TemplateEngine selects the preview engine, see preview.WithEngine.
	TemplateEngine string
}

// Load parses args, loads the .env file named by -env (missing files are
// fine), then applies FORMBUILDER_* environment overrides.
func Load(args []string) (Config, error) {
	cfg := Config{}
	var logLevel string

	fset := flag.NewFlagSet("formbuilder-server", flag.ContinueOnError)
	fset.SetOutput(io.Discard)
	fset.StringVar(&cfg.Addr, "addr", "127.0.0.1:8080", "listen address")
	fset.IntVar(&cfg.HistoryLimit, "history-limit", 0, "maximum undo depth, 0 for unbounded")
	fset.StringVar(&cfg.ThemePath, "theme", "", "go-theme manifest file or URL (JSON or YAML)")
	fset.StringVar(&cfg.ThemeVariant, "theme-variant", "", "theme variant name")
	fset.IntVar(&cfg.PreviewCache, "preview-cache", preview.DefaultCacheSize, "rendered preview cache size, 0 disables")
	fset.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fset.BoolVar(&cfg.AllowDuplicate, "allow-duplicate-names", false, "allow fields to share a name")
	fset.DurationVar(&cfg.FetchTimeout, "fetch-timeout", loader.DefaultTimeout, "timeout for remote imports and themes")
	fset.StringVar(&cfg.EnvFile, "env", ".env", "dotenv file to load")
	fset.StringVar(&cfg.ImportRoot, "import-root", "", "directory schema imports may read from, empty disables")
	fset.BoolVar(&cfg.ImportURLs, "import-urls", false, "allow schema imports from http(s) URLs")
	fset.StringVar(&cfg.TemplateEngine, "template-engine", preview.EnginePongo2, "preview template engine: pongo2 or go-template")
	if err := fset.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: parse flags: %w", err)
	}

	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", cfg.EnvFile, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvAddr)); v != "" {
		if !strings.Contains(v, ":") {
			v = ":" + v
		}
		cfg.Addr = v
	}
	if err := envInt(EnvHistoryLimit, &cfg.HistoryLimit); err != nil {
		return Config{}, err
	}
	if err := envInt(EnvPreviewCache, &cfg.PreviewCache); err != nil {
		return Config{}, err
	}
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		cfg.ThemePath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvThemeVariant)); v != "" {
		cfg.ThemeVariant = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		logLevel = v
	}
	if err := envBool(EnvAllowDupNames, &cfg.AllowDuplicate); err != nil {
		return Config{}, err
	}
	if v := strings.TrimSpace(os.Getenv(EnvImportRoot)); v != "" {
		cfg.ImportRoot = v
	}
	if err := envBool(EnvImportURLs, &cfg.ImportURLs); err != nil {
		return Config{}, err
	}
	if v := strings.TrimSpace(os.Getenv(EnvEngine)); v != "" {
		cfg.TemplateEngine = v
	}
	switch cfg.TemplateEngine {
	case preview.EnginePongo2, preview.EngineGoTemplate:
	default:
		return Config{}, fmt.Errorf("config: unknown template engine %q", cfg.TemplateEngine)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return Config{}, fmt.Errorf("config: log level: %w", err)
	}
	if cfg.HistoryLimit < 0 {
		return Config{}, fmt.Errorf("config: history limit must not be negative")
	}
	return cfg, nil
}

func envInt(key string, dst *int) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = v
	return nil
}

func envBool(key string, dst *bool) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = v
	return nil
}

// ImportLoader returns the loader behind POST /import source imports, or nil
// when neither an import root nor URL imports are enabled. Paths are confined
// to ImportRoot through os.DirFS.
func (c Config) ImportLoader() *loader.Loader {
	var options []loader.Option
	if root := strings.TrimSpace(c.ImportRoot); root != "" {
		options = append(options, loader.WithFileSystem(os.DirFS(root)))
	}
	if c.ImportURLs {
		options = append(options, loader.WithHTTP(c.FetchTimeout))
	}
	if len(options) == 0 {
		return nil
	}
	return loader.New(options...)
}

// LoadTheme reads the manifest named by ThemePath and checks it against a
// go-theme registry. It returns nil when no theme is configured.
func (c Config) LoadTheme(ctx context.Context) (*theme.Manifest, error) {
	src := loader.ParseSource(c.ThemePath)
	if src == nil {
		return nil, nil
	}
	l := loader.New(loader.WithHTTP(c.FetchTimeout))
	raw, err := l.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("config: theme: %w", err)
	}
	var file manifestFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("config: decode theme: %w", err)
	}
	manifest := file.manifest()
	if strings.TrimSpace(manifest.Name) == "" {
		return nil, fmt.Errorf("config: theme manifest %s has no name", c.ThemePath)
	}
	if err := theme.NewRegistry().Register(manifest); err != nil {
		return nil, fmt.Errorf("config: theme %s: %w", manifest.Name, err)
	}
	return manifest, nil
}

type assetsFile struct {
	Prefix string            `json:"prefix"`
	Files  map[string]string `json:"files"`
}

type variantFile struct {
	Tokens    map[string]string `json:"tokens"`
	Templates map[string]string `json:"templates"`
	Assets    assetsFile        `json:"assets"`
}

type manifestFile struct {
	Name      string                 `json:"name"`
	Version   string                 `json:"version"`
	Tokens    map[string]string      `json:"tokens"`
	Templates map[string]string      `json:"templates"`
	Assets    assetsFile             `json:"assets"`
	Variants  map[string]variantFile `json:"variants"`
}

func (f manifestFile) manifest() *theme.Manifest {
	m := &theme.Manifest{
		Name:      strings.TrimSpace(f.Name),
		Version:   f.Version,
		Tokens:    f.Tokens,
		Templates: f.Templates,
		Assets:    theme.Assets{Prefix: f.Assets.Prefix, Files: f.Assets.Files},
	}
	if len(f.Variants) > 0 {
		m.Variants = make(map[string]theme.Variant, len(f.Variants))
		for name, v := range f.Variants {
			m.Variants[name] = theme.Variant{
				Tokens:    v.Tokens,
				Templates: v.Templates,
				Assets:    theme.Assets{Prefix: v.Assets.Prefix, Files: v.Assets.Files},
			}
		}
	}
	return m
}
