package preview

import (
	"io/fs"
	"log/slog"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	rendertemplate "github.com/goliatone/go-formbuilder/pkg/render/template"
	"github.com/goliatone/go-formbuilder/pkg/widgets"
)

// DefaultCacheSize is the number of rendered previews kept when no explicit
// size is configured.
const DefaultCacheSize = 64

// Template engines selectable with WithEngine. Both run the same pongo2
// templates.
const (
	EnginePongo2     = "pongo2"
	EngineGoTemplate = "go-template"
)

// Option configures a Renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.Executor
	engine           string
	widgets          *widgets.Registry
	manifest         *theme.Manifest
	variant          string
	cacheSize        int
	title            string
	logger           *slog.Logger
}

// WithTemplatesFS supplies an alternate template bundle. It must provide
// form.tmpl and field.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer.
func WithTemplateRenderer(renderer rendertemplate.Executor) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithEngine picks the engine that executes the template bundle when no
// renderer is injected: EnginePongo2 (the default) or EngineGoTemplate.
func WithEngine(name string) Option {
	return func(cfg *config) {
		cfg.engine = strings.ToLower(strings.TrimSpace(name))
	}
}

// WithWidgetRegistry replaces the default widget registry.
func WithWidgetRegistry(reg *widgets.Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.widgets = reg
		}
	}
}

// WithTheme applies a go-theme manifest. Variant tokens and assets override
// the manifest defaults; an unknown variant falls back to the defaults.
func WithTheme(manifest *theme.Manifest, variant string) Option {
	return func(cfg *config) {
		cfg.manifest = manifest
		cfg.variant = strings.TrimSpace(variant)
	}
}

// WithCacheSize bounds the render cache. Zero or a negative size disables
// caching.
func WithCacheSize(size int) Option {
	return func(cfg *config) {
		cfg.cacheSize = size
	}
}

// WithTitle sets the heading shown above the form.
func WithTitle(title string) Option {
	return func(cfg *config) {
		cfg.title = title
	}
}

// WithLogger routes renderer events to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
