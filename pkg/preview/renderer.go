package preview

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	theme "github.com/goliatone/go-theme"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formbuilder/pkg/fieldlist"
	pkgrender "github.com/goliatone/go-formbuilder/pkg/render"
	rendertemplate "github.com/goliatone/go-formbuilder/pkg/render/template"
	"github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formbuilder/pkg/widgets"
)

const defaultTitle = "Form Preview"

// RenderOptions carries per request values and error messages.
type RenderOptions = pkgrender.RenderOptions

var _ pkgrender.Renderer = (*Renderer)(nil)

// Renderer turns a field list into preview HTML. It is safe for concurrent
// use.
type Renderer struct {
	templates rendertemplate.Executor
	widgets   *widgets.Registry
	theme     *theme.RendererConfig
	cache     *lru.Cache[string, []byte]
	plain     *bluemonday.Policy
	rich      *bluemonday.Policy
	title     string
	logger    *slog.Logger
}

// New constructs a renderer from the embedded templates unless options say
// otherwise.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		cacheSize: DefaultCacheSize,
		title:     defaultTitle,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := newEngine(cfg.engine, cfg.templateFS)
		if err != nil {
			return nil, fmt.Errorf("preview: configure template renderer: %w", err)
		}
		templates = engine
	}

	r := &Renderer{
		templates: templates,
		widgets:   cfg.widgets,
		theme:     themeConfig(cfg.manifest, cfg.variant),
		plain:     bluemonday.StrictPolicy(),
		rich:      bluemonday.UGCPolicy(),
		title:     cfg.title,
		logger:    cfg.logger,
	}
	if cfg.cacheSize > 0 {
		cache, err := lru.New[string, []byte](cfg.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("preview: create cache: %w", err)
		}
		r.cache = cache
	}
	return r, nil
}

func newEngine(name string, files fs.FS) (rendertemplate.Executor, error) {
	options := []gotemplate.Option{
		gotemplate.WithFS(files),
		gotemplate.WithExtension(".tmpl"),
	}
	switch name {
	case "", EnginePongo2:
		return gotemplate.New(options...)
	case EngineGoTemplate:
		return gotemplate.NewGoTemplate(options...)
	default:
		return nil, fmt.Errorf("unknown template engine %q", name)
	}
}

// Name identifies the renderer.
func (r *Renderer) Name() string {
	return "preview"
}

// ContentType is the media type of Render output.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the preview HTML for list.
func (r *Renderer) Render(ctx context.Context, list fieldlist.List, opts RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("preview: template renderer is nil")
	}

	key, err := cacheKey(list, opts)
	if err != nil {
		return nil, fmt.Errorf("preview: cache key: %w", err)
	}
	if r.cache != nil {
		if cached, ok := r.cache.Get(key); ok {
			r.logger.Debug("preview cache hit", "fields", len(list))
			return append([]byte(nil), cached...), nil
		}
	}

	views := make([]fieldView, 0, len(list))
	for _, d := range list {
		views = append(views, r.buildField(d, opts))
	}

	data := map[string]any{
		"title":  r.title,
		"fields": views,
	}
	if r.theme != nil {
		data["theme_name"] = r.theme.Theme
		data["theme_variant"] = r.theme.Variant
		data["css_vars"] = cssVarsBlock(r.theme.CSSVars)
		if r.theme.AssetURL != nil {
			data["stylesheet"] = r.theme.AssetURL(stylesheetAsset)
		}
	}

	out, err := r.templates.RenderTemplate("form", data)
	if err != nil {
		return nil, fmt.Errorf("preview: render template: %w", err)
	}
	result := []byte(out)
	if r.cache != nil {
		r.cache.Add(key, append([]byte(nil), result...))
	}
	r.logger.Debug("preview rendered", "fields", len(list), "bytes", len(result))
	return result, nil
}

// Purge drops every cached render.
func (r *Renderer) Purge() {
	if r != nil && r.cache != nil {
		r.cache.Purge()
	}
}

func cacheKey(list fieldlist.List, opts RenderOptions) (string, error) {
	payload, err := json.Marshal(struct {
		Fields fieldlist.List `json:"fields"`
		Opts   RenderOptions  `json:"opts"`
	}{list, opts})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
