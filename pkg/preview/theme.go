package preview

import (
	"sort"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// stylesheetAsset is the manifest asset key for the preview stylesheet.
const stylesheetAsset = "preview.stylesheet"

// themeConfig flattens a manifest and optional variant into renderer
// configuration. Tokens become CSS custom properties named --<token>.
func themeConfig(manifest *theme.Manifest, variant string) *theme.RendererConfig {
	if manifest == nil {
		return nil
	}

	tokens := mergeStrings(manifest.Tokens, nil)
	partials := mergeStrings(manifest.Templates, nil)
	files := mergeStrings(manifest.Assets.Files, nil)
	prefix := manifest.Assets.Prefix

	if v, ok := manifest.Variants[variant]; ok {
		tokens = mergeStrings(tokens, v.Tokens)
		partials = mergeStrings(partials, v.Templates)
		files = mergeStrings(files, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	} else {
		variant = ""
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+strings.TrimPrefix(key, "--")] = value
	}

	return &theme.RendererConfig{
		Theme:    manifest.Name,
		Variant:  variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: assetResolver(prefix, files),
	}
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
			return file
		}
		if prefix == "" {
			return file
		}
		return strings.TrimRight(prefix, "/") + "/" + file
	}
}

// cssVarsBlock renders a :root rule for a <style> element. The result is
// marked safe in form.tmpl, so names and values are escaped here for CSS.
func cssVarsBlock(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		name := cssPropertyName(key)
		if name == "--" {
			continue
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(cssValue(vars[key]))
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

// cssPropertyName keeps the characters a custom property name can carry
// unescaped.
func cssPropertyName(key string) string {
	var b strings.Builder
	b.WriteString("--")
	for _, r := range strings.TrimPrefix(key, "--") {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// cssValue hex escapes the characters that could end the declaration, the
// rule or the style element. Quotes pass through.
func cssValue(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch r {
		case '<', '>', '{', '}', ';', '\\', '\n', '\r', '\f', 0:
			b.WriteByte('\\')
			b.WriteString(strconv.FormatInt(int64(r), 16))
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func mergeStrings(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		out[key] = value
	}
	return out
}
