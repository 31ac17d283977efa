package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/field"
)

// Built-in widget identifiers. Each maps to one preview partial.
const (
	WidgetText       = "text"
	WidgetNumber     = "number"
	WidgetTextarea   = "textarea"
	WidgetSelect     = "select"
	WidgetRadio      = "radio"
	WidgetCheckboxes = "checkboxes"
	WidgetDate       = "date"
	WidgetTime       = "time"
	WidgetFile       = "file"
)

// Matcher decides whether a widget should handle the supplied descriptor.
type Matcher func(d field.Descriptor) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for descriptors based on an explicit ui:widget
// hint or registered matchers. Higher priority wins; ties fall back to
// registration order.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with one matcher per field kind.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher under name. Blank names and nil matchers are
// ignored.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget for d. The ui:widget hint is honoured before
// matcher evaluation.
func (r *Registry) Resolve(d field.Descriptor) (string, bool) {
	if explicit := Explicit(d); explicit != "" {
		return explicit, true
	}
	return r.Match(d)
}

// Match evaluates the registered matchers only, ignoring hints.
func (r *Registry) Match(d field.Descriptor) (string, bool) {
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	if len(rules) == 0 {
		return "", false
	}

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(d) {
			return entry.name, true
		}
	}
	return "", false
}

// Names lists the registered widget names in registration order without
// duplicates.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(r.rules))
	out := make([]string, 0, len(r.rules))
	for _, entry := range r.rules {
		if _, ok := seen[entry.name]; ok {
			continue
		}
		seen[entry.name] = struct{}{}
		out = append(out, entry.name)
	}
	return out
}

// Explicit returns the trimmed ui:widget hint of d, or "".
func Explicit(d field.Descriptor) string {
	if d.UIHints == nil {
		return ""
	}
	return strings.TrimSpace(d.UIHints.Widget)
}

func kindIs(kind field.Kind) Matcher {
	return func(d field.Descriptor) bool {
		return d.Kind == kind
	}
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetTextarea, 90, kindIs(field.KindTextarea))
	r.Register(WidgetRadio, 80, kindIs(field.KindRadio))
	r.Register(WidgetCheckboxes, 80, kindIs(field.KindCheckbox))
	r.Register(WidgetSelect, 70, kindIs(field.KindSelect))
	r.Register(WidgetNumber, 60, kindIs(field.KindNumber))
	r.Register(WidgetDate, 50, kindIs(field.KindDate))
	r.Register(WidgetTime, 50, kindIs(field.KindTime))
	r.Register(WidgetFile, 50, kindIs(field.KindFile))

	// Anything else renders as a plain text input.
	r.Register(WidgetText, 0, func(field.Descriptor) bool { return true })
}
