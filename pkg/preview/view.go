package preview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/widgets"
)

const defaultSelectPlaceholder = "Select an option"

// Template dispatch groups.
const (
	groupInput    = "input"
	groupTextarea = "textarea"
	groupSelect   = "select"
	groupChoices  = "choices"
)

// inputTypes maps input-like widgets to their HTML input type. Widgets that
// are neither here nor in the grouped set fall back to kind resolution.
var inputTypes = map[string]string{
	widgets.WidgetText:   "text",
	widgets.WidgetNumber: "number",
	widgets.WidgetDate:   "date",
	widgets.WidgetTime:   "time",
	widgets.WidgetFile:   "file",
	"updown":             "number",
	"range":              "range",
	"password":           "password",
	"email":              "email",
	"url":                "url",
	"color":              "color",
	"hidden":             "hidden",
}

type attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type optionView struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Value    string `json:"value"`
	Checked  bool   `json:"checked"`
	Disabled bool   `json:"disabled"`
}

type fieldView struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Label             string       `json:"label"`
	ShowLabel         bool         `json:"show_label"`
	Required          bool         `json:"required"`
	Resolved          string       `json:"resolved"`
	Widget            string       `json:"widget"`
	InputType         string       `json:"input_type"`
	GroupRole         string       `json:"group_role"`
	Inline            bool         `json:"inline"`
	Value             string       `json:"value"`
	Attrs             []attr       `json:"attrs"`
	Flags             []string     `json:"flags"`
	Options           []optionView `json:"options"`
	SelectPlaceholder string       `json:"select_placeholder"`
	Description       string       `json:"description"`
	DescriptionID     string       `json:"description_id"`
	Before            string       `json:"before"`
	After             string       `json:"after"`
	ClassNames        string       `json:"class_names"`
	Errors            []string     `json:"errors"`
}

func (r *Renderer) buildField(d field.Descriptor, opts RenderOptions) fieldView {
	hints := d.UIHints
	if hints == nil {
		hints = &field.UIHints{}
	}

	resolved := r.resolveWidget(d)
	view := fieldView{
		ID:         d.Name,
		Name:       d.Name,
		Label:      r.plain.Sanitize(d.Label),
		ShowLabel:  !hints.HideLabel,
		Required:   d.Validation.Required,
		Resolved:   resolved,
		Attrs:      []attr{},
		Flags:      []string{},
		Options:    []optionView{},
		ClassNames: strings.TrimSpace(hints.ClassNames),
		Before:     r.rich.Sanitize(hints.Before),
		After:      r.rich.Sanitize(hints.After),
		Errors:     append([]string{}, opts.Errors[d.Name]...),
	}
	if hints.Options != nil {
		view.Inline = hints.Options.Inline
	}

	selected := submittedValues(opts.Values[d.Name])
	if len(selected) > 0 {
		view.Value = selected[0]
	}

	if hints.Description != "" {
		view.Description = r.rich.Sanitize(hints.Description)
		view.DescriptionID = d.Name + "-description"
		view.Attrs = append(view.Attrs, attr{Name: "aria-describedby", Value: view.DescriptionID})
	}

	switch resolved {
	case widgets.WidgetTextarea:
		view.Widget = groupTextarea
		view.addPlaceholder(d)
		view.addLengths(d.Validation)
		if hints.Options != nil && hints.Options.Rows > 0 {
			view.Attrs = append(view.Attrs, attr{Name: "rows", Value: strconv.Itoa(hints.Options.Rows)})
		}
	case widgets.WidgetSelect:
		view.Widget = groupSelect
		view.SelectPlaceholder = d.Placeholder
		if view.SelectPlaceholder == "" {
			view.SelectPlaceholder = defaultSelectPlaceholder
		}
		view.Options = r.options(d, hints, selected, true)
	case widgets.WidgetRadio, widgets.WidgetCheckboxes:
		view.Widget = groupChoices
		view.InputType = "radio"
		view.GroupRole = "radiogroup"
		if resolved == widgets.WidgetCheckboxes {
			view.InputType = "checkbox"
			view.GroupRole = "group"
		}
		view.Options = r.options(d, hints, selected, false)
	default:
		view.Widget = groupInput
		view.InputType = inputTypes[resolved]
		view.addPlaceholder(d)
		view.addBounds(d.Validation)
		view.addLengths(d.Validation)
		if view.Value != "" && view.InputType != "file" {
			view.Attrs = append(view.Attrs, attr{Name: "value", Value: view.Value})
		}
		if view.InputType == "file" && hints.Options != nil && hints.Options.Accept != "" {
			view.Attrs = append(view.Attrs, attr{Name: "accept", Value: hints.Options.Accept})
		}
	}

	if hints.Autocomplete != "" {
		view.Attrs = append(view.Attrs, attr{Name: "autocomplete", Value: hints.Autocomplete})
	}
	if view.Required {
		view.Flags = append(view.Flags, "required")
	}
	if hints.Autofocus {
		view.Flags = append(view.Flags, "autofocus")
	}
	if hints.Disabled {
		view.Flags = append(view.Flags, "disabled")
	}
	if hints.Readonly {
		view.Flags = append(view.Flags, "readonly")
	}
	return view
}

// resolveWidget honours an explicit ui:widget only when the preview knows how
// to draw it.
func (r *Renderer) resolveWidget(d field.Descriptor) string {
	name, ok := r.widgets.Resolve(d)
	if ok && renderable(name) {
		return name
	}
	if name, ok := r.widgets.Match(d); ok && renderable(name) {
		return name
	}
	return widgets.WidgetText
}

func renderable(name string) bool {
	switch name {
	case widgets.WidgetTextarea, widgets.WidgetSelect, widgets.WidgetRadio, widgets.WidgetCheckboxes:
		return true
	}
	_, ok := inputTypes[name]
	return ok
}

func (r *Renderer) options(d field.Descriptor, hints *field.UIHints, selected []string, dropEmpty bool) []optionView {
	disabled := make(map[string]struct{}, len(hints.EnumDisabled))
	for _, value := range hints.EnumDisabled {
		disabled[value] = struct{}{}
	}
	chosen := make(map[string]struct{}, len(selected))
	for _, value := range selected {
		chosen[value] = struct{}{}
	}

	out := make([]optionView, 0, len(d.Options))
	for i, opt := range d.Options {
		if dropEmpty && opt.Value == "" {
			continue
		}
		_, isDisabled := disabled[opt.Value]
		_, isChecked := chosen[opt.Value]
		out = append(out, optionView{
			ID:       fmt.Sprintf("%s-%d", d.Name, i),
			Label:    r.plain.Sanitize(opt.Label),
			Value:    opt.Value,
			Checked:  isChecked,
			Disabled: isDisabled,
		})
	}
	return out
}

func (v *fieldView) addPlaceholder(d field.Descriptor) {
	if placeholder := d.EffectivePlaceholder(); placeholder != "" {
		v.Attrs = append(v.Attrs, attr{Name: "placeholder", Value: placeholder})
	}
}

func (v *fieldView) addBounds(rules field.Validation) {
	if rules.Min != nil {
		v.Attrs = append(v.Attrs, attr{Name: "min", Value: formatFloat(*rules.Min)})
	}
	if rules.Max != nil {
		v.Attrs = append(v.Attrs, attr{Name: "max", Value: formatFloat(*rules.Max)})
	}
}

func (v *fieldView) addLengths(rules field.Validation) {
	if rules.MinLength != nil {
		v.Attrs = append(v.Attrs, attr{Name: "minlength", Value: strconv.Itoa(*rules.MinLength)})
	}
	if rules.MaxLength != nil {
		v.Attrs = append(v.Attrs, attr{Name: "maxlength", Value: strconv.Itoa(*rules.MaxLength)})
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// submittedValues normalises a prefill value to strings.
func submittedValues(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case float64:
		return []string{formatFloat(v)}
	default:
		return []string{fmt.Sprint(v)}
	}
}
