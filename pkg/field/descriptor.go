package field

import "fmt"

// Option is one selectable choice of a select, radio, or checkbox field.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Validation lists the constraints attached to a field. Pointer members are
// absent when nil so a zero bound stays distinguishable from no bound.
type Validation struct {
	Required  bool     `json:"required,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
}

// IsZero reports whether no constraint is set.
func (v Validation) IsZero() bool {
	return !v.Required &&
		v.Min == nil &&
		v.Max == nil &&
		v.MinLength == nil &&
		v.MaxLength == nil &&
		v.Pattern == ""
}

// Clone copies the pointer members so the result shares no storage with v.
func (v Validation) Clone() Validation {
	out := v
	out.Min = cloneFloat(v.Min)
	out.Max = cloneFloat(v.Max)
	out.MinLength = cloneInt(v.MinLength)
	out.MaxLength = cloneInt(v.MaxLength)
	return out
}

// Descriptor is one form field as edited in the builder.
//
// Options are meaningful for select, radio, and checkbox kinds; a nil slice is
// treated as an empty option list everywhere.
type Descriptor struct {
	Kind        Kind       `json:"type"`
	Label       string     `json:"label"`
	Name        string     `json:"name"`
	Placeholder string     `json:"placeholder,omitempty"`
	Options     []Option   `json:"options,omitempty"`
	Validation  Validation `json:"validation,omitzero"`
	UIHints     *UIHints   `json:"uiSchema,omitempty"`
}

// Clone returns a deep copy of the descriptor.
func (d Descriptor) Clone() Descriptor {
	out := d
	if d.Options != nil {
		out.Options = append([]Option(nil), d.Options...)
	}
	out.Validation = d.Validation.Clone()
	out.UIHints = d.UIHints.Clone()
	return out
}

// WithOption appends a generated option named after its 1-based position.
func (d Descriptor) WithOption() Descriptor {
	out := d.Clone()
	next := len(out.Options) + 1
	out.Options = append(out.Options, Option{
		Label: fmt.Sprintf("Option %d", next),
		Value: fmt.Sprintf("option%d", next),
	})
	return out
}

// WithoutOption removes the option at index. Out of range indexes leave the
// copy unchanged.
func (d Descriptor) WithoutOption(index int) Descriptor {
	out := d.Clone()
	if index < 0 || index >= len(out.Options) {
		return out
	}
	out.Options = append(out.Options[:index], out.Options[index+1:]...)
	return out
}

// OptionValues returns the option values in order, or nil when the field has
// no options.
func (d Descriptor) OptionValues() []string {
	if d.Options == nil {
		return nil
	}
	values := make([]string, len(d.Options))
	for i, opt := range d.Options {
		values[i] = opt.Value
	}
	return values
}

// EffectivePlaceholder prefers the UI hint override over the field placeholder.
func (d Descriptor) EffectivePlaceholder() string {
	if d.UIHints != nil && d.UIHints.Placeholder != "" {
		return d.UIHints.Placeholder
	}
	return d.Placeholder
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

// Float returns a pointer to v. Handy when building validation literals.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}
