package field

// UIHints carries per-field rendering directives. The JSON keys match the
// react-jsonschema-form UI schema vocabulary so exported documents can be fed
// to existing renderers unchanged.
type UIHints struct {
	Widget       string         `json:"ui:widget,omitempty"`
	Options      *WidgetOptions `json:"ui:options,omitempty"`
	Order        []string       `json:"ui:order,omitempty"`
	Disabled     bool           `json:"ui:disabled,omitempty"`
	Readonly     bool           `json:"ui:readonly,omitempty"`
	Description  string         `json:"ui:description,omitempty"`
	Placeholder  string         `json:"ui:placeholder,omitempty"`
	Autocomplete string         `json:"ui:autocomplete,omitempty"`
	Autofocus    bool           `json:"ui:autofocus,omitempty"`
	EnumDisabled []string       `json:"ui:enumDisabled,omitempty"`
	ClassNames   string         `json:"classNames,omitempty"`
	Before       string         `json:"ui:before,omitempty"`
	After        string         `json:"ui:after,omitempty"`
	HideLabel    bool           `json:"ui:hideLabel,omitempty"`
}

// WidgetOptions holds widget specific tweaks nested under ui:options.
type WidgetOptions struct {
	Inline bool   `json:"inline,omitempty"`
	Rows   int    `json:"rows,omitempty"`
	Accept string `json:"accept,omitempty"`
	Format string `json:"format,omitempty"`
}

// Clone returns a deep copy of the hints. A nil receiver yields nil.
func (h *UIHints) Clone() *UIHints {
	if h == nil {
		return nil
	}
	out := *h
	if h.Options != nil {
		opts := *h.Options
		out.Options = &opts
	}
	if h.Order != nil {
		out.Order = append([]string(nil), h.Order...)
	}
	if h.EnumDisabled != nil {
		out.EnumDisabled = append([]string(nil), h.EnumDisabled...)
	}
	return &out
}
