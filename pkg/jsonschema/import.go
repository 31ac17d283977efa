package jsonschema

import (
	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/fieldlist"
)

const (
	typeString  = "string"
	typeNumber  = "number"
	typeBoolean = "boolean"
	typeArray   = "array"
	typeObject  = "object"
)

// Import converts a schema and UI schema back into a field list. Properties
// are visited in document order. The first property with an unmappable type
// aborts the import and no list is returned.
func Import(doc Document, ui UISchema) (fieldlist.List, error) {
	keys := doc.Properties.Keys()
	out := make(fieldlist.List, 0, len(keys))
	for _, name := range keys {
		prop, _ := doc.Properties.Get(name)
		hints := ui.Hints(name)

		kind, err := importKind(name, prop, hints)
		if err != nil {
			return nil, err
		}

		d := field.Descriptor{
			Kind:        kind,
			Label:       prop.Title,
			Name:        name,
			Placeholder: prop.Description,
			UIHints:     hints.Clone(),
		}
		if d.Label == "" {
			d.Label = name
		}
		if hints != nil && hints.Placeholder != "" {
			d.Placeholder = hints.Placeholder
		}
		if prop.Enum != nil {
			d.Options = make([]field.Option, len(prop.Enum))
			for i, value := range prop.Enum {
				d.Options[i] = field.Option{Label: value, Value: value}
			}
		}
		d.Validation = field.Validation{
			Required:  doc.IsRequired(name),
			Min:       prop.Minimum,
			Max:       prop.Maximum,
			MinLength: prop.MinLength,
			MaxLength: prop.MaxLength,
			Pattern:   prop.Pattern,
		}.Clone()

		out = append(out, d)
	}
	return out, nil
}

func importKind(name string, prop Property, hints *field.UIHints) (field.Kind, error) {
	switch prop.Type {
	case typeString:
		return stringKind(prop, hints), nil
	case typeNumber:
		return field.KindNumber, nil
	case typeBoolean:
		return field.KindCheckbox, nil
	case typeArray:
		return field.KindSelect, nil
	case typeObject:
		return field.KindFile, nil
	default:
		return "", &UnsupportedTypeError{Property: name, Type: prop.Type}
	}
}

// stringKind picks the kind of a string property. An explicit widget hint
// wins; an enum without a hint reads back as a select.
func stringKind(prop Property, hints *field.UIHints) field.Kind {
	widget := ""
	if hints != nil {
		widget = hints.Widget
	}
	switch widget {
	case string(field.KindTextarea):
		return field.KindTextarea
	case string(field.KindRadio):
		return field.KindRadio
	case string(field.KindSelect):
		return field.KindSelect
	}
	if prop.Enum != nil {
		return field.KindSelect
	}
	return field.KindText
}
