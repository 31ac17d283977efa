package jsonschema

import (
	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/fieldlist"
)

// Export converts a field list into its JSON Schema and UI schema. Property
// order follows list order. Duplicate names collapse onto the first position
// with the last descriptor's content.
func Export(list fieldlist.List) (Document, UISchema) {
	doc := NewDocument()
	ui := make(UISchema)
	seenRequired := make(map[string]struct{})

	for _, d := range list {
		doc.Properties.Set(d.Name, exportProperty(d))

		if d.Validation.Required {
			if _, dup := seenRequired[d.Name]; !dup {
				seenRequired[d.Name] = struct{}{}
				doc.Required = append(doc.Required, d.Name)
			}
		}
		if d.UIHints != nil {
			ui[d.Name] = d.UIHints.Clone()
		}
	}
	return doc, ui
}

func exportProperty(d field.Descriptor) Property {
	prop := Property{
		Type:        exportType(d.Kind),
		Title:       d.Label,
		Description: d.Placeholder,
	}
	if d.Kind.HasOptions() {
		prop.Enum = d.OptionValues()
	}

	v := d.Validation.Clone()
	prop.MinLength = v.MinLength
	prop.MaxLength = v.MaxLength
	prop.Minimum = v.Min
	prop.Maximum = v.Max
	prop.Pattern = v.Pattern
	return prop
}

// exportType maps every non-numeric kind to "string"; date, time, file and the
// choice kinds have no closer scalar type.
func exportType(kind field.Kind) string {
	if kind == field.KindNumber {
		return typeNumber
	}
	return typeString
}
