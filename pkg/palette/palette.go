// Package palette lists the starter fields offered when adding to a form.
package palette

import (
	"strconv"

	"github.com/goliatone/go-formbuilder/pkg/field"
)

var defaults = []field.Descriptor{
	{Kind: field.KindText, Label: "Text Input", Name: "textInput"},
	{Kind: field.KindNumber, Label: "Number Input", Name: "numberInput"},
	{Kind: field.KindCheckbox, Label: "Checkbox", Name: "checkbox"},
	{Kind: field.KindRadio, Label: "Radio Button", Name: "radioButton"},
	{Kind: field.KindSelect, Label: "Dropdown", Name: "dropdown"},
	{Kind: field.KindTextarea, Label: "Text Area", Name: "textArea"},
	{Kind: field.KindDate, Label: "Date Picker", Name: "datePicker"},
	{Kind: field.KindTime, Label: "Time Picker", Name: "timePicker"},
	{Kind: field.KindFile, Label: "File Upload", Name: "fileUpload"},
}

// Defaults returns one starter descriptor per kind in palette order.
func Defaults() []field.Descriptor {
	out := make([]field.Descriptor, len(defaults))
	for i, d := range defaults {
		out[i] = d.Clone()
	}
	return out
}

// Lookup returns the starter descriptor for kind.
func Lookup(kind field.Kind) (field.Descriptor, bool) {
	for _, d := range defaults {
		if d.Kind == kind {
			return d.Clone(), true
		}
	}
	return field.Descriptor{}, false
}

// UniqueName returns base, or base followed by the smallest counter starting
// at 2 that is not in taken.
func UniqueName(base string, taken []string) string {
	used := make(map[string]struct{}, len(taken))
	for _, name := range taken {
		used[name] = struct{}{}
	}
	if _, ok := used[base]; !ok {
		return base
	}
	for n := 2; ; n++ {
		candidate := base + strconv.Itoa(n)
		if _, ok := used[candidate]; !ok {
			return candidate
		}
	}
}
