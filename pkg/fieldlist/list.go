package fieldlist

import "github.com/goliatone/go-formbuilder/pkg/field"

// List is the ordered sequence of field descriptors. Order is render order.
type List []field.Descriptor

// Clone deep-copies the list. A nil list stays nil.
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	out := make(List, len(l))
	for i, d := range l {
		out[i] = d.Clone()
	}
	return out
}

// Names returns the field names in list order.
func (l List) Names() []string {
	names := make([]string, len(l))
	for i, d := range l {
		names[i] = d.Name
	}
	return names
}

// Add appends d at the end of the list.
func Add(list List, d field.Descriptor) List {
	out := make(List, 0, len(list)+1)
	out = append(out, list.Clone()...)
	return append(out, d.Clone())
}

// Update replaces the element at index.
func Update(list List, index int, d field.Descriptor) (List, error) {
	if err := checkIndex("update", index, len(list)); err != nil {
		return nil, err
	}
	out := list.Clone()
	out[index] = d.Clone()
	return out, nil
}

// Delete removes the element at index.
func Delete(list List, index int) (List, error) {
	if err := checkIndex("delete", index, len(list)); err != nil {
		return nil, err
	}
	out := make(List, 0, len(list)-1)
	for i, d := range list {
		if i == index {
			continue
		}
		out = append(out, d.Clone())
	}
	return out, nil
}

// Move removes the element at from and reinserts it at to. Only the moved
// element and the elements between the two positions change place.
func Move(list List, from, to int) (List, error) {
	if err := checkIndex("move source", from, len(list)); err != nil {
		return nil, err
	}
	if err := checkIndex("move destination", to, len(list)); err != nil {
		return nil, err
	}
	out := list.Clone()
	moved := out[from]
	switch {
	case from < to:
		copy(out[from:to], out[from+1:to+1])
	case from > to:
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out, nil
}

func checkIndex(op string, index, length int) error {
	if index < 0 || index >= length {
		return &IndexError{Op: op, Index: index, Len: length}
	}
	return nil
}
