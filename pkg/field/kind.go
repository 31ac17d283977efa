package field

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind is the closed enumeration of field variants the builder supports.
type Kind string

const (
	KindText     Kind = "text"
	KindNumber   Kind = "number"
	KindCheckbox Kind = "checkbox"
	KindRadio    Kind = "radio"
	KindSelect   Kind = "select"
	KindTextarea Kind = "textarea"
	KindDate     Kind = "date"
	KindTime     Kind = "time"
	KindFile     Kind = "file"
)

var kinds = []Kind{
	KindText,
	KindNumber,
	KindCheckbox,
	KindRadio,
	KindSelect,
	KindTextarea,
	KindDate,
	KindTime,
	KindFile,
}

// Kinds returns every supported kind in palette order.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	for _, candidate := range kinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// HasOptions reports whether fields of this kind pick from an option list.
func (k Kind) HasOptions() bool {
	switch k {
	case KindSelect, KindRadio, KindCheckbox:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind resolves a raw kind name, ignoring case and surrounding space.
func ParseKind(raw string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(raw)))
	if !kind.Valid() {
		return "", fmt.Errorf("field: unknown kind %q", raw)
	}
	return kind, nil
}

// UnmarshalJSON rejects kinds outside the closed set.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("field: kind must be a string: %w", err)
	}
	parsed, err := ParseKind(raw)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
