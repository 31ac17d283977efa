package render

import "strings"

// RenderOptions carries per request data that does not belong to the field
// list itself.
type RenderOptions struct {
	// Values pre-populates controls keyed by field name. Choice widgets
	// accept a string or a list of strings.
	Values map[string]any `json:"values,omitempty"`
	// Errors attaches feedback messages keyed by field name.
	Errors map[string][]string `json:"errors,omitempty"`
}

// MergeErrors combines field error maps. Messages are trimmed, blanks are
// dropped and duplicates keep their first position.
func MergeErrors(maps ...map[string][]string) map[string][]string {
	var out map[string][]string
	for _, m := range maps {
		for name, messages := range m {
			if out == nil {
				out = make(map[string][]string)
			}
			out[name] = append(out[name], messages...)
		}
	}
	for name, messages := range out {
		normalized := normalizeMessages(messages)
		if normalized == nil {
			delete(out, name)
			continue
		}
		out[name] = normalized
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
