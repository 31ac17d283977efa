package validation

// Issue is one validation failure. Field names the offending property when it
// can be determined.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// Result collects the outcome of a validation run.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// FieldErrors groups issue messages by field name. Issues without a field are
// left out.
func (r Result) FieldErrors() map[string][]string {
	if len(r.Issues) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, issue := range r.Issues {
		if issue.Field == "" {
			continue
		}
		out[issue.Field] = append(out[issue.Field], issue.Message)
	}
	return out
}

func invalid(issues ...Issue) Result {
	return Result{Valid: false, Issues: issues}
}
