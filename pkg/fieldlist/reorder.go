package fieldlist

// DragResult is the outcome of a drag gesture on the canvas. Destination is
// nil when the item was dropped outside any valid target.
type DragResult struct {
	Source      int  `json:"source"`
	Destination *int `json:"destination,omitempty"`
}

// DropAt builds a DragResult for a completed drop.
func DropAt(source, destination int) DragResult {
	return DragResult{Source: source, Destination: &destination}
}

// Cancelled builds a DragResult for a drop outside any target.
func Cancelled(source int) DragResult {
	return DragResult{Source: source}
}

// Reorder applies a drag result. The boolean is false when the gesture was
// cancelled, in which case the returned list is the input and no state change
// should be recorded.
func Reorder(list List, result DragResult) (List, bool, error) {
	if result.Destination == nil {
		return list, false, nil
	}
	out, err := Move(list, result.Source, *result.Destination)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}
