package edit

import (
	"bytes"
	"fmt"
	"sort"
)

// ValidationError describes an edit whose range does not fit the buffer.
type ValidationError struct {
	Edit    Edit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// Validate checks that all edits have valid ranges for the given content
// length. Returns the first invalid edit found, or nil.
func Validate(edits []Edit, contentLen int) error {
	for _, e := range edits {
		if e.StartOffset < 0 {
			return &ValidationError{Edit: e, Message: "start offset is negative"}
		}
		if e.EndOffset < e.StartOffset {
			return &ValidationError{Edit: e, Message: "end offset is before start offset"}
		}
		if e.EndOffset > contentLen {
			return &ValidationError{
				Edit:    e,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", e.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// Sort orders edits by start offset, then end offset. Ties keep their
// collection order, so earlier-collected edits win conflict filtering.
func Sort(edits []Edit) {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].StartOffset != edits[j].StartOffset {
			return edits[i].StartOffset < edits[j].StartOffset
		}
		return edits[i].EndOffset < edits[j].EndOffset
	})
}

// FilterConflicts drops overlapping edits from a sorted slice, keeping the
// earliest edit at each position. Returns the accepted edits.
func FilterConflicts(edits []Edit) []Edit {
	if len(edits) == 0 {
		return nil
	}

	accepted := make([]Edit, 0, len(edits))
	accepted = append(accepted, edits[0])
	lastEnd := edits[0].EndOffset

	for _, e := range edits[1:] {
		if e.StartOffset >= lastEnd {
			accepted = append(accepted, e)
			lastEnd = e.EndOffset
		}
	}

	return accepted
}

// Apply applies sorted, non-overlapping edits to content and returns the
// rewritten buffer. Walking the sorted edits front to back over a fresh
// output buffer is equivalent to applying them back to front in place, and
// leaves the input untouched.
func Apply(content []byte, edits []Edit) []byte {
	if len(edits) == 0 {
		return content
	}

	delta := 0
	for _, e := range edits {
		delta += len(e.NewText) - (e.EndOffset - e.StartOffset)
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.Write(content[cursor:])

	return out.Bytes()
}

// Prepare validates, sorts, and filters a raw edit list into a form Apply
// accepts. Overlapping edits are resolved in favor of the earliest collected.
func Prepare(edits []Edit, contentLen int) ([]Edit, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	if err := Validate(edits, contentLen); err != nil {
		return nil, err
	}

	// Accept edits in collection order, dropping any that overlap an edit
	// already accepted, then sort the survivors for Apply.
	accepted := make([]Edit, 0, len(edits))
	for _, e := range edits {
		overlaps := false
		for _, a := range accepted {
			if e.StartOffset < a.EndOffset && a.StartOffset < e.EndOffset {
				overlaps = true
				break
			}
		}
		if !overlaps {
			accepted = append(accepted, e)
		}
	}
	Sort(accepted)

	return accepted, nil
}
