package parser

// Edit replaces content[Start:End] with Text.
type Edit struct {
	Start int
	End   int
	Text  []byte
}

// Apply builds the edited content in one pass. Offsets refer to the original
// content; edits must be sorted and must not overlap.
func Apply(content []byte, edits []Edit) []byte {
	if len(edits) == 0 {
		return content
	}
	size := len(content)
	for _, e := range edits {
		size += len(e.Text) - (e.End - e.Start)
	}
	out := make([]byte, 0, size)
	last := 0
	for _, e := range edits {
		out = append(out, content[last:e.Start]...)
		out = append(out, e.Text...)
		last = e.End
	}
	return append(out, content[last:]...)
}
