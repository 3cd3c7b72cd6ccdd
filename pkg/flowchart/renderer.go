package flowchart

import "fmt"

// TextRenderer renders address ranges using the text stored in a flowchart.
type TextRenderer struct {
	fc *Flowchart
}

// NewTextRenderer returns a renderer over fc.
func NewTextRenderer(fc *Flowchart) *TextRenderer {
	return &TextRenderer{fc: fc}
}

// Render returns the text of the block starting at start. Blocks without
// text, and ranges that do not start a block, render as a "loc_<start>"
// placeholder. The end address is not consulted.
func (r *TextRenderer) Render(start, _ uint64) string {
	if n, ok := r.fc.BlockAt(start); ok && r.fc.Blocks[n].Text != "" {
		return r.fc.Blocks[n].Text
	}
	return Placeholder(start)
}

// Placeholder is the label used for a block without text.
func Placeholder(start uint64) string {
	return fmt.Sprintf("loc_%x\n", start)
}
