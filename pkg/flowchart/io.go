package flowchart

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/graphslick/pkg/errors"
)

type document struct {
	Name   string  `json:"name,omitempty"`
	Start  uint64  `json:"start,omitempty"`
	Blocks []block `json:"blocks"`
}

type block struct {
	Start uint64 `json:"start"`
	End   uint64 `json:"end"`
	Succs []int  `json:"succs,omitempty"`
	Text  string `json:"text,omitempty"`
}

// ReadJSON decodes a flowchart from r.
//
// ReadJSON returns an INVALID_INPUT error if the JSON is malformed, a
// successor is not a block index, or a block ends before it starts.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Flowchart, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode flowchart")
	}

	blocks := make([]Block, len(doc.Blocks))
	for i, b := range doc.Blocks {
		blocks[i] = Block{Start: b.Start, End: b.End, Succs: b.Succs, Text: b.Text}
	}
	return New(doc.Name, doc.Start, blocks)
}

// ImportJSON reads the flowchart file at path.
func ImportJSON(path string) (*Flowchart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes fc as indented JSON and writes it to w. The output can
// be read back with [ReadJSON].
func WriteJSON(fc *Flowchart, w io.Writer) error {
	doc := document{Name: fc.Name, Start: fc.Start, Blocks: make([]block, len(fc.Blocks))}
	for i, b := range fc.Blocks {
		doc.Blocks[i] = block{Start: b.Start, End: b.End, Succs: b.Succs, Text: b.Text}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode flowchart")
	}
	return nil
}

// ExportJSON writes fc to a JSON file at path.
func ExportJSON(fc *Flowchart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(fc, f)
}
